package imageio_test

import (
	"bytes"
	"image"
	"image/color"
	"image/gif"
	"image/jpeg"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Danishprabhu04/image-encrypt/imageio"
	"github.com/Danishprabhu04/image-encrypt/models"
)

func TestPNG_RoundTripGray(t *testing.T) {
	d := imageio.NewImageDecoder()
	img := models.Image{Width: 3, Height: 2, Channels: 1, Pix: []byte{0, 1, 2, 253, 254, 255}}

	data, err := d.EncodePNG(img)
	require.NoError(t, err)

	got, meta, err := d.DecodePNG(data)
	require.NoError(t, err)
	assert.Equal(t, img, got)
	assert.Equal(t, imageio.FormatPNG, meta.Format)
	assert.Equal(t, "image/png", meta.MIME)
	assert.Equal(t, 1, meta.Channels)
	assert.Equal(t, len(data), meta.TotalBytes)
}

func TestPNG_RoundTripRGB(t *testing.T) {
	d := imageio.NewImageDecoder()
	img := models.NewImage(4, 3, 3)
	for i := range img.Pix {
		img.Pix[i] = byte(i * 21)
	}

	data, err := d.EncodePNG(img)
	require.NoError(t, err)
	got, _, err := d.DecodeImage(data)
	require.NoError(t, err)
	assert.Equal(t, img, got)
}

func TestDecodeImage_JPEG(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 8, 8))
	for i := range src.Pix {
		src.Pix[i] = 0x80
	}
	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, src, nil))

	d := imageio.NewImageDecoder()
	img, meta, err := d.DecodeImage(buf.Bytes())
	require.NoError(t, err)
	assert.Equal(t, imageio.FormatJPEG, meta.Format)
	assert.Equal(t, 8, img.Width)
	assert.Len(t, img.Pix, img.Width*img.Height*img.Channels)

	// lossy containers cannot carry ciphertext
	_, _, err = d.DecodePNG(buf.Bytes())
	require.ErrorIs(t, err, models.ErrUnsupportedFormat)
}

func TestDecodeImage_GIFPalettedIsRGB(t *testing.T) {
	src := image.NewPaletted(image.Rect(0, 0, 2, 2), color.Palette{color.Black, color.RGBA{R: 255, A: 255}})
	src.Set(1, 1, color.RGBA{R: 255, A: 255})
	var buf bytes.Buffer
	require.NoError(t, gif.Encode(&buf, src, nil))

	img, meta, err := imageio.NewImageDecoder().DecodeImage(buf.Bytes())
	require.NoError(t, err)
	assert.Equal(t, imageio.FormatGIF, meta.Format)
	assert.Equal(t, 3, img.Channels)
	assert.Equal(t, byte(255), img.Pix[9])
}

func TestDecodeImage_RejectsNonImage(t *testing.T) {
	_, _, err := imageio.NewImageDecoder().DecodeImage([]byte("just some text, not an image"))
	require.ErrorIs(t, err, models.ErrUnsupportedFormat)

	// valid signature, broken body
	_, _, err = imageio.NewImageDecoder().DecodeImage([]byte("\x89PNG\r\n\x1a\n garbage"))
	require.ErrorIs(t, err, models.ErrUnsupportedFormat)
}

func TestEncodePNG_RejectsBadShape(t *testing.T) {
	_, err := imageio.NewImageDecoder().EncodePNG(models.Image{Width: 2, Height: 2, Channels: 1, Pix: []byte{1}})
	require.ErrorIs(t, err, models.ErrDimensionMismatch)
}

func TestFromImage_SubImageOffsets(t *testing.T) {
	gray := image.NewGray(image.Rect(0, 0, 4, 4))
	for i := range gray.Pix {
		gray.Pix[i] = byte(i)
	}
	sub := gray.SubImage(image.Rect(1, 1, 3, 3))
	img := imageio.FromImage(sub)
	assert.Equal(t, []byte{5, 6, 9, 10}, img.Pix)
}

func TestFromImage_Gray16KeepsHighByte(t *testing.T) {
	src := image.NewGray16(image.Rect(0, 0, 2, 1))
	src.SetGray16(0, 0, color.Gray16{Y: 0xabcd})
	src.SetGray16(1, 0, color.Gray16{Y: 0x00ff})
	img := imageio.FromImage(src)
	assert.Equal(t, 1, img.Channels)
	assert.Equal(t, []byte{0xab, 0x00}, img.Pix)
}
