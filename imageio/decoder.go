// Package imageio moves images between container formats and raw sample buffers
package imageio

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/gif"
	"image/jpeg"
	"image/png"

	"github.com/gabriel-vasile/mimetype"

	"github.com/Danishprabhu04/image-encrypt/models"
)

const (
	FormatPNG  = "png"
	FormatJPEG = "jpeg"
	FormatGIF  = "gif"
)

// supportedMIME lists the containers the decoder accepts, keyed by sniffed type.
var supportedMIME = map[string]string{
	"image/png":  FormatPNG,
	"image/jpeg": FormatJPEG,
	"image/gif":  FormatGIF,
}

type ImageDecoder struct {
	encoder png.Encoder
}

func NewImageDecoder() *ImageDecoder {
	return &ImageDecoder{
		// ciphertext does not compress, so spend as little time trying as possible
		encoder: png.Encoder{CompressionLevel: png.BestSpeed},
	}
}

// DetectFormat sniffs the container type from the leading bytes.
func (d *ImageDecoder) DetectFormat(data []byte) (string, string, error) {
	mt := mimetype.Detect(data)
	for m := mt; m != nil; m = m.Parent() {
		if format, ok := supportedMIME[m.String()]; ok {
			return format, m.String(), nil
		}
	}
	return "", mt.String(), fmt.Errorf("%w: %s is not a supported image type", models.ErrUnsupportedFormat, mt.String())
}

// DecodeImage decodes a PNG, JPEG or GIF into raw samples. Grayscale images
// give one channel; everything else gives three, with alpha dropped.
func (d *ImageDecoder) DecodeImage(data []byte) (models.Image, *models.ImageMetadata, error) {
	format, mime, err := d.DetectFormat(data)
	if err != nil {
		return models.Image{}, nil, err
	}

	var src image.Image
	switch format {
	case FormatPNG:
		src, err = png.Decode(bytes.NewReader(data))
	case FormatJPEG:
		src, err = jpeg.Decode(bytes.NewReader(data))
	case FormatGIF:
		src, err = gif.Decode(bytes.NewReader(data))
	}
	if err != nil {
		return models.Image{}, nil, fmt.Errorf("%w: failed to decode %s: %v", models.ErrUnsupportedFormat, format, err)
	}

	img := FromImage(src)
	metadata := &models.ImageMetadata{
		Format:     format,
		MIME:       mime,
		Width:      img.Width,
		Height:     img.Height,
		Channels:   img.Channels,
		TotalBytes: len(data),
	}
	return img, metadata, nil
}

// DecodePNG is DecodeImage restricted to PNG, the only container that keeps
// ciphertext intact.
func (d *ImageDecoder) DecodePNG(data []byte) (models.Image, *models.ImageMetadata, error) {
	img, metadata, err := d.DecodeImage(data)
	if err != nil {
		return models.Image{}, nil, err
	}
	if metadata.Format != FormatPNG {
		return models.Image{}, nil, fmt.Errorf("%w: ciphertext must be PNG, got %s", models.ErrUnsupportedFormat, metadata.Format)
	}
	return img, metadata, nil
}

// EncodePNG writes img as an 8-bit grayscale or opaque RGB PNG.
func (d *ImageDecoder) EncodePNG(img models.Image) ([]byte, error) {
	if err := img.Validate(); err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := d.encoder.Encode(&buf, ToImage(img)); err != nil {
		return nil, fmt.Errorf("failed to encode PNG: %v", err)
	}
	return buf.Bytes(), nil
}

// FromImage converts any image.Image into raw samples.
func FromImage(src image.Image) models.Image {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()

	switch s := src.(type) {
	case *image.Gray:
		img := models.NewImage(w, h, 1)
		for y := 0; y < h; y++ {
			off := s.PixOffset(b.Min.X, b.Min.Y+y)
			copy(img.Pix[y*w:(y+1)*w], s.Pix[off:off+w])
		}
		return img
	case *image.Gray16:
		img := models.NewImage(w, h, 1)
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				img.Pix[y*w+x] = byte(s.Gray16At(b.Min.X+x, b.Min.Y+y).Y >> 8)
			}
		}
		return img
	}

	img := models.NewImage(w, h, 3)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := color.NRGBAModel.Convert(src.At(b.Min.X+x, b.Min.Y+y)).(color.NRGBA)
			i := (y*w + x) * 3
			img.Pix[i] = c.R
			img.Pix[i+1] = c.G
			img.Pix[i+2] = c.B
		}
	}
	return img
}

// ToImage wraps raw samples in an image.Image without changing any value.
func ToImage(img models.Image) image.Image {
	rect := image.Rect(0, 0, img.Width, img.Height)
	if img.Channels == 1 {
		gray := image.NewGray(rect)
		copy(gray.Pix, img.Pix)
		return gray
	}

	out := image.NewNRGBA(rect)
	for i := 0; i < img.Pixels(); i++ {
		out.Pix[i*4] = img.Pix[i*3]
		out.Pix[i*4+1] = img.Pix[i*3+1]
		out.Pix[i*4+2] = img.Pix[i*3+2]
		out.Pix[i*4+3] = 0xff
	}
	return out
}
