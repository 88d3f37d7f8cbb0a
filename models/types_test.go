package models_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Danishprabhu04/image-encrypt/models"
)

func TestImageValidate(t *testing.T) {
	require.NoError(t, models.NewImage(2, 3, 1).Validate())
	require.NoError(t, models.NewImage(4, 4, 3).Validate())

	bad := models.NewImage(2, 2, 3)
	bad.Pix = bad.Pix[:5]
	require.ErrorIs(t, bad.Validate(), models.ErrDimensionMismatch)

	require.ErrorIs(t, models.NewImage(2, 2, 4).Validate(), models.ErrUnsupportedFormat)
	require.ErrorIs(t, models.Image{Width: 0, Height: 2, Channels: 1}.Validate(), models.ErrUnsupportedFormat)
}

func TestImageClone_IsDeep(t *testing.T) {
	img := models.Image{Width: 2, Height: 1, Channels: 1, Pix: []byte{1, 2}}
	cp := img.Clone()
	cp.Pix[0] = 9
	require.Equal(t, byte(1), img.Pix[0])
}
