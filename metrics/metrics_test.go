package metrics_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Danishprabhu04/image-encrypt/metrics"
	"github.com/Danishprabhu04/image-encrypt/models"
)

func TestEntropy_Bounds(t *testing.T) {
	assert.Equal(t, 0.0, metrics.Entropy(nil))
	assert.Equal(t, 0.0, metrics.Entropy([]byte{7, 7, 7, 7, 7}))

	uniform := make([]byte, 256*4)
	for i := range uniform {
		uniform[i] = byte(i)
	}
	assert.InDelta(t, 8.0, metrics.Entropy(uniform), 1e-9)

	half := []byte{0, 255, 0, 255}
	assert.InDelta(t, 1.0, metrics.Entropy(half), 1e-9)

	mixed := []byte("the quick brown fox jumps over the lazy dog")
	e := metrics.Entropy(mixed)
	assert.GreaterOrEqual(t, e, 0.0)
	assert.LessOrEqual(t, e, metrics.MaxEntropy)
}

func TestChannelEntropy(t *testing.T) {
	img := models.Image{Width: 2, Height: 1, Channels: 3, Pix: []byte{1, 9, 0, 1, 8, 255}}
	got := metrics.ChannelEntropy(img)
	require.Len(t, got, 3)
	assert.Equal(t, 0.0, got[0])
	assert.InDelta(t, 1.0, got[1], 1e-9)
	assert.InDelta(t, 1.0, got[2], 1e-9)
}

func TestNPCR_UACI(t *testing.T) {
	a := []byte{0, 0, 0, 0}
	b := []byte{0, 255, 0, 255}

	npcr, err := metrics.NPCR(a, b)
	require.NoError(t, err)
	assert.InDelta(t, 50.0, npcr, 1e-9)

	uaci, err := metrics.UACI(a, b)
	require.NoError(t, err)
	assert.InDelta(t, 50.0, uaci, 1e-9)

	npcr, err = metrics.NPCR(a, a)
	require.NoError(t, err)
	assert.Equal(t, 0.0, npcr)
}

func TestNPCR_ShapeErrors(t *testing.T) {
	_, err := metrics.NPCR([]byte{1}, []byte{1, 2})
	require.ErrorIs(t, err, models.ErrDimensionMismatch)
	_, err = metrics.UACI(nil, nil)
	require.ErrorIs(t, err, models.ErrDimensionMismatch)
}

func TestPSNR(t *testing.T) {
	a := []byte{10, 20, 30}
	same, err := metrics.PSNR(a, a)
	require.NoError(t, err)
	assert.True(t, math.IsInf(same, 1))

	_, err = metrics.PSNR(a, a[:2])
	require.ErrorIs(t, err, models.ErrDimensionMismatch)
	_, err = metrics.PSNR(nil, nil)
	require.ErrorIs(t, err, models.ErrDimensionMismatch)

	// MSE 1 -> 20*log10(255)
	one, err := metrics.PSNR([]byte{0}, []byte{1})
	require.NoError(t, err)
	assert.InDelta(t, 48.1308, one, 1e-4)

	worst, err := metrics.PSNR([]byte{0}, []byte{255})
	require.NoError(t, err)
	assert.InDelta(t, 0.0, worst, 1e-9)
	assert.True(t, metrics.ValidatePSNR(worst, 10))
	assert.False(t, metrics.ValidatePSNR(math.Inf(1), 10))
	assert.False(t, metrics.ValidatePSNR(math.NaN(), 10))
}

func TestAnalyze(t *testing.T) {
	img := models.Image{Width: 2, Height: 1, Channels: 1, Pix: []byte{0, 255}}
	m := metrics.Analyze(img)
	assert.InDelta(t, 1.0, m.Entropy, 1e-9)
	assert.Equal(t, []float64{1.0}, m.ChannelEntropy)
}
