package keys_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Danishprabhu04/image-encrypt/keys"
	"github.com/Danishprabhu04/image-encrypt/models"
)

func TestParse_Valid(t *testing.T) {
	key, err := keys.Parse("D4P5R3.99")
	require.NoError(t, err)
	assert.Equal(t, 4, key.DRounds)
	assert.Equal(t, 5, key.PRounds)
	assert.Equal(t, 3.99, key.R)
	assert.Greater(t, key.Seed, 0.0)
	assert.Less(t, key.Seed, 1.0)
}

func TestParse_Invalid(t *testing.T) {
	for _, s := range []string{
		"D0P5R3.99",
		"D4P0R3.99",
		"D4P5R3.56",
		"D4P5R4.01",
		"garbage",
		"",
		"D4P5R",
		"D4P5R3.9.9",
		"D65P5R3.99",
		"D4P5R3.99S0",
		"D4P5R3.99S1",
		"D4P5R3.99S1.5",
		"d4p5r3.99",
	} {
		t.Run(s, func(t *testing.T) {
			_, err := keys.Parse(s)
			require.ErrorIs(t, err, models.ErrInvalidKey)
		})
	}
}

func TestParse_AcceptsOriginalBackendPrecision(t *testing.T) {
	// the FastAPI backend formatted r with %.14f
	key, err := keys.Parse("D4P5R3.99000000000000")
	require.NoError(t, err)
	short, err := keys.Parse("D4P5R3.99")
	require.NoError(t, err)
	assert.Equal(t, short, key)
}

func TestParse_ExplicitSeed(t *testing.T) {
	key, err := keys.Parse("D1P1R3.9S0.5")
	require.NoError(t, err)
	assert.Equal(t, models.Key{DRounds: 1, PRounds: 1, R: 3.9, Seed: 0.5}, key)
	assert.Equal(t, "D1P1R3.9S0.5", keys.Format(key))
}

func TestDeriveSeed_DeterministicAndDistinct(t *testing.T) {
	a := keys.DeriveSeed(4, 5, 3.99)
	assert.Equal(t, a, keys.DeriveSeed(4, 5, 3.99))
	assert.NotEqual(t, a, keys.DeriveSeed(5, 4, 3.99))
	assert.NotEqual(t, a, keys.DeriveSeed(4, 5, 3.98))
}

func TestFormat_RoundTrip(t *testing.T) {
	for _, s := range []string{"D4P5R3.99", "D1P1R3.9S0.5", "D12P3R4S0.000123", "D2P7R3.57"} {
		key, err := keys.Parse(s)
		require.NoError(t, err, s)
		again, err := keys.Parse(keys.Format(key))
		require.NoError(t, err, s)
		assert.Equal(t, key, again, s)
	}
}

func TestNewRandom_AlwaysCarriesSeed(t *testing.T) {
	key, err := keys.NewRandom(4, 5, 3.99)
	require.NoError(t, err)
	s := keys.Format(key)
	assert.Contains(t, s, "S")

	back, err := keys.Parse(s)
	require.NoError(t, err)
	assert.Equal(t, key, back)

	_, err = keys.NewRandom(0, 5, 3.99)
	require.ErrorIs(t, err, models.ErrInvalidKey)
}
