// Package chaos generates the logistic-map sequences that drive the cipher.
//
// Generation is a pure function of (seed, r, count): there is no generator
// object to share, so concurrent pipelines can never observe each other's
// iterator state and decryption reproduces the encryption keystream simply
// by calling Generate again with the same arguments.
package chaos

import (
	"fmt"
	"math"

	"github.com/Danishprabhu04/image-encrypt/models"
)

const (
	// MinR is the onset of chaos for the logistic map.
	MinR = 3.57
	// MaxR is the largest coefficient that keeps the orbit inside [0,1].
	MaxR = 4.0
	// BurnIn iterations are discarded before the first emitted value.
	BurnIn = 100
	// Epsilon is the distance used to push an iterate off the fixed points 0 and 1.
	Epsilon = 1e-12

	quantizeScale = 1e14
)

// ValidateParams checks that seed lies strictly inside (0,1) and r inside [MinR, MaxR].
func ValidateParams(seed, r float64) error {
	if math.IsNaN(seed) || seed <= 0 || seed >= 1 {
		return fmt.Errorf("%w: seed %v outside (0,1)", models.ErrInvalidKey, seed)
	}
	if math.IsNaN(r) || r < MinR || r > MaxR {
		return fmt.Errorf("%w: r %v outside [%.2f, %.1f]", models.ErrInvalidKey, r, MinR, MaxR)
	}
	return nil
}

// Generate iterates x = r*x*(1-x) from x0 = seed and returns count values
// after BurnIn discarded iterations.
func Generate(seed, r float64, count int) ([]float64, error) {
	if err := ValidateParams(seed, r); err != nil {
		return nil, err
	}
	if count < 0 {
		return nil, fmt.Errorf("%w: negative sequence length %d", models.ErrInvalidKey, count)
	}

	x := seed
	for range BurnIn {
		x = step(x, r)
	}

	seq := make([]float64, count)
	for i := range seq {
		x = step(x, r)
		seq[i] = x
	}
	return seq, nil
}

func step(x, r float64) float64 {
	x = r * x * (1 - x)
	// r = 4 maps 0.5 onto exactly 1 and then 0 forever
	if x <= 0 {
		return Epsilon
	}
	if x >= 1 {
		return 1 - Epsilon
	}
	return x
}

// Quantize maps a chaotic value onto a byte using its low-order decimal digits.
func Quantize(x float64) byte {
	return byte(uint64(math.Floor(x*quantizeScale)) % 256)
}
