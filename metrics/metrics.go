// Package metrics computes the statistical measures used to judge an image cipher
package metrics

import (
	"fmt"
	"math"

	"github.com/Danishprabhu04/image-encrypt/models"
)

// MaxEntropy is the entropy of a uniform byte distribution.
const MaxEntropy = 8.0

// Entropy returns the Shannon entropy, in bits, of the sample histogram.
func Entropy(samples []byte) float64 {
	if len(samples) == 0 {
		return 0
	}

	var hist [256]int
	for _, v := range samples {
		hist[v]++
	}

	total := float64(len(samples))
	var entropy float64
	for _, count := range hist {
		if count == 0 {
			continue
		}
		p := float64(count) / total
		entropy -= p * math.Log2(p)
	}
	// -0 for a constant image
	return math.Max(0, math.Min(entropy, MaxEntropy))
}

// ChannelEntropy returns the entropy of each channel plane of img.
func ChannelEntropy(img models.Image) []float64 {
	if img.Channels <= 0 {
		return nil
	}
	planes := make([][]byte, img.Channels)
	for c := range planes {
		planes[c] = make([]byte, 0, len(img.Pix)/img.Channels)
	}
	for i, v := range img.Pix {
		c := i % img.Channels
		planes[c] = append(planes[c], v)
	}

	out := make([]float64, img.Channels)
	for c, plane := range planes {
		out[c] = Entropy(plane)
	}
	return out
}

// NPCR is the percentage of positions where a and b differ.
func NPCR(a, b []byte) (float64, error) {
	if err := sameShape(a, b); err != nil {
		return 0, err
	}
	changed := 0
	for i := range a {
		if a[i] != b[i] {
			changed++
		}
	}
	return 100 * float64(changed) / float64(len(a)), nil
}

// UACI is the mean absolute difference between a and b, normalised by 255,
// as a percentage.
func UACI(a, b []byte) (float64, error) {
	if err := sameShape(a, b); err != nil {
		return 0, err
	}
	var sum float64
	for i := range a {
		sum += math.Abs(float64(a[i])-float64(b[i])) / 255
	}
	return 100 * sum / float64(len(a)), nil
}

// Analyze reports the entropy of img overall and per channel.
func Analyze(img models.Image) models.Metrics {
	return models.Metrics{
		Entropy:        Entropy(img.Pix),
		ChannelEntropy: ChannelEntropy(img),
	}
}

func sameShape(a, b []byte) error {
	if len(a) != len(b) {
		return fmt.Errorf("%w: comparing %d samples with %d", models.ErrDimensionMismatch, len(a), len(b))
	}
	if len(a) == 0 {
		return fmt.Errorf("%w: nothing to compare", models.ErrDimensionMismatch)
	}
	return nil
}
