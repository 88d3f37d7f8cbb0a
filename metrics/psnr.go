package metrics

import "math"

// peak is the largest 8-bit sample value.
const peak = 255.0

// PSNR is the peak signal-to-noise ratio of b measured against a, in dB:
// 10*log10(peak²/MSE). Equal buffers carry no noise and give +Inf.
func PSNR(a, b []byte) (float64, error) {
	if err := sameShape(a, b); err != nil {
		return 0, err
	}
	var sse float64
	for i := range a {
		d := float64(a[i]) - float64(b[i])
		sse += d * d
	}
	if sse == 0 {
		return math.Inf(1), nil
	}
	return 10 * math.Log10(peak*peak*float64(len(a))/sse), nil
}

// ValidatePSNR holds for a finite psnr no higher than ceiling dB.
func ValidatePSNR(psnr, ceiling float64) bool {
	return !math.IsInf(psnr, 0) && !math.IsNaN(psnr) && psnr <= ceiling
}
