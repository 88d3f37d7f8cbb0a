package chaos

import "math"

const (
	lyapunovStart   = 0.3141592653589793
	lyapunovSettle  = 1000
	lyapunovSamples = 10000
)

// Lyapunov estimates the Lyapunov exponent of the logistic map at r as the
// mean of ln|r(1-2x)| along one orbit. Inside [MinR, MaxR] the map has
// periodic windows (r = 3.83 settles on a 3-cycle) where the exponent is
// negative and the keystream repeats with a short period.
func Lyapunov(r float64) float64 {
	x := lyapunovStart
	for range lyapunovSettle {
		x = step(x, r)
	}

	var sum float64
	for range lyapunovSamples {
		x = step(x, r)
		d := math.Abs(r * (1 - 2*x))
		if d == 0 {
			d = math.SmallestNonzeroFloat64
		}
		sum += math.Log(d)
	}
	return sum / lyapunovSamples
}

// IsChaotic reports whether the orbit at r has a positive Lyapunov exponent.
func IsChaotic(r float64) bool {
	return Lyapunov(r) > 0
}
