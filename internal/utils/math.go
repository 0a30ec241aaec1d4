package utils

import "math/rand"

// RandomFloat returns a random float64 in [0.0, 1.0).
func RandomFloat() float64 {
	return rand.Float64() //nolint:gosec // Game outcomes, not security critical
}

// RandomInt returns a random integer between min and max (inclusive).
// An inverted range collapses to min.
func RandomInt(min, max int) int {
	if min > max {
		return min
	}
	return rand.Intn(max-min+1) + min //nolint:gosec // Game outcomes, not security critical
}
