package domain

import "math"

// normEpsilon keeps the denominator positive when either vector is all-zero.
const normEpsilon = 1e-12

// Cosine returns the cosine similarity of two equal-length vectors.
// Both vectors must come from the same embedding model, so callers guarantee
// matching dimensionality. The result stays within [-1, 1] up to the epsilon
// relaxation of the denominator.
func Cosine(a, b []float32) float64 {
	var dot, na, nb float64
	for i := range a {
		x, y := float64(a[i]), float64(b[i])
		dot += x * y
		na += x * x
		nb += y * y
	}
	return dot / (math.Sqrt(na)*math.Sqrt(nb) + normEpsilon)
}
