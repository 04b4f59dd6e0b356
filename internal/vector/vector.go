// Package vector provides the small amount of vector arithmetic shared by the
// feature extractor and the cluster engine.
package vector

import "math"

// Vector is an ordered sequence of real numbers. Vectors of different lengths can
// be compared: missing trailing components are treated as 0.
type Vector []float64

// Dim returns the number of components.
func (v Vector) Dim() int {
	return len(v)
}

// At returns component i, or 0 when i is beyond the end of v.
func (v Vector) At(i int) float64 {
	if i < 0 || i >= len(v) {
		return 0
	}
	return v[i]
}

// Clone returns a copy of v.
func (v Vector) Clone() Vector {
	if v == nil {
		return nil
	}
	out := make(Vector, len(v))
	copy(out, v)
	return out
}

// Zero returns a vector of n zeros.
func Zero(n int) Vector {
	return make(Vector, n)
}

// Fill returns a vector of n copies of x.
func Fill(n int, x float64) Vector {
	out := make(Vector, n)
	for i := range out {
		out[i] = x
	}
	return out
}

// Euclidean returns the L2 distance between a and b over max(len(a), len(b))
// dimensions, padding the shorter operand with zeros.
func Euclidean(a, b Vector) float64 {
	dim := max(len(a), len(b))
	var sum float64
	for i := 0; i < dim; i++ {
		diff := a.At(i) - b.At(i)
		sum += diff * diff
	}
	return math.Sqrt(sum)
}
