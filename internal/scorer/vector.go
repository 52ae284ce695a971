package scorer

import "math"

// Dot returns the dot product of a and b using float64 accumulation.
// For unit-length inputs this is their cosine similarity. Mismatched
// lengths yield 0; dimensional consistency is the caller's contract.
func Dot(a, b []float32) float64 {
	if len(a) != len(b) {
		return 0
	}

	var sum float64
	for i := range a {
		sum += float64(a[i]) * float64(b[i])
	}
	return sum
}

// Norm returns the Euclidean norm of v.
func Norm(v []float32) float64 {
	var sum float64
	for _, x := range v {
		sum += float64(x) * float64(x)
	}
	return math.Sqrt(sum)
}

// Normalize returns a copy of v scaled to unit length. The zero vector has
// no direction and is returned as an unmodified copy.
func Normalize(v []float32) []float32 {
	out := make([]float32, len(v))
	copy(out, v)

	norm := Norm(v)
	if norm == 0 {
		return out
	}

	for i := range out {
		out[i] = float32(float64(out[i]) / norm)
	}
	return out
}

// NormalizeAll scales every vector in vs to unit length in place.
func NormalizeAll(vs [][]float32) {
	for i, v := range vs {
		vs[i] = Normalize(v)
	}
}
