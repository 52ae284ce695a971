package scorer

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/siftlab/sift/pkg/types"
)

func TestSemanticMatchIdenticalDirection(t *testing.T) {
	query := []float32{1, 0}

	sug := SemanticMatch("cat", []float32{1, 0}, query)
	assert.Equal(t, types.MaxScore, sug.Score)
	assert.Empty(t, sug.MatchIndices)
	assert.Equal(t, "cat", sug.Text)
}

func TestSemanticMatchOrthogonal(t *testing.T) {
	sug := SemanticMatch("dog", []float32{0, 1}, []float32{1, 0})
	assert.Zero(t, sug.Score)
}

func TestSemanticMatchNegativeSimilarityClampedToZero(t *testing.T) {
	sug := SemanticMatch("opposite", []float32{-1, 0}, []float32{1, 0})
	assert.Zero(t, sug.Score, "dissimilar vectors must floor at zero, not underflow")
}

func TestSemanticMatchSelfSimilarity(t *testing.T) {
	v := Normalize([]float32{0.3, -1.2, 4.5, 0.01})
	sug := SemanticMatch("self", v, v)

	// Truncation of the scaled float may land one below MaxScore.
	assert.InDelta(t, types.MaxScore, sug.Score, 1)
}

func TestSemanticMatchIsTotal(t *testing.T) {
	// Every candidate gets a score; there is no discard outcome, even for
	// degenerate inputs.
	for _, vec := range [][]float32{{0, 0}, {1, 0}, nil} {
		sug := SemanticMatch("x", vec, []float32{1, 0})
		assert.GreaterOrEqual(t, sug.Score, 0)
		assert.LessOrEqual(t, sug.Score, types.MaxScore)
	}
}

func TestSemanticMatchRanking(t *testing.T) {
	query := []float32{1, 0}
	near := SemanticMatch("near", []float32{1, 0}, query)
	far := SemanticMatch("far", []float32{0, 1}, query)

	assert.Equal(t, types.MaxScore, near.Score)
	assert.Zero(t, far.Score)
	assert.Greater(t, near.Score, far.Score)
}
