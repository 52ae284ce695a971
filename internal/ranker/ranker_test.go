package ranker

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/siftlab/sift/internal/store"
	"github.com/siftlab/sift/pkg/types"
)

func assertSortedDescending(t *testing.T, suggestions []types.Suggestion) {
	t.Helper()
	for i := 1; i < len(suggestions); i++ {
		assert.GreaterOrEqual(t, suggestions[i-1].Score, suggestions[i].Score,
			"result must be sorted by descending score")
	}
}

func TestRank(t *testing.T) {
	r := New(nil)

	got := r.Rank("hey", []string{"xyz", "heyp", "hey"})

	require.Len(t, got, 2, "candidate with no subsequence match is discarded")
	assert.Equal(t, "hey", got[0].Text)
	assert.Equal(t, types.MaxScore, got[0].Score)
	assert.Equal(t, "heyp", got[1].Text)
	assert.Positive(t, got[1].Score)
	assertSortedDescending(t, got)
}

func TestRankEmptyCandidates(t *testing.T) {
	r := New(nil)
	assert.Empty(t, r.Rank("query", nil))
}

func TestRankAllocatesFreshResult(t *testing.T) {
	r := New(nil)
	candidates := []string{"hey", "heyp"}

	first := r.Rank("hey", candidates)
	second := r.Rank("hey", candidates)

	require.NotEmpty(t, first)
	first[0].Score = -999
	assert.Equal(t, types.MaxScore, second[0].Score, "rank calls must not share state")
}

func TestRankSorted(t *testing.T) {
	r := New(nil)
	candidates := []string{"suggestion", "sug", "bug", "saga", "s", "gesture", "suggest"}

	got := r.Rank("sug", candidates)
	assertSortedDescending(t, got)
	for _, s := range got {
		assert.NoError(t, s.Validate())
	}
}

func TestRankVectors(t *testing.T) {
	r := New(nil)
	table := store.Table{
		{Text: "aligned", Vector: []float32{1, 0}},
		{Text: "orthogonal", Vector: []float32{0, 1}},
	}

	got, err := r.RankVectors([]float32{1, 0}, table)
	require.NoError(t, err)
	require.Len(t, got, 2, "semantic mode never discards")

	assert.Equal(t, "aligned", got[0].Text)
	assert.Equal(t, types.MaxScore, got[0].Score)
	assert.Equal(t, "orthogonal", got[1].Text)
	assert.Zero(t, got[1].Score)
}

func TestRankVectorsDimensionMismatch(t *testing.T) {
	r := New(nil)
	table := store.Table{
		{Text: "ok", Vector: []float32{1, 0}},
		{Text: "short", Vector: []float32{1}},
	}

	_, err := r.RankVectors([]float32{1, 0}, table)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrDimensionMismatch)
}

func TestRankVectorsHighlighted(t *testing.T) {
	r := New(nil)
	table := store.Table{
		{Text: "cat", Vector: []float32{1, 0}},
		{Text: "zzz", Vector: []float32{0.6, 0.8}},
	}

	got, err := r.RankVectorsHighlighted("ct", []float32{1, 0}, table)
	require.NoError(t, err)
	require.Len(t, got, 2)

	byText := map[string]types.Suggestion{}
	for _, s := range got {
		byText[s.Text] = s
	}

	assert.Equal(t, []int{0, 2}, byText["cat"].MatchIndices,
		"lexical indices spliced in for highlighting")
	assert.Empty(t, byText["zzz"].MatchIndices,
		"no lexical explanation leaves indices empty")
	assert.Equal(t, types.MaxScore, byText["cat"].Score,
		"score stays purely semantic")
}

func TestRankCache(t *testing.T) {
	r := New(&Config{CacheSize: 8})
	candidates := []string{"hey", "heyp", "xyz"}

	first := r.Rank("hey", candidates)
	second := r.Rank("hey", candidates)
	assert.Equal(t, first, second)

	// Mutating a returned slice must not poison later cache hits.
	second[0].Score = 0
	second[0].MatchIndices[0] = 99
	third := r.Rank("hey", candidates)
	assert.Equal(t, types.MaxScore, third[0].Score)
	assert.Equal(t, 0, third[0].MatchIndices[0])
}

func TestInvalidateCache(t *testing.T) {
	r := New(&Config{CacheSize: 8})

	got := r.Rank("hey", []string{"hey"})
	require.Len(t, got, 1)

	r.InvalidateCache()

	// New candidate list observed after invalidation.
	got = r.Rank("hey", []string{"hey", "heyp"})
	assert.Len(t, got, 2)
}

func TestTopK(t *testing.T) {
	suggestions := []types.Suggestion{
		{Text: "a", Score: 900},
		{Text: "b", Score: 500},
		{Text: "c", Score: 100},
	}

	assert.Len(t, TopK(suggestions, 2), 2)
	assert.Len(t, TopK(suggestions, 10), 3)
	assert.Empty(t, TopK(suggestions, 0))
	assert.Empty(t, TopK(suggestions, -1))
	assert.Empty(t, TopK(nil, 5))
}
