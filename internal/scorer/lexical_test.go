package scorer

import (
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/siftlab/sift/pkg/types"
)

func TestFuzzyMatchExact(t *testing.T) {
	for _, s := range []string{"a", "hey", "suggestion"} {
		sug, ok := FuzzyMatch(s, s)
		require.True(t, ok)
		assert.Equal(t, types.MaxScore, sug.Score)

		want := make([]int, len(s))
		for i := range want {
			want[i] = i
		}
		assert.Equal(t, want, sug.MatchIndices, "exact match must cover every position")
	}
}

func TestFuzzyMatchCaseFolded(t *testing.T) {
	sug, ok := FuzzyMatch("HEY", "hey")
	require.True(t, ok)
	assert.Equal(t, types.MaxScore, sug.Score)

	sug, ok = FuzzyMatch("hey", "HeY")
	require.True(t, ok)
	assert.Equal(t, types.MaxScore, sug.Score)
	assert.Equal(t, "HeY", sug.Text, "suggestion carries the candidate verbatim")
}

func TestFuzzyMatchNoSubsequence(t *testing.T) {
	tests := []struct {
		query     string
		candidate string
	}{
		{query: "hey", candidate: "xyz"},
		{query: "abc", candidate: ""},
		{query: "ba", candidate: "ab"}, // present but out of order
		{query: "aa", candidate: "a"},  // second occurrence missing
	}

	for _, tt := range tests {
		_, ok := FuzzyMatch(tt.query, tt.candidate)
		assert.False(t, ok, "query %q must not match candidate %q", tt.query, tt.candidate)
	}
}

func TestFuzzyMatchEmptyQuery(t *testing.T) {
	// An empty query has nothing to fail the subsequence test, so every
	// candidate matches.
	sug, ok := FuzzyMatch("", "anything")
	require.True(t, ok)
	assert.Positive(t, sug.Score)
}

func TestFuzzyMatchSubsequence(t *testing.T) {
	sug, ok := FuzzyMatch("ct", "cat")
	require.True(t, ok)
	assert.Equal(t, []int{0, 2}, sug.MatchIndices)
	assert.Positive(t, sug.Score)

	// A contiguous substring match of equal length outranks the gapped
	// subsequence match.
	contiguous, ok := FuzzyMatch("ca", "cat")
	require.True(t, ok)
	assert.Greater(t, contiguous.Score, sug.Score)
}

func TestFuzzyMatchSubstringIndices(t *testing.T) {
	sug, ok := FuzzyMatch("gest", "suggestion")
	require.True(t, ok)
	assert.Equal(t, []int{3, 4, 5, 6}, sug.MatchIndices)
}

func TestFuzzyMatchEarlierSubstringRanksHigher(t *testing.T) {
	early, ok := FuzzyMatch("sug", "suggest")
	require.True(t, ok)
	late, ok2 := FuzzyMatch("sug", "xxxxsuggest")
	require.True(t, ok2)
	assert.Greater(t, early.Score, late.Score)
}

func TestFuzzyMatchRankedExample(t *testing.T) {
	exact, ok := FuzzyMatch("hey", "hey")
	require.True(t, ok)
	near, ok2 := FuzzyMatch("hey", "heyp")
	require.True(t, ok2)
	_, ok3 := FuzzyMatch("hey", "xyz")

	assert.Equal(t, types.MaxScore, exact.Score)
	assert.Positive(t, near.Score)
	assert.Greater(t, exact.Score, near.Score)
	assert.False(t, ok3)
}

func TestFuzzyMatchMoreMatchedCharactersScoreHigher(t *testing.T) {
	// Both candidates carry the query as a substring at the same start
	// position with zero subsequence gap, and both sit beyond the edit
	// distance threshold, so only the matched-character count varies.
	shorter, ok := FuzzyMatch("ab", "zzzabzzz")
	require.True(t, ok)
	longer, ok2 := FuzzyMatch("abc", "zzzabczzz")
	require.True(t, ok2)
	assert.GreaterOrEqual(t, longer.Score, shorter.Score)
}

func TestFuzzyMatchTighterGapScoresHigher(t *testing.T) {
	// Same query and matched count, both beyond the edit distance
	// threshold; only the accumulated gap differs.
	tight, ok := FuzzyMatch("ab", "aqqqbqq")
	require.True(t, ok)
	loose, ok2 := FuzzyMatch("ab", "aqqqqbq")
	require.True(t, ok2)
	assert.Greater(t, tight.Score, loose.Score)
}

func TestFuzzyMatchScoreClamped(t *testing.T) {
	// A long query matched as prefix substring stacks every bonus; the sum
	// must still clamp at MaxScore.
	long := "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa"
	sug, ok := FuzzyMatch(long, long+"b")
	require.True(t, ok)
	assert.Equal(t, types.MaxScore, sug.Score)
}

func TestFuzzyMatchInvariants(t *testing.T) {
	queries := []string{"", "a", "he", "hey", "gest", "ct", "zzz"}
	candidates := []string{"", "hey", "heyp", "cat", "suggestion", "a cat sat", "xyz"}

	for _, q := range queries {
		for _, c := range candidates {
			sug, ok := FuzzyMatch(q, c)
			if !ok {
				continue
			}
			assert.NoError(t, sug.Validate(), "query %q candidate %q", q, c)
		}
	}
}

func TestFuzzyMatchLengthChangingCaseFolds(t *testing.T) {
	// These capitals change byte length under ToLower: 'Ⱥ' (2 bytes)
	// folds to 'ⱥ' (3 bytes), 'İ' (2 bytes) folds to 'i' (1 byte), and
	// 'ẞ' (3 bytes) folds to 'ß' (2 bytes). Indices must still land on
	// rune starts of the original candidate.
	tests := []struct {
		name        string
		query       string
		candidate   string
		wantIndices []int
	}{
		{"folded rune grows", "a", "Ⱥa", []int{2}},
		{"folded rune shrinks", "a", "İa", []int{2}},
		{"capital sharp s", "s", "ẞs", []int{3}},
		{"exact match over folding rune", "ⱥa", "Ⱥa", []int{0, 2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sug, ok := FuzzyMatch(tt.query, tt.candidate)
			require.True(t, ok)
			require.NoError(t, sug.Validate())
			assert.Equal(t, tt.wantIndices, sug.MatchIndices)

			for _, idx := range sug.MatchIndices {
				assert.True(t, utf8.RuneStart(tt.candidate[idx]),
					"index %d is not a rune start in %q", idx, tt.candidate)
			}
		})
	}
}
