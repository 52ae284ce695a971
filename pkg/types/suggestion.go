package types

// MaxScore is the upper bound for any suggestion score. Scorers clamp to
// this value; a score of MaxScore is reserved for the strongest possible
// match (literal case-folded equality in lexical mode, identical direction
// in semantic mode).
const MaxScore = 1000

// Suggestion is one ranked, annotated entry of a rank result.
type Suggestion struct {
	// Text is the candidate string exactly as the caller supplied it.
	Text string

	// MatchIndices holds the byte offsets of Text that should be
	// highlighted as matched for the current query. Strictly increasing
	// and in-bounds. May be empty for semantic matches that have no
	// lexical explanation.
	MatchIndices []int

	// Score is the scorer-specific figure of merit in [0, MaxScore].
	// Scores are only comparable across suggestions produced by the same
	// scorer in the same rank call.
	Score int
}

// Validate checks the suggestion invariants.
func (s *Suggestion) Validate() error {
	if s.Score < 0 || s.Score > MaxScore {
		return ErrScoreOutOfRange
	}

	prev := -1
	for _, idx := range s.MatchIndices {
		if idx < 0 || idx >= len(s.Text) {
			return ErrIndexOutOfBounds
		}
		if idx <= prev {
			return ErrIndicesNotIncreasing
		}
		prev = idx
	}

	return nil
}
