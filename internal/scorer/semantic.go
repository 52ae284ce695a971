package scorer

import "github.com/siftlab/sift/pkg/types"

// SemanticMatch scores candidate by the cosine similarity of its embedding
// against the query embedding, scaled to [0, types.MaxScore]. It is total:
// every candidate receives a score, there is no "no match" outcome.
//
// Both vectors must be pre-normalized to unit length so that cosine
// similarity reduces to a plain dot product; the scorer does not enforce
// this, it only relies on it. Cosine similarity of dissimilar vectors is
// negative, so the scaled score is floored at 0 to keep the "higher is
// better, non-negative" display contract.
//
// MatchIndices is left empty: a semantic hit has no lexical explanation.
// Callers that want highlighting splice in the lexical scorer's indices
// themselves.
func SemanticMatch(candidate string, candVec, queryVec []float32) types.Suggestion {
	score := int(Dot(queryVec, candVec) * types.MaxScore)
	if score < 0 {
		score = 0
	}
	if score > types.MaxScore {
		score = types.MaxScore
	}

	return types.Suggestion{Text: candidate, Score: score}
}
