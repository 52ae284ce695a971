// Package scorer implements the two scoring strategies of the suggestion
// engine: lexical fuzzy matching and embedding cosine similarity.
//
// Both strategies produce the same output shape, a types.Suggestion, from a
// query and a candidate, and both are pure functions over their explicit
// inputs: no state, no I/O, safe to call concurrently.
//
// # Lexical scoring
//
//	s, ok := scorer.FuzzyMatch("ct", "cat")
//	// s.Score > 0, s.MatchIndices == []int{0, 2}
//
// FuzzyMatch sums independent signals (exact, substring, prefix,
// subsequence, edit distance), each contributing a bounded bonus, clamped
// to types.MaxScore. A candidate that fails the in-order subsequence test
// is reported as a non-match, which is a legitimate empty-result signal,
// not an error.
//
// # Semantic scoring
//
//	s := scorer.SemanticMatch("cat", catVec, queryVec)
//
// SemanticMatch is total and assumes unit-length vectors; see the package's
// Normalize helper. It performs a brute-force dot product per candidate,
// which is fine at interactive-picker scale. A future approximate-nearest-
// neighbor index would slot in behind the same ranker contract without
// touching callers.
package scorer
