// Package ranker orchestrates suggestion ranking: it applies one of the two
// scorers to every candidate, discards non-matches (lexical mode only),
// and returns the suggestions sorted by descending score.
//
// # Basic Usage
//
//	r := ranker.New(nil)
//
//	// Lexical mode: pure string heuristics, always available.
//	suggestions := r.Rank("hey", candidates)
//
//	// Semantic mode: cosine similarity over a precomputed embedding table.
//	suggestions, err := r.RankVectors(queryVec, table)
//
//	// Display truncation is the caller's choice:
//	top := ranker.TopK(suggestions, 20)
//
// The two scorers never call each other; a caller picks one per query based
// on mode. RankVectorsHighlighted is the one sanctioned combination: it
// keeps semantic scores and splices in lexical match positions purely for
// display highlighting.
//
// Rank calls are synchronous and run to completion; cost is O(candidates ×
// per-candidate scorer cost), cheap enough to run on every keystroke at
// picker scale. The candidate list and embedding table are read-only shared
// inputs for the duration of a call; no internal locking is provided.
package ranker
