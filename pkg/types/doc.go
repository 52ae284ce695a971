// Package types provides shared type definitions for the sift suggestion engine.
//
// The central type is Suggestion, the unit of output produced by both the
// lexical and semantic scorers and consumed by the ranker and any display
// layer:
//
//	s := types.Suggestion{
//	    Text:         "category",
//	    MatchIndices: []int{0, 1, 3},
//	    Score:        420,
//	}
//
// # Invariants
//
// Every suggestion produced by the engine satisfies Validate:
//
//   - MatchIndices are strictly increasing, in-bounds byte offsets into Text
//   - Score is in [0, MaxScore]
//
// Scores are bounded per-scorer figures of merit. They are comparable only
// between suggestions produced by the same scorer within the same rank call;
// there is no cross-scorer normalization contract.
package types
