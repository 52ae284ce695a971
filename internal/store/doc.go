// Package store persists and loads embedding tables: ordered sequences of
// (candidate text, vector) pairs consumed by the semantic ranking path.
//
// Two representations are supported:
//
//   - A tab-separated text format, one record per line, compatible with
//     hand-inspection and external tooling:
//
//     hello	0.12,-0.48,0.03,...
//
//   - A SQLite database carrying the same entries plus provider/model/
//     dimension metadata, useful for detecting a stale table before
//     ranking against it.
//
// Malformed records are rejected at load time with ErrMalformedRecord.
// A record that silently lost components would produce a dimension-mismatched
// dot product and corrupt every ranking afterwards, so partial parses are
// never accepted. Candidate text must not contain a tab; the TSV format has
// no escaping.
package store
