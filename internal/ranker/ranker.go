package ranker

import (
	"crypto/sha256"
	"errors"
	"fmt"
	"sort"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/siftlab/sift/internal/scorer"
	"github.com/siftlab/sift/internal/store"
	"github.com/siftlab/sift/pkg/types"
)

// ErrDimensionMismatch is returned when the query vector and a candidate
// vector disagree on dimension. A dot product over mismatched lengths is
// undefined, so ranking fails fast instead of producing a silently wrong
// order.
var ErrDimensionMismatch = errors.New("query and candidate vector dimensions differ")

// Config tunes optional ranker behavior.
type Config struct {
	// CacheSize is the number of lexical query results to keep in an LRU
	// cache. Zero disables caching. The cache assumes a fixed candidate
	// list; call InvalidateCache after changing candidates.
	CacheSize int
}

// Ranker applies a scorer to every candidate and returns the suggestions
// ordered by descending score. Each rank call allocates a fresh result
// slice and retains no state besides the optional query cache.
type Ranker struct {
	cache *lru.Cache[[32]byte, []types.Suggestion]
}

// New creates a Ranker. cfg may be nil for defaults (no cache).
func New(cfg *Config) *Ranker {
	r := &Ranker{}

	if cfg != nil && cfg.CacheSize > 0 {
		cache, err := lru.New[[32]byte, []types.Suggestion](cfg.CacheSize)
		if err != nil {
			// Only reachable with a non-positive size, which is guarded above.
			panic(fmt.Sprintf("create ranker cache: %v", err))
		}
		r.cache = cache
	}

	return r
}

// Rank scores every candidate against query with the lexical scorer,
// discards non-matches, and returns the survivors sorted by descending
// score. Truncation to a display limit is the caller's responsibility.
func (r *Ranker) Rank(query string, candidates []string) []types.Suggestion {
	key := queryKey("lexical", query)
	if cached, ok := r.fromCache(key); ok {
		return cached
	}

	suggestions := make([]types.Suggestion, 0, len(candidates))
	for _, c := range candidates {
		if s, ok := scorer.FuzzyMatch(query, c); ok {
			suggestions = append(suggestions, s)
		}
	}

	sortByScore(suggestions)
	r.toCache(key, suggestions)
	return suggestions
}

// RankVectors scores every table entry against queryVec with the semantic
// scorer and returns all entries sorted by descending score. Semantic mode
// never discards: every candidate receives a similarity-derived score.
//
// Every entry vector must share queryVec's dimension; the check runs before
// any scoring so a mismatched table cannot produce a partial ranking.
func (r *Ranker) RankVectors(queryVec []float32, table store.Table) ([]types.Suggestion, error) {
	if err := checkDimensions(queryVec, table); err != nil {
		return nil, err
	}

	suggestions := make([]types.Suggestion, 0, len(table))
	for _, e := range table {
		suggestions = append(suggestions, scorer.SemanticMatch(e.Text, e.Vector, queryVec))
	}

	sortByScore(suggestions)
	return suggestions, nil
}

// RankVectorsHighlighted ranks like RankVectors but additionally runs the
// lexical scorer per candidate to splice match positions into each
// suggestion for display highlighting. Scores stay purely semantic; the
// lexical pass only contributes indices, and candidates with no lexical
// explanation keep an empty index list.
func (r *Ranker) RankVectorsHighlighted(query string, queryVec []float32, table store.Table) ([]types.Suggestion, error) {
	suggestions, err := r.RankVectors(queryVec, table)
	if err != nil {
		return nil, err
	}

	for i := range suggestions {
		if lex, ok := scorer.FuzzyMatch(query, suggestions[i].Text); ok {
			suggestions[i].MatchIndices = lex.MatchIndices
		}
	}

	return suggestions, nil
}

// InvalidateCache drops all cached query results.
func (r *Ranker) InvalidateCache() {
	if r.cache != nil {
		r.cache.Purge()
	}
}

// TopK returns the first k suggestions of an already ranked sequence, or
// all of them when fewer exist.
func TopK(suggestions []types.Suggestion, k int) []types.Suggestion {
	if k < 0 {
		k = 0
	}
	if k > len(suggestions) {
		k = len(suggestions)
	}
	return suggestions[:k]
}

func checkDimensions(queryVec []float32, table store.Table) error {
	for i, e := range table {
		if len(e.Vector) != len(queryVec) {
			return fmt.Errorf("%w: query %d, entry %d (%q) %d",
				ErrDimensionMismatch, len(queryVec), i, e.Text, len(e.Vector))
		}
	}
	return nil
}

// sortByScore sorts suggestions by score in descending order. Equal scores
// keep no defined relative order.
func sortByScore(suggestions []types.Suggestion) {
	sort.Slice(suggestions, func(i, j int) bool {
		return suggestions[i].Score > suggestions[j].Score
	})
}

func queryKey(mode, query string) [32]byte {
	return sha256.Sum256([]byte(mode + "|" + query))
}

// fromCache returns a deep copy of a cached result so callers can't mutate
// the cached slice.
func (r *Ranker) fromCache(key [32]byte) ([]types.Suggestion, bool) {
	if r.cache == nil {
		return nil, false
	}

	cached, ok := r.cache.Get(key)
	if !ok {
		return nil, false
	}
	return copySuggestions(cached), true
}

func (r *Ranker) toCache(key [32]byte, suggestions []types.Suggestion) {
	if r.cache == nil {
		return
	}
	r.cache.Add(key, copySuggestions(suggestions))
}

func copySuggestions(src []types.Suggestion) []types.Suggestion {
	dst := make([]types.Suggestion, len(src))
	for i, s := range src {
		dst[i] = types.Suggestion{
			Text:  s.Text,
			Score: s.Score,
		}
		if s.MatchIndices != nil {
			dst[i].MatchIndices = make([]int, len(s.MatchIndices))
			copy(dst[i].MatchIndices, s.MatchIndices)
		}
	}
	return dst
}
