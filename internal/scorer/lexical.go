package scorer

import (
	"strings"
	"unicode"

	"github.com/siftlab/sift/pkg/types"
)

// Lexical scoring weights. Each signal contributes a bounded bonus; the sum
// is clamped to types.MaxScore.
const (
	substringBase      = 200 // flat bonus for a contiguous occurrence
	substringLenWeight = 10  // per query rune of the occurrence
	substringPosCap    = 100 // position decay ceiling: earlier starts score higher
	prefixBonus        = 150 // query is a prefix of the candidate
	subseqMatchWeight  = 10  // per matched subsequence rune
	subseqGapCap       = 50  // gap decay ceiling: tighter matches score higher
	editDistanceMax    = 2   // typo tolerance threshold
	editDistanceWeight = 30  // bonus per distance step below the threshold
)

// FuzzyMatch scores candidate against query with a sum of independent
// lexical signals: exact equality, contiguous substring occurrence, prefix,
// greedy in-order subsequence, and Levenshtein distance. All comparisons are
// case-folded rune-wise; every recorded index is the byte offset of a rune
// in the original candidate, so indices stay in bounds even when folding
// changes a rune's encoded length.
//
// A result is produced iff the greedy subsequence scan matches every query
// rune; a candidate that fails even the subsequence test reports no match.
// The empty query matches every candidate.
//
// MatchIndices covers the contiguous occurrence when the query appears as a
// substring, and the subsequence scan positions otherwise, keeping the
// indices strictly increasing.
func FuzzyMatch(query, candidate string) (types.Suggestion, bool) {
	q := strings.ToLower(query)
	c := strings.ToLower(candidate)

	// Exact match short-circuits: highest possible rank, reserved for
	// literal case-folded equality.
	if q == c {
		indices := make([]int, 0, len(candidate))
		for off := range candidate {
			indices = append(indices, off)
		}
		return types.Suggestion{Text: candidate, MatchIndices: indices, Score: types.MaxScore}, true
	}

	// Fold the candidate rune by rune, keeping each rune's byte offset in
	// the original string. Matching happens over the folded runes; indices
	// are reported through the offset table.
	qr := []rune(q)
	cr := make([]rune, 0, len(candidate))
	starts := make([]int, 0, len(candidate))
	for off, r := range candidate {
		cr = append(cr, unicode.ToLower(r))
		starts = append(starts, off)
	}

	score := 0
	var indices []int

	// Substring bonus: grows with query length, decays with start position.
	pos := runeIndex(cr, qr)
	if pos >= 0 {
		score += substringBase + substringLenWeight*len(qr)
		if pos < substringPosCap {
			score += substringPosCap - pos
		}
		indices = make([]int, len(qr))
		for i := range indices {
			indices[i] = starts[pos+i]
		}
	}

	if pos == 0 {
		score += prefixBonus
	}

	// Greedy subsequence scan: match each query rune in order against the
	// next available candidate position, accumulating the skipped distance
	// between consecutive matches.
	seq := make([]int, 0, len(qr))
	gaps := 0
	prev := -1
	next := 0
	for _, r := range qr {
		found := -1
		for j := next; j < len(cr); j++ {
			if cr[j] == r {
				found = j
				break
			}
		}
		if found < 0 {
			continue
		}
		if prev >= 0 {
			gaps += found - prev - 1
		}
		seq = append(seq, starts[found])
		prev = found
		next = found + 1
	}

	if len(seq) < len(qr) {
		return types.Suggestion{}, false
	}

	if len(seq) > 0 {
		score += subseqMatchWeight * len(seq)
		if gaps < subseqGapCap {
			score += subseqGapCap - gaps
		}
	}

	// Typo tolerance: reward near-miss candidates like "heyp" for "hey".
	if d := Levenshtein(q, c); d <= editDistanceMax {
		score += (editDistanceMax + 1 - d) * editDistanceWeight
	}

	if score > types.MaxScore {
		score = types.MaxScore
	}

	if indices == nil {
		indices = seq
	}

	return types.Suggestion{Text: candidate, MatchIndices: indices, Score: score}, true
}

// runeIndex returns the position of the first occurrence of needle in
// haystack, or -1. The empty needle matches at position zero.
func runeIndex(haystack, needle []rune) int {
	for i := 0; i+len(needle) <= len(haystack); i++ {
		j := 0
		for j < len(needle) && haystack[i+j] == needle[j] {
			j++
		}
		if j == len(needle) {
			return i
		}
	}
	return -1
}
