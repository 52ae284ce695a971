package scorer

// Levenshtein returns the minimum number of single-character insertions,
// substitutions, and deletions needed to transform a into b.
//
// The computation keeps a single rolling cost row, so memory is
// O(min(len(a), len(b))) while time stays O(len(a)*len(b)). This matters
// because the lexical scorer runs it once per candidate per keystroke.
// Comparison is exact; callers wanting case-insensitive distance fold both
// strings first.
func Levenshtein(a, b string) int {
	ra := []rune(a)
	rb := []rune(b)

	// Keep the cost row sized to the shorter string. Distance is symmetric.
	if len(rb) > len(ra) {
		ra, rb = rb, ra
	}

	if len(rb) == 0 {
		return len(ra)
	}

	costs := make([]int, len(rb)+1)
	for j := range costs {
		costs[j] = j
	}

	for i, ca := range ra {
		last := i
		costs[0] = i + 1

		for j, cb := range rb {
			var next int
			if ca == cb {
				next = last
			} else {
				next = 1 + min(last, costs[j], costs[j+1])
			}
			last = costs[j+1]
			costs[j+1] = next
		}
	}

	return costs[len(rb)]
}
