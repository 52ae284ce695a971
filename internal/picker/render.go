package picker

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/siftlab/sift/pkg/types"
)

// ANSI fragments used by the renderer. The picker draws directly with
// escape codes; raw mode means every line break is an explicit "\r\n".
const (
	ansiReset     = "\x1b[0m"
	ansiGreen     = "\x1b[32m"
	ansiDarkGrey  = "\x1b[90m"
	ansiClearLine = "\x1b[2K"
)

// highlightText paints the matched rune positions of text green and leaves
// the rest unstyled. Each index is the byte offset of a rune start; indices
// are assumed strictly increasing and in-bounds, which every scorer
// guarantees.
func highlightText(text string, indices []int) string {
	if len(indices) == 0 {
		return text
	}

	var b strings.Builder
	last := 0
	for _, idx := range indices {
		if idx > last {
			b.WriteString(text[last:idx])
		}
		_, size := utf8.DecodeRuneInString(text[idx:])
		b.WriteString(ansiGreen)
		b.WriteString(text[idx : idx+size])
		b.WriteString(ansiReset)
		last = idx + size
	}
	if last < len(text) {
		b.WriteString(text[last:])
	}
	return b.String()
}

// scoreBar renders a proportional bar for score relative to the lowest
// score on screen, so the visible range spreads across the full width.
func scoreBar(score, lowest, width int) string {
	if width <= 0 {
		return ""
	}

	ratio := float64(score-lowest) / float64(types.MaxScore)
	cells := int(ratio*float64(width) + 0.5)
	if cells < 0 {
		cells = 0
	}
	if cells > width {
		cells = width
	}
	return strings.Repeat("█", cells)
}

// renderSuggestion formats one display line: highlighted candidate text
// padded to the widest candidate, then a grey score bar and numeric score.
func renderSuggestion(s types.Suggestion, textWidth, barWidth, lowest int) string {
	padding := textWidth - len(s.Text)
	if padding < 0 {
		padding = 0
	}

	return highlightText(s.Text, s.MatchIndices) +
		strings.Repeat(" ", padding+2) +
		ansiDarkGrey + scoreBar(s.Score, lowest, barWidth) +
		fmt.Sprintf(" %d", s.Score) + ansiReset
}

// layout computes shared measurements for a screenful of suggestions.
func layout(suggestions []types.Suggestion, termWidth int) (textWidth, barWidth, lowest int) {
	lowest = types.MaxScore
	for _, s := range suggestions {
		if len(s.Text) > textWidth {
			textWidth = len(s.Text)
		}
		if s.Score < lowest {
			lowest = s.Score
		}
	}
	if len(suggestions) == 0 {
		lowest = 0
	}

	// Leave room for padding, the numeric score, and a margin.
	barWidth = termWidth - textWidth - 10
	if barWidth < 0 {
		barWidth = 0
	}
	return textWidth, barWidth, lowest
}
