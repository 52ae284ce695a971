package picker

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"golang.org/x/term"

	"github.com/siftlab/sift/pkg/types"
)

// ErrCancelled is returned when the user aborts the picker without
// accepting a query (Ctrl-C or Escape).
var ErrCancelled = errors.New("picker: cancelled")

const (
	defaultLimit     = 20
	defaultTermWidth = 80
)

// Control bytes read off the raw terminal.
const (
	keyCtrlC     = 3
	keyBackspace = 8
	keyEnter     = 13
	keyEscape    = 27
	keyDelete    = 127
)

// RankFunc produces scored suggestions for the current query. It is
// invoked once per keystroke.
type RankFunc func(query string) ([]types.Suggestion, error)

// Options tunes picker behavior. The zero value is usable.
type Options struct {
	// Limit caps how many suggestions are drawn. Defaults to 20.
	Limit int

	// Input is the terminal to read keystrokes from. Defaults to
	// os.Stdin. Raw mode is only engaged when Input is a terminal.
	Input *os.File

	// Output receives the rendered screen. Defaults to os.Stderr so
	// the accepted query can be piped from stdout.
	Output io.Writer
}

// Picker runs an interactive query prompt, re-ranking and redrawing
// suggestions on every keystroke.
type Picker struct {
	rank  RankFunc
	limit int
	in    *os.File
	out   io.Writer

	// lines drawn below the header on the previous frame
	prevLines int
}

// New creates a Picker around rank. A nil opts selects all defaults.
func New(rank RankFunc, opts *Options) *Picker {
	p := &Picker{
		rank:  rank,
		limit: defaultLimit,
		in:    os.Stdin,
		out:   os.Stderr,
	}
	if opts != nil {
		if opts.Limit > 0 {
			p.limit = opts.Limit
		}
		if opts.Input != nil {
			p.in = opts.Input
		}
		if opts.Output != nil {
			p.out = opts.Output
		}
	}
	return p
}

// Run drives the prompt until the user accepts with Enter or cancels.
// It returns the final query on accept and ErrCancelled on abort.
func (p *Picker) Run() (string, error) {
	fd := int(p.in.Fd())

	var restore func()
	if term.IsTerminal(fd) {
		oldState, err := term.MakeRaw(fd)
		if err != nil {
			return "", fmt.Errorf("entering raw mode: %w", err)
		}
		restore = func() { _ = term.Restore(fd, oldState) }
		defer restore()
	}

	typed := ""
	if err := p.refresh(fd, typed); err != nil {
		return "", err
	}

	buf := make([]byte, 1)
	for {
		n, err := p.in.Read(buf)
		if err != nil {
			return "", fmt.Errorf("reading keystroke: %w", err)
		}
		if n == 0 {
			continue
		}

		switch b := buf[0]; {
		case b == keyEscape:
			// Arrow keys and friends arrive as ESC-prefixed sequences;
			// only a lone Escape cancels.
			if p.drainEscapeSequence() {
				continue
			}
			p.finish()
			return "", ErrCancelled
		case b == keyCtrlC:
			p.finish()
			return "", ErrCancelled
		case b == keyEnter:
			p.finish()
			return typed, nil
		case b == keyBackspace || b == keyDelete:
			if len(typed) > 0 {
				typed = typed[:len(typed)-1]
			}
		case b >= 32 && b < 127:
			typed += string(b)
		default:
			continue
		}

		if err := p.refresh(fd, typed); err != nil {
			return "", err
		}
	}
}

// drainEscapeSequence peeks briefly after an ESC byte to tell a lone
// Escape press apart from the start of a CSI or SS3 sequence. It reports
// true when follow-up bytes arrived, consuming the whole sequence so its
// bytes are not typed into the query.
func (p *Picker) drainEscapeSequence() bool {
	if err := p.in.SetReadDeadline(time.Now().Add(10 * time.Millisecond)); err != nil {
		// Input does not support deadlines; treat ESC as a lone press.
		return false
	}
	defer func() { _ = p.in.SetReadDeadline(time.Time{}) }()

	buf := make([]byte, 1)
	n, err := p.in.Read(buf)
	if err != nil || n == 0 {
		return false
	}
	if buf[0] != '[' && buf[0] != 'O' {
		return true
	}

	// CSI parameters end at the first byte in the final-byte range.
	for {
		n, err := p.in.Read(buf)
		if err != nil || n == 0 {
			return true
		}
		if buf[0] >= 0x40 && buf[0] <= 0x7e {
			return true
		}
	}
}

// refresh re-ranks for the current query and redraws the screen.
func (p *Picker) refresh(fd int, typed string) error {
	start := time.Now()
	suggestions, err := p.rank(typed)
	if err != nil {
		return fmt.Errorf("ranking %q: %w", typed, err)
	}
	if len(suggestions) > p.limit {
		suggestions = suggestions[:p.limit]
	}
	p.draw(fd, typed, suggestions, time.Since(start))
	return nil
}

// draw repaints the header and suggestion lines, clearing any lines
// left over from a taller previous frame, then parks the cursor at the
// end of the typed query.
func (p *Picker) draw(fd int, typed string, suggestions []types.Suggestion, elapsed time.Duration) {
	width := defaultTermWidth
	if term.IsTerminal(fd) {
		if w, _, err := term.GetSize(fd); err == nil && w > 0 {
			width = w
		}
	}

	header := "Search query: " + typed
	timing := fmt.Sprintf("%8.1fms", float64(elapsed.Microseconds())/1000.0)
	gap := width - len(header) - len(timing)
	if gap < 1 {
		gap = 1
	}

	var b []byte
	b = append(b, '\r')
	b = append(b, ansiClearLine...)
	b = append(b, header...)
	for i := 0; i < gap; i++ {
		b = append(b, ' ')
	}
	b = append(b, ansiDarkGrey...)
	b = append(b, timing...)
	b = append(b, ansiReset...)

	textWidth, barWidth, lowest := layout(suggestions, width)
	lines := 0
	for _, s := range suggestions {
		b = append(b, "\r\n"...)
		b = append(b, ansiClearLine...)
		b = append(b, renderSuggestion(s, textWidth, barWidth, lowest)...)
		lines++
	}
	for i := lines; i < p.prevLines; i++ {
		b = append(b, "\r\n"...)
		b = append(b, ansiClearLine...)
		lines++
	}
	if lines > 0 {
		b = append(b, fmt.Sprintf("\x1b[%dA", lines)...)
	}
	b = append(b, fmt.Sprintf("\r\x1b[%dG", len(header)+1)...)

	_, _ = p.out.Write(b)
	p.prevLines = len(suggestions)
}

// finish moves the cursor past the drawn suggestions so the shell
// prompt reappears below them.
func (p *Picker) finish() {
	var b []byte
	for i := 0; i < p.prevLines; i++ {
		b = append(b, "\r\n"...)
	}
	b = append(b, "\r\n"...)
	_, _ = p.out.Write(b)
	p.prevLines = 0
}
