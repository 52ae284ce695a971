package picker

import (
	"bytes"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/siftlab/sift/pkg/types"
)

// runWithKeys drives Run with a scripted byte stream on a pipe. The pipe
// is not a terminal, so raw mode is skipped and the read loop is exercised
// directly.
func runWithKeys(t *testing.T, keys string) (string, error) {
	t.Helper()

	r, w, err := os.Pipe()
	require.NoError(t, err)
	t.Cleanup(func() { _ = r.Close() })

	_, err = w.WriteString(keys)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	rank := func(query string) ([]types.Suggestion, error) {
		return []types.Suggestion{{Text: query, Score: 1}}, nil
	}
	p := New(rank, &Options{Input: r, Output: &bytes.Buffer{}})
	return p.Run()
}

func TestRunAcceptsTypedQuery(t *testing.T) {
	query, err := runWithKeys(t, "cat\r")
	require.NoError(t, err)
	assert.Equal(t, "cat", query)
}

func TestRunBackspaceEdits(t *testing.T) {
	query, err := runWithKeys(t, "cab\x7ft\r")
	require.NoError(t, err)
	assert.Equal(t, "cat", query)
}

func TestRunLoneEscapeCancels(t *testing.T) {
	_, err := runWithKeys(t, "\x1b")
	require.ErrorIs(t, err, ErrCancelled)
}

func TestRunCtrlCCancels(t *testing.T) {
	_, err := runWithKeys(t, "ca\x03")
	require.ErrorIs(t, err, ErrCancelled)
}

func TestRunArrowKeyIsSwallowed(t *testing.T) {
	// An up arrow arrives as ESC [ A; none of its bytes may cancel the
	// picker or leak into the query.
	query, err := runWithKeys(t, "\x1b[Aa\r")
	require.NoError(t, err)
	assert.Equal(t, "a", query)
}
