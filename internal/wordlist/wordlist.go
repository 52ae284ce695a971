// Package wordlist loads candidate lists from line-oriented text files.
package wordlist

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// Read returns one candidate per non-blank line of r, in file order.
// Leading and trailing whitespace is trimmed; a candidate is otherwise kept
// verbatim.
func Read(r io.Reader) ([]string, error) {
	scanner := bufio.NewScanner(r)

	var candidates []string
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		candidates = append(candidates, line)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read word list: %w", err)
	}

	return candidates, nil
}

// ReadFile loads candidates from the file at path.
func ReadFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open word list: %w", err)
	}
	defer func() { _ = f.Close() }()

	return Read(f)
}
