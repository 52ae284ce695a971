package store

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// maxLineBytes bounds a single TSV record. A 4096-dimension vector printed
// at full float32 precision stays well under this.
const maxLineBytes = 1 << 20

// ReadTable parses an embedding table from r. The format is one record per
// line: the candidate text, a tab, then comma-separated decimal vector
// components. Any record that fails to parse is a hard error carrying the
// 1-based line number; partial vectors are never accepted.
func ReadTable(r io.Reader) (Table, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), maxLineBytes)

	var table Table
	dim := -1
	lineNo := 0

	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		if line == "" {
			continue
		}

		text, rest, found := strings.Cut(line, "\t")
		if !found {
			return nil, fmt.Errorf("%w: line %d: missing tab separator", ErrMalformedRecord, lineNo)
		}

		parts := strings.Split(rest, ",")
		vector := make([]float32, len(parts))
		for i, part := range parts {
			f, err := strconv.ParseFloat(strings.TrimSpace(part), 32)
			if err != nil {
				return nil, fmt.Errorf("%w: line %d: component %d: %v", ErrMalformedRecord, lineNo, i, err)
			}
			vector[i] = float32(f)
		}

		if dim == -1 {
			dim = len(vector)
		} else if len(vector) != dim {
			return nil, fmt.Errorf("%w: line %d: got dimension %d, want %d", ErrDimensionMismatch, lineNo, len(vector), dim)
		}

		table = append(table, Entry{Text: text, Vector: vector})
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read embedding table: %w", err)
	}

	return table, nil
}

// WriteTable writes table to w in the tab-separated line format ReadTable
// accepts.
func WriteTable(w io.Writer, table Table) error {
	bw := bufio.NewWriter(w)

	for _, e := range table {
		components := make([]string, len(e.Vector))
		for i, v := range e.Vector {
			components[i] = strconv.FormatFloat(float64(v), 'g', -1, 32)
		}

		if _, err := fmt.Fprintf(bw, "%s\t%s\n", e.Text, strings.Join(components, ",")); err != nil {
			return fmt.Errorf("write embedding table: %w", err)
		}
	}

	return bw.Flush()
}

// ReadTableFile loads an embedding table from the file at path.
func ReadTableFile(path string) (Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open embedding table: %w", err)
	}
	defer func() { _ = f.Close() }()

	return ReadTable(f)
}

// WriteTableFile saves an embedding table to the file at path, replacing
// any existing file.
func WriteTableFile(path string, table Table) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create embedding table: %w", err)
	}

	if err := WriteTable(f, table); err != nil {
		_ = f.Close()
		return err
	}

	return f.Close()
}
