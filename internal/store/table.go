package store

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformedRecord is returned when a persisted record cannot be
	// parsed. Malformed records are a hard load error: silently dropping
	// components would shrink a vector's dimensionality and quietly corrupt
	// every ranking computed against it.
	ErrMalformedRecord = errors.New("malformed embedding record")

	// ErrDimensionMismatch is returned when entries of one table do not
	// share a single vector dimension.
	ErrDimensionMismatch = errors.New("embedding dimension mismatch")

	// ErrNotFound is returned when a requested table doesn't exist
	ErrNotFound = errors.New("not found")
)

// Entry pairs a candidate string with its precomputed embedding vector.
// Vectors are stored unit-normalized so cosine similarity reduces to a dot
// product.
type Entry struct {
	Text   string
	Vector []float32
}

// Table is an ordered sequence of candidate/vector pairs, the in-memory
// form of a persisted embedding table.
type Table []Entry

// Dimension returns the vector dimension shared by all entries, or 0 for an
// empty table.
func (t Table) Dimension() int {
	if len(t) == 0 {
		return 0
	}
	return len(t[0].Vector)
}

// Texts returns the candidate strings in table order.
func (t Table) Texts() []string {
	texts := make([]string, len(t))
	for i, e := range t {
		texts[i] = e.Text
	}
	return texts
}

// Validate checks that every entry shares the table's dimension.
func (t Table) Validate() error {
	dim := t.Dimension()
	for i, e := range t {
		if len(e.Vector) != dim {
			return fmt.Errorf("%w: entry %d (%q) has dimension %d, table dimension %d",
				ErrDimensionMismatch, i, e.Text, len(e.Vector), dim)
		}
	}
	return nil
}
