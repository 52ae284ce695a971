package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()

	s, err := OpenSQLite(filepath.Join(t.TempDir(), "sift.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestSQLiteStoreRoundTrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	meta := Meta{Provider: "local", Model: "local-embeddings", Dimension: 3}
	table := Table{
		{Text: "hello", Vector: []float32{0.5, 0.25, -1}},
		{Text: "world", Vector: []float32{0, 1, 2}},
	}

	require.NoError(t, s.SaveTable(ctx, meta, table))

	got, gotMeta, err := s.LoadTable(ctx)
	require.NoError(t, err)
	assert.Equal(t, meta, gotMeta)
	assert.Equal(t, table, got)
}

func TestSQLiteStoreLoadEmpty(t *testing.T) {
	s := newTestStore(t)

	_, _, err := s.LoadTable(context.Background())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSQLiteStoreSaveReplaces(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	first := Table{{Text: "old", Vector: []float32{1, 0}}}
	require.NoError(t, s.SaveTable(ctx, Meta{Provider: "local", Model: "m1", Dimension: 2}, first))

	second := Table{
		{Text: "new-a", Vector: []float32{0, 1}},
		{Text: "new-b", Vector: []float32{1, 1}},
	}
	require.NoError(t, s.SaveTable(ctx, Meta{Provider: "jina", Model: "m2", Dimension: 2}, second))

	got, gotMeta, err := s.LoadTable(ctx)
	require.NoError(t, err)
	assert.Equal(t, "jina", gotMeta.Provider)
	assert.Equal(t, second, got)
}

func TestSQLiteStoreRejectsMismatchedMeta(t *testing.T) {
	s := newTestStore(t)

	table := Table{{Text: "a", Vector: []float32{1, 0, 0}}}
	err := s.SaveTable(context.Background(), Meta{Provider: "local", Model: "m", Dimension: 2}, table)
	assert.ErrorIs(t, err, ErrDimensionMismatch)
}

func TestSQLiteStorePreservesOrder(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	table := make(Table, 50)
	for i := range table {
		table[i] = Entry{Text: string(rune('a' + i%26)), Vector: []float32{float32(i), 1}}
	}
	require.NoError(t, s.SaveTable(ctx, Meta{Provider: "local", Model: "m", Dimension: 2}, table))

	got, _, err := s.LoadTable(ctx)
	require.NoError(t, err)
	assert.Equal(t, table, got)
}

func TestSerializeVectorRoundTrip(t *testing.T) {
	v := []float32{0, 1.5, -2.25, 3.14159}

	got, err := deserializeVector(serializeVector(v))
	require.NoError(t, err)
	assert.Equal(t, v, got)
}

func TestDeserializeVectorBadLength(t *testing.T) {
	_, err := deserializeVector([]byte{1, 2, 3})
	assert.ErrorIs(t, err, ErrMalformedRecord)
}
