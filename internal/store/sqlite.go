package store

import (
	"context"
	"database/sql"
	"encoding/binary"
	"fmt"
	"math"
)

// Meta describes which embedding model produced a stored table.
type Meta struct {
	Provider  string
	Model     string
	Dimension int
}

// SQLiteStore persists one embedding table in a SQLite database, so a
// regenerated table can be reused across runs together with the model
// metadata needed to detect a stale or incompatible table.
type SQLiteStore struct {
	db *sql.DB
}

// OpenSQLite opens (creating if necessary) a table store at dbPath.
// Use ":memory:" for an ephemeral store.
func OpenSQLite(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open(DriverName, dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// Enable WAL mode for better concurrency
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("enable WAL mode: %w", err)
	}

	// SQLite benefits from a single writer
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := ApplyMigrations(context.Background(), db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("apply migrations: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Close closes the database connection
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// SaveTable replaces the stored table and its metadata atomically.
func (s *SQLiteStore) SaveTable(ctx context.Context, meta Meta, table Table) error {
	if err := table.Validate(); err != nil {
		return err
	}
	if dim := table.Dimension(); dim != 0 && meta.Dimension != dim {
		return fmt.Errorf("%w: meta declares dimension %d, table has %d",
			ErrDimensionMismatch, meta.Dimension, dim)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin save: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, "DELETE FROM entries"); err != nil {
		return fmt.Errorf("clear entries: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO table_meta (id, provider, model, dimension, updated_at)
		VALUES (1, ?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(id) DO UPDATE SET
			provider = excluded.provider,
			model = excluded.model,
			dimension = excluded.dimension,
			updated_at = CURRENT_TIMESTAMP
	`, meta.Provider, meta.Model, meta.Dimension); err != nil {
		return fmt.Errorf("save table meta: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		"INSERT INTO entries (position, text, vector) VALUES (?, ?, ?)")
	if err != nil {
		return fmt.Errorf("prepare entry insert: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for i, e := range table {
		if _, err := stmt.ExecContext(ctx, i, e.Text, serializeVector(e.Vector)); err != nil {
			return fmt.Errorf("insert entry %d: %w", i, err)
		}
	}

	return tx.Commit()
}

// LoadTable returns the stored table in original order along with its
// metadata. ErrNotFound is returned when no table has been saved.
func (s *SQLiteStore) LoadTable(ctx context.Context) (Table, Meta, error) {
	var meta Meta
	err := s.db.QueryRowContext(ctx,
		"SELECT provider, model, dimension FROM table_meta WHERE id = 1").
		Scan(&meta.Provider, &meta.Model, &meta.Dimension)
	if err == sql.ErrNoRows {
		return nil, Meta{}, ErrNotFound
	}
	if err != nil {
		return nil, Meta{}, fmt.Errorf("load table meta: %w", err)
	}

	rows, err := s.db.QueryContext(ctx,
		"SELECT text, vector FROM entries ORDER BY position")
	if err != nil {
		return nil, Meta{}, fmt.Errorf("load entries: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var table Table
	for rows.Next() {
		var text string
		var blob []byte
		if err := rows.Scan(&text, &blob); err != nil {
			return nil, Meta{}, fmt.Errorf("scan entry: %w", err)
		}

		vector, err := deserializeVector(blob)
		if err != nil {
			return nil, Meta{}, fmt.Errorf("entry %q: %w", text, err)
		}
		if len(vector) != meta.Dimension {
			return nil, Meta{}, fmt.Errorf("%w: entry %q has dimension %d, meta declares %d",
				ErrDimensionMismatch, text, len(vector), meta.Dimension)
		}

		table = append(table, Entry{Text: text, Vector: vector})
	}
	if err := rows.Err(); err != nil {
		return nil, Meta{}, err
	}

	return table, meta, nil
}

// serializeVector converts a float32 slice to a byte blob (little-endian)
func serializeVector(vector []float32) []byte {
	blob := make([]byte, len(vector)*4)
	for i, v := range vector {
		binary.LittleEndian.PutUint32(blob[i*4:], math.Float32bits(v))
	}
	return blob
}

// deserializeVector converts a byte blob back to a float32 slice
func deserializeVector(blob []byte) ([]float32, error) {
	if len(blob)%4 != 0 {
		return nil, fmt.Errorf("%w: vector blob length %d not a multiple of 4", ErrMalformedRecord, len(blob))
	}

	vector := make([]float32, len(blob)/4)
	for i := range vector {
		bits := binary.LittleEndian.Uint32(blob[i*4:])
		vector[i] = math.Float32frombits(bits)
	}
	return vector, nil
}
