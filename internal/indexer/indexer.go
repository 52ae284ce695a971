// Package indexer builds embedding tables: it batches candidate strings
// through an embedder and assembles the resulting vectors into a
// store.Table ready for persistence and semantic ranking.
package indexer

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/siftlab/sift/internal/embedder"
	"github.com/siftlab/sift/internal/store"
)

// Config contains configuration for table building
type Config struct {
	BatchSize int // Texts per embedding batch (default: 50, capped at provider max)
	Workers   int // Concurrent batches in flight (default: runtime.NumCPU())
}

// Statistics describes a completed table build
type Statistics struct {
	Candidates int
	Batches    int
	Dimension  int
	Duration   time.Duration
}

// Indexer coordinates the build pipeline: candidates -> embedder -> table
type Indexer struct {
	embedder embedder.Embedder
}

// New creates a new Indexer instance
func New(emb embedder.Embedder) *Indexer {
	return &Indexer{embedder: emb}
}

// BuildTable embeds every candidate and returns the assembled table in
// candidate order. Batches run concurrently; a failed batch aborts the
// whole build, since a partially embedded table ranks incorrectly.
func (idx *Indexer) BuildTable(ctx context.Context, candidates []string, cfg *Config) (store.Table, *Statistics, error) {
	start := time.Now()

	if cfg == nil {
		cfg = &Config{}
	}
	batchSize := cfg.BatchSize
	if batchSize <= 0 {
		batchSize = 50
	}
	if batchSize > embedder.MaxBatchSize {
		batchSize = embedder.MaxBatchSize
	}
	workers := cfg.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	table := make(store.Table, len(candidates))
	batches := 0

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for offset := 0; offset < len(candidates); offset += batchSize {
		offset := offset
		end := min(offset+batchSize, len(candidates))
		batch := candidates[offset:end]
		batches++

		g.Go(func() error {
			embeddings, err := idx.embedder.EmbedBatch(gctx, batch)
			if err != nil {
				return fmt.Errorf("embed batch at offset %d: %w", offset, err)
			}
			if len(embeddings) != len(batch) {
				return fmt.Errorf("embed batch at offset %d: got %d embeddings for %d texts",
					offset, len(embeddings), len(batch))
			}

			// Each batch writes a disjoint range, so no locking is needed.
			for i, emb := range embeddings {
				table[offset+i] = store.Entry{Text: batch[i], Vector: emb.Vector}
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	if err := table.Validate(); err != nil {
		return nil, nil, err
	}

	stats := &Statistics{
		Candidates: len(candidates),
		Batches:    batches,
		Dimension:  table.Dimension(),
		Duration:   time.Since(start),
	}
	return table, stats, nil
}

// Meta describes the embedder that produced tables from this indexer,
// suitable for persisting alongside the table.
func (idx *Indexer) Meta() store.Meta {
	return store.Meta{
		Provider:  idx.embedder.Provider(),
		Model:     idx.embedder.Model(),
		Dimension: idx.embedder.Dimension(),
	}
}
