package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/siftlab/sift/internal/embedder"
	"github.com/siftlab/sift/internal/indexer"
	"github.com/siftlab/sift/internal/picker"
	"github.com/siftlab/sift/internal/ranker"
	"github.com/siftlab/sift/internal/store"
	"github.com/siftlab/sift/internal/wordlist"
	"github.com/siftlab/sift/pkg/types"
)

var (
	version   = "dev"
	buildTime = "unknown"
)

func main() {
	// Handle version flag
	if len(os.Args) > 1 && os.Args[1] == "--version" {
		fmt.Printf("Sift\n")
		fmt.Printf("Version: %s\n", version)
		fmt.Printf("Build Time: %s\n", buildTime)
		fmt.Printf("Build Mode: %s\n", store.BuildMode)
		fmt.Printf("SQLite Driver: %s\n", store.DriverName)
		os.Exit(0)
	}

	var (
		semantic   = flag.Bool("semantic", false, "rank with embedding similarity instead of lexical matching")
		generate   = flag.Bool("generate", false, "embed the word list and write the embedding table, then exit")
		words      = flag.String("words", "", "path to a newline-separated candidate word list")
		embeddings = flag.String("embeddings", "", "path to an embedding table in TSV form")
		dbPath     = flag.String("db", "", "path to an embedding table in SQLite form")
		limit      = flag.Int("limit", 20, "maximum suggestions drawn on screen")
	)
	flag.Parse()

	// Log to stderr; stdout carries only the accepted query so the
	// result can be piped.
	log.SetOutput(os.Stderr)

	if *generate {
		if err := runGenerate(*words, *embeddings, *dbPath); err != nil {
			log.Fatalf("Generate failed: %v", err)
		}
		return
	}

	rank, err := buildRankFunc(*semantic, *words, *embeddings, *dbPath)
	if err != nil {
		log.Fatalf("Setup failed: %v", err)
	}

	p := picker.New(rank, &picker.Options{Limit: *limit})
	query, err := p.Run()
	if err != nil {
		if errors.Is(err, picker.ErrCancelled) {
			os.Exit(1)
		}
		log.Fatalf("Picker failed: %v", err)
	}
	fmt.Println(query)
}

// runGenerate embeds every word in the list and writes the resulting
// table to the TSV path, the SQLite path, or both.
func runGenerate(wordsPath, tsvPath, dbPath string) error {
	if wordsPath == "" {
		return errors.New("-generate requires -words")
	}
	if tsvPath == "" && dbPath == "" {
		return errors.New("-generate requires -embeddings or -db")
	}

	candidates, err := wordlist.ReadFile(wordsPath)
	if err != nil {
		return err
	}

	emb, err := embedder.NewFromEnv()
	if err != nil {
		return err
	}

	idx := indexer.New(emb)
	log.Printf("Embedding %d candidates with %s...", len(candidates), emb.Provider())

	start := time.Now()
	table, stats, err := idx.BuildTable(context.Background(), candidates, nil)
	if err != nil {
		return err
	}
	log.Printf("Embedded %d candidates in %d batches (dimension %d) in %v",
		stats.Candidates, stats.Batches, stats.Dimension, time.Since(start).Round(time.Millisecond))

	if tsvPath != "" {
		if err := store.WriteTableFile(tsvPath, table); err != nil {
			return err
		}
		log.Printf("Wrote %s", tsvPath)
	}
	if dbPath != "" {
		st, err := store.OpenSQLite(dbPath)
		if err != nil {
			return err
		}
		defer st.Close()
		if err := st.SaveTable(context.Background(), idx.Meta(), table); err != nil {
			return err
		}
		log.Printf("Wrote %s", dbPath)
	}
	return nil
}

// buildRankFunc wires a ranker for the chosen mode around the available
// candidate sources.
func buildRankFunc(semantic bool, wordsPath, tsvPath, dbPath string) (picker.RankFunc, error) {
	if semantic {
		return buildSemanticRank(tsvPath, dbPath)
	}
	return buildLexicalRank(wordsPath, tsvPath, dbPath)
}

func buildLexicalRank(wordsPath, tsvPath, dbPath string) (picker.RankFunc, error) {
	candidates, err := loadCandidates(wordsPath, tsvPath, dbPath)
	if err != nil {
		return nil, err
	}

	// Backspacing revisits earlier queries, so cache their results.
	r := ranker.New(&ranker.Config{CacheSize: 256})
	return func(query string) ([]types.Suggestion, error) {
		return r.Rank(query, candidates), nil
	}, nil
}

func buildSemanticRank(tsvPath, dbPath string) (picker.RankFunc, error) {
	table, err := loadTable(tsvPath, dbPath)
	if err != nil {
		return nil, err
	}

	emb, err := embedder.NewFromEnv()
	if err != nil {
		return nil, err
	}
	if dim := emb.Dimension(); dim != table.Dimension() {
		return nil, fmt.Errorf("provider %s produces dimension %d, table has dimension %d",
			emb.Provider(), dim, table.Dimension())
	}

	r := ranker.New(nil)
	ctx := context.Background()
	texts := table.Texts()
	return func(query string) ([]types.Suggestion, error) {
		// Nothing typed yet; there is no query to embed.
		if query == "" {
			return r.Rank(query, texts), nil
		}
		queryEmb, err := emb.Embed(ctx, query)
		if err != nil {
			return nil, err
		}
		return r.RankVectorsHighlighted(query, queryEmb.Vector, table)
	}, nil
}

// loadCandidates returns candidate texts from whichever source was
// given, preferring the plain word list.
func loadCandidates(wordsPath, tsvPath, dbPath string) ([]string, error) {
	switch {
	case wordsPath != "":
		return wordlist.ReadFile(wordsPath)
	case tsvPath != "" || dbPath != "":
		table, err := loadTable(tsvPath, dbPath)
		if err != nil {
			return nil, err
		}
		return table.Texts(), nil
	default:
		return nil, errors.New("no candidate source: pass -words, -embeddings, or -db")
	}
}

func loadTable(tsvPath, dbPath string) (store.Table, error) {
	switch {
	case tsvPath != "":
		return store.ReadTableFile(tsvPath)
	case dbPath != "":
		st, err := store.OpenSQLite(dbPath)
		if err != nil {
			return nil, err
		}
		defer st.Close()
		table, _, err := st.LoadTable(context.Background())
		return table, err
	default:
		return nil, errors.New("no embedding table: pass -embeddings or -db")
	}
}
