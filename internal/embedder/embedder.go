package embedder

import (
	"context"
	"errors"
	"fmt"
)

// Common errors
var (
	ErrInvalidInput      = errors.New("invalid input")
	ErrProviderFailed    = errors.New("embedding provider failed")
	ErrUnsupportedModel  = errors.New("unsupported model")
	ErrEmptyText         = errors.New("text cannot be empty")
	ErrBatchTooLarge     = errors.New("batch size exceeds limit")
	ErrNoProviderEnabled = errors.New("no embedding provider configured")
)

// Embedding is a unit-normalized vector with provenance metadata. Every
// provider normalizes before returning, so cosine similarity downstream
// reduces to a plain dot product.
type Embedding struct {
	Vector    []float32
	Dimension int
	Provider  string
	Model     string
	Hash      string // content hash, the cache key
}

// Embedder turns text into unit-length vectors on a fixed vector space.
// A query and the candidates it ranks against must come from the same
// embedder so their dimensions and vector space agree.
type Embedder interface {
	// Embed embeds a single text.
	Embed(ctx context.Context, text string) (*Embedding, error)

	// EmbedBatch embeds texts in one provider call, returning one
	// embedding per text in input order.
	EmbedBatch(ctx context.Context, texts []string) ([]*Embedding, error)

	// Dimension returns the embedding dimension for this provider
	Dimension() int

	// Provider returns the provider name
	Provider() string

	// Model returns the model name
	Model() string

	// Close releases any resources held by the embedder
	Close() error
}

// checkText rejects input no provider can embed.
func checkText(text string) error {
	if text == "" {
		return ErrEmptyText
	}
	return nil
}

// checkTexts validates a batch: non-empty, within the provider batch
// limit, and no empty members.
func checkTexts(texts []string) error {
	if len(texts) == 0 {
		return fmt.Errorf("%w: no texts provided", ErrInvalidInput)
	}
	if len(texts) > MaxBatchSize {
		return fmt.Errorf("%w: max %d texts allowed", ErrBatchTooLarge, MaxBatchSize)
	}
	for i, text := range texts {
		if text == "" {
			return fmt.Errorf("%w: text at index %d is empty", ErrInvalidInput, i)
		}
	}
	return nil
}
