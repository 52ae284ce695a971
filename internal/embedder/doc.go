// Package embedder generates unit-normalized vector embeddings for
// candidate strings and live queries.
//
// The semantic scorer computes cosine similarity as a plain dot product,
// which is only valid over unit-length vectors. Normalization therefore
// happens here, once, at generation time; nothing downstream re-checks it.
//
// # Provider Selection
//
// The embedder selects a provider from the environment:
//
//  1. If SIFT_EMBEDDING_PROVIDER is set, use that provider (jina, openai, local)
//  2. Else if JINA_API_KEY is set, use Jina AI
//  3. Else if OPENAI_API_KEY is set, use OpenAI
//  4. Else fall back to the local provider (offline, deterministic)
//
//	emb, err := embedder.NewFromEnv()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer emb.Close()
//
//	result, err := emb.Embed(ctx, "hey")
//
// The local provider hashes the text into a stable vector. It keeps the
// whole semantic pipeline runnable offline and in tests, but its notion of
// similarity is meaningless; use an API provider for real rankings.
//
// # Batching and caching
//
// Table generation embeds candidates in batches via EmbedBatch; the
// per-keystroke query path uses Embed backed by an in-memory
// LRU cache keyed by content hash, so retyping a prefix doesn't re-call
// the provider.
//
// # Error Handling
//
// Transient API failures retry with exponential backoff; a request that
// still fails surfaces ErrProviderFailed. Context cancellation aborts
// immediately without further retries.
package embedder
