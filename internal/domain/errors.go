package domain

import "errors"

var (
	// ErrEmbeddingProviderError signals an embedding provider failure.
	ErrEmbeddingProviderError = errors.New("embedding provider error")
	// ErrCompletionProviderError signals a chat completion provider failure.
	ErrCompletionProviderError = errors.New("completion provider error")
	// ErrEmbeddingCountMismatch signals a batch response whose vector count
	// does not match the input count; scoring cannot align candidates.
	ErrEmbeddingCountMismatch = errors.New("embedding count mismatch")
)
