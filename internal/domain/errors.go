package domain

import "errors"

var (
	// ErrNotFound signals a missing collection or resource.
	ErrNotFound = errors.New("not found")
	// ErrInvalidInput signals a request the service refuses to process.
	ErrInvalidInput = errors.New("invalid input")
	// ErrRateLimited signals a rate limit from the embedding provider.
	ErrRateLimited = errors.New("rate limited")
	// ErrEmbeddingQuotaExceeded signals an exhausted embedding token budget.
	ErrEmbeddingQuotaExceeded = errors.New("embedding quota exceeded")
	// ErrEmbeddingProviderError signals an embedding provider failure.
	ErrEmbeddingProviderError = errors.New("embedding provider error")
	// ErrStoreUnavailable signals that a vector store backing path cannot be served.
	ErrStoreUnavailable = errors.New("vector store unavailable")
)
