package health

import "context"

// StoreChecker checks vector store availability.
type StoreChecker interface {
	HealthCheck(ctx context.Context) error
}

// CachePinger checks key-value cache availability.
type CachePinger interface {
	Ping(ctx context.Context) error
}

// EmbeddingChecker checks embedding provider availability.
type EmbeddingChecker interface {
	HealthCheck(ctx context.Context) error
}
