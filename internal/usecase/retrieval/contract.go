package retrieval

import (
	"context"

	"github.com/corpora-cloud/ragdex/internal/domain"
)

// Store defines the vector storage contract for retrieval operations.
type Store interface {
	Query(ctx context.Context, name, path string, embedding []float32, topN int) ([]domain.QueryHit, error)
	ListNames(ctx context.Context, path string) ([]string, error)
}

// Embedder vectorizes text into embeddings.
type Embedder interface {
	Embed(ctx context.Context, text string) (domain.EmbeddingResult, error)
}
