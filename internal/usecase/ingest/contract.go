package ingest

import (
	"context"

	"github.com/corpora-cloud/ragdex/internal/domain"
)

// Store defines the vector storage contract for ingestion.
type Store interface {
	Add(ctx context.Context, name, path string, chunks []domain.DocumentChunk) error
}

// Embedder vectorizes text into embeddings.
type Embedder interface {
	Embed(ctx context.Context, text string) (domain.EmbeddingResult, error)
}
