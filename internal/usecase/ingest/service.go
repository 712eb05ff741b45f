package ingest

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/corpora-cloud/ragdex/internal/domain"
)

// Config holds ingestion tuning knobs.
type Config struct {
	// MaxChunkChars is the sentence-aware chunk size ceiling.
	MaxChunkChars int
	// Concurrency bounds parallel embedding calls per document.
	Concurrency int
	// MaxRetries is the number of retry attempts after a rate-limited embed.
	MaxRetries int
	// RetryBase is the first backoff delay; it doubles per attempt.
	RetryBase time.Duration
}

// ApplyDefaults fills zero values with production defaults.
func (c *Config) ApplyDefaults() {
	if c.MaxChunkChars <= 0 {
		c.MaxChunkChars = 1200
	}
	if c.Concurrency <= 0 {
		c.Concurrency = 8
	}
	if c.MaxRetries <= 0 {
		c.MaxRetries = 3
	}
	if c.RetryBase <= 0 {
		c.RetryBase = time.Second
	}
}

// Service chunks documents, embeds the chunks, and stores them.
type Service struct {
	store  Store
	embed  Embedder
	cfg    Config
	logger *zap.Logger
}

// New creates an ingestion service.
func New(store Store, embed Embedder, cfg Config, logger *zap.Logger) *Service {
	cfg.ApplyDefaults()
	return &Service{store: store, embed: embed, cfg: cfg, logger: logger}
}

// Ingest chunks the document, embeds every chunk with bounded
// concurrency, and writes all chunks to the collection in one call.
// Returns the number of chunks stored.
func (s *Service) Ingest(
	ctx context.Context, collection, path, source, text string,
) (int, error) {
	chunks := Chunk(text, s.cfg.MaxChunkChars)
	if len(chunks) == 0 {
		return 0, fmt.Errorf("document has no indexable text: %w", domain.ErrInvalidInput)
	}

	embeddings := make([][]float32, len(chunks))
	errs := make([]error, len(chunks))

	sem := make(chan struct{}, s.cfg.Concurrency)
	var wg sync.WaitGroup

	for i, chunk := range chunks {
		wg.Add(1)
		go func(i int, chunk string) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			result, err := s.embedWithRetry(ctx, chunk)
			if err != nil {
				errs[i] = err
				return
			}
			domain.UsageFromContext(ctx).AddTokens(result.TotalTokens)
			embeddings[i] = result.Embedding
		}(i, chunk)
	}
	wg.Wait()

	// First failure in chunk order wins.
	for i, err := range errs {
		if err != nil {
			return 0, fmt.Errorf("embed chunk %d: %w", i, err)
		}
	}

	docs := make([]domain.DocumentChunk, len(chunks))
	for i, chunk := range chunks {
		docs[i] = domain.DocumentChunk{
			ID:        uuid.NewString(),
			Text:      chunk,
			Embedding: embeddings[i],
			Metadata: map[string]string{
				domain.MetaSource:     source,
				domain.MetaChunkIndex: strconv.Itoa(i),
			},
		}
	}

	if err := s.store.Add(ctx, collection, path, docs); err != nil {
		return 0, fmt.Errorf("store chunks: %w", err)
	}

	s.logger.Info("Document ingested",
		zap.String("collection", collection),
		zap.String("source", source),
		zap.Int("chunks", len(docs)),
	)

	return len(docs), nil
}

// embedWithRetry retries rate-limited embeds with exponential backoff
// (base, 2*base, 4*base, ...). Any other error fails immediately.
func (s *Service) embedWithRetry(ctx context.Context, text string) (domain.EmbeddingResult, error) {
	var lastErr error

	for attempt := 0; attempt <= s.cfg.MaxRetries; attempt++ {
		if attempt > 0 {
			wait := s.cfg.RetryBase << (attempt - 1)
			s.logger.Warn("Embedding rate limited, backing off",
				zap.Int("attempt", attempt),
				zap.Duration("wait", wait),
			)
			select {
			case <-time.After(wait):
			case <-ctx.Done():
				return domain.EmbeddingResult{}, ctx.Err()
			}
		}

		result, err := s.embed.Embed(ctx, text)
		if err == nil {
			return result, nil
		}
		if !errors.Is(err, domain.ErrRateLimited) {
			return domain.EmbeddingResult{}, err
		}
		lastErr = err
	}

	return domain.EmbeddingResult{}, fmt.Errorf("retries exhausted: %w", lastErr)
}
