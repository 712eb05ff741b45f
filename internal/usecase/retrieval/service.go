package retrieval

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/corpora-cloud/ragdex/internal/domain"
	"github.com/corpora-cloud/ragdex/internal/metrics"
)

// Service runs similarity queries against one or many collections.
type Service struct {
	store  Store
	embed  Embedder
	logger *zap.Logger
}

// New creates a retrieval service.
func New(store Store, embed Embedder, logger *zap.Logger) *Service {
	return &Service{store: store, embed: embed, logger: logger}
}

// Query embeds the text and searches a single collection.
func (s *Service) Query(
	ctx context.Context, collection, path, query string, topN int,
) (domain.ResultBatch, error) {
	if topN <= 0 {
		return nil, fmt.Errorf("top_n must be positive: %w", domain.ErrInvalidInput)
	}

	embResult, err := s.embed.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("vectorize query: %w", err)
	}

	domain.UsageFromContext(ctx).AddTokens(embResult.TotalTokens)

	hits, err := s.queryCollection(ctx, collection, path, embResult.Embedding, topN)
	if err != nil {
		return nil, err
	}
	return hits, nil
}

// Aggregate embeds the query once and fans out to every collection in
// parallel, then merges all hits into a single batch sorted by ascending
// distance. Ties keep the order collections were given in. Any collection
// failure fails the whole call.
func (s *Service) Aggregate(
	ctx context.Context, collections []string, path, query string, perCollection int,
) (domain.ResultBatch, error) {
	if len(collections) == 0 {
		return domain.ResultBatch{}, nil
	}
	if perCollection <= 0 {
		return nil, fmt.Errorf("per-collection result count must be positive: %w", domain.ErrInvalidInput)
	}

	embResult, err := s.embed.Embed(ctx, query)
	if err != nil {
		metrics.AggregateCallsTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("vectorize query: %w", err)
	}

	domain.UsageFromContext(ctx).AddTokens(embResult.TotalTokens)

	metrics.AggregateFanout.Observe(float64(len(collections)))

	// Per-collection slots keep results positionally stable so that the
	// final merge is deterministic regardless of goroutine completion order.
	perColHits := make([][]domain.QueryHit, len(collections))
	perColErrs := make([]error, len(collections))

	var wg sync.WaitGroup
	for i, name := range collections {
		wg.Add(1)
		go func(i int, name string) {
			defer wg.Done()
			perColHits[i], perColErrs[i] = s.queryCollection(ctx, name, path, embResult.Embedding, perCollection)
		}(i, name)
	}
	wg.Wait()

	// First failure in input order wins.
	for i, err := range perColErrs {
		if err != nil {
			metrics.AggregateCallsTotal.WithLabelValues("error").Inc()
			return nil, fmt.Errorf("collection %s: %w", collections[i], err)
		}
	}

	var merged domain.ResultBatch
	for _, hits := range perColHits {
		merged = append(merged, hits...)
	}

	// Stable sort preserves input collection order on equal distances.
	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].Distance < merged[j].Distance
	})

	metrics.AggregateCallsTotal.WithLabelValues("success").Inc()

	s.logger.Debug("Aggregate query completed",
		zap.Int("collections", len(collections)),
		zap.Int("results", len(merged)),
	)

	return merged, nil
}

// ListCollections returns collection names under the backing path.
func (s *Service) ListCollections(ctx context.Context, path string) ([]string, error) {
	names, err := s.store.ListNames(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("list collections: %w", err)
	}
	return names, nil
}

func (s *Service) queryCollection(
	ctx context.Context, name, path string, embedding []float32, topN int,
) ([]domain.QueryHit, error) {
	start := time.Now()
	hits, err := s.store.Query(ctx, name, path, embedding, topN)
	status := "success"
	if err != nil {
		status = "error"
	}
	metrics.CollectionQueryDuration.WithLabelValues(status).Observe(time.Since(start).Seconds())
	if err != nil {
		return nil, fmt.Errorf("query collection: %w", err)
	}
	return hits, nil
}
