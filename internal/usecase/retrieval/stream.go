package retrieval

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/corpora-cloud/ragdex/internal/domain"
	"github.com/corpora-cloud/ragdex/internal/metrics"
)

// Stream embeds the query once, then walks the collections in order,
// emitting a result event per hit followed by a completion event per
// collection. A failing collection produces an error event and the walk
// moves on, so one bad collection never poisons the rest.
//
// The embedding happens before the channel is returned; an embedding
// failure is the only error this method returns directly.
func (s *Service) Stream(
	ctx context.Context, collections []string, path, query string, perCollection int,
) (<-chan domain.StreamEvent, error) {
	if perCollection <= 0 {
		return nil, fmt.Errorf("per-collection result count must be positive: %w", domain.ErrInvalidInput)
	}

	embResult, err := s.embed.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("vectorize query: %w", err)
	}

	domain.UsageFromContext(ctx).AddTokens(embResult.TotalTokens)

	events := make(chan domain.StreamEvent)

	go func() {
		defer close(events)

		for _, name := range collections {
			hits, err := s.queryCollection(ctx, name, path, embResult.Embedding, perCollection)
			if err != nil {
				s.logger.Warn("Streaming query failed for collection",
					zap.String("collection", name),
					zap.Error(err),
				)
				if !s.send(ctx, events, domain.ErrorEvent(name, err)) {
					return
				}
				continue
			}

			for rank, hit := range hits {
				if !s.send(ctx, events, domain.ResultEvent(name, hit, rank+1)) {
					return
				}
			}

			if !s.send(ctx, events, domain.CompleteEvent(name, len(hits))) {
				return
			}
		}
	}()

	return events, nil
}

// send delivers an event unless the context is done. Returns false when
// the consumer is gone and the producer should stop.
func (s *Service) send(ctx context.Context, events chan<- domain.StreamEvent, ev domain.StreamEvent) bool {
	select {
	case events <- ev:
		metrics.StreamEventsTotal.WithLabelValues(string(ev.Type)).Inc()
		return true
	case <-ctx.Done():
		return false
	}
}
