package httpapi

import (
	"context"
	"net/http/httptest"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/corpora-cloud/ragdex/internal/domain"
	"github.com/corpora-cloud/ragdex/internal/tenant"
	healthuc "github.com/corpora-cloud/ragdex/internal/usecase/health"
	usageuc "github.com/corpora-cloud/ragdex/internal/usecase/usage"
)

type mockRetriever struct {
	queryFn     func(ctx context.Context, collection, path, query string, topN int) (domain.ResultBatch, error)
	aggregateFn func(ctx context.Context, collections []string, path, query string, perCollection int) (domain.ResultBatch, error)
	streamFn    func(ctx context.Context, collections []string, path, query string, perCollection int) (<-chan domain.StreamEvent, error)
	listFn      func(ctx context.Context, path string) ([]string, error)
}

func (m *mockRetriever) Query(ctx context.Context, collection, path, query string, topN int) (domain.ResultBatch, error) {
	if m.queryFn != nil {
		return m.queryFn(ctx, collection, path, query, topN)
	}
	return nil, nil
}

func (m *mockRetriever) Aggregate(ctx context.Context, collections []string, path, query string, perCollection int) (domain.ResultBatch, error) {
	if m.aggregateFn != nil {
		return m.aggregateFn(ctx, collections, path, query, perCollection)
	}
	return nil, nil
}

func (m *mockRetriever) Stream(ctx context.Context, collections []string, path, query string, perCollection int) (<-chan domain.StreamEvent, error) {
	if m.streamFn != nil {
		return m.streamFn(ctx, collections, path, query, perCollection)
	}
	ch := make(chan domain.StreamEvent)
	close(ch)
	return ch, nil
}

func (m *mockRetriever) ListCollections(ctx context.Context, path string) ([]string, error) {
	if m.listFn != nil {
		return m.listFn(ctx, path)
	}
	return nil, nil
}

type mockIngestor struct {
	fn func(ctx context.Context, collection, path, source, text string) (int, error)
}

func (m *mockIngestor) Ingest(ctx context.Context, collection, path, source, text string) (int, error) {
	if m.fn != nil {
		return m.fn(ctx, collection, path, source, text)
	}
	return 0, nil
}

type mockCollections struct {
	deleteFn func(ctx context.Context, name, path string) error
	statsFn  func(ctx context.Context, path string) ([]domain.CollectionStats, error)
}

func (m *mockCollections) Delete(ctx context.Context, name, path string) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, name, path)
	}
	return nil
}

func (m *mockCollections) ListWithStats(ctx context.Context, path string) ([]domain.CollectionStats, error) {
	if m.statsFn != nil {
		return m.statsFn(ctx, path)
	}
	return nil, nil
}

type mockUsage struct {
	report usageuc.Report
}

func (m *mockUsage) GetReport(_ context.Context, _ usageuc.Period) usageuc.Report {
	return m.report
}

type mockHealth struct {
	report healthuc.Report
}

func (m *mockHealth) Check(_ context.Context) healthuc.Report {
	return m.report
}

type testDeps struct {
	retriever   *mockRetriever
	ingestor    *mockIngestor
	collections *mockCollections
	usage       *mockUsage
	health      *mockHealth
}

func newTestServer(deps testDeps) *httptest.Server {
	if deps.retriever == nil {
		deps.retriever = &mockRetriever{}
	}
	if deps.ingestor == nil {
		deps.ingestor = &mockIngestor{}
	}
	if deps.collections == nil {
		deps.collections = &mockCollections{}
	}
	if deps.usage == nil {
		deps.usage = &mockUsage{}
	}
	if deps.health == nil {
		deps.health = &mockHealth{report: healthuc.Report{
			Status: healthuc.Healthy,
			Checks: map[string]healthuc.CheckResult{"store": healthuc.CheckOK},
		}}
	}

	srv := NewServer(
		deps.retriever,
		deps.ingestor,
		deps.collections,
		deps.usage,
		deps.health,
		tenant.NewResolver("/data/store"),
		"default",
		Limits{DefaultResults: 5, MaxResults: 20},
		zap.NewNop(),
	)

	r := chi.NewRouter()
	srv.RegisterRoutes(r)
	return httptest.NewServer(r)
}
