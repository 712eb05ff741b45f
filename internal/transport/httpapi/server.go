package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/corpora-cloud/ragdex/internal/domain"
	"github.com/corpora-cloud/ragdex/internal/tenant"
	healthuc "github.com/corpora-cloud/ragdex/internal/usecase/health"
	usageuc "github.com/corpora-cloud/ragdex/internal/usecase/usage"
	"github.com/corpora-cloud/ragdex/internal/validate"
)

// Error codes returned in JSON error bodies.
const (
	codeBadRequest         = "bad_request"
	codeValidationFailed   = "validation_failed"
	codeCollectionNotFound = "collection_not_found"
	codeRateLimited        = "rate_limited"
	codeQuotaExceeded      = "embedding_quota_exceeded"
	codeProviderError      = "embedding_provider_error"
	codeStoreUnavailable   = "store_unavailable"
	codeInternalError      = "internal_error"
)

// Retriever runs single- and multi-collection similarity queries.
type Retriever interface {
	Query(ctx context.Context, collection, path, query string, topN int) (domain.ResultBatch, error)
	Aggregate(ctx context.Context, collections []string, path, query string, perCollection int) (domain.ResultBatch, error)
	Stream(ctx context.Context, collections []string, path, query string, perCollection int) (<-chan domain.StreamEvent, error)
	ListCollections(ctx context.Context, path string) ([]string, error)
}

// Ingestor chunks, embeds, and stores documents.
type Ingestor interface {
	Ingest(ctx context.Context, collection, path, source, text string) (int, error)
}

// CollectionStore manages collection lifecycle and stats.
type CollectionStore interface {
	Delete(ctx context.Context, name, path string) error
	ListWithStats(ctx context.Context, path string) ([]domain.CollectionStats, error)
}

// UsageReporter builds token usage reports.
type UsageReporter interface {
	GetReport(ctx context.Context, period usageuc.Period) usageuc.Report
}

// HealthChecker aggregates component health.
type HealthChecker interface {
	Check(ctx context.Context) healthuc.Report
}

// Limits bounds per-request result counts.
type Limits struct {
	DefaultResults int
	MaxResults     int
}

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error, msg string) bool

// Server exposes the retrieval API over HTTP.
type Server struct {
	retriever     Retriever
	ingestor      Ingestor
	collections   CollectionStore
	usage         UsageReporter
	health        HealthChecker
	resolver      *tenant.Resolver
	defaultTenant string
	limits        Limits
	logger        *zap.Logger
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server.
func NewServer(
	retriever Retriever,
	ingestor Ingestor,
	collections CollectionStore,
	usage UsageReporter,
	health HealthChecker,
	resolver *tenant.Resolver,
	defaultTenant string,
	limits Limits,
	logger *zap.Logger,
) *Server {
	s := &Server{
		retriever:     retriever,
		ingestor:      ingestor,
		collections:   collections,
		usage:         usage,
		health:        health,
		resolver:      resolver,
		defaultTenant: defaultTenant,
		limits:        limits,
		logger:        logger,
	}
	s.errorHandlers = []errorHandler{
		sentinelHandler(domain.ErrNotFound, http.StatusNotFound, codeCollectionNotFound),
		sentinelHandler(domain.ErrInvalidInput, http.StatusBadRequest, codeValidationFailed),
		sentinelHandler(domain.ErrRateLimited, http.StatusTooManyRequests, codeRateLimited),
		sentinelHandler(domain.ErrEmbeddingQuotaExceeded, http.StatusPaymentRequired, codeQuotaExceeded),
		sentinelHandler(domain.ErrEmbeddingProviderError, http.StatusBadGateway, codeProviderError),
		sentinelHandler(domain.ErrStoreUnavailable, http.StatusServiceUnavailable, codeStoreUnavailable),
	}
	return s
}

// RegisterRoutes mounts all API routes on the router.
func (s *Server) RegisterRoutes(r chi.Router) {
	r.Post("/v1/query", s.handleQuery)
	r.Post("/v1/query/stream", s.handleQueryStream)
	r.Post("/v1/collections/{collection}/documents", s.handleIngest)
	r.Get("/v1/collections", s.handleListCollections)
	r.Delete("/v1/collections/{collection}", s.handleDeleteCollection)
	r.Get("/v1/usage", s.handleUsage)
	r.Get("/health", s.handleHealth)
	r.Get("/metrics", promhttp.Handler().ServeHTTP)
}

// resolvePath maps tenancy headers to a backing store path.
// X-Corpus-ID selects a shared corpus; otherwise X-Tenant-ID (or the
// configured default tenant) selects the per-tenant store.
func (s *Server) resolvePath(r *http.Request) (string, error) {
	if corpus := r.Header.Get("X-Corpus-ID"); corpus != "" {
		id, err := strconv.Atoi(corpus)
		if err != nil {
			return "", domain.ErrInvalidInput
		}
		return s.resolver.CorpusPath(id)
	}

	tenantID := r.Header.Get("X-Tenant-ID")
	if tenantID == "" {
		tenantID = s.defaultTenant
	}
	if err := validate.TenantID(tenantID); err != nil {
		return "", err
	}
	return s.resolver.UserPath(tenantID)
}

// clampResults applies default and ceiling to a requested result count.
func (s *Server) clampResults(n int) int {
	if n <= 0 {
		return s.limits.DefaultResults
	}
	if n > s.limits.MaxResults {
		return s.limits.MaxResults
	}
	return n
}

func setEmbeddingHeaders(w http.ResponseWriter, usage *domain.EmbeddingUsage) {
	if usage != nil && usage.Used {
		w.Header().Set("X-Embedding-Tokens", strconv.Itoa(usage.TotalTokens))
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorResponse{Code: code, Message: message})
}

// safeDomainMessage returns a sentinel error message for the client without exposing internals.
func safeDomainMessage(err error) string {
	sentinels := []error{
		domain.ErrNotFound,
		domain.ErrInvalidInput,
		domain.ErrRateLimited,
		domain.ErrEmbeddingQuotaExceeded,
		domain.ErrEmbeddingProviderError,
		domain.ErrStoreUnavailable,
	}
	for _, s := range sentinels {
		if errors.Is(err, s) {
			return s.Error()
		}
	}
	return "internal error"
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
func sentinelHandler(sentinel error, status int, code string) errorHandler {
	return func(w http.ResponseWriter, err error, msg string) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, msg)
		return true
	}
}

func (s *Server) handleDomainError(w http.ResponseWriter, err error) {
	s.logger.Warn("domain error", zap.Error(err))
	msg := safeDomainMessage(err)
	for _, h := range s.errorHandlers {
		if h(w, err, msg) {
			return
		}
	}
	s.logger.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
}
