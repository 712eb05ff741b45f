package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/corpora-cloud/ragdex/internal/domain"
	"github.com/corpora-cloud/ragdex/internal/usecase/retrieval"
	usageuc "github.com/corpora-cloud/ragdex/internal/usecase/usage"
	"github.com/corpora-cloud/ragdex/internal/validate"
)

type queryRequest struct {
	Query       string   `json:"query"`
	Collections []string `json:"collections,omitempty"`
	NResults    int      `json:"n_results,omitempty"`
}

func (q queryRequest) valid() error {
	if q.Query == "" {
		return domain.ErrInvalidInput
	}
	for _, name := range q.Collections {
		if err := validate.CollectionName(name); err != nil {
			return err
		}
	}
	return nil
}

type queryResponse struct {
	Context    string            `json:"context"`
	RawResults domain.RawResults `json:"raw_results"`
}

// resolveCollections expands an empty collection list to every collection
// in the tenant's store ("search all").
func (s *Server) resolveCollections(r *http.Request, req queryRequest, path string) ([]string, error) {
	if len(req.Collections) > 0 {
		return req.Collections, nil
	}
	return s.retriever.ListCollections(r.Context(), path)
}

// handleQuery serves POST /v1/query: search one, many, or all collections
// and return the compiled context alongside the raw merged results.
func (s *Server) handleQuery(w http.ResponseWriter, r *http.Request) {
	var req queryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "invalid JSON body")
		return
	}
	if err := req.valid(); err != nil {
		s.handleDomainError(w, err)
		return
	}
	path, err := s.resolvePath(r)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	collections, err := s.resolveCollections(r, req, path)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	ctx, usage := domain.NewContextWithUsage(r.Context())
	topN := s.clampResults(req.NResults)

	var batch domain.ResultBatch
	if len(collections) == 1 {
		batch, err = s.retriever.Query(ctx, collections[0], path, req.Query, topN)
	} else {
		batch, err = s.retriever.Aggregate(ctx, collections, path, req.Query, topN)
	}
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	setEmbeddingHeaders(w, usage)
	writeJSON(w, http.StatusOK, queryResponse{
		Context:    retrieval.CompileContext(batch),
		RawResults: batch.Parallel(),
	})
}

type ingestRequest struct {
	Source string `json:"source"`
	Text   string `json:"text"`
}

type ingestResponse struct {
	Collection  string `json:"collection"`
	Source      string `json:"source"`
	ChunksAdded int    `json:"chunks_added"`
}

// handleIngest serves POST /v1/collections/{collection}/documents.
func (s *Server) handleIngest(w http.ResponseWriter, r *http.Request) {
	collection := chi.URLParam(r, "collection")
	if err := validate.CollectionName(collection); err != nil {
		s.handleDomainError(w, err)
		return
	}

	var req ingestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "invalid JSON body")
		return
	}
	if req.Source == "" {
		writeError(w, http.StatusBadRequest, codeValidationFailed, "source is required")
		return
	}

	path, err := s.resolvePath(r)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	ctx, usage := domain.NewContextWithUsage(r.Context())
	added, err := s.ingestor.Ingest(ctx, collection, path, req.Source, req.Text)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	s.logger.Info("document ingested",
		zap.String("collection", collection),
		zap.String("source", req.Source),
		zap.Int("chunks", added),
	)
	setEmbeddingHeaders(w, usage)
	writeJSON(w, http.StatusCreated, ingestResponse{
		Collection:  collection,
		Source:      req.Source,
		ChunksAdded: added,
	})
}

type collectionsResponse struct {
	Collections []domain.CollectionStats `json:"collections"`
}

// handleListCollections serves GET /v1/collections.
func (s *Server) handleListCollections(w http.ResponseWriter, r *http.Request) {
	path, err := s.resolvePath(r)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	stats, err := s.collections.ListWithStats(r.Context(), path)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	if stats == nil {
		stats = []domain.CollectionStats{}
	}
	writeJSON(w, http.StatusOK, collectionsResponse{Collections: stats})
}

// handleDeleteCollection serves DELETE /v1/collections/{collection}.
func (s *Server) handleDeleteCollection(w http.ResponseWriter, r *http.Request) {
	collection := chi.URLParam(r, "collection")
	if err := validate.CollectionName(collection); err != nil {
		s.handleDomainError(w, err)
		return
	}
	path, err := s.resolvePath(r)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	if err := s.collections.Delete(r.Context(), collection, path); err != nil {
		s.handleDomainError(w, err)
		return
	}

	s.logger.Info("collection deleted", zap.String("collection", collection))
	w.WriteHeader(http.StatusNoContent)
}

// handleUsage serves GET /v1/usage?period=day|month.
func (s *Server) handleUsage(w http.ResponseWriter, r *http.Request) {
	period := usageuc.Period(r.URL.Query().Get("period"))
	report := s.usage.GetReport(r.Context(), period)
	writeJSON(w, http.StatusOK, report)
}

type healthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

// handleHealth serves GET /health. Degraded components yield 503 so load
// balancers can rotate the instance out.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	checks := make(map[string]string, len(report.Checks))
	for name, result := range report.Checks {
		checks[name] = string(result)
	}

	status := http.StatusOK
	if report.Status != "ok" {
		status = http.StatusServiceUnavailable
	}
	writeJSON(w, status, healthResponse{Status: string(report.Status), Checks: checks})
}
