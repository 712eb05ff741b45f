package httpapi

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/corpora-cloud/ragdex/internal/domain"
)

// streamMetadata is the first SSE event, sent before any results.
type streamMetadata struct {
	Type        string   `json:"type"`
	Collections []string `json:"collections"`
	NResults    int      `json:"n_results"`
}

// streamDone is the final SSE event, sent after the producer closes.
type streamDone struct {
	Type         string `json:"type"`
	TotalResults int    `json:"total_results"`
}

// handleQueryStream serves POST /v1/query/stream. Clients that accept
// text/event-stream get results as they arrive; everyone else gets the
// full event list as a JSON array once the stream drains.
func (s *Server) handleQueryStream(w http.ResponseWriter, r *http.Request) {
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

	topN := s.clampResults(req.NResults)
	events, err := s.retriever.Stream(r.Context(), collections, path, req.Query, topN)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	if strings.Contains(r.Header.Get("Accept"), "text/event-stream") {
		s.streamSSE(w, r, collections, topN, events)
		return
	}
	s.streamJSON(w, events)
}

func (s *Server) streamSSE(w http.ResponseWriter, r *http.Request, collections []string, topN int, events <-chan domain.StreamEvent) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		writeError(w, http.StatusInternalServerError, codeInternalError, "streaming unsupported")
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)

	writeSSEEvent(w, streamMetadata{Type: "metadata", Collections: collections, NResults: topN})
	flusher.Flush()

	total := 0
	for ev := range events {
		if ev.Type == domain.EventResult {
			total++
		}
		writeSSEEvent(w, ev)
		flusher.Flush()
	}

	// The producer honors context cancellation; a closed channel after a
	// canceled request means the client is gone and the trailer is moot.
	if r.Context().Err() != nil {
		return
	}
	writeSSEEvent(w, streamDone{Type: "done", TotalResults: total})
	flusher.Flush()
}

// streamJSON drains the producer and replies with one JSON array. The
// trailing done element keeps the shape aligned with the SSE variant.
func (s *Server) streamJSON(w http.ResponseWriter, events <-chan domain.StreamEvent) {
	collected := make([]any, 0, 16)
	total := 0
	for ev := range events {
		if ev.Type == domain.EventResult {
			total++
		}
		collected = append(collected, ev)
	}
	collected = append(collected, streamDone{Type: "done", TotalResults: total})
	writeJSON(w, http.StatusOK, collected)
}

// writeSSEEvent frames one payload as a server-sent event.
func writeSSEEvent(w http.ResponseWriter, payload any) {
	data, _ := json.Marshal(payload)
	_, _ = w.Write([]byte("event: message\ndata: "))
	_, _ = w.Write(data)
	_, _ = w.Write([]byte("\n\n"))
}
