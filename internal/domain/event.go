package domain

// StreamEventType tags events on the streaming query path.
type StreamEventType string

const (
	// EventResult carries a single hit from one collection.
	EventResult StreamEventType = "result"
	// EventCollectionComplete marks a collection as fully emitted.
	EventCollectionComplete StreamEventType = "collection_complete"
	// EventCollectionError reports a failed collection; the stream continues.
	EventCollectionError StreamEventType = "collection_error"
)

// StreamEvent is one element of the streaming aggregator's output. It lives
// for a single query invocation and is never persisted. The JSON shape is
// the wire contract of the SSE endpoint.
type StreamEvent struct {
	Type       StreamEventType   `json:"type"`
	Collection string            `json:"collection"`
	ID         string            `json:"id,omitempty"`
	Text       string            `json:"text,omitempty"`
	Metadata   map[string]string `json:"metadata,omitempty"`
	Distance   float64           `json:"distance,omitempty"`
	Relevance  float64           `json:"relevance_score,omitempty"`
	Rank       int               `json:"rank,omitempty"`
	NumResults int               `json:"num_results,omitempty"`
	Error      string            `json:"error,omitempty"`
}

// ResultEvent builds a result event for one hit with its 1-based rank
// within the originating collection.
func ResultEvent(collection string, hit QueryHit, rank int) StreamEvent {
	return StreamEvent{
		Type:       EventResult,
		Collection: collection,
		ID:         hit.ID,
		Text:       hit.Text,
		Metadata:   hit.Metadata,
		Distance:   hit.Distance,
		Relevance:  hit.Relevance(),
		Rank:       rank,
	}
}

// CompleteEvent builds a completion event for a collection.
func CompleteEvent(collection string, numResults int) StreamEvent {
	return StreamEvent{
		Type:       EventCollectionComplete,
		Collection: collection,
		NumResults: numResults,
	}
}

// ErrorEvent builds an error event scoped to a single collection.
func ErrorEvent(collection string, err error) StreamEvent {
	return StreamEvent{
		Type:       EventCollectionError,
		Collection: collection,
		Error:      err.Error(),
	}
}
