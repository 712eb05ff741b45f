package domain

// Metadata keys attached to every stored chunk at ingestion time.
const (
	MetaSource     = "source"
	MetaChunkIndex = "chunk_index"
)

// DocumentChunk is the unit of storage: one embedded piece of an ingested
// document. Immutable once written, removed only by deleting its collection.
type DocumentChunk struct {
	ID        string
	Text      string
	Embedding []float32
	Metadata  map[string]string
}

// QueryHit is the atomic unit the aggregator operates on. Distance is a
// non-negative dissimilarity score: lower means more relevant.
type QueryHit struct {
	Distance float64
	ID       string
	Text     string
	Metadata map[string]string
}

// Relevance derives a display score from the distance (higher = more relevant).
func (h QueryHit) Relevance() float64 { return 1 - h.Distance }

// ResultBatch is an ordered sequence of hits, globally sorted ascending by
// distance, possibly drawn from many collections.
type ResultBatch []QueryHit

// RawResults is the wire shape of a result batch: parallel arrays wrapped in
// a single-query batch, so the outer lists always have exactly one element.
type RawResults struct {
	IDs       [][]string            `json:"ids"`
	Documents [][]string            `json:"documents"`
	Metadatas [][]map[string]string `json:"metadatas"`
	Distances [][]float64           `json:"distances"`
}

// Parallel converts the batch to the wire's parallel-array shape. Typed hits
// are the in-process representation; this conversion happens only at the
// transport boundary.
func (b ResultBatch) Parallel() RawResults {
	ids := make([]string, len(b))
	docs := make([]string, len(b))
	metas := make([]map[string]string, len(b))
	dists := make([]float64, len(b))
	for i, h := range b {
		ids[i] = h.ID
		docs[i] = h.Text
		metas[i] = h.Metadata
		dists[i] = h.Distance
	}
	return RawResults{
		IDs:       [][]string{ids},
		Documents: [][]string{docs},
		Metadatas: [][]map[string]string{metas},
		Distances: [][]float64{dists},
	}
}

// CollectionStats describes one collection for listing endpoints.
type CollectionStats struct {
	Name   string `json:"name"`
	Chunks int    `json:"num_chunks"`
}
