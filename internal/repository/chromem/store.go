package chromem

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sort"
	"sync"

	chromemgo "github.com/philippgille/chromem-go"
	"go.uber.org/zap"

	"github.com/corpora-cloud/ragdex/internal/domain"
)

// addConcurrency bounds parallel persistence writes inside a single AddDocuments call.
const addConcurrency = 4

// Store is a vector store backed by chromem-go persistent databases.
// Each backing path owns its own database, opened lazily and cached.
// Collections hold documents with precomputed embeddings; chromem's own
// embedding pipeline is never used.
type Store struct {
	mu       sync.RWMutex
	dbs      map[string]*chromemgo.DB
	root     string
	compress bool
	logger   *zap.Logger
}

// New creates a Store rooted at the given directory.
func New(root string, compress bool, logger *zap.Logger) *Store {
	return &Store{
		dbs:      make(map[string]*chromemgo.DB),
		root:     root,
		compress: compress,
		logger:   logger,
	}
}

// noEmbed rejects any attempt to embed inside the store.
// All vectors arrive precomputed from the embedding pipeline.
func noEmbed(_ context.Context, _ string) ([]float32, error) {
	return nil, errors.New("store accepts precomputed embeddings only")
}

// open returns the database for a backing path, creating it on first use.
func (s *Store) open(path string) (*chromemgo.DB, error) {
	s.mu.RLock()
	db, ok := s.dbs[path]
	s.mu.RUnlock()
	if ok {
		return db, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// Re-check under the write lock.
	if db, ok := s.dbs[path]; ok {
		return db, nil
	}

	if err := os.MkdirAll(path, 0o755); err != nil {
		return nil, fmt.Errorf("create store dir %s: %w", path, err)
	}

	db, err := chromemgo.NewPersistentDB(path, s.compress)
	if err != nil {
		return nil, fmt.Errorf("open vector db %s: %w", path, err)
	}

	s.dbs[path] = db
	s.logger.Debug("Opened vector database", zap.String("path", path))
	return db, nil
}

// Add upserts chunks into the named collection, creating it if needed.
func (s *Store) Add(ctx context.Context, name, path string, chunks []domain.DocumentChunk) error {
	if len(chunks) == 0 {
		return nil
	}

	db, err := s.open(path)
	if err != nil {
		return err
	}

	col, err := db.GetOrCreateCollection(name, nil, noEmbed)
	if err != nil {
		return fmt.Errorf("get or create collection %s: %w", name, err)
	}

	docs := make([]chromemgo.Document, len(chunks))
	for i, c := range chunks {
		docs[i] = chromemgo.Document{
			ID:        c.ID,
			Metadata:  c.Metadata,
			Embedding: c.Embedding,
			Content:   c.Text,
		}
	}

	if err := col.AddDocuments(ctx, docs, addConcurrency); err != nil {
		return fmt.Errorf("add documents to %s: %w", name, err)
	}
	return nil
}

// Query runs a similarity search against the named collection, creating
// it empty if it does not exist yet (get-or-create, same as Add). A
// missing or empty collection contributes zero hits, never an error.
// Results come back ordered by ascending distance (1 - cosine similarity);
// topN is capped at the collection size.
func (s *Store) Query(ctx context.Context, name, path string, embedding []float32, topN int) ([]domain.QueryHit, error) {
	db, err := s.open(path)
	if err != nil {
		return nil, err
	}

	col, err := db.GetOrCreateCollection(name, nil, noEmbed)
	if err != nil {
		return nil, fmt.Errorf("get or create collection %s: %w", name, err)
	}

	count := col.Count()
	if count == 0 {
		return nil, nil
	}
	if topN > count {
		topN = count
	}

	results, err := col.QueryWithOptions(ctx, chromemgo.QueryOptions{
		QueryEmbedding: embedding,
		NResults:       topN,
	})
	if err != nil {
		return nil, fmt.Errorf("query collection %s: %w", name, err)
	}

	hits := make([]domain.QueryHit, len(results))
	for i, r := range results {
		dist := 1 - float64(r.Similarity)
		if dist < 0 {
			dist = 0
		}
		hits[i] = domain.QueryHit{
			Distance: dist,
			ID:       r.ID,
			Text:     r.Content,
			Metadata: r.Metadata,
		}
	}
	return hits, nil
}

// Delete removes the named collection and its persisted documents.
func (s *Store) Delete(_ context.Context, name, path string) error {
	db, err := s.open(path)
	if err != nil {
		return err
	}

	if db.GetCollection(name, noEmbed) == nil {
		return fmt.Errorf("collection %s: %w", name, domain.ErrNotFound)
	}

	if err := db.DeleteCollection(name); err != nil {
		return fmt.Errorf("delete collection %s: %w", name, err)
	}
	return nil
}

// ListNames returns collection names under a backing path, sorted.
func (s *Store) ListNames(_ context.Context, path string) ([]string, error) {
	db, err := s.open(path)
	if err != nil {
		return nil, err
	}

	cols := db.ListCollections()
	names := make([]string, 0, len(cols))
	for name := range cols {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

// ListWithStats returns collection names with chunk counts, sorted by name.
func (s *Store) ListWithStats(_ context.Context, path string) ([]domain.CollectionStats, error) {
	db, err := s.open(path)
	if err != nil {
		return nil, err
	}

	cols := db.ListCollections()
	stats := make([]domain.CollectionStats, 0, len(cols))
	for name, col := range cols {
		stats = append(stats, domain.CollectionStats{Name: name, Chunks: col.Count()})
	}
	sort.Slice(stats, func(i, j int) bool { return stats[i].Name < stats[j].Name })
	return stats, nil
}

// Reset drops all cached database handles. Persisted data stays on disk;
// the next access reopens its database. Used on shutdown and in tests.
func (s *Store) Reset() {
	s.mu.Lock()
	s.dbs = make(map[string]*chromemgo.DB)
	s.mu.Unlock()
}

// HealthCheck verifies the root directory is present and writable.
func (s *Store) HealthCheck(_ context.Context) error {
	if err := os.MkdirAll(s.root, 0o755); err != nil {
		return fmt.Errorf("store root %s: %w", s.root, err)
	}
	return nil
}
