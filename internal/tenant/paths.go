package tenant

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/corpora-cloud/ragdex/internal/domain"
)

// Resolver maps tenants and shared corpora to backing store paths.
// Every resolved path stays inside the configured root; anything that
// would escape it is rejected.
type Resolver struct {
	root string
}

// NewResolver creates a Resolver rooted at the given directory.
func NewResolver(root string) *Resolver {
	return &Resolver{root: filepath.Clean(root)}
}

// Root returns the store root directory.
func (r *Resolver) Root() string { return r.root }

// UserPath resolves the per-tenant store directory.
func (r *Resolver) UserPath(tenantID string) (string, error) {
	return r.join("users", tenantID)
}

// CorpusPath resolves a shared corpus store directory by numeric ID.
func (r *Resolver) CorpusPath(id int) (string, error) {
	if id < 1 {
		return "", fmt.Errorf("corpus id must be positive: %w", domain.ErrInvalidInput)
	}
	return r.join("corpora", fmt.Sprintf("%d", id))
}

// join builds root/<kind>/<name> and enforces containment.
func (r *Resolver) join(kind, name string) (string, error) {
	if name == "" {
		return "", fmt.Errorf("empty path segment: %w", domain.ErrInvalidInput)
	}

	base := filepath.Join(r.root, kind)
	path := filepath.Clean(filepath.Join(base, name))
	if !strings.HasPrefix(path, base+string(filepath.Separator)) {
		return "", fmt.Errorf("path escapes store root: %w", domain.ErrInvalidInput)
	}
	return path, nil
}
