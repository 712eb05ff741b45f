package tenant

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/corpora-cloud/ragdex/internal/domain"
)

func TestUserPath(t *testing.T) {
	r := NewResolver("/data/store")

	path, err := r.UserPath("alice")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := filepath.Join("/data/store", "users", "alice")
	if path != want {
		t.Errorf("UserPath = %q, want %q", path, want)
	}
}

func TestCorpusPath(t *testing.T) {
	r := NewResolver("/data/store")

	path, err := r.CorpusPath(42)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := filepath.Join("/data/store", "corpora", "42")
	if path != want {
		t.Errorf("CorpusPath = %q, want %q", path, want)
	}
}

func TestCorpusPath_NonPositiveID(t *testing.T) {
	r := NewResolver("/data/store")

	for _, id := range []int{0, -1} {
		if _, err := r.CorpusPath(id); !errors.Is(err, domain.ErrInvalidInput) {
			t.Errorf("expected ErrInvalidInput for id %d, got %v", id, err)
		}
	}
}

func TestUserPath_TraversalRejected(t *testing.T) {
	r := NewResolver("/data/store")

	for _, id := range []string{"../../etc", "..", "a/../../.."} {
		if _, err := r.UserPath(id); !errors.Is(err, domain.ErrInvalidInput) {
			t.Errorf("expected ErrInvalidInput for %q, got %v", id, err)
		}
	}
}

func TestUserPath_Empty(t *testing.T) {
	r := NewResolver("/data/store")

	_, err := r.UserPath("")
	if !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}
