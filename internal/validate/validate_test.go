package validate

import (
	"errors"
	"strings"
	"testing"

	"github.com/corpora-cloud/ragdex/internal/domain"
)

func TestCollectionName_Valid(t *testing.T) {
	for _, name := range []string{"docs", "my-notes", "corp_2024", "A1", strings.Repeat("x", 64)} {
		if err := CollectionName(name); err != nil {
			t.Errorf("expected %q valid, got %v", name, err)
		}
	}
}

func TestCollectionName_Invalid(t *testing.T) {
	cases := []string{
		"",
		"has space",
		"slash/inside",
		"../escape",
		"dot.name",
		strings.Repeat("x", 65),
		"émoji",
	}
	for _, name := range cases {
		err := CollectionName(name)
		if !errors.Is(err, domain.ErrInvalidInput) {
			t.Errorf("expected ErrInvalidInput for %q, got %v", name, err)
		}
	}
}

func TestTenantID(t *testing.T) {
	if err := TenantID("alice-42"); err != nil {
		t.Errorf("expected valid tenant id, got %v", err)
	}
	if err := TenantID("../alice"); !errors.Is(err, domain.ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput, got %v", err)
	}
}
