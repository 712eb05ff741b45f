package validate

import (
	"fmt"
	"regexp"

	"github.com/corpora-cloud/ragdex/internal/domain"
)

// namePattern allows letters, digits, underscore, and hyphen, 1-64 chars.
var namePattern = regexp.MustCompile(`^[A-Za-z0-9_-]{1,64}$`)

// CollectionName validates a collection name.
func CollectionName(name string) error {
	if !namePattern.MatchString(name) {
		return fmt.Errorf("invalid collection name %q: %w", name, domain.ErrInvalidInput)
	}
	return nil
}

// TenantID validates a tenant identifier.
func TenantID(id string) error {
	if !namePattern.MatchString(id) {
		return fmt.Errorf("invalid tenant id %q: %w", id, domain.ErrInvalidInput)
	}
	return nil
}
