package retrieval

import (
	"strings"

	"github.com/corpora-cloud/ragdex/internal/domain"
)

// CompileContext joins hit texts into a single prompt-ready block.
// Duplicate texts keep their first occurrence only; empty texts are
// skipped. Input order is preserved.
func CompileContext(hits domain.ResultBatch) string {
	seen := make(map[string]struct{}, len(hits))
	parts := make([]string, 0, len(hits))

	for _, h := range hits {
		if h.Text == "" {
			continue
		}
		if _, ok := seen[h.Text]; ok {
			continue
		}
		seen[h.Text] = struct{}{}
		parts = append(parts, h.Text)
	}

	return strings.Join(parts, "\n\n")
}
