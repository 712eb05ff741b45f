package httpapi

import (
	"crypto/subtle"
	"net/http"
	"strings"
)

// exemptPaths skips authentication for infrastructure endpoints.
var exemptPaths = map[string]bool{
	"/health":  true,
	"/metrics": true,
}

// BearerAuthMiddleware enforces bearer token authentication against a set
// of configured API keys. With no keys configured, all requests pass.
func BearerAuthMiddleware(apiKeys []string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if len(apiKeys) == 0 || exemptPaths[r.URL.Path] {
				next.ServeHTTP(w, r)
				return
			}

			header := r.Header.Get("Authorization")
			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || token == "" {
				writeError(w, http.StatusUnauthorized, "unauthorized", "missing bearer token")
				return
			}

			for _, key := range apiKeys {
				if subtle.ConstantTimeCompare([]byte(token), []byte(key)) == 1 {
					next.ServeHTTP(w, r)
					return
				}
			}
			writeError(w, http.StatusUnauthorized, "unauthorized", "invalid API key")
		})
	}
}
