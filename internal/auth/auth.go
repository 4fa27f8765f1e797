package auth

import (
	"crypto/subtle"
	"encoding/json"
	"net/http"
	"strings"
)

// Config holds authentication configuration.
type Config struct {
	Enabled bool
	Token   string
}

// exemptPaths are always public regardless of auth configuration.
var exemptPaths = map[string]bool{
	"/healthz":                  true,
	"/readyz":                   true,
	"/metrics":                  true,
	"/api/v1/tle/metadata":      true,
	"/api/v1/tle/parse":         true,
	"/api/v1/tle/parse/catalog": true,
}

// protectedPaths stay behind auth even though they share the record prefix.
var protectedPaths = map[string]bool{
	"/api/v1/tle/fetch":       true,
	"/api/v1/tle/export.xlsx": true,
}

const recordPrefix = "/api/v1/tle/"

// isExempt returns true if the path is exempt from auth. Single record
// lookups are public; fetching and bulk export are not.
func isExempt(path string) bool {
	if exemptPaths[path] {
		return true
	}
	return strings.HasPrefix(path, recordPrefix) && !protectedPaths[path]
}

// Middleware returns an HTTP middleware that enforces Bearer token auth
// on non-exempt paths when auth is enabled.
func Middleware(cfg Config) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !cfg.Enabled || isExempt(r.URL.Path) {
				next.ServeHTTP(w, r)
				return
			}

			header := r.Header.Get("Authorization")
			token := strings.TrimPrefix(header, "Bearer ")

			if header == "" || token == header || subtle.ConstantTimeCompare([]byte(token), []byte(cfg.Token)) != 1 {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusUnauthorized)
				json.NewEncoder(w).Encode(map[string]string{"error": "unauthorized"})
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
