// Package middleware contains HTTP middleware for the read API.
package middleware

import (
	"net/http"
	"net/http/httptest"
	"time"

	"github.com/tipnet/midas/internal/middleware/memory"
)

// Storage keeps rendered responses for a limited time. Get returns nil on a miss.
type Storage interface {
	Get(key string) []byte
	Set(key string, content []byte, duration time.Duration)
}

// Cached memoizes successful responses of handler for ttl in an in-memory store.
func Cached(ttl time.Duration, handler http.HandlerFunc) http.HandlerFunc {
	return CachedWith(memory.NewStorage(), ttl, handler)
}

// CachedWith is Cached with an explicit response store. Responses are keyed by
// path and sorted query, so parameter order does not split the cache.
// Non-200 responses are passed through uncached.
func CachedWith(storage Storage, ttl time.Duration, handler http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		key := cacheKey(r)

		if content := storage.Get(key); content != nil {
			w.Write(content) // nolint:errcheck
			return
		}

		rec := httptest.NewRecorder()
		handler(rec, r)

		for k, v := range rec.Header() {
			w.Header()[k] = v
		}
		w.WriteHeader(rec.Code)

		content := rec.Body.Bytes()
		if rec.Code == http.StatusOK {
			storage.Set(key, content, ttl)
		}

		w.Write(content) // nolint:errcheck
	}
}

func cacheKey(r *http.Request) string {
	if r.URL.RawQuery == "" {
		return r.URL.Path
	}

	return r.URL.Path + "?" + r.URL.Query().Encode()
}
