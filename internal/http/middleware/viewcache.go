package middleware

import (
	"bytes"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/MrJamesThe3rd/ledgerboard/internal/cache"
)

// CacheRecorder counts view cache lookups.
type CacheRecorder interface {
	RecordCacheLookup(hit bool)
}

// CacheViews serves GET responses from views and stores successful ones keyed by request URI.
// Mutations made by this process call views.Invalidate for the paths they change. Entries rendered
// from an older data version are misses, so writes from elsewhere are picked up on the next request.
func CacheViews(views *cache.Views, rec CacheRecorder) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodGet {
				next.ServeHTTP(w, r)
				return
			}

			version, err := views.Version(r.Context())
			if err != nil {
				slog.Warn("failed to read view version, bypassing cache", "path", r.URL.Path, "error", err)
				next.ServeHTTP(w, r)

				return
			}

			key := r.URL.RequestURI()

			if e, ok := views.Lookup(key, version); ok {
				rec.RecordCacheLookup(true)

				w.Header().Set("Content-Type", e.ContentType)
				w.Header().Set("X-Cache", "HIT")
				_, _ = w.Write(e.Body)

				return
			}

			rec.RecordCacheLookup(false)

			var buf bytes.Buffer

			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			ww.Tee(&buf)
			ww.Header().Set("X-Cache", "MISS")

			next.ServeHTTP(ww, r)

			if ww.Status() == http.StatusOK {
				views.Set(key, cache.Entry{
					ContentType: ww.Header().Get("Content-Type"),
					Body:        buf.Bytes(),
					Version:     version,
				})
			}
		})
	}
}
