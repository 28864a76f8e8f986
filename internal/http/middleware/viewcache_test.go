package middleware_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/MrJamesThe3rd/ledgerboard/internal/cache"
	"github.com/MrJamesThe3rd/ledgerboard/internal/http/middleware"
)

type lookups struct{ hits, misses int }

func (l *lookups) RecordCacheLookup(hit bool) {
	if hit {
		l.hits++
	} else {
		l.misses++
	}
}

func TestCacheViews(t *testing.T) {
	views := cache.New(8, time.Minute)
	rec := &lookups{}
	calls := 0
	status := http.StatusOK

	h := middleware.CacheViews(views, rec)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls++
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(status)
		_, _ = w.Write([]byte("<p>invoices</p>"))
	}))

	get := func(target string) *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, target, nil))

		return w
	}

	first := get("/dashboard/invoices?page=1")
	assert.Equal(t, "MISS", first.Header().Get("X-Cache"))

	second := get("/dashboard/invoices?page=1")
	assert.Equal(t, "HIT", second.Header().Get("X-Cache"))
	assert.Equal(t, "<p>invoices</p>", second.Body.String())
	assert.Equal(t, "text/html; charset=utf-8", second.Header().Get("Content-Type"))
	assert.Equal(t, 1, calls)

	views.Invalidate("/dashboard/invoices")
	get("/dashboard/invoices?page=1")
	assert.Equal(t, 2, calls)

	status = http.StatusInternalServerError
	get("/dashboard/invoices?page=9")
	get("/dashboard/invoices?page=9")
	assert.Equal(t, 4, calls)
	assert.Equal(t, lookups{hits: 1, misses: 4}, *rec)
}

// Writes from another process never call Invalidate; the version check catches them.
func TestCacheViews_VersionChange(t *testing.T) {
	version := "6-100"
	var versionErr error

	views := cache.New(8, time.Hour, cache.WithVersion(func(context.Context) (string, error) {
		return version, versionErr
	}))
	rec := &lookups{}
	calls := 0

	h := middleware.CacheViews(views, rec)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls++
		_, _ = w.Write([]byte("<p>invoices</p>"))
	}))

	get := func() *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/dashboard/invoices", nil))

		return w
	}

	assert.Equal(t, "MISS", get().Header().Get("X-Cache"))
	assert.Equal(t, "HIT", get().Header().Get("X-Cache"))
	assert.Equal(t, 1, calls)

	version = "5-200"
	assert.Equal(t, "MISS", get().Header().Get("X-Cache"))
	assert.Equal(t, 2, calls)
	assert.Equal(t, "HIT", get().Header().Get("X-Cache"))

	versionErr = errors.New("connection reset")
	w := get()
	assert.Empty(t, w.Header().Get("X-Cache"))
	assert.Equal(t, "<p>invoices</p>", w.Body.String())
	assert.Equal(t, 3, calls)
	assert.Equal(t, lookups{hits: 2, misses: 2}, *rec)
}
