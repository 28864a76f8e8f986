// Package cache keeps rendered dashboard views until they expire, a mutation invalidates them,
// or the data they were built from changes version.
package cache

import (
	"context"
	"strings"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

// Entry is a rendered response body and the data version it was rendered from.
type Entry struct {
	ContentType string
	Body        []byte
	Version     string
}

// VersionFunc reports the current version of the data behind the cached views.
type VersionFunc func(ctx context.Context) (string, error)

type Views struct {
	lru     *expirable.LRU[string, Entry]
	version VersionFunc
}

type Option func(*Views)

// WithVersion makes entries rendered from an older version count as misses. It catches writes
// that never pass through Invalidate, such as those made by another process.
func WithVersion(fn VersionFunc) Option {
	return func(v *Views) { v.version = fn }
}

func New(size int, ttl time.Duration, opts ...Option) *Views {
	v := &Views{lru: expirable.NewLRU[string, Entry](size, nil, ttl)}
	for _, opt := range opts {
		opt(v)
	}

	return v
}

// Version returns the current data version, or "" when the views are not versioned.
func (v *Views) Version(ctx context.Context) (string, error) {
	if v.version == nil {
		return "", nil
	}

	return v.version(ctx)
}

func (v *Views) Get(key string) (Entry, bool) {
	return v.lru.Get(key)
}

// Lookup returns the entry for key only if it was rendered from version.
func (v *Views) Lookup(key, version string) (Entry, bool) {
	e, ok := v.lru.Get(key)
	if !ok || e.Version != version {
		return Entry{}, false
	}

	return e, true
}

func (v *Views) Set(key string, e Entry) {
	v.lru.Add(key, e)
}

// Invalidate drops every view whose key is path or lies under it, including query variants.
func (v *Views) Invalidate(path string) int {
	n := 0

	for _, k := range v.lru.Keys() {
		if k == path || strings.HasPrefix(k, path+"?") || strings.HasPrefix(k, path+"/") {
			if v.lru.Remove(k) {
				n++
			}
		}
	}

	return n
}

func (v *Views) Len() int {
	return v.lru.Len()
}
