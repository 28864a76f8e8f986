package render

import (
	"bytes"
	"fmt"
	"html/template"
	"net/http"
	"sync"
)

// Stream writes a page shell first and fills its regions as their data arrives.
// Regions may be written from several goroutines.
type Stream struct {
	mu      sync.Mutex
	w       http.ResponseWriter
	flusher http.Flusher
	r       *Renderer
	page    string
	view    View
}

// Stream writes the layout head and the page content, which holds a placeholder per region, and flushes.
func (r *Renderer) Stream(w http.ResponseWriter, page string, v View) (*Stream, error) {
	var buf bytes.Buffer
	if err := r.execute(&buf, page, "head", v); err != nil {
		return nil, err
	}

	if err := r.execute(&buf, page, "content", v); err != nil {
		return nil, err
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(http.StatusOK)

	s := &Stream{w: w, r: r, page: page, view: v}
	s.flusher, _ = w.(http.Flusher)

	if err := s.write(buf.Bytes()); err != nil {
		return nil, err
	}

	return s, nil
}

// Region renders template name with data and swaps it in for the placeholder with the given id.
func (s *Stream) Region(id, name string, data any) error {
	var buf bytes.Buffer

	fmt.Fprintf(&buf, `<template id="%s-content">`, template.HTMLEscapeString(id))

	if err := s.r.execute(&buf, s.page, name, data); err != nil {
		return err
	}

	fmt.Fprintf(&buf, `</template><script>swapRegion(%q)</script>`, id)

	return s.write(buf.Bytes())
}

// Close writes the layout foot.
func (s *Stream) Close() error {
	var buf bytes.Buffer
	if err := s.r.execute(&buf, s.page, "foot", s.view); err != nil {
		return err
	}

	return s.write(buf.Bytes())
}

func (s *Stream) write(b []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.w.Write(b); err != nil {
		return fmt.Errorf("writing stream: %w", err)
	}

	if s.flusher != nil {
		s.flusher.Flush()
	}

	return nil
}
