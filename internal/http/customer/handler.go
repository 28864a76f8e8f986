package customer

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/ledgerboard/internal/cache"
	"github.com/MrJamesThe3rd/ledgerboard/internal/customer"
	"github.com/MrJamesThe3rd/ledgerboard/internal/http/middleware"
	"github.com/MrJamesThe3rd/ledgerboard/internal/http/render"
	"github.com/MrJamesThe3rd/ledgerboard/internal/metrics"
)

type Handler struct {
	svc     *customer.Service
	render  *render.Renderer
	views   *cache.Views
	metrics *metrics.Metrics
}

func NewHandler(svc *customer.Service, r *render.Renderer, views *cache.Views, m *metrics.Metrics) *Handler {
	return &Handler{svc: svc, render: r, views: views, metrics: m}
}

func (h *Handler) Routes(r chi.Router) {
	r.With(middleware.CacheViews(h.views, h.metrics)).Get("/", h.list)
}

type listView struct {
	Query     string
	Customers []*customer.Summary
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("query")

	sums, err := h.svc.Summaries(r.Context(), query)
	if err != nil {
		slog.Error("failed to list customers", "error", err)
		h.page(w, r, http.StatusInternalServerError, "error", "Error", "Database Error: Failed to fetch customer table.")

		return
	}

	h.page(w, r, http.StatusOK, "customers", "Customers", listView{Query: query, Customers: sums})
}

func (h *Handler) page(w http.ResponseWriter, r *http.Request, status int, page, title string, data any) {
	if err := h.render.Page(w, status, page, render.View{Title: title, Path: r.URL.Path, Data: data}); err != nil {
		slog.Error("failed to render page", "page", page, "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}
