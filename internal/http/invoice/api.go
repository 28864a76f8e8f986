package invoice

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/ledgerboard/internal/cache"
	"github.com/MrJamesThe3rd/ledgerboard/internal/invoice"
	"github.com/MrJamesThe3rd/ledgerboard/internal/metrics"
)

// APIHandler serves the invoice actions as JSON.
type APIHandler struct {
	svc     *invoice.Service
	views   *cache.Views
	metrics *metrics.Metrics
}

func NewAPIHandler(svc *invoice.Service, views *cache.Views, m *metrics.Metrics) *APIHandler {
	return &APIHandler{svc: svc, views: views, metrics: m}
}

func (h *APIHandler) Routes(r chi.Router) {
	r.Post("/", h.create)
	r.Get("/", h.list)
	r.Get("/{id}", h.get)
	r.Put("/{id}", h.update)
	r.Delete("/{id}", h.delete)
}

func (h *APIHandler) create(w http.ResponseWriter, r *http.Request) {
	var req invoice.FormInput
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	inv, err := h.svc.Create(r.Context(), req)
	if err != nil {
		h.metrics.RecordMutation("create", outcome(err))
		writeError(w, err)

		return
	}

	h.metrics.RecordMutation("create", "ok")
	h.invalidate()
	writeJSON(w, http.StatusCreated, toResponse(inv))
}

func (h *APIHandler) list(w http.ResponseWriter, r *http.Request) {
	p, err := h.svc.List(r.Context(), r.URL.Query().Get("query"), pageParam(r.URL.Query().Get("page")))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toPageResponse(p))
}

func (h *APIHandler) get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: invoice.MsgNotFound})
		return
	}

	inv, err := h.svc.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toResponse(inv))
}

func (h *APIHandler) update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: invoice.MsgNotFound})
		return
	}

	var req invoice.FormInput
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.svc.Edit(r.Context(), id, req); err != nil {
		h.metrics.RecordMutation("edit", outcome(err))
		writeError(w, err)

		return
	}

	h.metrics.RecordMutation("edit", "ok")
	h.invalidate()
	w.WriteHeader(http.StatusNoContent)
}

func (h *APIHandler) delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: invoice.MsgNotFound})
		return
	}

	msg, err := h.svc.Delete(r.Context(), id)
	if err != nil {
		h.metrics.RecordMutation("delete", outcome(err))
		writeError(w, err)

		return
	}

	h.metrics.RecordMutation("delete", "ok")
	h.invalidate()
	writeJSON(w, http.StatusOK, messageResponse{Message: msg})
}

func (h *APIHandler) invalidate() {
	h.views.Invalidate(ListPath)
	h.views.Invalidate(CustomersPath)
}

func writeError(w http.ResponseWriter, err error) {
	var ie *invoice.Error
	if !errors.As(err, &ie) {
		slog.Error("invoice request failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})

		return
	}

	switch ie.Kind {
	case invoice.KindValidation:
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Error: ie.Message, Fields: ie.Fields})
	case invoice.KindNotFound:
		writeJSON(w, http.StatusNotFound, errorResponse{Error: ie.Message})
	default:
		slog.Error("invoice request failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: ie.Message})
	}
}
