package dashboard

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"golang.org/x/sync/errgroup"

	"github.com/MrJamesThe3rd/ledgerboard/internal/dashboard"
	"github.com/MrJamesThe3rd/ledgerboard/internal/http/render"
)

// Region error messages, shown in place of a region whose data could not be loaded.
const (
	MsgCardsFailed   = "Failed to fetch card data."
	MsgRevenueFailed = "Failed to fetch revenue data."
	MsgLatestFailed  = "Failed to fetch the latest invoices."
)

type Handler struct {
	svc    *dashboard.Service
	render *render.Renderer
}

func NewHandler(svc *dashboard.Service, r *render.Renderer) *Handler {
	return &Handler{svc: svc, render: r}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.overview)
}

type region struct {
	id      string
	failMsg string
	load    func(ctx context.Context) (any, error)
}

// overview sends the page shell with a placeholder per region, then streams each region
// as soon as its own query finishes. A failing region is replaced by its error message only.
func (h *Handler) overview(w http.ResponseWriter, r *http.Request) {
	regions := []region{
		{id: "cards", failMsg: MsgCardsFailed, load: func(ctx context.Context) (any, error) {
			return h.svc.Cards(ctx)
		}},
		{id: "revenue", failMsg: MsgRevenueFailed, load: func(ctx context.Context) (any, error) {
			return h.svc.Revenue(ctx)
		}},
		{id: "latest-invoices", failMsg: MsgLatestFailed, load: func(ctx context.Context) (any, error) {
			return h.svc.LatestInvoices(ctx)
		}},
	}

	stream, err := h.render.Stream(w, "overview", render.View{Title: "Dashboard", Path: "/dashboard"})
	if err != nil {
		slog.Error("failed to render dashboard shell", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	ctx := r.Context()

	var g errgroup.Group
	for _, rg := range regions {
		g.Go(func() error {
			data, err := rg.load(ctx)
			if err != nil {
				slog.Error("failed to load dashboard region", "region", rg.id, "error", err)
				return stream.Region(rg.id, "region-error", rg.failMsg)
			}

			return stream.Region(rg.id, rg.id, data)
		})
	}

	if err := g.Wait(); err != nil {
		slog.Error("failed to stream dashboard region", "error", err)
	}

	if err := stream.Close(); err != nil {
		slog.Error("failed to close dashboard stream", "error", err)
	}
}
