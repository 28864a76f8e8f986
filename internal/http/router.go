package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/MrJamesThe3rd/ledgerboard/internal/auth"
	authhttp "github.com/MrJamesThe3rd/ledgerboard/internal/http/auth"
	"github.com/MrJamesThe3rd/ledgerboard/internal/http/customer"
	"github.com/MrJamesThe3rd/ledgerboard/internal/http/dashboard"
	"github.com/MrJamesThe3rd/ledgerboard/internal/http/invoice"
	mw "github.com/MrJamesThe3rd/ledgerboard/internal/http/middleware"
	"github.com/MrJamesThe3rd/ledgerboard/internal/metrics"
)

// Handlers groups the route handlers mounted by New.
type Handlers struct {
	Auth       *authhttp.Handler
	Dashboard  *dashboard.Handler
	Invoices   *invoice.Handler
	InvoicesV1 *invoice.APIHandler
	Customers  *customer.Handler
}

func New(
	h Handlers,
	sessions *auth.Sessions,
	loginLimiter *mw.RateLimiter,
	m *metrics.Metrics,
	allowedOrigins []string,
) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(m.Instrument)
	router.Use(mw.Session(sessions))

	router.Get("/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
	})
	router.Handle("/metrics", m.Handler())

	router.Group(func(r chi.Router) {
		r.Use(mw.RedirectIfAuthenticated("/dashboard"))
		h.Auth.Routes(r, loginLimiter.Handler)
	})
	router.Post("/logout", h.Auth.Logout)

	router.Route("/dashboard", func(r chi.Router) {
		r.Use(mw.RequireSession)

		h.Dashboard.Routes(r)
		r.Route("/invoices", h.Invoices.Routes)
		r.Route("/customers", h.Customers.Routes)
	})

	router.Route("/api/v1", func(r chi.Router) {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: allowedOrigins,
			AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
			MaxAge:         300,
		}))

		r.Route("/session", func(r chi.Router) {
			h.Auth.APIRoutes(r, loginLimiter.Handler)
		})

		r.Route("/invoices", func(r chi.Router) {
			r.Use(mw.RequireBearer)
			r.Use(middleware.AllowContentType("application/json"))
			h.InvoicesV1.Routes(r)
		})
	})

	return router
}
