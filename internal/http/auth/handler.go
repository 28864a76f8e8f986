package auth

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/ledgerboard/internal/auth"
	"github.com/MrJamesThe3rd/ledgerboard/internal/http/middleware"
	"github.com/MrJamesThe3rd/ledgerboard/internal/http/render"
)

const defaultLanding = "/dashboard"

type Handler struct {
	svc          *auth.Service
	sessions     *auth.Sessions
	render       *render.Renderer
	secureCookie bool
}

func NewHandler(svc *auth.Service, sessions *auth.Sessions, r *render.Renderer, secureCookie bool) *Handler {
	return &Handler{svc: svc, sessions: sessions, render: r, secureCookie: secureCookie}
}

// Routes registers the login form. limit wraps the credential check.
func (h *Handler) Routes(r chi.Router, limit func(http.Handler) http.Handler) {
	r.Get("/login", h.loginPage)
	r.With(limit).Post("/login", h.login)
}

// APIRoutes registers the token endpoint.
func (h *Handler) APIRoutes(r chi.Router, limit func(http.Handler) http.Handler) {
	r.With(limit).Post("/", h.token)
}

type loginView struct {
	Email       string
	CallbackURL string
	Message     string
}

func (h *Handler) loginPage(w http.ResponseWriter, r *http.Request) {
	h.page(w, r, http.StatusOK, loginView{CallbackURL: r.URL.Query().Get("callbackUrl")})
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	creds := auth.Credentials{
		Email:    r.PostForm.Get("email"),
		Password: r.PostForm.Get("password"),
	}
	v := loginView{Email: creds.Email, CallbackURL: r.PostForm.Get("callbackUrl")}

	user, err := h.svc.SignIn(r.Context(), creds)
	if err != nil {
		msg, perr := auth.Message(err)
		if perr != nil {
			slog.Error("failed to sign in", "error", perr)
			http.Error(w, "internal error", http.StatusInternalServerError)

			return
		}

		v.Message = msg
		h.page(w, r, failureStatus(msg, err), v)

		return
	}

	token, exp, err := h.sessions.Issue(user)
	if err != nil {
		slog.Error("failed to issue session", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	middleware.SetSessionCookie(w, token, exp, h.secureCookie)
	http.Redirect(w, r, middleware.SafeRedirect(v.CallbackURL, defaultLanding), http.StatusSeeOther)
}

func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	middleware.ClearSessionCookie(w, h.secureCookie)
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

type tokenResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (h *Handler) token(w http.ResponseWriter, r *http.Request) {
	var creds auth.Credentials
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	user, err := h.svc.SignIn(r.Context(), creds)
	if err != nil {
		msg, perr := auth.Message(err)
		if perr != nil {
			slog.Error("failed to sign in", "error", perr)
			writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})

			return
		}

		writeJSON(w, failureStatus(msg, err), errorResponse{Error: msg})

		return
	}

	token, exp, err := h.sessions.Issue(user)
	if err != nil {
		slog.Error("failed to issue session", "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})

		return
	}

	writeJSON(w, http.StatusOK, tokenResponse{Token: token, ExpiresAt: exp})
}

func (h *Handler) page(w http.ResponseWriter, r *http.Request, status int, v loginView) {
	if err := h.render.Page(w, status, "login", render.View{Title: "Login", Path: r.URL.Path, Data: v}); err != nil {
		slog.Error("failed to render page", "page", "login", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

// failureStatus is 401 for rejected credentials and 500 when the credentials could not be checked.
func failureStatus(msg string, err error) int {
	if msg == auth.MsgSomethingWrong {
		slog.Error("failed to check credentials", "error", err)
		return http.StatusInternalServerError
	}

	return http.StatusUnauthorized
}
