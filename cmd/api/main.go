package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/MrJamesThe3rd/ledgerboard/internal/auth"
	authStore "github.com/MrJamesThe3rd/ledgerboard/internal/auth/store"
	"github.com/MrJamesThe3rd/ledgerboard/internal/cache"
	"github.com/MrJamesThe3rd/ledgerboard/internal/config"
	"github.com/MrJamesThe3rd/ledgerboard/internal/customer"
	customerStore "github.com/MrJamesThe3rd/ledgerboard/internal/customer/store"
	"github.com/MrJamesThe3rd/ledgerboard/internal/dashboard"
	dashboardStore "github.com/MrJamesThe3rd/ledgerboard/internal/dashboard/store"
	"github.com/MrJamesThe3rd/ledgerboard/internal/database"
	ledgerHttp "github.com/MrJamesThe3rd/ledgerboard/internal/http"
	authHandler "github.com/MrJamesThe3rd/ledgerboard/internal/http/auth"
	customerHandler "github.com/MrJamesThe3rd/ledgerboard/internal/http/customer"
	dashboardHandler "github.com/MrJamesThe3rd/ledgerboard/internal/http/dashboard"
	invoiceHandler "github.com/MrJamesThe3rd/ledgerboard/internal/http/invoice"
	"github.com/MrJamesThe3rd/ledgerboard/internal/http/middleware"
	"github.com/MrJamesThe3rd/ledgerboard/internal/http/render"
	"github.com/MrJamesThe3rd/ledgerboard/internal/invoice"
	invoiceStore "github.com/MrJamesThe3rd/ledgerboard/internal/invoice/store"
	"github.com/MrJamesThe3rd/ledgerboard/internal/metrics"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	slog.SetLogLoggerLevel(cfg.Level())

	if cfg.DB.AutoMigrate {
		if err := database.Migrate(cfg.MigrationURL()); err != nil {
			slog.Error("failed to migrate database", "error", err)
			os.Exit(1)
		}
	}

	db, err := database.New(context.Background(), cfg)
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	renderer, err := render.New()
	if err != nil {
		slog.Error("failed to parse templates", "error", err)
		os.Exit(1)
	}

	var (
		invoiceService   = invoice.NewService(invoiceStore.New(db))
		customerService  = customer.NewService(customerStore.New(db))
		dashboardService = dashboard.NewService(dashboardStore.New(db))
		authService      = auth.NewService(authStore.New(db))
		sessions         = auth.NewSessions(cfg.Auth.Secret, cfg.Auth.SessionTTL)
		views            = cache.New(cfg.Cache.Size, cfg.Cache.TTL, cache.WithVersion(invoiceService.Version))
		appMetrics       = metrics.New()
		loginLimiter     = middleware.NewRateLimiter(cfg.Auth.LoginRate, cfg.Auth.LoginBurst, 10000, 10*time.Minute)
	)

	handlers := ledgerHttp.Handlers{
		Auth:       authHandler.NewHandler(authService, sessions, renderer, cfg.Auth.SecureCookie),
		Dashboard:  dashboardHandler.NewHandler(dashboardService, renderer),
		Invoices:   invoiceHandler.NewHandler(invoiceService, customerService, renderer, views, appMetrics),
		InvoicesV1: invoiceHandler.NewAPIHandler(invoiceService, views, appMetrics),
		Customers:  customerHandler.NewHandler(customerService, renderer, views, appMetrics),
	}

	router := ledgerHttp.New(handlers, sessions, loginLimiter, appMetrics, cfg.CORS.AllowedOrigins)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       cfg.Server.Timeout,
		IdleTimeout:       2 * cfg.Server.Timeout,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		slog.Info("starting server", "name", cfg.App.Name, "port", srv.Addr)

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.Timeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("failed to shut down server", "error", err)
	}

	slog.Info("server stopped")
}
