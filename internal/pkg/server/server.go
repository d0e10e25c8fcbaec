package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/Vodeneev/pokepaste/internal/parser/pokepaste"
	"github.com/Vodeneev/pokepaste/internal/pkg/config"
	"github.com/Vodeneev/pokepaste/internal/pkg/server/handlers"
	"github.com/Vodeneev/pokepaste/internal/pkg/storage"
)

// Deps are the collaborators of the HTTP API. Storage may be nil.
type Deps struct {
	Parser  *pokepaste.Parser
	Fetcher pokepaste.Fetcher
	Storage storage.TeamStorage
}

// NewRouter builds the API routes
func NewRouter(cfg *config.ServerConfig, deps Deps) http.Handler {
	h := handlers.NewHandler(deps.Parser, deps.Fetcher, deps.Storage, cfg.RequestTimeout)

	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(requestLogger)
	r.Use(chimiddleware.Recoverer)
	if cfg.RequestTimeout > 0 {
		r.Use(chimiddleware.Timeout(cfg.RequestTimeout))
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.CORSOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	r.Get("/ping", handlers.HandlePing)
	r.Get("/health", handlers.HandleHealth)
	r.Get("/metrics", handlers.HandleMetrics)

	r.Post("/parse", h.ParseText)
	r.Get("/parse", h.ParseURL)

	r.Route("/teams", func(r chi.Router) {
		r.Post("/", h.CreateTeam)
		r.Get("/", h.ListTeams)
		r.Get("/{id}", h.GetTeam)
	})

	return r
}

// Run serves the API until ctx is cancelled, then shuts down gracefully
func Run(ctx context.Context, cfg *config.ServerConfig, deps Deps) error {
	if cfg.ReadHeaderTimeout <= 0 {
		return fmt.Errorf("read_header_timeout must be specified in config")
	}

	srv := &http.Server{
		Addr:              AddrFor(cfg.Port),
		Handler:           NewRouter(cfg, deps),
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("HTTP server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	slog.Info("Shutting down HTTP server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown http server: %w", err)
	}
	return nil
}

func AddrFor(port int) string {
	return fmt.Sprintf(":%d", port)
}
