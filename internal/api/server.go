// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package api composes the chi router, the middleware chain and every domain
handler into one [http.Server].

Route layout:

  - /health, /ready, /metrics   infrastructure endpoints
  - /api/v1/books...            public catalogue and reader
  - /api/v1/me/...              caller-scoped: authoring, progress, preferences, library
*/
package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/taibuivan/inkwell/internal/catalog/book"
	"github.com/taibuivan/inkwell/internal/catalog/chapter"
	"github.com/taibuivan/inkwell/internal/library/progress"
	"github.com/taibuivan/inkwell/internal/platform/config"
	"github.com/taibuivan/inkwell/internal/platform/constants"
	"github.com/taibuivan/inkwell/internal/platform/metrics"
	"github.com/taibuivan/inkwell/internal/platform/middleware"
	"github.com/taibuivan/inkwell/internal/platform/sec"
	"github.com/taibuivan/inkwell/internal/reader"
	"github.com/taibuivan/inkwell/internal/users/preference"
)

// Server owns the listener for the composed router.
type Server struct {
	httpServer *http.Server
	router     *chi.Mux
	log        *slog.Logger
}

// Handlers is everything the router mounts.
type Handlers struct {
	// Liveness is the /health handler: 200 while the process is alive.
	Liveness http.HandlerFunc

	// Readiness is the /ready handler: 200 when postgres and redis answer.
	Readiness http.HandlerFunc

	// Books manages the caller's books.
	Books *book.Handler

	// Chapters manages the chapters of the caller's books.
	Chapters *chapter.Handler

	// Reader serves the public catalogue and the caller's library.
	Reader *reader.Handler

	// Progress stores reading positions.
	Progress *progress.Handler

	// Preferences stores reader display settings.
	Preferences *preference.Handler
}

// NewServer builds the router and the [http.Server] around it.
func NewServer(context context.Context, cfg *config.Config, log *slog.Logger, verifier middleware.TokenVerifier, registry *metrics.Registry, h Handlers) *Server {
	r := NewRouter(context, cfg, log, verifier, registry, h)

	return &Server{
		router: r,
		log:    log,
		httpServer: &http.Server{
			Addr:              ":" + cfg.ServerPort,
			Handler:           r,
			ReadTimeout:       constants.DefaultReadTimeout,
			WriteTimeout:      constants.DefaultWriteTimeout,
			IdleTimeout:       constants.DefaultIdleTimeout,
			ReadHeaderTimeout: constants.DefaultReadHeaderTimeout,
		},
	}
}

// NewRouter builds the routing tree. It is separate from [NewServer] so tests
// can drive it with httptest.
func NewRouter(context context.Context, cfg *config.Config, log *slog.Logger, verifier middleware.TokenVerifier, registry *metrics.Registry, h Handlers) *chi.Mux {
	r := chi.NewRouter()

	// Outermost first. PanicRecovery sits inside the logger and metrics so a
	// recovered panic is still counted as a 500.
	if cfg.TrustProxyHeaders {
		r.Use(chimw.RealIP)
	}
	r.Use(middleware.RequestID())
	r.Use(middleware.StructuredLogger(log))
	r.Use(middleware.Metrics(registry))
	r.Use(middleware.PanicRecovery)
	r.Use(middleware.RateLimit(context, middleware.DefaultRateLimit))
	r.Use(middleware.CORS(middleware.CORSConfig{
		AllowAll:     cfg.IsDevelopment(),
		OriginSuffix: cfg.CORSOriginSuffix,
		ExtraOrigins: cfg.ExtraOrigins,
	}))
	r.Use(chimw.CleanPath)
	r.Use(chimw.Timeout(constants.GlobalRequestTimeout))
	r.Use(middleware.Authenticate(verifier))

	r.Get("/health", h.Liveness)
	r.Get("/ready", h.Readiness)
	if registry != nil {
		r.Method(http.MethodGet, "/metrics", registry.Handler())
	}

	// Publishing needs the author role or an allowlisted email.
	authorGate := middleware.RequireAuthor(sec.RoleAuthor, cfg.AuthorEmails)

	r.Route("/api/v1", func(api chi.Router) {
		me := chi.NewRouter()

		h.Books.RegisterRoutes(me, authorGate)
		h.Chapters.RegisterRoutes(me, authorGate)
		h.Progress.RegisterRoutes(me)
		h.Preferences.RegisterRoutes(me)
		h.Reader.RegisterRoutes(api, me)

		api.Mount("/me", me)
	})

	return r
}

// # Server Lifecycle

// ListenAndServe blocks until the server is shut down or fails to listen.
func (s *Server) ListenAndServe() error {
	s.log.Info("http_listening", slog.String("addr", s.httpServer.Addr))
	return s.httpServer.ListenAndServe()
}

// Shutdown stops accepting connections and waits up to timeout for in-flight requests.
func (s *Server) Shutdown(timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return s.httpServer.Shutdown(ctx)
}
