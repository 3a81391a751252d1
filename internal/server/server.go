// Package server sets up the HTTP server, router, and all route definitions.
//
// SERVER ARCHITECTURE:
// This package is the "wiring" layer. It decides:
// - Which storage backend to open
// - Which URL patterns map to which handler functions
// - What middleware runs on which routes
// - How the server starts and stops gracefully
//
// DEPENDENCY INJECTION FLOW:
//
//	config.Config → OpenStore → repository.Store
//	Store → service.New → *service.Services
//	Services → handler.New*Handler → routes
//
// This is the "composition root": every dependency is built here, once,
// and nothing below it reaches for a global.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/sakif/blog-api/internal/config"
	"github.com/sakif/blog-api/internal/handler"
	"github.com/sakif/blog-api/internal/middleware"
	"github.com/sakif/blog-api/internal/repository"
	"github.com/sakif/blog-api/internal/repository/memory"
	"github.com/sakif/blog-api/internal/repository/postgres"
	sqliteRepo "github.com/sakif/blog-api/internal/repository/sqlite"
	"github.com/sakif/blog-api/internal/service"
)

// shutdownTimeout is how long in-flight requests get to finish after a
// shutdown signal.
const shutdownTimeout = 30 * time.Second

// Server represents the HTTP server and all its dependencies.
//
// RESOURCE MANAGEMENT:
// The Server owns the store. Start closes it on the way out, after the
// last in-flight request has finished.
type Server struct {
	router *chi.Mux
	config config.Config
	logger *slog.Logger
	store  repository.Store
}

// New opens the configured store and builds a Server around it.
func New(ctx context.Context, cfg config.Config, logger *slog.Logger) (*Server, error) {
	store, err := OpenStore(ctx, cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("opening %s store: %w", cfg.Driver, err)
	}
	return NewWithStore(cfg, store, logger), nil
}

// NewWithStore builds a Server on an already open store.
func NewWithStore(cfg config.Config, store repository.Store, logger *slog.Logger) *Server {
	s := &Server{
		router: chi.NewRouter(),
		config: cfg,
		logger: logger,
		store:  store,
	}
	s.setupRoutes()
	return s
}

// OpenStore connects to the backend named by cfg.Driver and makes sure its
// schema is current.
//
// IMPORT ALIAS:
// repository/sqlite is imported as sqliteRepo so it is not confused with
// the modernc.org/sqlite driver.
func OpenStore(ctx context.Context, cfg config.Config, logger *slog.Logger) (repository.Store, error) {
	switch cfg.Driver {
	case config.DriverMemory:
		logger.Warn("using in-memory storage; data is lost on shutdown")
		return memory.New(), nil

	case config.DriverSQLite:
		// Create the data directory on first run (like `mkdir -p`).
		if cfg.DBPath != ":memory:" {
			if err := os.MkdirAll(filepath.Dir(cfg.DBPath), 0o755); err != nil {
				return nil, fmt.Errorf("creating database directory: %w", err)
			}
		}
		db, err := sqliteRepo.New(cfg.DBPath)
		if err != nil {
			return nil, err
		}
		return db, nil

	case config.DriverPostgres:
		if err := postgres.Migrate(cfg.DatabaseURL, logger); err != nil {
			return nil, err
		}
		db, err := postgres.New(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		return db, nil

	default:
		return nil, fmt.Errorf("unknown driver %q", cfg.Driver)
	}
}

// setupRoutes configures all middleware and route handlers.
//
// ROUTE STRUCTURE:
// GET    /                  → API index (JSON)
// GET    /favicon.ico       → 204
// GET    /apispec_1.json    → OpenAPI document
// GET    /healthz           → storage check
// POST   /users             → create user
// GET    /users             → list users
// GET    /users/{id}        → get user
// DELETE /users/{id}        → delete user (cascades)
// ... the same four routes for /posts and /comments
//
// MIDDLEWARE ORDER MATTERS:
// 1. RequestID: assigns an id to each request (logged by Logger)
// 2. RealIP: extracts the client IP from proxy headers
// 3. Logger: logs each request with timing info
// 4. Recoverer: turns a panic into a 500 instead of a crash
func (s *Server) setupRoutes() {
	s.router.Use(chimiddleware.RequestID)
	s.router.Use(chimiddleware.RealIP)
	s.router.Use(middleware.Logger(s.logger))
	s.router.Use(chimiddleware.Recoverer)

	// JSON instead of chi's plain-text defaults. Sub-routers mounted below
	// inherit both.
	s.router.NotFound(handler.HandleNotFound)
	s.router.MethodNotAllowed(handler.HandleMethodNotAllowed)

	svc := service.New(s.store, s.logger)
	users := handler.NewUserHandler(svc.Users, s.logger)
	posts := handler.NewPostHandler(svc.Posts, s.logger)
	comments := handler.NewCommentHandler(svc.Comments, s.logger)
	health := handler.NewHealthHandler(svc.Users, s.logger)

	s.router.Get("/", handler.HandleIndex)
	s.router.Get("/favicon.ico", handler.HandleFavicon)
	s.router.Get("/apispec_1.json", handler.HandleAPISpec)
	s.router.Get("/healthz", health.HandleHealth)

	s.router.Route("/users", func(r chi.Router) {
		r.Post("/", users.HandleCreate)
		r.Get("/", users.HandleList)
		r.Get("/{id}", users.HandleGet)
		r.Delete("/{id}", users.HandleDelete)
	})
	s.router.Route("/posts", func(r chi.Router) {
		r.Post("/", posts.HandleCreate)
		r.Get("/", posts.HandleList)
		r.Get("/{id}", posts.HandleGet)
		r.Delete("/{id}", posts.HandleDelete)
	})
	s.router.Route("/comments", func(r chi.Router) {
		r.Post("/", comments.HandleCreate)
		r.Get("/", comments.HandleList)
		r.Get("/{id}", comments.HandleGet)
		r.Delete("/{id}", comments.HandleDelete)
	})
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start serves HTTP until ctx is cancelled or the process receives SIGINT
// or SIGTERM, then shuts down gracefully.
//
// GRACEFUL SHUTDOWN:
// 1. Stop accepting new HTTP connections
// 2. Wait for in-flight requests to finish (30s timeout)
// 3. Close the store (flushes the SQLite WAL, releases pool connections)
func (s *Server) Start(ctx context.Context) error {
	defer func() {
		if err := s.store.Close(); err != nil {
			s.logger.Error("failed to close store", slog.String("error", err.Error()))
		}
	}()

	srv := &http.Server{
		Addr:         s.config.Addr(),
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	serverErrors := make(chan error, 1)
	go func() {
		s.logger.Info("server starting",
			slog.Int("port", s.config.Port),
			slog.String("url", fmt.Sprintf("http://localhost:%d", s.config.Port)),
			slog.String("driver", s.config.Driver),
		)
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}

	case <-ctx.Done():
		s.logger.Info("shutdown signal received")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
		s.logger.Info("server stopped gracefully")
	}

	return nil
}
