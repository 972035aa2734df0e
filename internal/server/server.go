// Package server wires the whole portal together: database, document store,
// services, handlers, middleware, and routes. main.go stays minimal — it
// loads config and calls New/Start.
package server

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

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/shahriar/govjobs/internal/apperror"
	"github.com/shahriar/govjobs/internal/auth"
	"github.com/shahriar/govjobs/internal/config"
	"github.com/shahriar/govjobs/internal/handler"
	"github.com/shahriar/govjobs/internal/middleware"
	sqliteRepo "github.com/shahriar/govjobs/internal/repository/sqlite"
	"github.com/shahriar/govjobs/internal/service"
	"github.com/shahriar/govjobs/internal/storage"
)

// Server owns the router and the resources that must be released on
// shutdown, most importantly the database connection.
type Server struct {
	router *chi.Mux
	cfg    *config.Config
	logger *slog.Logger
	db     *sqliteRepo.DB
}

// New assembles the full dependency chain:
//
//	sqlite.DB → services → handlers → routes
//
// Each layer receives only the interfaces it needs; handlers never touch
// the database, services never touch HTTP. New also seeds the sample
// circular and bootstraps the admin account when config asks for them.
func New(cfg *config.Config, logger *slog.Logger) (*Server, error) {
	db, err := sqliteRepo.New(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Server{
		router: chi.NewRouter(),
		cfg:    cfg,
		logger: logger,
		db:     db,
	}

	if err := s.setupRoutes(); err != nil {
		db.Close()
		return nil, fmt.Errorf("setting up routes: %w", err)
	}

	if err := s.bootstrap(context.Background()); err != nil {
		db.Close()
		return nil, fmt.Errorf("bootstrapping data: %w", err)
	}

	return s, nil
}

// setupRoutes configures middleware and mounts every route. Middleware
// runs in the order it is added.
func (s *Server) setupRoutes() error {
	s.router.Use(chimiddleware.RequestID)
	s.router.Use(chimiddleware.RealIP)
	s.router.Use(chimiddleware.Recoverer)
	s.router.Use(middleware.Logger(s.logger))

	docs, err := storage.NewDiskStore(s.cfg.UploadDir)
	if err != nil {
		return fmt.Errorf("creating document store: %w", err)
	}

	tokens, err := auth.NewTokenService(s.cfg.JWTSecret)
	if err != nil {
		return fmt.Errorf("creating token service: %w", err)
	}

	identity := service.NewIdentityService(s.db, auth.NewPasswordService(), s.logger)
	catalog := service.NewCatalogService(s.db, s.logger)
	apps := service.NewApplicationService(s.db, s.db, docs, s.logger)
	reports := service.NewReportService(s.db, s.logger)

	authHandler := handler.NewAuthHandler(identity, tokens, s.logger)
	jobHandler := handler.NewJobHandler(catalog, s.logger)
	appHandler := handler.NewApplicationHandler(apps, s.logger)
	reportHandler := handler.NewReportHandler(reports, s.logger)

	s.router.Route("/api", func(r chi.Router) {
		// Public surface
		r.Post("/register", authHandler.HandleRegister)
		r.Post("/login", authHandler.HandleLogin)
		r.Post("/logout", authHandler.HandleLogout)
		r.Get("/jobs", jobHandler.HandleList)
		r.Get("/jobs/{id}", jobHandler.HandleGet)

		// Applicant surface
		r.Group(func(r chi.Router) {
			r.Use(auth.RequireAuth(tokens))
			r.Post("/jobs/{jobID}/apply", appHandler.HandleSubmit)
			r.Get("/applications", appHandler.HandleList)
		})

		// Admin surface
		r.Group(func(r chi.Router) {
			r.Use(auth.RequireAdmin(tokens))
			r.Get("/admin/stats", reportHandler.HandleCounts)
			r.Get("/admin/stats/jobs", reportHandler.HandlePerJob)
		})
	})

	s.router.Handle("/metrics", promhttp.Handler())

	return nil
}

// bootstrap seeds initial data on an empty store. Both steps are
// idempotent, so restarts are safe.
func (s *Server) bootstrap(ctx context.Context) error {
	if s.cfg.SeedJobs {
		if err := s.db.SeedSampleCircular(ctx); err != nil {
			return fmt.Errorf("seeding sample circular: %w", err)
		}
	}

	// The admin is an ordinary account with the admin role, created from
	// config on first start. An existing account just means a restart.
	if s.cfg.AdminNID != "" && s.cfg.AdminPassword != "" {
		identity := service.NewIdentityService(s.db, auth.NewPasswordService(), s.logger)
		_, err := identity.RegisterAdmin(ctx, s.cfg.AdminNID, "Portal Admin", s.cfg.AdminEmail, s.cfg.AdminPassword)
		if err != nil && !errors.Is(err, apperror.ErrDuplicateIdentity) {
			return fmt.Errorf("bootstrapping admin account: %w", err)
		}
	}

	return nil
}

// Start runs the HTTP server until SIGINT/SIGTERM, then shuts down
// gracefully: stop accepting connections, drain in-flight requests, close
// the database so the WAL is flushed.
func (s *Server) Start() error {
	defer s.db.Close()

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", s.cfg.Port),
		Handler:      s.router,
		ReadTimeout:  30 * time.Second, // multipart uploads can be slow
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	serverErrors := make(chan error, 1)

	go func() {
		s.logger.Info("server starting",
			slog.Int("port", s.cfg.Port),
			slog.String("database", s.cfg.DBPath),
			slog.String("uploads", s.cfg.UploadDir),
		)
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}

	case sig := <-quit:
		s.logger.Info("shutdown signal received", slog.String("signal", sig.String()))

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
		s.logger.Info("server stopped gracefully")
	}

	return nil
}
