package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/ziadkadry99/toldyou-button/internal/audit"
	"github.com/ziadkadry99/toldyou-button/internal/configs"
	"github.com/ziadkadry99/toldyou-button/internal/db"
	"github.com/ziadkadry99/toldyou-button/internal/i18n"
	"github.com/ziadkadry99/toldyou-button/internal/legal"
	"github.com/ziadkadry99/toldyou-button/internal/observability"
	"github.com/ziadkadry99/toldyou-button/internal/shopify"
	"github.com/ziadkadry99/toldyou-button/internal/widget"
)

// Config holds server configuration.
type Config struct {
	Addr string
	// PublicURL overrides the request-derived base URL in embed code.
	PublicURL     string
	CORSOrigins   []string
	ShopifySecret string
}

// Server is the HTTP API that stores button configurations and serves the
// loader script.
type Server struct {
	cfg        Config
	db         *db.DB
	configs    *configs.Service
	logger     *zap.Logger
	router     chi.Router
	httpServer *http.Server
}

// New creates a server with all routes registered.
func New(cfg Config, database *db.DB, svc *configs.Service, logger *zap.Logger) (*Server, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	validator, err := configs.NewValidator()
	if err != nil {
		return nil, fmt.Errorf("building validator: %w", err)
	}

	s := &Server{
		cfg:     cfg,
		db:      database,
		configs: svc,
		logger:  logger,
	}
	s.router = s.buildRouter(validator)
	return s, nil
}

// buildRouter creates and configures the chi router with all routes.
func (s *Server) buildRouter(validator *configs.Validator) chi.Router {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(observability.RequestLogger(s.logger))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	// CORS
	r.Use(cors.Handler(corsOptions(s.cfg.CORSOrigins)))

	// Health check
	r.Get("/healthz", s.handleHealth())

	i18n.RegisterRoutes(r)
	widget.RegisterRoutes(r, s.configs.Generator())
	configs.RegisterRoutes(r, s.configs, validator, s.cfg.PublicURL)
	shopify.RegisterRoutes(r, s.cfg.ShopifySecret, audit.NewStore(s.db))
	legal.RegisterRoutes(r, legal.NewRenderer())

	return r
}

func corsOptions(origins []string) cors.Options {
	opts := cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "Accept-Language"},
		ExposedHeaders: []string{"ETag"},
		MaxAge:         300,
	}
	if len(origins) == 0 {
		opts.AllowedOrigins = []string{"*"}
	}
	// Credentials are only meaningful for an explicit origin list.
	for _, o := range opts.AllowedOrigins {
		if o == "*" {
			return opts
		}
	}
	opts.AllowCredentials = true
	return opts
}

func (s *Server) handleHealth() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if err := s.db.PingContext(r.Context()); err != nil {
			observability.FromContext(r.Context()).Error("health check failed", zap.Error(err))
			w.WriteHeader(http.StatusServiceUnavailable)
			json.NewEncoder(w).Encode(map[string]string{"status": "unavailable"})
			return
		}
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(map[string]string{
			"status":  "ok",
			"version": s.configs.Generator().Version(),
		})
	}
}

// Router returns the chi router for registering additional routes.
func (s *Server) Router() chi.Router { return s.router }

// Database returns the database connection.
func (s *Server) Database() *db.DB { return s.db }

// Start begins listening on the configured address.
func (s *Server) Start() error {
	s.httpServer = &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      120 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	s.logger.Info("toldyou server listening", zap.String("addr", s.cfg.Addr))
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer != nil {
		return s.httpServer.Shutdown(ctx)
	}
	return nil
}
