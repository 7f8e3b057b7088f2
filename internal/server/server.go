// Package server provides the HTTP server and routing for Hedgewise.
package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"

	"github.com/hedgewise/hedgewise/internal/config"
	"github.com/hedgewise/hedgewise/internal/database"
	"github.com/hedgewise/hedgewise/internal/events"
	"github.com/hedgewise/hedgewise/internal/modules/analysis"
	analysishandlers "github.com/hedgewise/hedgewise/internal/modules/analysis/handlers"
	"github.com/hedgewise/hedgewise/internal/modules/snapshots"
	snapshothandlers "github.com/hedgewise/hedgewise/internal/modules/snapshots/handlers"
)

// Config holds server configuration
type Config struct {
	Log        zerolog.Logger
	Config     *config.Config
	SnapshotDB *database.DB
	Analyzer   analysis.Analyzer  // cached decorator in production
	Service    *analysis.Service  // direct access for scores and tour
	Cache      *analysis.CachedAnalyzer
	Snapshots  *snapshots.Service
	Bus        *events.Bus
	Port       int
	DevMode    bool
}

// Server represents the HTTP server
type Server struct {
	router         *chi.Mux
	server         *http.Server
	log            zerolog.Logger
	cfg            *config.Config
	snapshotDB     *database.DB
	analyzer       analysis.Analyzer
	service        *analysis.Service
	cache          *analysis.CachedAnalyzer
	snapshots      *snapshots.Service
	bus            *events.Bus
	systemHandlers *SystemHandlers
}

// New creates a new HTTP server
func New(cfg Config) *Server {
	s := &Server{
		router:     chi.NewRouter(),
		log:        cfg.Log.With().Str("component", "server").Logger(),
		cfg:        cfg.Config,
		snapshotDB: cfg.SnapshotDB,
		analyzer:   cfg.Analyzer,
		service:    cfg.Service,
		cache:      cfg.Cache,
		snapshots:  cfg.Snapshots,
		bus:        cfg.Bus,
	}

	s.systemHandlers = NewSystemHandlers(cfg.Log, cfg.Config.DataDir, cfg.SnapshotDB, cfg.Cache)

	s.setupMiddleware(cfg.DevMode)
	s.setupRoutes()

	s.server = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s
}

// setupMiddleware configures middleware
func (s *Server) setupMiddleware(devMode bool) {
	// Recovery from panics
	s.router.Use(middleware.Recoverer)

	// Request ID
	s.router.Use(middleware.RequestID)

	// Real IP
	s.router.Use(middleware.RealIP)

	// Logging
	s.router.Use(s.loggingMiddleware)

	// Timeout
	s.router.Use(middleware.Timeout(60 * time.Second))

	// CORS
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Compress responses
	if !devMode {
		s.router.Use(middleware.Compress(5))
	}
}

// setupRoutes configures all routes
func (s *Server) setupRoutes() {
	// Health check outside the API namespace for load balancers
	s.router.Get("/health", s.systemHandlers.HandleHealth)

	s.router.Route("/api", func(r chi.Router) {
		// Websocket event stream - must be registered before generic routes
		eventsStreamHandler := NewEventsStreamHandler(s.bus, s.log)
		r.Get("/events/ws", eventsStreamHandler.ServeHTTP)

		analysisHandler := analysishandlers.NewHandler(s.analyzer, s.service, s.snapshots, s.bus, s.cache, s.log)
		analysisHandler.RegisterRoutes(r)

		snapshotHandler := snapshothandlers.NewHandler(s.snapshots, s.log)
		snapshotHandler.RegisterRoutes(r)

		r.Get("/health", s.systemHandlers.HandleHealth)
		r.Route("/system", func(r chi.Router) {
			r.Get("/stats", s.systemHandlers.HandleSystemStats)
			r.Get("/database/stats", s.systemHandlers.HandleDatabaseStats)
		})
	})
}

// Start starts the HTTP server
func (s *Server) Start() error {
	s.log.Info().Int("port", s.cfg.Port).Msg("Starting HTTP server")
	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	s.log.Info().Msg("Shutting down HTTP server")
	return s.server.Shutdown(ctx)
}

// Router exposes the chi router for tests
func (s *Server) Router() http.Handler {
	return s.router
}

// loggingMiddleware logs HTTP requests
func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		s.log.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Int("bytes", ww.BytesWritten()).
			Dur("duration_ms", time.Since(start)).
			Str("request_id", middleware.GetReqID(r.Context())).
			Msg("HTTP request")
	})
}
