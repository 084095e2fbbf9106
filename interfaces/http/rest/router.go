package rest

import (
	"net/http"

	"railrouter/application/ports"
	"railrouter/application/services"
	"railrouter/infrastructure/config"
	"railrouter/interfaces/http/rest/handlers"
	"railrouter/interfaces/http/rest/middleware"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"
)

// Router creates and configures the HTTP router
type Router struct {
	cfg        *config.Config
	calculator *services.RouteCalculatorService
	stats      *services.RouteStatsService
	stations   ports.StationRepository
	logger     *zap.Logger
}

// NewRouter creates a new router instance
func NewRouter(
	cfg *config.Config,
	calculator *services.RouteCalculatorService,
	stats *services.RouteStatsService,
	stations ports.StationRepository,
	logger *zap.Logger,
) *Router {
	return &Router{
		cfg:        cfg,
		calculator: calculator,
		stats:      stats,
		stations:   stations,
		logger:     logger,
	}
}

// Setup configures all routes and middleware
func (rt *Router) Setup() http.Handler {
	router := chi.NewRouter()

	// Global middleware
	router.Use(chimiddleware.RequestID)
	router.Use(chimiddleware.RealIP)
	router.Use(chimiddleware.Recoverer)
	router.Use(middleware.RequestLogger(rt.logger))

	if rt.cfg.EnableCORS {
		router.Use(cors.Handler(cors.Options{
			AllowedOrigins: []string{"*"},
			AllowedMethods: []string{"GET", "POST", "OPTIONS"},
			AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
			ExposedHeaders: []string{"X-Request-ID"},
			MaxAge:         300,
		}))
	}

	// Health check
	router.Get("/health", rt.healthCheck)
	router.Get("/ready", rt.readinessCheck)

	// API v1 routes
	router.Route("/api/v1", func(r chi.Router) {
		r.Route("/routes", func(r chi.Router) {
			routeHandler := handlers.NewRouteHandler(rt.calculator, rt.logger)
			r.Post("/", routeHandler.CalculateRoute)
			r.Get("/{routeID}", routeHandler.GetRoute)
		})

		r.Route("/stations", func(r chi.Router) {
			stationHandler := handlers.NewStationHandler(rt.stations, rt.logger)
			r.Get("/", stationHandler.ListStations)
			r.Get("/{stationID}", stationHandler.GetStation)
		})

		r.Route("/stats", func(r chi.Router) {
			statsHandler := handlers.NewStatsHandler(rt.stats, rt.logger)
			r.Get("/distances", statsHandler.GetDistances)
		})
	})

	return router
}

// healthCheck handles health check requests
func (rt *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"healthy"}`))
}

// readinessCheck handles readiness check requests. The service is ready
// once the station graph can be served from its backing store.
func (rt *Router) readinessCheck(w http.ResponseWriter, req *http.Request) {
	if _, err := rt.stations.List(req.Context()); err != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte(`{"status":"not ready"}`))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ready"}`))
}
