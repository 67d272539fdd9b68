// Package server provides the HTTP server and route wiring
package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	userapp "github.com/alchemorsel/mealplan/internal/application/user"
	"github.com/alchemorsel/mealplan/internal/infrastructure/config"
	"github.com/alchemorsel/mealplan/internal/infrastructure/http/handlers"
	"github.com/alchemorsel/mealplan/internal/infrastructure/http/middleware"
	"github.com/alchemorsel/mealplan/internal/infrastructure/monitoring"
	"github.com/alchemorsel/mealplan/internal/ports/inbound"
	"github.com/alchemorsel/mealplan/pkg/healthcheck"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// Server represents the HTTP server
type Server struct {
	config        *config.Config
	logger        *zap.Logger
	router        *chi.Mux
	server        *http.Server
	substitutions inbound.SubstitutionService
	mealPlans     inbound.MealPlanService
	users         *userapp.Service
	pantry        inbound.PantryService
	grocery       inbound.GroceryService
	metrics       *monitoring.Metrics
	health        *healthcheck.HealthCheck
}

// NewServer creates a new HTTP server instance
func NewServer(
	cfg *config.Config,
	logger *zap.Logger,
	substitutions inbound.SubstitutionService,
	mealPlans inbound.MealPlanService,
	users *userapp.Service,
	pantry inbound.PantryService,
	grocery inbound.GroceryService,
	metrics *monitoring.Metrics,
	health *healthcheck.HealthCheck,
) *Server {
	s := &Server{
		config:        cfg,
		logger:        logger,
		substitutions: substitutions,
		mealPlans:     mealPlans,
		users:         users,
		pantry:        pantry,
		grocery:       grocery,
		metrics:       metrics,
		health:        health,
	}

	s.router = s.setupRouter()
	s.server = &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:           s.router,
		ReadTimeout:       cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
		ReadHeaderTimeout: 5 * time.Second,
		MaxHeaderBytes:    1 << 20, // 1 MB
	}

	return s
}

// setupRouter configures the HTTP router with middleware and routes
func (s *Server) setupRouter() *chi.Mux {
	r := chi.NewRouter()
	m := middleware.New(s.config, s.logger, s.metrics)

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(m.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(m.Security)
	r.Use(m.Metrics)
	r.Use(m.RateLimit)
	r.Use(chimiddleware.Timeout(30 * time.Second))
	r.Use(chimiddleware.Compress(5))

	// Operational endpoints
	r.Get(s.config.Monitoring.HealthCheckPath, s.health.Handler())
	r.Get(s.config.Monitoring.ReadinessPath, s.health.ReadinessHandler())
	r.Get("/live", s.health.LivenessHandler())
	if s.config.Monitoring.EnableMetrics {
		r.Handle(s.config.Monitoring.MetricsPath, promhttp.HandlerFor(
			s.metrics.Registry(),
			promhttp.HandlerOpts{},
		))
	}

	// API routes
	r.Route("/api/v1", func(r chi.Router) {
		s.setupAPIRoutes(r)
	})

	return r
}

// setupAPIRoutes configures REST API routes
func (s *Server) setupAPIRoutes(r chi.Router) {
	userHandlers := handlers.NewUserHandlers(s.users, s.logger)
	planHandlers := handlers.NewMealPlanHandlers(s.mealPlans, s.logger)
	subHandlers := handlers.NewSubstitutionHandlers(s.substitutions, s.metrics, s.logger)
	pantryHandlers := handlers.NewPantryHandlers(s.pantry, s.logger)
	groceryHandlers := handlers.NewGroceryHandlers(s.grocery, s.logger)

	// Public auth endpoints
	r.Route("/auth", func(r chi.Router) {
		r.Post("/register", userHandlers.Register)
		r.Post("/login", userHandlers.Login)
	})

	// Authenticated endpoints
	r.Group(func(r chi.Router) {
		r.Use(middleware.Authenticate(s.users))

		r.Route("/users/me", func(r chi.Router) {
			r.Get("/", userHandlers.GetProfile)
			r.Put("/preferences", userHandlers.UpdatePreferences)
		})

		r.Route("/meal-plans", func(r chi.Router) {
			r.Get("/", planHandlers.ListPlans)
			r.Post("/", planHandlers.CreatePlan)
			r.Route("/{planID}", func(r chi.Router) {
				r.Get("/", planHandlers.GetPlan)
				r.Delete("/", planHandlers.DeletePlan)

				r.Post("/meals/{mealIndex}/alternatives", subHandlers.FindAlternatives)
				r.Post("/meals/{mealIndex}/substitute", subHandlers.ApplySubstitution)
				r.Get("/substitutions", subHandlers.GetHistory)
				r.Post("/substitutions/undo", subHandlers.UndoSubstitution)
			})
		})

		r.Route("/pantry", func(r chi.Router) {
			r.Get("/", pantryHandlers.ListItems)
			r.Post("/", pantryHandlers.AddItem)
			r.Patch("/{itemID}", pantryHandlers.AdjustItem)
			r.Delete("/{itemID}", pantryHandlers.RemoveItem)
		})

		r.Route("/grocery-lists", func(r chi.Router) {
			r.Get("/", groceryHandlers.ListLists)
			r.Post("/", groceryHandlers.CreateList)
			r.Route("/{listID}", func(r chi.Router) {
				r.Post("/items", groceryHandlers.AddItem)
				r.Patch("/items/{itemID}", groceryHandlers.CheckOffItem)
				r.Post("/clear-checked", groceryHandlers.ClearChecked)
			})
		})
	})
}

// Start starts the HTTP server
func (s *Server) Start() error {
	s.logger.Info("Starting HTTP server",
		zap.String("address", s.server.Addr),
		zap.String("environment", s.config.App.Environment),
	)
	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the HTTP server
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down HTTP server")
	return s.server.Shutdown(ctx)
}
