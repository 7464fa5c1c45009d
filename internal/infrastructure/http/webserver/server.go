// Package webserver provides the web frontend HTTP server. It exposes the
// view models and user actions as JSON endpoints; all recipe intelligence
// lives behind the application services.
package webserver

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/mealmate/v2/internal/application/state"
	"github.com/mealmate/v2/internal/infrastructure/config"
	"github.com/mealmate/v2/internal/infrastructure/monitoring"
	"github.com/mealmate/v2/internal/ports/inbound"
	"go.uber.org/zap"
)

// WebServer is the web frontend HTTP server
type WebServer struct {
	config   *config.Config
	logger   *zap.Logger
	server   *http.Server
	router   *chi.Mux
	recipes  inbound.RecipeService
	planner  inbound.PlannerService
	appState *state.AppState
	metrics  *monitoring.Metrics
	limiter  *clientLimiter
}

// NewWebServer creates a new web frontend server instance
func NewWebServer(
	cfg *config.Config,
	log *zap.Logger,
	recipes inbound.RecipeService,
	planner inbound.PlannerService,
	appState *state.AppState,
	metrics *monitoring.Metrics,
) *WebServer {
	s := &WebServer{
		config:   cfg,
		logger:   log.Named("webserver"),
		recipes:  recipes,
		planner:  planner,
		appState: appState,
		metrics:  metrics,
		limiter:  newClientLimiter(cfg.Server.RateLimitRPS, cfg.Server.RateLimitBurst),
	}

	s.router = s.setupRoutes()
	s.server = &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      s.router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}
	return s
}

// setupRoutes configures the web frontend routes
func (s *WebServer) setupRoutes() *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)
	r.Use(s.metricsMiddleware)
	r.Use(s.rateLimitMiddleware)

	r.Get("/health", s.handleHealth)
	r.Handle("/metrics", s.metrics.Handler())

	// View models
	r.Get("/views/dashboard", s.handleDashboard)
	r.Get("/views/folder-options", s.handleFolderOptions)
	r.Get("/views/grocery", s.handleGroceryView)
	r.Get("/search", s.handleSearch)

	// Folder actions
	r.Post("/folders", s.handleCreateFolder)
	r.Put("/folders/{id}", s.handleRenameFolder)
	r.Delete("/folders/{id}", s.handleDeleteFolder)
	r.Get("/folders/{id}/recipes", s.handleFolderRecipes)

	// Recipe actions
	r.Get("/recipes/{folderID}/{name}", s.handleRecipeDetails)
	r.Post("/recipes/manual", s.handleSaveManual)
	r.Post("/recipes/extract", s.handleExtract)
	r.Post("/recipes/save-search-result", s.handleSaveSearchResult)
	r.Post("/recipes/move", s.handleMoveRecipe)
	r.Delete("/recipes/{folderID}/{name}", s.handleDeleteRecipe)

	// Meal plans and grocery lists
	r.Post("/meal-plans", s.handlePlanMeals)
	r.Get("/grocery-lists", s.handleSavedLists)
	r.Get("/grocery-lists/{id}", s.handleViewList)
	r.Delete("/grocery-lists/{id}", s.handleDeleteList)
	r.Post("/grocery-lists/save-current", s.handleSaveCurrent)

	// Checklist
	r.Post("/checklist/{index}/toggle", s.handleToggleItem)
	r.Post("/checklist/set-all", s.handleSetAllItems)

	return r
}

// Start begins serving; it blocks until the listener fails or closes
func (s *WebServer) Start() error {
	s.logger.Info("starting web frontend",
		zap.String("addr", s.server.Addr),
		zap.String("backend", s.config.Backend.URL),
	)
	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("web server failed: %w", err)
	}
	return nil
}

// Shutdown gracefully stops the server
func (s *WebServer) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down web frontend")
	return s.server.Shutdown(ctx)
}

// Router exposes the handler for tests
func (s *WebServer) Router() http.Handler {
	return s.router
}

func (s *WebServer) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.respond(w, http.StatusOK, map[string]string{
		"status":  "healthy",
		"service": s.config.App.Name,
		"version": s.config.App.Version,
		"time":    time.Now().UTC().Format(time.RFC3339),
	})
}

// respond writes v as JSON with the given status
func (s *WebServer) respond(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("failed to encode response", zap.Error(err))
	}
}
