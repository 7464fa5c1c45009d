// Package container wires the application together using Uber FX
package container

import (
	"context"
	"os"

	groceryapp "github.com/mealmate/v2/internal/application/grocery"
	recipeapp "github.com/mealmate/v2/internal/application/recipe"
	"github.com/mealmate/v2/internal/application/state"
	"github.com/mealmate/v2/internal/infrastructure/api"
	"github.com/mealmate/v2/internal/infrastructure/config"
	"github.com/mealmate/v2/internal/infrastructure/http/webserver"
	"github.com/mealmate/v2/internal/infrastructure/monitoring"
	"github.com/mealmate/v2/internal/infrastructure/persistence/sqlite"
	"github.com/mealmate/v2/internal/ports/inbound"
	"github.com/mealmate/v2/internal/ports/outbound"
	"github.com/mealmate/v2/pkg/logger"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// Module provides all dependency injection modules
var Module = fx.Options(
	ConfigModule,
	LoggerModule,
	MonitoringModule,
	BackendModule,
	StorageModule,
	StateModule,
	ServiceModule,
	HTTPModule,
	LifecycleModule,
)

// ConfigModule provides configuration. MEALMATE_CONFIG points at an explicit
// config file; otherwise the default search path applies.
var ConfigModule = fx.Provide(
	func() (*config.Config, error) {
		return config.Load(os.Getenv("MEALMATE_CONFIG"))
	},
)

// LoggerModule provides logging
var LoggerModule = fx.Provide(
	func(cfg *config.Config) (*zap.Logger, error) {
		return logger.New(logger.Config{
			Level:       cfg.App.LogLevel,
			Format:      cfg.App.LogFormat,
			Development: cfg.App.Debug,
		})
	},
)

// MonitoringModule provides the Prometheus collectors, also exposed as the
// refresh recorder of the recipe service
var MonitoringModule = fx.Provide(
	fx.Annotate(
		monitoring.NewMetrics,
		fx.As(fx.Self()),
		fx.As(new(recipeapp.RefreshRecorder)),
	),
)

// BackendModule provides the backend API client
var BackendModule = fx.Provide(
	fx.Annotate(
		api.NewClient,
		fx.As(new(outbound.Backend)),
	),
)

// StorageModule provides the durable checklist store
var StorageModule = fx.Provide(
	fx.Annotate(
		func(cfg *config.Config) (*sqlite.Store, error) {
			return sqlite.Open(cfg.Checklist.Path)
		},
		fx.As(new(outbound.ChecklistStore)),
	),
)

// StateModule provides the shared application state
var StateModule = fx.Provide(
	state.New,
)

// ServiceModule provides the application services
var ServiceModule = fx.Provide(
	recipeapp.NewService,
	groceryapp.NewChecklist,
	func(
		backend outbound.Backend,
		appState *state.AppState,
		checklist *groceryapp.Checklist,
		recipes inbound.RecipeService,
		log *zap.Logger,
	) inbound.PlannerService {
		return groceryapp.NewService(backend, appState, checklist, recipes, log)
	},
)

// HTTPModule provides the web frontend server
var HTTPModule = fx.Provide(
	webserver.NewWebServer,
)

// LifecycleModule registers the start and stop hooks
var LifecycleModule = fx.Invoke(
	RegisterLifecycleHooks,
)

// RegisterLifecycleHooks starts the web server and the periodic cache
// refresh, and stops them in reverse order on shutdown
func RegisterLifecycleHooks(
	lc fx.Lifecycle,
	cfg *config.Config,
	log *zap.Logger,
	recipes inbound.RecipeService,
	checklist *groceryapp.Checklist,
	server *webserver.WebServer,
) {
	refresher := state.NewRefresher(cfg.Refresh.Interval, recipes.RefreshAll, log)

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info("starting mealmate web frontend",
				zap.String("version", cfg.App.Version),
				zap.String("environment", cfg.App.Environment),
			)

			if err := checklist.Restore(ctx); err != nil {
				log.Warn("failed to restore checklist state", zap.Error(err))
			}

			// Initial fill; failures degrade to an empty cache
			if err := recipes.RefreshAll(ctx); err != nil {
				log.Warn("initial refresh failed", zap.Error(err))
			}
			refresher.Start()

			go func() {
				if err := server.Start(); err != nil {
					log.Error("web server exited", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			refresher.Stop()
			return server.Shutdown(ctx)
		},
	})
}
