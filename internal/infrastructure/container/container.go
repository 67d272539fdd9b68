// Package container provides dependency injection using Uber FX
package container

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"net/http"

	groceryapp "github.com/alchemorsel/mealplan/internal/application/grocery"
	mealplanapp "github.com/alchemorsel/mealplan/internal/application/mealplan"
	pantryapp "github.com/alchemorsel/mealplan/internal/application/pantry"
	substitutionapp "github.com/alchemorsel/mealplan/internal/application/substitution"
	userapp "github.com/alchemorsel/mealplan/internal/application/user"
	"github.com/alchemorsel/mealplan/internal/infrastructure/cache"
	"github.com/alchemorsel/mealplan/internal/infrastructure/config"
	"github.com/alchemorsel/mealplan/internal/infrastructure/http/server"
	"github.com/alchemorsel/mealplan/internal/infrastructure/monitoring"
	gormrepo "github.com/alchemorsel/mealplan/internal/infrastructure/persistence/gorm"
	"github.com/alchemorsel/mealplan/internal/infrastructure/persistence/memory"
	"github.com/alchemorsel/mealplan/internal/ports/outbound"
	"github.com/alchemorsel/mealplan/pkg/healthcheck"
	"github.com/alchemorsel/mealplan/pkg/logger"

	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Module provides all dependency injection modules
var Module = fx.Options(
	ConfigModule,
	LoggerModule,
	DatabaseModule,
	CacheModule,
	RepositoryModule,
	ServiceModule,
	MonitoringModule,
	HTTPModule,
	LifecycleModule,
)

// ConfigModule provides configuration
var ConfigModule = fx.Provide(
	func() (*config.Config, error) {
		return config.Load("")
	},
)

// LoggerModule provides logging
var LoggerModule = fx.Provide(
	func(cfg *config.Config) (*zap.Logger, error) {
		return logger.New(logger.Config{
			Level:       cfg.App.LogLevel,
			Format:      cfg.App.LogFormat,
			Development: cfg.App.Debug,
			OutputPaths: cfg.App.LogOutputs,
		})
	},
)

// DatabaseModule provides database connections
var DatabaseModule = fx.Provide(
	gormrepo.NewDatabase,
)

// CacheModule provides the Redis client and the cache repository.
// The client is nil when Redis is disabled and the in-process cache
// takes over.
var CacheModule = fx.Provide(
	func(cfg *config.Config, log *zap.Logger) (*redis.Client, error) {
		if !cfg.Redis.Enabled {
			return nil, nil
		}
		return cache.NewRedisClient(cfg, log)
	},

	func(client *redis.Client, log *zap.Logger) outbound.CacheRepository {
		if client == nil {
			log.Info("Using in-memory cache")
			return memory.NewCacheRepository()
		}
		return cache.NewRedisCacheRepository(client)
	},
)

// RepositoryModule provides repository implementations
var RepositoryModule = fx.Provide(
	gormrepo.NewMealPlanRepository,
	gormrepo.NewUserRepository,
	gormrepo.NewPantryRepository,
	gormrepo.NewGroceryRepository,
	memory.NewPlanArena,

	// Recipe catalog with read-through caching in front of the
	// database-backed catalog.
	func(db *gorm.DB, cacheRepo outbound.CacheRepository, cfg *config.Config, log *zap.Logger) outbound.RecipeCatalog {
		catalog := gormrepo.NewRecipeRepository(db)
		return cache.NewCachedRecipeCatalog(catalog, cacheRepo, cfg.Redis.ProfileTTL, log)
	},
)

// ServiceModule provides application services
var ServiceModule = fx.Provide(
	substitutionapp.NewService,
	mealplanapp.NewService,
	pantryapp.NewService,
	groceryapp.NewService,

	func(userRepo outbound.UserRepository, cfg *config.Config, log *zap.Logger) (*userapp.Service, error) {
		secret, err := jwtSecret(cfg, log)
		if err != nil {
			return nil, err
		}
		return userapp.NewService(userRepo, secret, cfg.Auth.JWTExpiration, log), nil
	},
)

// jwtSecret returns the configured token signing secret. Outside
// production an unset secret is replaced with a random ephemeral one,
// so a known default can never sign tokens on a reachable host.
// Tokens issued under an ephemeral secret do not survive a restart.
func jwtSecret(cfg *config.Config, log *zap.Logger) (string, error) {
	if cfg.Auth.JWTSecret != "" {
		return cfg.Auth.JWTSecret, nil
	}
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	log.Warn("auth.jwt_secret is not configured, using an ephemeral signing secret",
		zap.String("environment", cfg.App.Environment),
	)
	return hex.EncodeToString(buf), nil
}

// MonitoringModule provides metrics and health checks
var MonitoringModule = fx.Provide(
	monitoring.NewMetrics,

	func(cfg *config.Config, log *zap.Logger, db *gorm.DB, redisClient *redis.Client) *healthcheck.HealthCheck {
		health := healthcheck.New(cfg.App.Version, log)
		health.Register("database", healthcheck.NewDatabaseChecker(db))
		if redisClient != nil {
			health.Register("redis", healthcheck.NewRedisChecker(redisClient))
		}
		return health
	},
)

// HTTPModule provides the HTTP server
var HTTPModule = fx.Provide(
	server.NewServer,
)

// LifecycleModule provides lifecycle hooks
var LifecycleModule = fx.Invoke(
	RegisterLifecycleHooks,
)

// RegisterLifecycleHooks registers application lifecycle hooks
func RegisterLifecycleHooks(
	lc fx.Lifecycle,
	cfg *config.Config,
	log *zap.Logger,
	db *gorm.DB,
	srv *server.Server,
) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info("Starting application",
				zap.String("version", cfg.App.Version),
				zap.String("environment", cfg.App.Environment),
			)

			go func() {
				if err := srv.Start(); err != nil && err != http.ErrServerClosed {
					log.Fatal("Failed to start HTTP server", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info("Shutting down application")

			if err := srv.Shutdown(ctx); err != nil {
				log.Error("Failed to shutdown HTTP server", zap.Error(err))
			}

			sqlDB, err := db.DB()
			if err == nil {
				if err := sqlDB.Close(); err != nil {
					log.Error("Failed to close database connection", zap.Error(err))
				}
			}

			_ = log.Sync()
			return nil
		},
	})
}
