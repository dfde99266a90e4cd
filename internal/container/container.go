package container

import (
	"context"
	"fmt"

	"github.com/SemBeacon/shortener/internal/handlers"
	"github.com/SemBeacon/shortener/internal/health"
	"github.com/SemBeacon/shortener/internal/middleware"
	"github.com/SemBeacon/shortener/internal/shortener"
	"github.com/SemBeacon/shortener/internal/store"
	"github.com/SemBeacon/shortener/internal/tenant"
	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	_ "github.com/danielgtaylor/huma/v2/formats/cbor" // CBOR format support for huma
	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/samber/do"
	"go.uber.org/zap"
)

// Options are the command-line options of the service. Port and log level
// fall back to the configuration file when left unset.
type Options struct {
	Port        int    `default:"0"              help:"Port to listen on (0 uses the configuration file)"     short:"p"`
	Config      string `default:"config.json"    help:"Path to the application configuration file"            short:"f"`
	Store       string `default:"redis"          help:"Key-value store backend (redis, postgres, or memory)"  short:"s"`
	RedisAddr   string `default:"localhost:6379" help:"Redis server address"                                  short:"r"`
	PostgresDSN string `default:""               help:"PostgreSQL connection string (store=postgres)"`
	LogLevel    string `default:""               help:"Log level (overrides the configuration file)"`
	LogFormat   string `default:"console"        help:"Log output format (console or json)"`
}

// ConfigPackage provides the loaded tenant configuration.
func ConfigPackage(injector *do.Injector) {
	do.Provide(injector, func(i *do.Injector) (*tenant.Config, error) {
		options := do.MustInvoke[*Options](i)

		return tenant.Load(options.Config)
	})
}

// LoggerPackage provides the process logger. The log level comes from the
// --log-level option, falling back to the configuration file and then "info".
func LoggerPackage(injector *do.Injector) {
	do.Provide(injector, func(i *do.Injector) (*zap.Logger, error) {
		options := do.MustInvoke[*Options](i)
		cfg := do.MustInvoke[*tenant.Config](i)

		level := options.LogLevel
		if level == "" {
			level = cfg.Log.Level
		}

		if level == "" {
			level = "info"
		}

		var zapCfg zap.Config
		if options.LogFormat == "json" {
			zapCfg = zap.NewProductionConfig()
		} else {
			zapCfg = zap.NewDevelopmentConfig()
		}

		parsed, err := zap.ParseAtomicLevel(level)
		if err != nil {
			return nil, fmt.Errorf("invalid log level %q: %w", level, err)
		}

		zapCfg.Level = parsed

		return zapCfg.Build()
	})
}

// TenantPackage provides the application registry and logs the loaded
// applications along with their keyspace sizes.
func TenantPackage(injector *do.Injector) {
	do.Provide(injector, func(i *do.Injector) (*tenant.Registry, error) {
		cfg := do.MustInvoke[*tenant.Config](i)
		logger := do.MustInvoke[*zap.Logger](i)

		for _, app := range cfg.Applications {
			logger.Info("loaded application",
				zap.String("id", app.ID),
				zap.String("name", app.Name),
			)
			logger.Debug("application keyspace",
				zap.String("id", app.ID),
				zap.Float64("combinations", app.Keyspace()),
			)
		}

		return tenant.NewRegistry(cfg.Applications), nil
	})
}

// RedisPackage provides the shared Redis client.
func RedisPackage(injector *do.Injector) {
	do.Provide(injector, func(i *do.Injector) (*redis.Client, error) {
		options := do.MustInvoke[*Options](i)

		return redis.NewClient(&redis.Options{
			Addr: options.RedisAddr,
		}), nil
	})
}

// PostgresPackage provides the shared PostgreSQL pool.
func PostgresPackage(injector *do.Injector) {
	do.Provide(injector, func(i *do.Injector) (*pgxpool.Pool, error) {
		options := do.MustInvoke[*Options](i)

		return pgxpool.New(context.Background(), options.PostgresDSN)
	})
}

// StorePackage provides the key-value store selected by the --store option.
func StorePackage(injector *do.Injector) {
	do.Provide(injector, func(i *do.Injector) (shortener.KV, error) {
		options := do.MustInvoke[*Options](i)

		switch options.Store {
		case "redis":
			client := do.MustInvoke[*redis.Client](i)

			return store.NewRedisStore(client), nil
		case "postgres":
			pool := do.MustInvoke[*pgxpool.Pool](i)

			return store.NewPostgresStore(pool), nil
		case "memory":
			return store.NewMemoryStore(), nil
		default:
			return nil, fmt.Errorf("unknown store backend %q", options.Store)
		}
	})
}

// EnginePackage provides the identifier allocator and the mapping engine.
func EnginePackage(injector *do.Injector) {
	do.Provide(injector, func(i *do.Injector) (*shortener.Engine, error) {
		kv := do.MustInvoke[shortener.KV](i)
		logger := do.MustInvoke[*zap.Logger](i)

		allocator := shortener.NewAllocator(kv, nil, 0)

		return shortener.NewEngine(kv, allocator, logger), nil
	})
}

// HTTPPackage provides the router and the huma API with all routes and
// middleware registered.
func HTTPPackage(injector *do.Injector) {
	do.Provide(injector, func(i *do.Injector) (*chi.Mux, error) {
		logger := do.MustInvoke[*zap.Logger](i)

		router := chi.NewMux()
		router.Use(middleware.RequestID)
		router.Use(middleware.RequestLogger(logger))
		router.Use(middleware.CORS)

		return router, nil
	})

	do.Provide(injector, func(i *do.Injector) (huma.API, error) {
		router := do.MustInvoke[*chi.Mux](i)
		registry := do.MustInvoke[*tenant.Registry](i)
		engine := do.MustInvoke[*shortener.Engine](i)
		kv := do.MustInvoke[shortener.KV](i)
		logger := do.MustInvoke[*zap.Logger](i)

		api := humachi.New(router, huma.DefaultConfig("URL Shortener", "1.0.0"))

		handlers.RegisterRoutes(api, handlers.NewURLHandler(engine, registry, logger))

		checker, ok := kv.(health.Checker)
		if !ok {
			checker = health.CheckerFunc(func(context.Context) error { return nil })
		}

		health.RegisterRoutes(api, health.NewHandler(checker))

		return api, nil
	})
}
