package app

import (
	"context"
	"fmt"
	"fxconvert/internal/adapters"
	"fxconvert/internal/platform/db"
	httpserver "fxconvert/internal/platform/http"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"fxconvert/internal/adapters/cache"
	"fxconvert/internal/adapters/httpclient"
	"fxconvert/internal/adapters/memory"
	"fxconvert/internal/adapters/postgres"
	fxredis "fxconvert/internal/adapters/redis"
	"fxconvert/internal/api"
	"fxconvert/internal/auth"
	"fxconvert/internal/config"
	"fxconvert/internal/metrics"
	"fxconvert/internal/rate"
	"fxconvert/internal/rate/handler"
	"fxconvert/internal/ratelimit"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// Run wires the application components, starts HTTP server and background jobs
func Run() error {
	appCfg, err := config.Init()
	if err != nil {
		return err
	}
	// Logger
	logrus.SetOutput(os.Stdout)
	if parsedLvl, parseErr := logrus.ParseLevel(appCfg.Logging.Level); parseErr != nil {
		logrus.SetLevel(logrus.InfoLevel)
	} else {
		logrus.SetLevel(parsedLvl)
	}
	logrus.Info("✅ Config initialization successful")

	// Root context bound to OS signals for graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Bounded context for startup operations (DB connect, migrations, seeding)
	startupCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	// Metrics
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	appMetrics := metrics.NewMetrics(registry)
	var metricsHandler http.Handler
	if appCfg.Metrics.Enabled {
		metricsHandler = promhttp.HandlerFor(registry, promhttp.HandlerOpts{})
	}

	// Rate store
	rateRepo, closeRepo, err := openRateRepository(startupCtx, appCfg)
	if err != nil {
		logrus.WithError(err).Error("Failed to open rate storage")
		return err
	}
	defer closeRepo()
	logrus.Infof("✅ Rate storage ready (%s)", appCfg.Storage.Driver)

	// Services
	rateValidator := rate.NewValidator(rate.CodeSet(appCfg.Currencies.Supported))
	rateService := rate.NewService(rateRepo, rateValidator, appMetrics)
	resolver := rate.NewResolver(rateRepo, rateValidator, appCfg.Conversion.MaxHops, appMetrics)
	logrus.Infof("✅ Conversion resolver ready (max hops %d)", resolver.MaxHops())

	if seeded, seedErr := seedRates(startupCtx, rateService, appCfg.SeedRates); seedErr != nil {
		logrus.WithError(seedErr).Error("Failed to seed rates")
		return seedErr
	} else if seeded > 0 {
		logrus.Infof("✅ Seeded %d rates", seeded)
	}

	// Upstream sync
	if appCfg.Sync.Enabled {
		httpTimeout := time.Duration(appCfg.HTTPClient.TimeoutSeconds) * time.Second
		if httpTimeout <= 0 {
			httpTimeout = 10 * time.Second
		}
		rateClient := httpclient.NewExchangeRateClient(
			&http.Client{Timeout: httpTimeout},
			strings.TrimSuffix(appCfg.ExchangeRateAPI.BaseURL, "/"),
			appCfg.ExchangeRateAPI.APIKey,
		)
		scheduler := rate.NewSyncScheduler(rateService, rateClient, appCfg.Sync.Bases, appCfg.Sync.Interval, nil)
		// Ensure scheduler stops before storage closes
		defer func() {
			if shutDownErr := scheduler.Shutdown(); shutDownErr != nil {
				logrus.Errorf("Scheduler shutdown error: %v", shutDownErr)
			}
		}()
		if startErr := scheduler.Start(ctx); startErr != nil {
			logrus.WithError(startErr).Error("Failed to start sync scheduler")
			return startErr
		}
		logrus.Infof("✅ Rate sync scheduled every %s", appCfg.Sync.Interval)
	}

	// Access control
	credentialCache, err := cache.NewCredentialCache(appCfg.Auth.CacheSize)
	if err != nil {
		return err
	}
	defer credentialCache.Close()
	access := auth.NewAccessControl(auth.NewJWTValidator(appCfg.Auth.JWTSecret), credentialCache, appCfg.Auth.CacheTTL, nil)

	// Rate limiter
	windowStore, closeStore, err := openWindowStore(ctx, startupCtx, appCfg)
	if err != nil {
		logrus.WithError(err).Error("Failed to open rate limit store")
		return err
	}
	// Ensure janitor stops and connections close before exit
	defer closeStore()
	limiter := ratelimit.NewLimiter(windowStore, nil, appCfg.RateLimit.Requests, appCfg.RateLimit.Window)
	logrus.Infof("✅ Rate limiter ready (%s, %d per %s)", appCfg.RateLimit.Store, appCfg.RateLimit.Requests, limiter.Window())

	// Handlers and router
	rateHandler := handler.NewRateHandler(rateService, resolver)
	router := api.NewRouter(rateHandler, access, limiter, appMetrics, metricsHandler)

	logrus.Info("Starting http server")
	// Block until context is canceled, then perform graceful shutdown.
	if serverErr := httpserver.Start(ctx, appCfg.HTTPServer, router); serverErr != nil {
		// Cancel the root context to stop background jobs and other in-flight work
		stop()
		logrus.Errorf("HTTP server error: %v", serverErr)
		return serverErr
	}
	return nil
}

func openRateRepository(ctx context.Context, cfg *config.AppConfig) (adapters.RateRepository, func(), error) {
	switch cfg.Storage.Driver {
	case config.StoragePostgres:
		pool, err := db.CreatePoolAndPing(ctx, cfg.DbServer)
		if err != nil {
			return nil, nil, fmt.Errorf("connect to postgres: %w", err)
		}
		if err = db.Migrate(ctx, pool); err != nil {
			pool.Close()
			return nil, nil, err
		}
		return postgres.NewRateRepository(pool), pool.Close, nil
	default:
		return memory.NewRateRepository(nil), func() {}, nil
	}
}

// openWindowStore builds the limiter backend. The memory store gets a janitor bound to ctx.
func openWindowStore(ctx, startupCtx context.Context, cfg *config.AppConfig) (adapters.WindowStore, func(), error) {
	switch cfg.RateLimit.Store {
	case config.LimiterStoreRedis:
		client, err := fxredis.Connect(startupCtx, &redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			return nil, nil, err
		}
		return fxredis.NewWindowStore(client), func() { _ = client.Close() }, nil
	default:
		store := ratelimit.NewMemoryStore()
		janitor := ratelimit.NewJanitor(store, nil, cfg.RateLimit.Window, cfg.RateLimit.SweepInterval)
		if err := janitor.Start(ctx); err != nil {
			return nil, nil, fmt.Errorf("start rate limit janitor: %w", err)
		}
		return store, func() {
			if shutDownErr := janitor.Shutdown(); shutDownErr != nil {
				logrus.Errorf("Janitor shutdown error: %v", shutDownErr)
			}
		}, nil
	}
}

func seedRates(ctx context.Context, svc *rate.Service, seeds []config.SeedRate) (int, error) {
	if len(seeds) == 0 {
		return 0, nil
	}
	inputs := make([]rate.CreateRateInput, 0, len(seeds))
	for _, s := range seeds {
		value, err := decimal.NewFromString(s.Rate)
		if err != nil {
			return 0, fmt.Errorf("seed rate %s/%s: invalid rate %q: %w", s.From, s.To, s.Rate, err)
		}
		inputs = append(inputs, rate.CreateRateInput{
			FromCurrency: s.From,
			ToCurrency:   s.To,
			Rate:         value,
			Source:       s.Source,
		})
	}
	return rate.Seed(ctx, svc, inputs)
}
