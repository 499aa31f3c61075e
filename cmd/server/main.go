package main

import (
	"log"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/ticketscan/ticketscan/internal/aggregator"
	"github.com/ticketscan/ticketscan/internal/cache"
	"github.com/ticketscan/ticketscan/internal/config"
	"github.com/ticketscan/ticketscan/internal/handler"
	"github.com/ticketscan/ticketscan/internal/providers"
	"github.com/ticketscan/ticketscan/internal/ratelimit"
	"github.com/ticketscan/ticketscan/internal/savedsearch"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger := newLogger(cfg)
	defer logger.Sync()

	e := echo.New()
	e.HideBanner = true

	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())
	e.Use(middleware.RequestID())

	providerList := initializeProviders(cfg, logger)
	logger.Info("initialized flight providers", zap.Int("count", len(providerList)))

	rateLimiter := ratelimit.NewProviderLimiter(ratelimit.DefaultLimit(), map[string]ratelimit.Limit{
		"amadeus":       {RequestsPerSecond: 10, BurstSize: 20},
		"skyscanner":    {RequestsPerSecond: 5, BurstSize: 10},
		"googleflights": {RequestsPerSecond: 5, BurstSize: 10},
	})

	agg := aggregator.New(providerList, aggregator.Config{
		Timeout:    cfg.SearchTimeout,
		MaxRetries: 2,
		RetryDelays: []time.Duration{
			200 * time.Millisecond,
			500 * time.Millisecond,
		},
		RateLimiter: rateLimiter,
	}, logger)

	var offerCache cache.Cache
	var savedStore savedsearch.Store
	if cfg.CacheEnabled {
		redisCache, err := cache.NewRedisCache(cache.RedisConfig{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
			TTL:      cfg.CacheTTL,
		})
		if err != nil {
			logger.Fatal("failed to connect to redis", zap.Error(err))
		}
		offerCache = redisCache

		redisStore, err := savedsearch.NewRedisStore(savedsearch.RedisConfig{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err != nil {
			logger.Fatal("failed to connect to redis", zap.Error(err))
		}
		savedStore = redisStore

		logger.Info("redis enabled",
			zap.String("addr", cfg.RedisAddr),
			zap.Duration("cache_ttl", cfg.CacheTTL))
	} else {
		offerCache = cache.NewNoOpCache()
		savedStore = savedsearch.NewMemoryStore()
		logger.Info("redis disabled, using in-memory saved searches")
	}

	searchHandler := handler.NewSearchHandler(agg, offerCache, logger)
	savedHandler := handler.NewSavedSearchHandler(savedStore, logger)

	api := e.Group("/api/v1")
	api.GET("/flights/search", searchHandler.Search)
	api.GET("/saved", savedHandler.List)
	api.POST("/saved", savedHandler.Save)
	api.DELETE("/saved/:id", savedHandler.Delete)
	api.PATCH("/saved/:id/note", savedHandler.UpdateNote)
	api.GET("/airports", handler.ListAirports)
	api.GET("/airports/:code", handler.GetAirport)
	e.GET("/health", handler.HealthHandler)

	logger.Info("starting fare search server", zap.String("port", cfg.Port))

	if err := e.Start(":" + cfg.Port); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}

func newLogger(cfg config.Config) *zap.Logger {
	var zcfg zap.Config
	if cfg.IsProduction() {
		zcfg = zap.NewProductionConfig()
		zcfg.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	} else {
		zcfg = zap.NewDevelopmentConfig()
		zcfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
		zcfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	logger, err := zcfg.Build()
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	return logger
}

func initializeProviders(cfg config.Config, logger *zap.Logger) []providers.Provider {
	return []providers.Provider{
		providers.NewAmadeusProvider(providers.AmadeusConfig{
			ClientID:     cfg.AmadeusClientID,
			ClientSecret: cfg.AmadeusClientSecret,
			BaseURL:      cfg.AmadeusBaseURL,
		}, logger),
		providers.NewSkyscannerProvider(providers.SkyscannerConfig{
			APIKey: cfg.RapidAPIKey,
		}, logger),
		providers.NewGoogleFlightsProvider(providers.GoogleFlightsConfig{
			APIKey: cfg.RapidAPIKey,
		}, logger),
	}
}
