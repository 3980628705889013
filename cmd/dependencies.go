package cmd

import (
	"context"
	"trading-assistant/config"
	"trading-assistant/pkg/cache"
	"trading-assistant/pkg/logger"
	"trading-assistant/pkg/ratelimit"

	goValidator "github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

type AppDependency struct {
	cfg       *config.Config
	log       *logger.Logger
	validator *goValidator.Validate
	echo      *echo.Echo
	cache     cache.Cache
	limiters  *ratelimit.LimiterStore
}

func NewAppDependency(ctx context.Context) (*AppDependency, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	log, err := logger.New(cfg.Log.Level, cfg.Log.Encoding)
	if err != nil {
		return nil, err
	}

	log.Info("Configuration loaded",
		zap.Strings("symbols", cfg.Market.Symbols),
		zap.Strings("quote_order", cfg.Providers.QuoteOrder),
		zap.Duration("cache_ttl", cfg.Cache.TTL))

	e := echo.New()
	e.HideBanner = true
	return &AppDependency{
		cfg:       cfg,
		log:       log,
		validator: goValidator.New(),
		echo:      e,
		cache:     cache.NewCache(cfg.Cache.TTL, cfg.Cache.CleanupInterval),
		// every provider registers its own budget, unknown keys are unlimited
		limiters: ratelimit.NewLimiterStore(rate.Inf, 1),
	}, nil
}

func (d *AppDependency) Close() error {
	d.log.Info("Closing app dependency")
	d.cache.Flush()
	// stdout/stderr sinks return EINVAL on sync under some platforms
	_ = d.log.Sync()
	return nil
}
