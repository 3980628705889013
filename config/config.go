package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Log       Logger    `mapstructure:"logger"`
	API       API       `mapstructure:"api"`
	Cache     Cache     `mapstructure:"cache"`
	Fetcher   Fetcher   `mapstructure:"fetcher"`
	Providers Providers `mapstructure:"providers"`
	Market    Market    `mapstructure:"market"`
	Signal    Signal    `mapstructure:"signal"`
	Refresh   Refresh   `mapstructure:"refresh"`
	Portfolio Portfolio `mapstructure:"portfolio"`
}

type Logger struct {
	Level    string `mapstructure:"level"`
	Encoding string `mapstructure:"encoding"`
}

type API struct {
	Port               int           `mapstructure:"port"`
	MaxRequestPerSec   int           `mapstructure:"max_request_per_sec"`
	Burst              int           `mapstructure:"burst"`
	RateLimitExpiresIn time.Duration `mapstructure:"rate_limit_expires_in"`
}

// Cache.TTL bounds the freshness of every cached upstream payload.
type Cache struct {
	TTL             time.Duration `mapstructure:"ttl"`
	CleanupInterval time.Duration `mapstructure:"cleanup_interval"`
}

type Fetcher struct {
	MaxConcurrency int `mapstructure:"max_concurrency"`
	MaxNews        int `mapstructure:"max_news"`
	MaxHistory     int `mapstructure:"max_history"`
}

type Provider struct {
	BaseURL             string        `mapstructure:"base_url"`
	Path                string        `mapstructure:"path"`
	APIKey              string        `mapstructure:"api_key"`
	Timeout             time.Duration `mapstructure:"timeout"`
	MaxRequestPerMinute int           `mapstructure:"max_request_per_minute"`
}

// Providers holds the upstream endpoints plus the priority order used for each resource type.
type Providers struct {
	Finnhub      Provider `mapstructure:"finnhub"`
	AlphaVantage Provider `mapstructure:"alpha_vantage"`
	YahooFinance Provider `mapstructure:"yahoo_finance"`
	RSS          Provider `mapstructure:"rss"`

	QuoteOrder   []string `mapstructure:"quote_order"`
	ProfileOrder []string `mapstructure:"profile_order"`
	NewsOrder    []string `mapstructure:"news_order"`
	HistoryOrder []string `mapstructure:"history_order"`
	NewsCategory string   `mapstructure:"news_category"`
}

type Market struct {
	Symbols         []string `mapstructure:"symbols"`
	HistoryInterval string   `mapstructure:"history_interval"`
}

type Signal struct {
	MaxStocks int `mapstructure:"max_stocks"`
}

type Refresh struct {
	Enabled bool          `mapstructure:"enabled"`
	Spec    string        `mapstructure:"spec"`
	Timeout time.Duration `mapstructure:"timeout"`
}

type Holding struct {
	Symbol   string  `mapstructure:"symbol"`
	Shares   float64 `mapstructure:"shares"`
	AvgPrice float64 `mapstructure:"avg_price"`
}

type Portfolio struct {
	Holdings []Holding `mapstructure:"holdings"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.encoding", "json")

	v.SetDefault("api.port", 8080)
	v.SetDefault("api.max_request_per_sec", 10)
	v.SetDefault("api.burst", 30)
	v.SetDefault("api.rate_limit_expires_in", 3*time.Minute)

	v.SetDefault("cache.ttl", time.Minute)
	v.SetDefault("cache.cleanup_interval", time.Duration(-1))

	v.SetDefault("fetcher.max_concurrency", 8)
	v.SetDefault("fetcher.max_news", 5)
	v.SetDefault("fetcher.max_history", 100)

	v.SetDefault("providers.finnhub.base_url", "https://finnhub.io/api/v1")
	v.SetDefault("providers.finnhub.api_key", "demo")
	v.SetDefault("providers.finnhub.timeout", 10*time.Second)
	v.SetDefault("providers.finnhub.max_request_per_minute", 60)

	v.SetDefault("providers.alpha_vantage.base_url", "https://www.alphavantage.co")
	v.SetDefault("providers.alpha_vantage.path", "/query")
	v.SetDefault("providers.alpha_vantage.api_key", "demo")
	v.SetDefault("providers.alpha_vantage.timeout", 10*time.Second)
	v.SetDefault("providers.alpha_vantage.max_request_per_minute", 5)

	v.SetDefault("providers.yahoo_finance.base_url", "https://query1.finance.yahoo.com")
	v.SetDefault("providers.yahoo_finance.path", "/v8/finance/chart")
	v.SetDefault("providers.yahoo_finance.timeout", 10*time.Second)
	v.SetDefault("providers.yahoo_finance.max_request_per_minute", 60)

	v.SetDefault("providers.rss.base_url", "https://feeds.finance.yahoo.com")
	v.SetDefault("providers.rss.path", "/rss/2.0/headline?s=^GSPC&region=US&lang=en-US")
	v.SetDefault("providers.rss.timeout", 10*time.Second)
	v.SetDefault("providers.rss.max_request_per_minute", 30)

	v.SetDefault("providers.quote_order", []string{"finnhub", "alpha_vantage", "yahoo_finance"})
	v.SetDefault("providers.profile_order", []string{"finnhub"})
	v.SetDefault("providers.news_order", []string{"finnhub", "rss"})
	v.SetDefault("providers.history_order", []string{"alpha_vantage", "yahoo_finance"})
	v.SetDefault("providers.news_category", "general")

	v.SetDefault("market.symbols", []string{"AAPL", "GOOGL", "MSFT", "AMZN", "TSLA", "NVDA", "META", "NFLX"})
	v.SetDefault("market.history_interval", "1min")

	v.SetDefault("signal.max_stocks", 3)

	v.SetDefault("refresh.enabled", true)
	v.SetDefault("refresh.spec", "@every 5s")
	v.SetDefault("refresh.timeout", 30*time.Second)
}

// Load reads an optional .env file, then config.yaml (or the file at path) and environment variables.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil {
		fmt.Println("No .env file loaded:", err)
	}

	v := viper.New()
	setDefaults(v)

	v.SetConfigType("yaml")
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
	}
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		fmt.Println("No config file loaded:", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// go-cache reads a zero TTL as "never expire"
	if cfg.Cache.TTL <= 0 {
		return nil, fmt.Errorf("cache.ttl must be positive, got %s", cfg.Cache.TTL)
	}

	return &cfg, nil
}
