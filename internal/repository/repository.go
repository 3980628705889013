package repository

import (
	"trading-assistant/config"
	"trading-assistant/pkg/common"
	"trading-assistant/pkg/logger"
	"trading-assistant/pkg/ratelimit"
)

// Repository holds the provider chains for every resource type, already in priority order.
type Repository struct {
	QuoteProviders   []QuoteProvider
	ProfileProviders []ProfileProvider
	NewsProviders    []NewsProvider
	HistoryProviders []HistoryProvider
}

func NewRepository(cfg *config.Config, log *logger.Logger, limiters *ratelimit.LimiterStore) *Repository {
	finnhubRepo := NewFinnhubRepository(cfg.Providers.Finnhub, log, limiters)
	alphaVantageRepo := NewAlphaVantageRepository(cfg.Providers.AlphaVantage, log, limiters)
	yahooFinanceRepo := NewYahooFinanceRepository(cfg.Providers.YahooFinance, log, limiters)
	rssNewsRepo := NewRSSNewsRepository(cfg.Providers.RSS, log, limiters)

	available := []NamedProvider{finnhubRepo, alphaVantageRepo, yahooFinanceRepo, rssNewsRepo}

	return &Repository{
		QuoteProviders:   OrderProviders[QuoteProvider](log, "quote", cfg.Providers.QuoteOrder, available),
		ProfileProviders: OrderProviders[ProfileProvider](log, "profile", cfg.Providers.ProfileOrder, available),
		NewsProviders:    OrderProviders[NewsProvider](log, "news", cfg.Providers.NewsOrder, available),
		HistoryProviders: OrderProviders[HistoryProvider](log, "history", cfg.Providers.HistoryOrder, available),
	}
}

// OrderProviders picks, in the configured order, the providers that implement P.
// Unknown names and providers lacking the capability are logged and skipped.
func OrderProviders[P NamedProvider](log *logger.Logger, kind string, order []string, available []NamedProvider) []P {
	byName := make(map[string]NamedProvider, len(available))
	for _, p := range available {
		byName[p.Name()] = p
	}

	var (
		seen   = map[string]bool{}
		result []P
	)
	for _, name := range order {
		if seen[name] {
			continue
		}
		seen[name] = true

		p, ok := byName[name]
		if !ok {
			log.Warn("Unknown provider in configuration",
				logger.StringField("kind", kind),
				logger.StringField("provider", name),
				logger.Field("known", knownProviders()))
			continue
		}

		typed, ok := p.(P)
		if !ok {
			log.Warn("Provider does not support resource type",
				logger.StringField("kind", kind),
				logger.StringField("provider", name))
			continue
		}
		result = append(result, typed)
	}

	if len(result) == 0 {
		log.Warn("No provider configured for resource type, it will always be absent",
			logger.StringField("kind", kind))
	}
	return result
}

func knownProviders() []string {
	return []string{
		common.PROVIDER_FINNHUB,
		common.PROVIDER_ALPHA_VANTAGE,
		common.PROVIDER_YAHOO_FINANCE,
		common.PROVIDER_RSS,
	}
}
