package common

// Cache keys for upstream resources.
const (
	KEY_QUOTE       = "quote_%s"
	KEY_PROFILE     = "profile_%s"
	KEY_HISTORICAL  = "historical_%s_%s"
	KEY_MARKET_NEWS = "market_news"
)

// Provider names as used in the providers.*_order configuration.
const (
	PROVIDER_FINNHUB       = "finnhub"
	PROVIDER_ALPHA_VANTAGE = "alpha_vantage"
	PROVIDER_YAHOO_FINANCE = "yahoo_finance"
	PROVIDER_RSS           = "rss"
)

const DEFAULT_HISTORY_INTERVAL = "1min"

// TechSymbols is the large-cap technology set used for sector concentration.
func TechSymbols() []string {
	return []string{"AAPL", "GOOGL", "MSFT", "AMZN", "TSLA", "NVDA", "META", "NFLX"}
}
