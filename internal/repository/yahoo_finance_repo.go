package repository

import (
	"context"
	"fmt"
	"net/http"
	"trading-assistant/config"
	"trading-assistant/internal/dto"
	"trading-assistant/pkg/common"
	"trading-assistant/pkg/httpclient"
	"trading-assistant/pkg/logger"
	"trading-assistant/pkg/ratelimit"
)

// YahooFinanceRepository reads the public chart API, used as the last quote and history fallback.
type YahooFinanceRepository interface {
	QuoteProvider
	HistoryProvider
}

type yahooFinanceRepository struct {
	httpClient httpclient.HTTPClient
	cfg        config.Provider
	logger     *logger.Logger
	limiters   *ratelimit.LimiterStore
}

func NewYahooFinanceRepository(cfg config.Provider, log *logger.Logger, limiters *ratelimit.LimiterStore) YahooFinanceRepository {
	limiters.SetLimit(common.PROVIDER_YAHOO_FINANCE, ratelimit.PerMinute(cfg.MaxRequestPerMinute), 1)

	return &yahooFinanceRepository{
		httpClient: httpclient.New(log, cfg.BaseURL, cfg.Timeout),
		cfg:        cfg,
		logger:     log,
		limiters:   limiters,
	}
}

func (r *yahooFinanceRepository) Name() string {
	return common.PROVIDER_YAHOO_FINANCE
}

func (r *yahooFinanceRepository) chart(ctx context.Context, symbol, interval, rangeParam string) (*dto.YahooFinanceResponse, error) {
	if err := r.limiters.Wait(ctx, r.Name()); err != nil {
		return nil, fmt.Errorf("yahoo finance rate limit wait: %w", err)
	}

	endpoint := r.cfg.Path + "/" + symbol
	queryParams := map[string]string{
		"range":          rangeParam,
		"interval":       interval,
		"includePrePost": "false",
	}

	headers := map[string]string{
		"User-Agent":      "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 Chrome/120.0.0.0 Safari/537.36",
		"Accept":          "application/json, text/plain, */*",
		"Accept-Language": "en-US,en;q=0.9",
		"Referer":         "https://finance.yahoo.com/",
	}

	var yahooResp dto.YahooFinanceResponse
	resp, err := r.httpClient.Get(ctx, endpoint, queryParams, headers, &yahooResp)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch data from yahoo finance: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		r.logger.WarnContext(ctx, "Yahoo Finance API returned Non-OK status",
			logger.IntField("status_code", resp.StatusCode),
			logger.StringField("body", string(resp.Body)))
		return nil, fmt.Errorf("yahoo finance api returned status: %d", resp.StatusCode)
	}

	if yahooResp.Chart.Error != nil {
		return nil, fmt.Errorf("yahoo finance api error: %v", yahooResp.Chart.Error)
	}

	if len(yahooResp.Chart.Result) == 0 {
		return nil, fmt.Errorf("yahoo finance chart for %s: %w", symbol, ErrNoData)
	}

	return &yahooResp, nil
}

func (r *yahooFinanceRepository) GetQuote(ctx context.Context, symbol string) (*dto.Stock, error) {
	yahooResp, err := r.chart(ctx, symbol, "1d", "1d")
	if err != nil {
		return nil, err
	}

	meta := yahooResp.Chart.Result[0].Meta
	if meta.RegularMarketPrice <= 0 {
		return nil, fmt.Errorf("yahoo finance quote for %s: %w", symbol, ErrNoData)
	}

	previousClose := meta.ChartPreviousClose
	if previousClose <= 0 {
		previousClose = meta.PreviousClose
	}

	var change, changePercent float64
	if previousClose > 0 {
		change = meta.RegularMarketPrice - previousClose
		changePercent = change / previousClose * 100
	}

	name := firstNonEmpty(meta.LongName, meta.ShortName, symbol)

	return &dto.Stock{
		Symbol:        symbol,
		Name:          name,
		Price:         meta.RegularMarketPrice,
		Change:        change,
		ChangePercent: changePercent,
		Volume:        meta.RegularMarketVolume,
	}, nil
}

func (r *yahooFinanceRepository) GetHistory(ctx context.Context, symbol, interval string) ([]dto.StockOHLCV, error) {
	yahooInterval, rangeParam, ok := MapIntervalToYahoo(interval)
	if !ok {
		return nil, fmt.Errorf("unsupported interval for yahoo finance: %s", interval)
	}

	yahooResp, err := r.chart(ctx, symbol, yahooInterval, rangeParam)
	if err != nil {
		return nil, err
	}

	result := yahooResp.Chart.Result[0]
	if len(result.Indicators.Quote) == 0 {
		return nil, fmt.Errorf("no quote data available for symbol: %s", symbol)
	}

	quote := result.Indicators.Quote[0]

	var ohlcvData []dto.StockOHLCV
	for i, timestamp := range result.Timestamp {
		if i >= len(quote.Open) || i >= len(quote.High) || i >= len(quote.Low) ||
			i >= len(quote.Close) || i >= len(quote.Volume) {
			continue
		}

		// zero means the upstream sent null for this bar
		if quote.Open[i] == 0 || quote.High[i] == 0 || quote.Low[i] == 0 ||
			quote.Close[i] == 0 || quote.Volume[i] == 0 {
			continue
		}

		ohlcvData = append(ohlcvData, dto.StockOHLCV{
			Timestamp: timestamp,
			Open:      quote.Open[i],
			High:      quote.High[i],
			Low:       quote.Low[i],
			Close:     quote.Close[i],
			Volume:    quote.Volume[i],
		})
	}

	if len(ohlcvData) == 0 {
		return nil, fmt.Errorf("no valid OHLCV data found for symbol %s: %w", symbol, ErrNoData)
	}

	return ohlcvData, nil
}

// MapIntervalToYahoo converts an Alpha Vantage style interval into the chart API's
// interval and a range wide enough to hold at least 100 bars.
func MapIntervalToYahoo(interval string) (string, string, bool) {
	switch interval {
	case "1min":
		return "1m", "1d", true
	case "5min":
		return "5m", "5d", true
	case "15min":
		return "15m", "5d", true
	case "30min":
		return "30m", "1mo", true
	case "60min":
		return "60m", "1mo", true
	case "daily":
		return "1d", "6mo", true
	case "weekly":
		return "1wk", "5y", true
	default:
		return "", "", false
	}
}
