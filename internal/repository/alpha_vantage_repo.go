package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"trading-assistant/config"
	"trading-assistant/internal/dto"
	"trading-assistant/pkg/common"
	"trading-assistant/pkg/httpclient"
	"trading-assistant/pkg/logger"
	"trading-assistant/pkg/ratelimit"
	"trading-assistant/pkg/utils"
)

// AlphaVantageRepository serves GLOBAL_QUOTE quotes and TIME_SERIES_INTRADAY history.
type AlphaVantageRepository interface {
	QuoteProvider
	HistoryProvider
}

type alphaVantageRepository struct {
	httpClient httpclient.HTTPClient
	cfg        config.Provider
	logger     *logger.Logger
	limiters   *ratelimit.LimiterStore
}

func NewAlphaVantageRepository(cfg config.Provider, log *logger.Logger, limiters *ratelimit.LimiterStore) AlphaVantageRepository {
	limiters.SetLimit(common.PROVIDER_ALPHA_VANTAGE, ratelimit.PerMinute(cfg.MaxRequestPerMinute), 1)

	return &alphaVantageRepository{
		httpClient: httpclient.New(log, cfg.BaseURL, cfg.Timeout),
		cfg:        cfg,
		logger:     log,
		limiters:   limiters,
	}
}

func (r *alphaVantageRepository) Name() string {
	return common.PROVIDER_ALPHA_VANTAGE
}

func (r *alphaVantageRepository) query(ctx context.Context, queryParams map[string]string, result interface{}) error {
	if err := r.limiters.Wait(ctx, r.Name()); err != nil {
		return fmt.Errorf("alpha vantage rate limit wait: %w", err)
	}

	queryParams["apikey"] = r.cfg.APIKey
	resp, err := r.httpClient.Get(ctx, r.cfg.Path, queryParams, nil, result)
	if err != nil {
		return fmt.Errorf("failed to fetch %s from alpha vantage: %w", queryParams["function"], err)
	}

	if resp.StatusCode != http.StatusOK {
		r.logger.WarnContext(ctx, "Alpha Vantage API returned Non-OK status",
			logger.StringField("function", queryParams["function"]),
			logger.IntField("status_code", resp.StatusCode),
			logger.StringField("body", string(resp.Body)))
		return fmt.Errorf("alpha vantage api returned status: %d", resp.StatusCode)
	}
	return nil
}

func (r *alphaVantageRepository) GetQuote(ctx context.Context, symbol string) (*dto.Stock, error) {
	var resp dto.AlphaVantageQuoteResponse
	err := r.query(ctx, map[string]string{
		"function": "GLOBAL_QUOTE",
		"symbol":   symbol,
	}, &resp)
	if err != nil {
		return nil, err
	}

	if msg := firstNonEmpty(resp.ErrorMessage, resp.Note, resp.Information); msg != "" {
		return nil, fmt.Errorf("alpha vantage quote for %s: %s", symbol, msg)
	}

	quote := resp.GlobalQuote
	if quote == nil || quote.Price == "" {
		return nil, fmt.Errorf("alpha vantage quote for %s: %w", symbol, ErrNoData)
	}

	price, err := strconv.ParseFloat(quote.Price, 64)
	if err != nil {
		return nil, fmt.Errorf("alpha vantage quote for %s has malformed price %q: %w", symbol, quote.Price, err)
	}
	if price < 0 {
		return nil, fmt.Errorf("alpha vantage quote for %s has negative price %.4f", symbol, price)
	}

	change, err := strconv.ParseFloat(quote.Change, 64)
	if err != nil {
		return nil, fmt.Errorf("alpha vantage quote for %s has malformed change %q: %w", symbol, quote.Change, err)
	}

	changePercent, err := strconv.ParseFloat(strings.TrimSuffix(strings.TrimSpace(quote.ChangePercent), "%"), 64)
	if err != nil {
		return nil, fmt.Errorf("alpha vantage quote for %s has malformed change percent %q: %w", symbol, quote.ChangePercent, err)
	}

	// volume is informational, a bad value does not invalidate the quote
	volume, _ := strconv.ParseInt(quote.Volume, 10, 64)

	return &dto.Stock{
		Symbol:        symbol,
		Name:          symbol,
		Price:         price,
		Change:        change,
		ChangePercent: changePercent,
		Volume:        volume,
	}, nil
}

func (r *alphaVantageRepository) GetHistory(ctx context.Context, symbol, interval string) ([]dto.StockOHLCV, error) {
	var raw map[string]json.RawMessage
	err := r.query(ctx, map[string]string{
		"function": "TIME_SERIES_INTRADAY",
		"symbol":   symbol,
		"interval": interval,
	}, &raw)
	if err != nil {
		return nil, err
	}

	seriesJSON, ok := raw[fmt.Sprintf("Time Series (%s)", interval)]
	if !ok {
		return nil, fmt.Errorf("alpha vantage history for %s/%s: %w", symbol, interval, ErrNoData)
	}

	var series map[string]dto.AlphaVantageBar
	if err := json.Unmarshal(seriesJSON, &series); err != nil {
		return nil, fmt.Errorf("alpha vantage history for %s/%s is malformed: %w", symbol, interval, err)
	}

	ohlcvData := make([]dto.StockOHLCV, 0, len(series))
	for stamp, bar := range series {
		ts, err := utils.ParseMarketTime(stamp)
		if err != nil {
			r.logger.DebugContext(ctx, "Skipping bar with malformed timestamp",
				logger.StringField("symbol", symbol),
				logger.StringField("timestamp", stamp))
			continue
		}

		point, err := parseAlphaVantageBar(bar)
		if err != nil {
			r.logger.DebugContext(ctx, "Skipping malformed bar",
				logger.StringField("symbol", symbol),
				logger.StringField("timestamp", stamp),
				logger.ErrorField(err))
			continue
		}
		point.Timestamp = ts.Unix()
		ohlcvData = append(ohlcvData, point)
	}

	if len(ohlcvData) == 0 {
		return nil, fmt.Errorf("alpha vantage history for %s/%s: %w", symbol, interval, ErrNoData)
	}

	sort.Slice(ohlcvData, func(i, j int) bool {
		return ohlcvData[i].Timestamp < ohlcvData[j].Timestamp
	})
	return ohlcvData, nil
}

func parseAlphaVantageBar(bar dto.AlphaVantageBar) (dto.StockOHLCV, error) {
	var (
		point dto.StockOHLCV
		err   error
	)
	if point.Open, err = strconv.ParseFloat(bar.Open, 64); err != nil {
		return point, err
	}
	if point.High, err = strconv.ParseFloat(bar.High, 64); err != nil {
		return point, err
	}
	if point.Low, err = strconv.ParseFloat(bar.Low, 64); err != nil {
		return point, err
	}
	if point.Close, err = strconv.ParseFloat(bar.Close, 64); err != nil {
		return point, err
	}
	if point.Volume, err = strconv.ParseInt(bar.Volume, 10, 64); err != nil {
		return point, err
	}
	return point, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
