package repository

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"
	"trading-assistant/config"
	"trading-assistant/internal/dto"
	"trading-assistant/pkg/common"
	"trading-assistant/pkg/httpclient"
	"trading-assistant/pkg/logger"
	"trading-assistant/pkg/ratelimit"
)

// FinnhubRepository serves quotes, company profiles and market news from finnhub.io.
type FinnhubRepository interface {
	QuoteProvider
	ProfileProvider
	NewsProvider
}

type finnhubRepository struct {
	httpClient httpclient.HTTPClient
	cfg        config.Provider
	logger     *logger.Logger
	limiters   *ratelimit.LimiterStore
}

func NewFinnhubRepository(cfg config.Provider, log *logger.Logger, limiters *ratelimit.LimiterStore) FinnhubRepository {
	limiters.SetLimit(common.PROVIDER_FINNHUB, ratelimit.PerMinute(cfg.MaxRequestPerMinute), 1)

	return &finnhubRepository{
		httpClient: httpclient.New(log, cfg.BaseURL, cfg.Timeout),
		cfg:        cfg,
		logger:     log,
		limiters:   limiters,
	}
}

func (r *finnhubRepository) Name() string {
	return common.PROVIDER_FINNHUB
}

func (r *finnhubRepository) get(ctx context.Context, endpoint string, queryParams map[string]string, result interface{}) error {
	if err := r.limiters.Wait(ctx, r.Name()); err != nil {
		return fmt.Errorf("finnhub rate limit wait: %w", err)
	}

	queryParams["token"] = r.cfg.APIKey
	resp, err := r.httpClient.Get(ctx, endpoint, queryParams, nil, result)
	if err != nil {
		return fmt.Errorf("failed to fetch %s from finnhub: %w", endpoint, err)
	}

	if resp.StatusCode != http.StatusOK {
		r.logger.WarnContext(ctx, "Finnhub API returned Non-OK status",
			logger.StringField("endpoint", endpoint),
			logger.IntField("status_code", resp.StatusCode),
			logger.StringField("body", string(resp.Body)))
		return fmt.Errorf("finnhub api returned status: %d", resp.StatusCode)
	}
	return nil
}

func (r *finnhubRepository) GetQuote(ctx context.Context, symbol string) (*dto.Stock, error) {
	var quote dto.FinnhubQuoteResponse
	if err := r.get(ctx, "/quote", map[string]string{"symbol": symbol}, &quote); err != nil {
		return nil, err
	}

	if quote.C == 0 {
		return nil, fmt.Errorf("finnhub quote for %s: %w", symbol, ErrNoData)
	}
	if quote.C < 0 {
		return nil, fmt.Errorf("finnhub quote for %s has negative price %.4f", symbol, quote.C)
	}

	return &dto.Stock{
		Symbol:        symbol,
		Name:          symbol,
		Price:         quote.C,
		Change:        quote.D,
		ChangePercent: quote.DP,
	}, nil
}

func (r *finnhubRepository) GetProfile(ctx context.Context, symbol string) (*dto.StockProfile, error) {
	var profile dto.FinnhubProfileResponse
	if err := r.get(ctx, "/stock/profile2", map[string]string{"symbol": symbol}, &profile); err != nil {
		return nil, err
	}

	if profile.Name == "" {
		return nil, fmt.Errorf("finnhub profile for %s: %w", symbol, ErrNoData)
	}

	return &dto.StockProfile{
		Name:      profile.Name,
		MarketCap: profile.MarketCapitalization,
	}, nil
}

func (r *finnhubRepository) GetNews(ctx context.Context, category string) ([]dto.NewsItem, error) {
	var items []dto.FinnhubNewsItem
	if err := r.get(ctx, "/news", map[string]string{"category": category}, &items); err != nil {
		return nil, err
	}

	if len(items) == 0 {
		return nil, fmt.Errorf("finnhub news for %s: %w", category, ErrNoData)
	}

	news := make([]dto.NewsItem, 0, len(items))
	for _, item := range items {
		var id string
		if item.ID != 0 {
			id = strconv.FormatInt(item.ID, 10)
		}
		var ts time.Time
		if item.Datetime > 0 {
			ts = time.Unix(item.Datetime, 0).UTC()
		}
		news = append(news, dto.NewsItem{
			ID:        id,
			Headline:  item.Headline,
			Summary:   item.Summary,
			Source:    item.Source,
			Timestamp: ts,
		})
	}
	return news, nil
}
