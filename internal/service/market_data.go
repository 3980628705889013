package service

import (
	"context"
	"fmt"
	"slices"
	"sort"
	"strconv"
	"trading-assistant/config"
	"trading-assistant/internal/dto"
	"trading-assistant/internal/repository"
	"trading-assistant/pkg/cache"
	"trading-assistant/pkg/common"
	"trading-assistant/pkg/logger"
	"trading-assistant/pkg/utils"

	"golang.org/x/sync/errgroup"
)

const (
	defaultNewsTitle   = "Market Update"
	defaultNewsSummary = "Latest market developments"
	defaultNewsSource  = "Market News"
)

// MarketDataService retrieves upstream resources through the cache and the ordered provider chains.
// Failures never surface as errors: a resource every provider failed on is reported absent.
type MarketDataService interface {
	GetStockQuote(ctx context.Context, symbol string) (dto.Stock, bool)
	GetMultipleQuotes(ctx context.Context, symbols []string) []dto.Stock
	GetStockProfile(ctx context.Context, symbol string) (dto.StockProfile, bool)
	GetEnrichedQuotes(ctx context.Context, symbols []string) []dto.Stock
	GetMarketNews(ctx context.Context) []dto.MarketNews
	GetHistoricalData(ctx context.Context, symbol, interval string) []dto.StockOHLCV
	InvalidateCache()
}

type marketDataService struct {
	cfg   *config.Config
	log   *logger.Logger
	cache cache.Cache
	repo  *repository.Repository
}

func NewMarketDataService(cfg *config.Config, log *logger.Logger, inmemoryCache cache.Cache, repo *repository.Repository) MarketDataService {
	return &marketDataService{
		cfg:   cfg,
		log:   log,
		cache: inmemoryCache,
		repo:  repo,
	}
}

// fetchWithFallback returns the cached value for key when fresh, otherwise asks each provider in
// order and caches the first success. A provider failure is logged and the next one is tried.
func fetchWithFallback[P repository.NamedProvider, T any](
	ctx context.Context,
	log *logger.Logger,
	c cache.Cache,
	key string,
	providers []P,
	call func(ctx context.Context, provider P) (T, error),
) (T, bool) {
	if cached, ok := cache.GetFromCache[T](c, key); ok {
		log.DebugContext(ctx, "Cache hit", logger.StringField("cache_key", key))
		return cached, true
	}

	for _, provider := range providers {
		if !utils.ShouldContinue(ctx, log) {
			break
		}

		result, err := safeCall(ctx, provider, call)
		if err != nil {
			log.WarnContext(ctx, "Provider failed, falling back to next provider",
				logger.StringField("provider", provider.Name()),
				logger.StringField("cache_key", key),
				logger.ErrorField(err))
			continue
		}

		c.Set(key, result, cache.DefaultExpiration)
		log.DebugContext(ctx, "Fetched from provider",
			logger.StringField("provider", provider.Name()),
			logger.StringField("cache_key", key))
		return result, true
	}

	var zero T
	return zero, false
}

// safeCall turns a panicking provider into an ordinary provider failure.
func safeCall[P repository.NamedProvider, T any](ctx context.Context, provider P, call func(context.Context, P) (T, error)) (result T, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("provider %s panicked: %v", provider.Name(), r)
		}
	}()
	return call(ctx, provider)
}

func (s *marketDataService) GetStockQuote(ctx context.Context, symbol string) (dto.Stock, bool) {
	symbol = utils.NormalizeSymbol(symbol)
	if symbol == "" {
		return dto.Stock{}, false
	}

	return fetchWithFallback(ctx, s.log, s.cache, fmt.Sprintf(common.KEY_QUOTE, symbol), s.repo.QuoteProviders,
		func(ctx context.Context, p repository.QuoteProvider) (dto.Stock, error) {
			stock, err := p.GetQuote(ctx, symbol)
			if err != nil {
				return dto.Stock{}, err
			}
			if stock == nil {
				return dto.Stock{}, repository.ErrNoData
			}
			if stock.Price < 0 || !utils.IsFinite(stock.Price) {
				return dto.Stock{}, fmt.Errorf("invalid price %v for %s", stock.Price, symbol)
			}
			return *stock, nil
		})
}

// GetMultipleQuotes fetches every symbol concurrently and returns the successful quotes in input order.
func (s *marketDataService) GetMultipleQuotes(ctx context.Context, symbols []string) []dto.Stock {
	results := make([]*dto.Stock, len(symbols))

	var g errgroup.Group
	if s.cfg.Fetcher.MaxConcurrency > 0 {
		g.SetLimit(s.cfg.Fetcher.MaxConcurrency)
	}

	for i, symbol := range symbols {
		g.Go(func() error {
			if stock, ok := s.GetStockQuote(ctx, symbol); ok {
				results[i] = &stock
			}
			return nil
		})
	}
	_ = g.Wait()

	stocks := make([]dto.Stock, 0, len(symbols))
	for _, stock := range results {
		if stock != nil {
			stocks = append(stocks, *stock)
		}
	}

	if len(stocks) < len(symbols) {
		s.log.WarnContext(ctx, "Some quotes could not be fetched",
			logger.IntField("requested", len(symbols)),
			logger.IntField("fetched", len(stocks)))
	}
	return stocks
}

func (s *marketDataService) GetStockProfile(ctx context.Context, symbol string) (dto.StockProfile, bool) {
	symbol = utils.NormalizeSymbol(symbol)
	if symbol == "" {
		return dto.StockProfile{}, false
	}

	return fetchWithFallback(ctx, s.log, s.cache, fmt.Sprintf(common.KEY_PROFILE, symbol), s.repo.ProfileProviders,
		func(ctx context.Context, p repository.ProfileProvider) (dto.StockProfile, error) {
			profile, err := p.GetProfile(ctx, symbol)
			if err != nil {
				return dto.StockProfile{}, err
			}
			if profile == nil || profile.Name == "" {
				return dto.StockProfile{}, repository.ErrNoData
			}
			return *profile, nil
		})
}

// GetEnrichedQuotes fetches quotes and fills name and market cap from company profiles where available.
func (s *marketDataService) GetEnrichedQuotes(ctx context.Context, symbols []string) []dto.Stock {
	stocks := s.GetMultipleQuotes(ctx, symbols)

	var g errgroup.Group
	if s.cfg.Fetcher.MaxConcurrency > 0 {
		g.SetLimit(s.cfg.Fetcher.MaxConcurrency)
	}

	for i := range stocks {
		g.Go(func() error {
			profile, ok := s.GetStockProfile(ctx, stocks[i].Symbol)
			if !ok {
				return nil
			}
			if profile.Name != "" {
				stocks[i].Name = profile.Name
			}
			if profile.MarketCap != 0 {
				stocks[i].MarketCap = profile.MarketCap
			}
			return nil
		})
	}
	_ = g.Wait()

	return stocks
}

// GetMarketNews returns at most fetcher.max_news headlines annotated with a lexical sentiment.
func (s *marketDataService) GetMarketNews(ctx context.Context) []dto.MarketNews {
	news, ok := fetchWithFallback(ctx, s.log, s.cache, common.KEY_MARKET_NEWS, s.repo.NewsProviders,
		func(ctx context.Context, p repository.NewsProvider) ([]dto.MarketNews, error) {
			items, err := p.GetNews(ctx, s.cfg.Providers.NewsCategory)
			if err != nil {
				return nil, err
			}
			if len(items) == 0 {
				return nil, repository.ErrNoData
			}
			return s.toMarketNews(items), nil
		})
	if !ok {
		return []dto.MarketNews{}
	}
	return slices.Clone(news)
}

func (s *marketDataService) toMarketNews(items []dto.NewsItem) []dto.MarketNews {
	limit := s.cfg.Fetcher.MaxNews
	if limit <= 0 || limit > len(items) {
		limit = len(items)
	}

	news := make([]dto.MarketNews, 0, limit)
	for i, item := range items[:limit] {
		id := item.ID
		if id == "" {
			id = strconv.Itoa(i)
		}
		title := item.Headline
		if title == "" {
			title = defaultNewsTitle
		}
		summary := item.Summary
		if summary == "" {
			summary = defaultNewsSummary
		}
		source := item.Source
		if source == "" {
			source = defaultNewsSource
		}

		news = append(news, dto.MarketNews{
			ID:        id,
			Title:     title,
			Summary:   summary,
			Sentiment: AnalyzeSentiment(item.Headline + " " + item.Summary),
			Timestamp: item.Timestamp,
			Source:    source,
		})
	}
	return news
}

// GetHistoricalData returns the most recent fetcher.max_history points in chronological order,
// or an empty series when no provider has data.
func (s *marketDataService) GetHistoricalData(ctx context.Context, symbol, interval string) []dto.StockOHLCV {
	symbol = utils.NormalizeSymbol(symbol)
	if symbol == "" {
		return []dto.StockOHLCV{}
	}
	if interval == "" {
		interval = common.DEFAULT_HISTORY_INTERVAL
	}

	points, ok := fetchWithFallback(ctx, s.log, s.cache, fmt.Sprintf(common.KEY_HISTORICAL, symbol, interval), s.repo.HistoryProviders,
		func(ctx context.Context, p repository.HistoryProvider) ([]dto.StockOHLCV, error) {
			points, err := p.GetHistory(ctx, symbol, interval)
			if err != nil {
				return nil, err
			}
			if len(points) == 0 {
				return nil, repository.ErrNoData
			}
			return s.windowHistory(points), nil
		})
	if !ok {
		return []dto.StockOHLCV{}
	}
	return slices.Clone(points)
}

func (s *marketDataService) windowHistory(points []dto.StockOHLCV) []dto.StockOHLCV {
	sorted := slices.Clone(points)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Timestamp < sorted[j].Timestamp
	})

	limit := s.cfg.Fetcher.MaxHistory
	if limit > 0 && len(sorted) > limit {
		sorted = sorted[len(sorted)-limit:]
	}
	return sorted
}

// InvalidateCache drops every cached resource so the next read goes upstream.
func (s *marketDataService) InvalidateCache() {
	s.cache.Flush()
}

