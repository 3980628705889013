package service

import (
	"context"
	"errors"
	"sync"
	"time"
	"trading-assistant/config"
	"trading-assistant/internal/dto"
	"trading-assistant/pkg/cache"
	"trading-assistant/pkg/logger"
)

var errUpstream = errors.New("upstream unavailable")

type fakeQuoteProvider struct {
	name   string
	quotes map[string]dto.Stock
	err    error
	panics bool

	mu    sync.Mutex
	calls []string
}

func (f *fakeQuoteProvider) Name() string { return f.name }

func (f *fakeQuoteProvider) GetQuote(ctx context.Context, symbol string) (*dto.Stock, error) {
	f.mu.Lock()
	f.calls = append(f.calls, symbol)
	f.mu.Unlock()

	if f.panics {
		panic("boom")
	}
	if f.err != nil {
		return nil, f.err
	}
	stock, ok := f.quotes[symbol]
	if !ok {
		return nil, errUpstream
	}
	return &stock, nil
}

func (f *fakeQuoteProvider) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

type fakeProfileProvider struct {
	name     string
	profiles map[string]dto.StockProfile
}

func (f *fakeProfileProvider) Name() string { return f.name }

func (f *fakeProfileProvider) GetProfile(ctx context.Context, symbol string) (*dto.StockProfile, error) {
	profile, ok := f.profiles[symbol]
	if !ok {
		return nil, errUpstream
	}
	return &profile, nil
}

type fakeNewsProvider struct {
	name  string
	items []dto.NewsItem
	err   error
	calls int
}

func (f *fakeNewsProvider) Name() string { return f.name }

func (f *fakeNewsProvider) GetNews(ctx context.Context, category string) ([]dto.NewsItem, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.items, nil
}

type fakeHistoryProvider struct {
	name     string
	points   []dto.StockOHLCV
	err      error
	interval string
}

func (f *fakeHistoryProvider) Name() string { return f.name }

func (f *fakeHistoryProvider) GetHistory(ctx context.Context, symbol, interval string) ([]dto.StockOHLCV, error) {
	f.interval = interval
	if f.err != nil {
		return nil, f.err
	}
	return f.points, nil
}

// fakeMarketData is a canned MarketDataService for the layers above the fetcher.
type fakeMarketData struct {
	stocks  []dto.Stock
	news    []dto.MarketNews
	history []dto.StockOHLCV

	mu          sync.Mutex
	invalidated int
	requested   [][]string
}

func (f *fakeMarketData) GetStockQuote(ctx context.Context, symbol string) (dto.Stock, bool) {
	for _, s := range f.stocks {
		if s.Symbol == symbol {
			return s, true
		}
	}
	return dto.Stock{}, false
}

func (f *fakeMarketData) GetMultipleQuotes(ctx context.Context, symbols []string) []dto.Stock {
	f.mu.Lock()
	f.requested = append(f.requested, symbols)
	f.mu.Unlock()

	var stocks []dto.Stock
	for _, symbol := range symbols {
		if s, ok := f.GetStockQuote(ctx, symbol); ok {
			stocks = append(stocks, s)
		}
	}
	return stocks
}

func (f *fakeMarketData) GetStockProfile(ctx context.Context, symbol string) (dto.StockProfile, bool) {
	for _, s := range f.stocks {
		if s.Symbol == symbol {
			return dto.StockProfile{Name: s.Name, MarketCap: s.MarketCap}, true
		}
	}
	return dto.StockProfile{}, false
}

func (f *fakeMarketData) GetEnrichedQuotes(ctx context.Context, symbols []string) []dto.Stock {
	return f.GetMultipleQuotes(ctx, symbols)
}

func (f *fakeMarketData) GetMarketNews(ctx context.Context) []dto.MarketNews {
	return f.news
}

func (f *fakeMarketData) GetHistoricalData(ctx context.Context, symbol, interval string) []dto.StockOHLCV {
	return f.history
}

func (f *fakeMarketData) InvalidateCache() {
	f.mu.Lock()
	f.invalidated++
	f.mu.Unlock()
}

func testConfig() *config.Config {
	return &config.Config{
		Fetcher: config.Fetcher{
			MaxConcurrency: 4,
			MaxNews:        5,
			MaxHistory:     100,
		},
		Signal: config.Signal{MaxStocks: 3},
	}
}

func testCache() cache.Cache {
	return cache.NewCache(time.Minute, -1)
}

func testLogger() *logger.Logger {
	return logger.NewNop()
}
