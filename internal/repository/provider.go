package repository

import (
	"context"
	"errors"
	"trading-assistant/internal/dto"
)

// ErrNoData is returned when an upstream answered but the payload carried nothing usable.
var ErrNoData = errors.New("no data returned by provider")

type NamedProvider interface {
	Name() string
}

type QuoteProvider interface {
	NamedProvider
	GetQuote(ctx context.Context, symbol string) (*dto.Stock, error)
}

type ProfileProvider interface {
	NamedProvider
	GetProfile(ctx context.Context, symbol string) (*dto.StockProfile, error)
}

type NewsProvider interface {
	NamedProvider
	GetNews(ctx context.Context, category string) ([]dto.NewsItem, error)
}

// HistoryProvider returns OHLCV points in chronological order.
type HistoryProvider interface {
	NamedProvider
	GetHistory(ctx context.Context, symbol, interval string) ([]dto.StockOHLCV, error)
}
