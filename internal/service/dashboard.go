package service

import (
	"context"
	"sync"
	"time"
	"trading-assistant/config"
	"trading-assistant/internal/dto"
	"trading-assistant/pkg/logger"
	"trading-assistant/pkg/utils"

	"golang.org/x/sync/errgroup"
)

// DashboardService runs one refresh cycle over the configured universe and keeps the latest result.
// Scheduling is left to the caller.
type DashboardService interface {
	Refresh(ctx context.Context, force bool) dto.DashboardSnapshot
	Snapshot() (dto.DashboardSnapshot, bool)
}

type dashboardService struct {
	cfg        *config.Config
	log        *logger.Logger
	marketData MarketDataService
	signal     SignalService
	risk       RiskService
	now        func() time.Time

	mu       sync.RWMutex
	snapshot *dto.DashboardSnapshot
}

func NewDashboardService(cfg *config.Config, log *logger.Logger, marketData MarketDataService, signal SignalService, risk RiskService) DashboardService {
	return &dashboardService{
		cfg:        cfg,
		log:        log,
		marketData: marketData,
		signal:     signal,
		risk:       risk,
		now:        time.Now,
	}
}

// Refresh fetches quotes and news concurrently, then derives signals and the portfolio view.
// force flushes the cache first so every resource is read from upstream.
func (s *dashboardService) Refresh(ctx context.Context, force bool) dto.DashboardSnapshot {
	start := s.now()
	if force {
		s.log.InfoContext(ctx, "Forced refresh, invalidating cache")
		s.marketData.InvalidateCache()
	}

	symbols := utils.NormalizeSymbols(s.cfg.Market.Symbols)

	var (
		stocks []dto.Stock
		news   []dto.MarketNews
		g      errgroup.Group
	)
	g.Go(func() error {
		stocks = s.marketData.GetEnrichedQuotes(ctx, symbols)
		return nil
	})
	g.Go(func() error {
		news = s.marketData.GetMarketNews(ctx)
		return nil
	})
	_ = g.Wait()

	snapshot := dto.DashboardSnapshot{
		Stocks:    stocks,
		Signals:   s.signal.GenerateSignals(stocks),
		News:      news,
		Requested: len(symbols),
		Degraded:  len(stocks) < len(symbols),
		UpdatedAt: s.now(),
	}

	if holdings := s.holdings(); len(holdings) > 0 {
		portfolio := BuildPortfolio(holdings, stocks)
		snapshot.Portfolio = &dto.PortfolioAnalysis{
			Portfolio: portfolio,
			Risk:      s.risk.CalculateRiskMetrics(portfolio),
		}
	}

	s.mu.Lock()
	s.snapshot = &snapshot
	s.mu.Unlock()

	s.log.InfoContext(ctx, "Dashboard refreshed",
		logger.IntField("requested", snapshot.Requested),
		logger.IntField("stocks", len(snapshot.Stocks)),
		logger.IntField("signals", len(snapshot.Signals)),
		logger.IntField("news", len(snapshot.News)),
		logger.Field("degraded", snapshot.Degraded),
		logger.DurationField("elapsed", s.now().Sub(start)))

	return snapshot
}

// Snapshot returns the result of the last refresh, ok is false before the first one.
func (s *dashboardService) Snapshot() (dto.DashboardSnapshot, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.snapshot == nil {
		return dto.DashboardSnapshot{}, false
	}
	return *s.snapshot, true
}

func (s *dashboardService) holdings() []dto.Holding {
	holdings := make([]dto.Holding, 0, len(s.cfg.Portfolio.Holdings))
	for _, h := range s.cfg.Portfolio.Holdings {
		holdings = append(holdings, dto.Holding{
			Symbol:   h.Symbol,
			Shares:   h.Shares,
			AvgPrice: h.AvgPrice,
		})
	}
	return holdings
}
