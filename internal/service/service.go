package service

import (
	"trading-assistant/config"
	"trading-assistant/internal/repository"
	"trading-assistant/pkg/cache"
	"trading-assistant/pkg/logger"
)

type Service struct {
	MarketDataService MarketDataService
	SignalService     SignalService
	RiskService       RiskService
	PortfolioService  PortfolioService
	DashboardService  DashboardService
}

func NewService(
	cfg *config.Config,
	log *logger.Logger,
	repo *repository.Repository,
	inmemoryCache cache.Cache,
) *Service {
	marketDataService := NewMarketDataService(cfg, log, inmemoryCache, repo)
	signalService := NewSignalService(cfg, log)
	riskService := NewRiskService(log)
	portfolioService := NewPortfolioService(log, marketDataService, riskService)
	dashboardService := NewDashboardService(cfg, log, marketDataService, signalService, riskService)

	return &Service{
		MarketDataService: marketDataService,
		SignalService:     signalService,
		RiskService:       riskService,
		PortfolioService:  portfolioService,
		DashboardService:  dashboardService,
	}
}
