package service

import (
	"context"
	"trading-assistant/internal/dto"
	"trading-assistant/pkg/logger"
	"trading-assistant/pkg/utils"
)

// PortfolioService prices caller-owned holdings at the latest quotes and scores the result.
type PortfolioService interface {
	PricePortfolio(ctx context.Context, holdings []dto.Holding) dto.PortfolioAnalysis
}

type portfolioService struct {
	log        *logger.Logger
	marketData MarketDataService
	risk       RiskService
}

func NewPortfolioService(log *logger.Logger, marketData MarketDataService, risk RiskService) PortfolioService {
	return &portfolioService{
		log:        log,
		marketData: marketData,
		risk:       risk,
	}
}

func (s *portfolioService) PricePortfolio(ctx context.Context, holdings []dto.Holding) dto.PortfolioAnalysis {
	symbols := make([]string, 0, len(holdings))
	for _, h := range holdings {
		symbols = append(symbols, h.Symbol)
	}

	quotes := s.marketData.GetMultipleQuotes(ctx, utils.NormalizeSymbols(symbols))
	portfolio := BuildPortfolio(holdings, quotes)

	s.log.InfoContext(ctx, "Priced portfolio",
		logger.IntField("holdings", len(holdings)),
		logger.IntField("quoted", len(quotes)),
		logger.Float64Field("total_value", portfolio.TotalValue))

	return dto.PortfolioAnalysis{
		Portfolio: portfolio,
		Risk:      s.risk.CalculateRiskMetrics(portfolio),
	}
}

// BuildPortfolio turns holdings into positions priced at the matching quote.
// A holding without a quote is carried at its average price and adds nothing to the day change.
func BuildPortfolio(holdings []dto.Holding, quotes []dto.Stock) dto.Portfolio {
	bySymbol := make(map[string]dto.Stock, len(quotes))
	for _, q := range quotes {
		bySymbol[utils.NormalizeSymbol(q.Symbol)] = q
	}

	portfolio := dto.Portfolio{Positions: make([]dto.Position, 0, len(holdings))}
	dayChange := 0.0
	for _, h := range holdings {
		symbol := utils.NormalizeSymbol(h.Symbol)
		currentPrice := h.AvgPrice
		if quote, ok := bySymbol[symbol]; ok {
			currentPrice = quote.Price
			dayChange += h.Shares * quote.Change
		}
		portfolio.Positions = append(portfolio.Positions, dto.NewPosition(symbol, h.Shares, h.AvgPrice, currentPrice))
	}
	portfolio.Recalculate()

	portfolio.DayChange = dayChange
	if previous := portfolio.TotalValue - dayChange; previous > 0 {
		portfolio.DayChangePercent = dayChange / previous * 100
	}
	return portfolio
}
