package service

import (
	"trading-assistant/internal/dto"
	"trading-assistant/pkg/common"
	"trading-assistant/pkg/logger"
	"trading-assistant/pkg/utils"
)

const (
	concentrationThreshold = 20.0
	techExposureThreshold  = 60.0
	highRiskThreshold      = 70.0

	varRatio = 0.02
)

const (
	RecommendReduceConcentration = "Consider reducing position concentration"
	RecommendDiversifyTech       = "High tech sector exposure - consider diversification"
	RecommendReviewPositionSizes = "Overall risk level is high - review position sizes"
)

type RiskService interface {
	CalculateRiskMetrics(portfolio dto.Portfolio) dto.RiskReport
}

type riskService struct {
	log *logger.Logger
}

func NewRiskService(log *logger.Logger) RiskService {
	return &riskService{log: log}
}

func (s *riskService) CalculateRiskMetrics(portfolio dto.Portfolio) dto.RiskReport {
	report := CalculateRiskMetrics(portfolio)
	s.log.Debug("Calculated portfolio risk",
		logger.IntField("positions", len(portfolio.Positions)),
		logger.Float64Field("total_value", portfolio.TotalValue),
		logger.Float64Field("risk_level", report.RiskLevel))
	return report
}

// CalculateRiskMetrics scores a portfolio by single-position and tech-sector concentration.
// It trusts portfolio.TotalValue as given; a zero or non-finite total yields zero ratios.
func CalculateRiskMetrics(portfolio dto.Portfolio) dto.RiskReport {
	totalValue := portfolio.TotalValue

	var concentration, techConcentration float64
	if totalValue != 0 && utils.IsFinite(totalValue) {
		techSymbols := common.TechSymbols()
		maxRatio, techValue := 0.0, 0.0
		for i, position := range portfolio.Positions {
			ratio := position.Value / totalValue
			if i == 0 || ratio > maxRatio {
				maxRatio = ratio
			}
			if utils.ContainsString(techSymbols, utils.NormalizeSymbol(position.Symbol)) {
				techValue += position.Value
			}
		}
		concentration = finiteOrZero(maxRatio * 100)
		techConcentration = finiteOrZero(techValue / totalValue * 100)
	}

	riskLevel := utils.Clamp(concentration+techConcentration*0.5, 0, 100)

	recommendations := []string{}
	if concentration > concentrationThreshold {
		recommendations = append(recommendations, RecommendReduceConcentration)
	}
	if techConcentration > techExposureThreshold {
		recommendations = append(recommendations, RecommendDiversifyTech)
	}
	if riskLevel > highRiskThreshold {
		recommendations = append(recommendations, RecommendReviewPositionSizes)
	}

	return dto.RiskReport{
		RiskLevel:       riskLevel,
		VaR:             finiteOrZero(totalValue * varRatio),
		Beta:            1 + (riskLevel-50)/100,
		Recommendations: recommendations,
	}
}

func finiteOrZero(v float64) float64 {
	if !utils.IsFinite(v) {
		return 0
	}
	return v
}
