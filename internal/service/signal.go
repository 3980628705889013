package service

import (
	"fmt"
	"math"
	"time"
	"trading-assistant/config"
	"trading-assistant/internal/dto"
	"trading-assistant/pkg/logger"
	"trading-assistant/pkg/utils"

	"github.com/google/uuid"
)

const defaultMaxSignalStocks = 3

// SignalService turns quotes into BUY/SELL/HOLD recommendations with a momentum rule set.
type SignalService interface {
	AnalyzeStock(stock dto.Stock) (dto.AISignal, bool)
	GenerateSignals(stocks []dto.Stock) []dto.AISignal
}

type signalRule struct {
	signalType  dto.SignalType
	matches     func(momentum, volatility float64) bool
	confidence  func(momentum float64) float64
	targetRatio float64
	stopRatio   float64
	reasoning   func(momentum float64) string
}

// signalRules are evaluated in order, the first match wins.
var signalRules = []signalRule{
	{
		signalType: dto.SignalBuy,
		matches: func(momentum, volatility float64) bool {
			return momentum > 2 && volatility < 5
		},
		confidence: func(momentum float64) float64 {
			return math.Min(0.9, 0.6+momentum/10)
		},
		targetRatio: 1.08,
		stopRatio:   0.95,
		reasoning: func(momentum float64) string {
			return "Strong upward momentum (" + utils.FormatPercentage(momentum) + ") with controlled volatility. Technical indicators suggest continued strength with RSI in favorable territory."
		},
	},
	{
		signalType: dto.SignalSell,
		matches: func(momentum, volatility float64) bool {
			return momentum < -2 && volatility > 3
		},
		confidence: func(momentum float64) float64 {
			return math.Min(0.85, 0.6+math.Abs(momentum)/15)
		},
		targetRatio: 0.92,
		stopRatio:   1.05,
		reasoning: func(momentum float64) string {
			return "Negative momentum (" + utils.FormatPercentage(momentum) + ") with high volatility signals potential further decline. Support levels appear weak."
		},
	},
	{
		signalType: dto.SignalHold,
		matches: func(momentum, _ float64) bool {
			return math.Abs(momentum) < 1
		},
		confidence: func(float64) float64 {
			return 0.7
		},
		targetRatio: 1.03,
		stopRatio:   0.97,
		reasoning: func(float64) string {
			return "Consolidation phase with low volatility. Waiting for clearer directional signals before taking action."
		},
	},
}

type signalService struct {
	cfg   *config.Config
	log   *logger.Logger
	now   func() time.Time
	newID func() string
}

type SignalOption func(*signalService)

// WithClock overrides the clock used for CreatedAt.
func WithClock(now func() time.Time) SignalOption {
	return func(s *signalService) {
		s.now = now
	}
}

// WithIDGenerator overrides the random part of signal ids.
func WithIDGenerator(newID func() string) SignalOption {
	return func(s *signalService) {
		s.newID = newID
	}
}

func NewSignalService(cfg *config.Config, log *logger.Logger, opts ...SignalOption) SignalService {
	s := &signalService{
		cfg:   cfg,
		log:   log,
		now:   time.Now,
		newID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// AnalyzeStock applies the rule set to one quote. ok is false when no rule matches
// or the quote carries a non-finite price or change.
func (s *signalService) AnalyzeStock(stock dto.Stock) (dto.AISignal, bool) {
	if !utils.IsFinite(stock.ChangePercent) || !utils.IsFinite(stock.Price) {
		s.log.Debug("Skipping signal for non-finite quote", logger.StringField("symbol", stock.Symbol))
		return dto.AISignal{}, false
	}

	momentum := stock.ChangePercent
	volatility := math.Abs(stock.ChangePercent)

	for _, rule := range signalRules {
		if !rule.matches(momentum, volatility) {
			continue
		}

		confidence := utils.Clamp(rule.confidence(momentum), 0, 1)
		return dto.AISignal{
			ID:          fmt.Sprintf("signal_%s_%s", stock.Symbol, s.newID()),
			Symbol:      stock.Symbol,
			Type:        rule.signalType,
			Confidence:  confidence,
			Reasoning:   rule.reasoning(momentum),
			TargetPrice: stock.Price * rule.targetRatio,
			StopLoss:    stock.Price * rule.stopRatio,
			Timeframe:   Timeframe(confidence),
			CreatedAt:   s.now(),
		}, true
	}

	return dto.AISignal{}, false
}

// GenerateSignals analyzes only the first signal.max_stocks quotes, in input order.
func (s *signalService) GenerateSignals(stocks []dto.Stock) []dto.AISignal {
	limit := s.cfg.Signal.MaxStocks
	if limit <= 0 {
		limit = defaultMaxSignalStocks
	}
	if limit > len(stocks) {
		limit = len(stocks)
	}

	signals := make([]dto.AISignal, 0, limit)
	for _, stock := range stocks[:limit] {
		if signal, ok := s.AnalyzeStock(stock); ok {
			signals = append(signals, signal)
		}
	}
	return signals
}

// Timeframe maps a confidence to the holding horizon shown with a signal.
func Timeframe(confidence float64) string {
	switch {
	case confidence > 0.8:
		return "1-2 weeks"
	case confidence > 0.7:
		return "2-4 weeks"
	default:
		return "1-2 months"
	}
}
