package service

import (
	"math"
	"strings"
	"testing"
	"time"
	"trading-assistant/internal/dto"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSignalService(now time.Time) SignalService {
	return NewSignalService(testConfig(), testLogger(),
		WithClock(func() time.Time { return now }),
		WithIDGenerator(func() string { return "fixed" }))
}

func TestSignalService_AnalyzeStock(t *testing.T) {
	now := time.Date(2024, 5, 10, 15, 0, 0, 0, time.UTC)
	svc := newTestSignalService(now)

	tests := []struct {
		name          string
		stock         dto.Stock
		wantOK        bool
		wantType      dto.SignalType
		wantConf      float64
		wantTarget    float64
		wantStop      float64
		wantTimeframe string
		wantReasoning string
	}{
		{
			name:          "buy on moderate upward momentum",
			stock:         dto.Stock{Symbol: "AAPL", Price: 100, ChangePercent: 3},
			wantOK:        true,
			wantType:      dto.SignalBuy,
			wantConf:      0.9,
			wantTarget:    108,
			wantStop:      95,
			wantTimeframe: "1-2 weeks",
			wantReasoning: "Strong upward momentum (+3.00%)",
		},
		{
			name:          "buy confidence below cap",
			stock:         dto.Stock{Symbol: "MSFT", Price: 200, ChangePercent: 2.5},
			wantOK:        true,
			wantType:      dto.SignalBuy,
			wantConf:      0.85,
			wantTarget:    216,
			wantStop:      190,
			wantTimeframe: "1-2 weeks",
			wantReasoning: "Strong upward momentum (+2.50%)",
		},
		{
			name:          "sell on sharp drop",
			stock:         dto.Stock{Symbol: "TSLA", Price: 100, ChangePercent: -4},
			wantOK:        true,
			wantType:      dto.SignalSell,
			wantConf:      0.85,
			wantTarget:    92,
			wantStop:      105,
			wantTimeframe: "1-2 weeks",
			wantReasoning: "Negative momentum (-4.00%)",
		},
		{
			name:          "hold in consolidation",
			stock:         dto.Stock{Symbol: "KO", Price: 100, ChangePercent: 0.5},
			wantOK:        true,
			wantType:      dto.SignalHold,
			wantConf:      0.7,
			wantTarget:    103,
			wantStop:      97,
			wantTimeframe: "1-2 months",
			wantReasoning: "Consolidation phase",
		},
		{
			name:   "no rule between hold and buy",
			stock:  dto.Stock{Symbol: "X", Price: 100, ChangePercent: 1.5},
			wantOK: false,
		},
		{
			name:   "too volatile to buy",
			stock:  dto.Stock{Symbol: "X", Price: 100, ChangePercent: 6},
			wantOK: false,
		},
		{
			name:   "drop without enough volatility",
			stock:  dto.Stock{Symbol: "X", Price: 100, ChangePercent: -2.5},
			wantOK: false,
		},
		{
			name:   "drop of exactly three percent is not volatile enough to sell",
			stock:  dto.Stock{Symbol: "X", Price: 100, ChangePercent: -3},
			wantOK: false,
		},
		{
			name:   "non-finite change",
			stock:  dto.Stock{Symbol: "X", Price: 100, ChangePercent: math.NaN()},
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			signal, ok := svc.AnalyzeStock(tt.stock)
			require.Equal(t, tt.wantOK, ok)
			if !ok {
				return
			}
			assert.Equal(t, "signal_"+tt.stock.Symbol+"_fixed", signal.ID)
			assert.Equal(t, tt.stock.Symbol, signal.Symbol)
			assert.Equal(t, tt.wantType, signal.Type)
			assert.InDelta(t, tt.wantConf, signal.Confidence, 1e-9)
			assert.InDelta(t, tt.wantTarget, signal.TargetPrice, 1e-9)
			assert.InDelta(t, tt.wantStop, signal.StopLoss, 1e-9)
			assert.Equal(t, tt.wantTimeframe, signal.Timeframe)
			assert.True(t, strings.HasPrefix(signal.Reasoning, tt.wantReasoning), signal.Reasoning)
			assert.Equal(t, now, signal.CreatedAt)
			assert.GreaterOrEqual(t, signal.Confidence, 0.0)
			assert.LessOrEqual(t, signal.Confidence, 1.0)
		})
	}
}

func TestSignalService_AnalyzeStock_DefaultIDs(t *testing.T) {
	svc := NewSignalService(testConfig(), testLogger())

	first, ok := svc.AnalyzeStock(dto.Stock{Symbol: "NVDA", Price: 10, ChangePercent: 3})
	require.True(t, ok)
	second, ok := svc.AnalyzeStock(dto.Stock{Symbol: "NVDA", Price: 10, ChangePercent: 3})
	require.True(t, ok)

	require.True(t, strings.HasPrefix(first.ID, "signal_NVDA_"))
	_, err := uuid.Parse(strings.TrimPrefix(first.ID, "signal_NVDA_"))
	assert.NoError(t, err)
	assert.NotEqual(t, first.ID, second.ID)
}

func TestSignalService_GenerateSignals(t *testing.T) {
	svc := newTestSignalService(time.Now())

	tests := []struct {
		name        string
		stocks      []dto.Stock
		wantSymbols []string
	}{
		{
			name: "only the first three stocks",
			stocks: []dto.Stock{
				{Symbol: "A", Price: 10, ChangePercent: 3},
				{Symbol: "B", Price: 10, ChangePercent: -4},
				{Symbol: "C", Price: 10, ChangePercent: 0},
				{Symbol: "D", Price: 10, ChangePercent: 3},
			},
			wantSymbols: []string{"A", "B", "C"},
		},
		{
			name: "stocks without a rule are skipped",
			stocks: []dto.Stock{
				{Symbol: "A", Price: 10, ChangePercent: 1.5},
				{Symbol: "B", Price: 10, ChangePercent: 0.2},
				{Symbol: "C", Price: 10, ChangePercent: 8},
				{Symbol: "D", Price: 10, ChangePercent: 3},
			},
			wantSymbols: []string{"B"},
		},
		{
			name:        "empty input",
			stocks:      nil,
			wantSymbols: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			signals := svc.GenerateSignals(tt.stocks)
			got := make([]string, 0, len(signals))
			for _, s := range signals {
				got = append(got, s.Symbol)
			}
			assert.Equal(t, tt.wantSymbols, got)
		})
	}
}

func TestTimeframe(t *testing.T) {
	tests := []struct {
		confidence float64
		want       string
	}{
		{confidence: 0.9, want: "1-2 weeks"},
		{confidence: 0.81, want: "1-2 weeks"},
		{confidence: 0.8, want: "2-4 weeks"},
		{confidence: 0.75, want: "2-4 weeks"},
		{confidence: 0.7, want: "1-2 months"},
		{confidence: 0, want: "1-2 months"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Timeframe(tt.confidence), "confidence %v", tt.confidence)
	}
}
