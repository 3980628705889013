package dto

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewPosition(t *testing.T) {
	tests := []struct {
		name        string
		shares      float64
		avgPrice    float64
		current     float64
		wantValue   float64
		wantPnL     float64
		wantPnLPerc float64
	}{
		{name: "gain", shares: 10, avgPrice: 100, current: 120, wantValue: 1200, wantPnL: 200, wantPnLPerc: 20},
		{name: "loss", shares: 4, avgPrice: 50, current: 40, wantValue: 160, wantPnL: -40, wantPnLPerc: -20},
		{name: "zero cost", shares: 0, avgPrice: 0, current: 10, wantValue: 0, wantPnL: 0, wantPnLPerc: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewPosition("AAPL", tt.shares, tt.avgPrice, tt.current)
			assert.InDelta(t, tt.wantValue, p.Value, 1e-9)
			assert.InDelta(t, tt.wantPnL, p.UnrealizedPnL, 1e-9)
			assert.InDelta(t, tt.wantPnLPerc, p.UnrealizedPnLPercent, 1e-9)
		})
	}
}

func TestPortfolio_Recalculate(t *testing.T) {
	p := Portfolio{
		TotalValue: 1,
		Positions: []Position{
			{Symbol: "AAPL", Shares: 2, AvgPrice: 100, CurrentPrice: 150},
			{Symbol: "XOM", Shares: 1, AvgPrice: 100, CurrentPrice: 90},
		},
	}

	p.Recalculate()

	assert.InDelta(t, 390.0, p.TotalValue, 1e-9)
	assert.InDelta(t, 300.0, p.Positions[0].Value, 1e-9)
	assert.InDelta(t, -10.0, p.Positions[1].UnrealizedPnL, 1e-9)
}
