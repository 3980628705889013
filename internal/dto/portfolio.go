package dto

type Position struct {
	Symbol               string  `json:"symbol" validate:"required"`
	Shares               float64 `json:"shares" validate:"gt=0"`
	AvgPrice             float64 `json:"avg_price" validate:"gt=0"`
	CurrentPrice         float64 `json:"current_price" validate:"gte=0"`
	Value                float64 `json:"value"`
	UnrealizedPnL        float64 `json:"unrealized_pnl"`
	UnrealizedPnLPercent float64 `json:"unrealized_pnl_percent"`
}

// NewPosition builds a position whose value and PnL fields are derived from shares and prices.
func NewPosition(symbol string, shares, avgPrice, currentPrice float64) Position {
	p := Position{
		Symbol:       symbol,
		Shares:       shares,
		AvgPrice:     avgPrice,
		CurrentPrice: currentPrice,
	}
	p.Recalculate()
	return p
}

// Recalculate refreshes the derived fields from shares, avg price and current price.
func (p *Position) Recalculate() {
	p.Value = p.Shares * p.CurrentPrice
	p.UnrealizedPnL = p.Shares * (p.CurrentPrice - p.AvgPrice)

	cost := p.Shares * p.AvgPrice
	if cost != 0 {
		p.UnrealizedPnLPercent = p.UnrealizedPnL / cost * 100
	} else {
		p.UnrealizedPnLPercent = 0
	}
}

type Portfolio struct {
	TotalValue       float64    `json:"total_value" validate:"gte=0"`
	DayChange        float64    `json:"day_change"`
	DayChangePercent float64    `json:"day_change_percent"`
	Positions        []Position `json:"positions" validate:"dive"`
}

// Recalculate refreshes every position and sets TotalValue to the sum of position values.
func (p *Portfolio) Recalculate() {
	total := 0.0
	for i := range p.Positions {
		p.Positions[i].Recalculate()
		total += p.Positions[i].Value
	}
	p.TotalValue = total
}

type RiskReport struct {
	RiskLevel       float64  `json:"risk_level"`
	VaR             float64  `json:"var"`
	Beta            float64  `json:"beta"`
	Recommendations []string `json:"recommendations"`
}

// Holding is a caller-owned position before it is priced against live quotes.
type Holding struct {
	Symbol   string  `json:"symbol" validate:"required"`
	Shares   float64 `json:"shares" validate:"gt=0"`
	AvgPrice float64 `json:"avg_price" validate:"gt=0"`
}

type PortfolioRequest struct {
	Holdings []Holding `json:"holdings" validate:"required,min=1,dive"`
}

type PortfolioAnalysis struct {
	Portfolio Portfolio  `json:"portfolio"`
	Risk      RiskReport `json:"risk"`
}
