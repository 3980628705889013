package dto

import "time"

// DashboardSnapshot is the result of one refresh cycle. Degraded is set when
// fewer quotes came back than were requested.
type DashboardSnapshot struct {
	Stocks    []Stock            `json:"stocks"`
	Signals   []AISignal         `json:"signals"`
	News      []MarketNews       `json:"news"`
	Portfolio *PortfolioAnalysis `json:"portfolio,omitempty"`
	Requested int                `json:"requested"`
	Degraded  bool               `json:"degraded"`
	UpdatedAt time.Time          `json:"updated_at"`
}
