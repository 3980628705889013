package dto

import "time"

type SignalType string

const (
	SignalBuy  SignalType = "BUY"
	SignalSell SignalType = "SELL"
	SignalHold SignalType = "HOLD"
)

func (s SignalType) String() string {
	switch s {
	case SignalBuy:
		return "🟢 Buy"
	case SignalSell:
		return "🔴 Sell"
	case SignalHold:
		return "🟡 Hold"
	default:
		return "⚪ Unknown"
	}
}

type AISignal struct {
	ID          string     `json:"id"`
	Symbol      string     `json:"symbol"`
	Type        SignalType `json:"type"`
	Confidence  float64    `json:"confidence"`
	Reasoning   string     `json:"reasoning"`
	TargetPrice float64    `json:"target_price"`
	StopLoss    float64    `json:"stop_loss"`
	Timeframe   string     `json:"timeframe"`
	CreatedAt   time.Time  `json:"created_at"`
}
