package dto

import "time"

type Sentiment string

const (
	SentimentPositive Sentiment = "positive"
	SentimentNegative Sentiment = "negative"
	SentimentNeutral  Sentiment = "neutral"
)

// NewsItem is a headline as returned by a news provider, before sentiment annotation.
type NewsItem struct {
	ID        string
	Headline  string
	Summary   string
	Source    string
	Timestamp time.Time
}

type MarketNews struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Summary   string    `json:"summary"`
	Sentiment Sentiment `json:"sentiment"`
	Timestamp time.Time `json:"timestamp"`
	Source    string    `json:"source"`
}
