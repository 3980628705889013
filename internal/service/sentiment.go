package service

import (
	"strings"
	"trading-assistant/internal/dto"
)

var (
	positiveWords = []string{"up", "gain", "rise", "bull", "growth", "profit", "strong", "beat", "surge"}
	negativeWords = []string{"down", "fall", "drop", "bear", "loss", "weak", "miss", "decline", "crash"}
)

// AnalyzeSentiment classifies text by counting which words of each list occur in it.
// Matching is a case-insensitive substring test and every word counts at most once,
// so "upgrade" counts as "up".
func AnalyzeSentiment(text string) dto.Sentiment {
	lower := strings.ToLower(text)

	positive := countMatches(lower, positiveWords)
	negative := countMatches(lower, negativeWords)

	switch {
	case positive > negative:
		return dto.SentimentPositive
	case negative > positive:
		return dto.SentimentNegative
	default:
		return dto.SentimentNeutral
	}
}

func countMatches(text string, words []string) int {
	count := 0
	for _, word := range words {
		if strings.Contains(text, word) {
			count++
		}
	}
	return count
}
