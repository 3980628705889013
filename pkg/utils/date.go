package utils

import (
	"time"
)

const alphaVantageLayout = "2006-01-02 15:04:05"

// GetNewYorkTimeLocation returns the US equity market time zone, falling back to UTC
// when the tz database is unavailable.
func GetNewYorkTimeLocation() *time.Location {
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		return time.UTC
	}
	return loc
}

// ParseMarketTime parses an exchange-local "YYYY-MM-DD hh:mm:ss" timestamp.
// Date-only values are accepted too.
func ParseMarketTime(value string) (time.Time, error) {
	loc := GetNewYorkTimeLocation()
	t, err := time.ParseInLocation(alphaVantageLayout, value, loc)
	if err == nil {
		return t, nil
	}
	return time.ParseInLocation(time.DateOnly, value, loc)
}
