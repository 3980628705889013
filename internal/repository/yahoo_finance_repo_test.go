package repository

import (
	"context"
	"net/http"
	"testing"
	"trading-assistant/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const yahooChartBody = `{"chart": {"result": [{
	"meta": {"symbol": "NVDA", "longName": "NVIDIA Corporation", "regularMarketPrice": 110, "regularMarketVolume": 5000, "chartPreviousClose": 100},
	"timestamp": [1700000000, 1700000060, 1700000120],
	"indicators": {"quote": [{
		"open": [1, null, 3],
		"high": [1.5, 2.5, 3.5],
		"low": [0.5, 1.5, 2.5],
		"close": [1.2, 2.2, 3.2],
		"volume": [100, 200, 300]
	}]}
}], "error": null}}`

func TestYahooFinanceRepository_GetQuote(t *testing.T) {
	server := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v8/finance/chart/NVDA", r.URL.Path)
		writeJSON(w, http.StatusOK, yahooChartBody)
	})
	repo := NewYahooFinanceRepository(testProviderConfig(server.URL, "/v8/finance/chart"), logger.NewNop(), testLimiters())

	got, err := repo.GetQuote(context.Background(), "NVDA")
	require.NoError(t, err)
	assert.Equal(t, "NVIDIA Corporation", got.Name)
	assert.Equal(t, 110.0, got.Price)
	assert.InDelta(t, 10.0, got.Change, 1e-9)
	assert.InDelta(t, 10.0, got.ChangePercent, 1e-9)
	assert.Equal(t, int64(5000), got.Volume)
}

func TestYahooFinanceRepository_GetQuoteNotFound(t *testing.T) {
	server := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, `{"chart": {"result": null, "error": {"code": "Not Found"}}}`)
	})
	repo := NewYahooFinanceRepository(testProviderConfig(server.URL, "/v8/finance/chart"), logger.NewNop(), testLimiters())

	got, err := repo.GetQuote(context.Background(), "ZZZZ")
	assert.Error(t, err)
	assert.Nil(t, got)
}

func TestYahooFinanceRepository_GetHistory(t *testing.T) {
	server := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "1m", r.URL.Query().Get("interval"))
		assert.Equal(t, "1d", r.URL.Query().Get("range"))
		writeJSON(w, http.StatusOK, yahooChartBody)
	})
	repo := NewYahooFinanceRepository(testProviderConfig(server.URL, "/v8/finance/chart"), logger.NewNop(), testLimiters())

	points, err := repo.GetHistory(context.Background(), "NVDA", "1min")
	require.NoError(t, err)
	require.Len(t, points, 2, "bar with a null open is skipped")
	assert.Equal(t, int64(1700000000), points[0].Timestamp)
	assert.Equal(t, int64(1700000120), points[1].Timestamp)
}

func TestYahooFinanceRepository_GetHistoryUnsupportedInterval(t *testing.T) {
	repo := NewYahooFinanceRepository(testProviderConfig("http://127.0.0.1:1", "/v8/finance/chart"), logger.NewNop(), testLimiters())

	_, err := repo.GetHistory(context.Background(), "NVDA", "3min")
	assert.Error(t, err)
}
