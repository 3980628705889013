package repository

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
	"trading-assistant/config"
	"trading-assistant/pkg/ratelimit"

	"golang.org/x/time/rate"
)

func newTestServer(t *testing.T, handler http.HandlerFunc) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return server
}

func testProviderConfig(baseURL, path string) config.Provider {
	return config.Provider{
		BaseURL: baseURL,
		Path:    path,
		APIKey:  "test-key",
		Timeout: 2 * time.Second,
	}
}

func testLimiters() *ratelimit.LimiterStore {
	return ratelimit.NewLimiterStore(rate.Inf, 1)
}

func writeJSON(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(body))
}
