package http

import (
	"fmt"
	"net/http"
	"trading-assistant/internal/dto"
	"trading-assistant/pkg/utils"

	"github.com/labstack/echo/v4"
)

func (h *HttpAPIHandler) SetupMarket(base *echo.Group) {
	v1 := base.Group("/v1")
	{
		v1.GET("/quotes", h.GetQuotes)
		v1.GET("/quotes/:symbol", h.GetQuote)
		v1.GET("/profiles/:symbol", h.GetProfile)
		v1.GET("/news", h.GetNews)
		v1.GET("/history/:symbol", h.GetHistory)
	}
}

// symbolsParam reads ?symbols=A,B and falls back to the configured universe.
func (h *HttpAPIHandler) symbolsParam(c echo.Context) []string {
	if symbols := utils.NormalizeSymbols([]string{c.QueryParam("symbols")}); len(symbols) > 0 {
		return symbols
	}
	return utils.NormalizeSymbols(h.cfg.Market.Symbols)
}

func (h *HttpAPIHandler) GetQuotes(c echo.Context) error {
	stocks := h.service.MarketDataService.GetEnrichedQuotes(c.Request().Context(), h.symbolsParam(c))
	return c.JSON(http.StatusOK, dto.NewSuccessResponse("Quotes fetched", stocks))
}

func (h *HttpAPIHandler) GetQuote(c echo.Context) error {
	symbol := utils.NormalizeSymbol(c.Param("symbol"))
	stock, ok := h.service.MarketDataService.GetStockQuote(c.Request().Context(), symbol)
	if !ok {
		response := dto.NewNotFoundResponse(fmt.Sprintf("No quote available for %s", symbol))
		return c.JSON(response.Code, response)
	}
	return c.JSON(http.StatusOK, dto.NewSuccessResponse("Quote fetched", stock))
}

func (h *HttpAPIHandler) GetProfile(c echo.Context) error {
	symbol := utils.NormalizeSymbol(c.Param("symbol"))
	profile, ok := h.service.MarketDataService.GetStockProfile(c.Request().Context(), symbol)
	if !ok {
		response := dto.NewNotFoundResponse(fmt.Sprintf("No profile available for %s", symbol))
		return c.JSON(response.Code, response)
	}
	return c.JSON(http.StatusOK, dto.NewSuccessResponse("Profile fetched", profile))
}

func (h *HttpAPIHandler) GetNews(c echo.Context) error {
	news := h.service.MarketDataService.GetMarketNews(c.Request().Context())
	return c.JSON(http.StatusOK, dto.NewSuccessResponse("News fetched", news))
}

func (h *HttpAPIHandler) GetHistory(c echo.Context) error {
	interval := c.QueryParam("interval")
	if interval == "" {
		interval = h.cfg.Market.HistoryInterval
	}
	points := h.service.MarketDataService.GetHistoricalData(c.Request().Context(), c.Param("symbol"), interval)
	return c.JSON(http.StatusOK, dto.NewSuccessResponse("History fetched", points))
}
