package http

import (
	"net/http"
	"trading-assistant/internal/dto"
	"trading-assistant/pkg/utils"

	"github.com/labstack/echo/v4"
)

func (h *HttpAPIHandler) SetupAnalysis(base *echo.Group) {
	v1 := base.Group("/v1")
	{
		v1.GET("/signals", h.GetSignals)
		v1.POST("/risk", h.CalculateRisk)
		v1.POST("/portfolio", h.AnalyzePortfolio)
	}
}

func (h *HttpAPIHandler) GetSignals(c echo.Context) error {
	stocks := h.service.MarketDataService.GetMultipleQuotes(c.Request().Context(), h.symbolsParam(c))
	signals := h.service.SignalService.GenerateSignals(stocks)
	return c.JSON(http.StatusOK, dto.NewSuccessResponse("Signals generated", signals))
}

// CalculateRisk scores a caller supplied portfolio. Symbols are normalized and derived position
// fields and the total are recomputed from shares and prices before scoring.
func (h *HttpAPIHandler) CalculateRisk(c echo.Context) error {
	var portfolio dto.Portfolio
	if err := c.Bind(&portfolio); err != nil {
		response := dto.NewBadRequestResponse("Invalid request body")
		return c.JSON(response.Code, response)
	}
	if err := h.validator.Struct(portfolio); err != nil {
		response := dto.NewBadRequestResponse(err.Error())
		return c.JSON(response.Code, response)
	}

	for i := range portfolio.Positions {
		portfolio.Positions[i].Symbol = utils.NormalizeSymbol(portfolio.Positions[i].Symbol)
	}
	portfolio.Recalculate()
	report := h.service.RiskService.CalculateRiskMetrics(portfolio)
	return c.JSON(http.StatusOK, dto.NewSuccessResponse("Risk calculated", report))
}

func (h *HttpAPIHandler) AnalyzePortfolio(c echo.Context) error {
	var request dto.PortfolioRequest
	if err := c.Bind(&request); err != nil {
		response := dto.NewBadRequestResponse("Invalid request body")
		return c.JSON(response.Code, response)
	}
	if err := h.validator.Struct(request); err != nil {
		response := dto.NewBadRequestResponse(err.Error())
		return c.JSON(response.Code, response)
	}

	analysis := h.service.PortfolioService.PricePortfolio(c.Request().Context(), request.Holdings)
	return c.JSON(http.StatusOK, dto.NewSuccessResponse("Portfolio analyzed", analysis))
}
