package http

import (
	"net/http"
	"strconv"
	"trading-assistant/internal/dto"

	"github.com/labstack/echo/v4"
)

func (h *HttpAPIHandler) SetupDashboard(base *echo.Group) {
	v1 := base.Group("/v1/dashboard")
	{
		v1.GET("", h.GetDashboard)
		v1.POST("/refresh", h.RefreshDashboard)
	}
}

// GetDashboard serves the last refresh result, refreshing once if none exists yet.
func (h *HttpAPIHandler) GetDashboard(c echo.Context) error {
	snapshot, ok := h.service.DashboardService.Snapshot()
	if !ok {
		snapshot = h.service.DashboardService.Refresh(c.Request().Context(), false)
	}
	return c.JSON(http.StatusOK, dto.NewSuccessResponse("Dashboard snapshot", snapshot))
}

func (h *HttpAPIHandler) RefreshDashboard(c echo.Context) error {
	force := false
	if raw := c.QueryParam("force"); raw != "" {
		parsed, err := strconv.ParseBool(raw)
		if err != nil {
			response := dto.NewBadRequestResponse("force must be a boolean")
			return c.JSON(response.Code, response)
		}
		force = parsed
	}

	snapshot := h.service.DashboardService.Refresh(c.Request().Context(), force)
	return c.JSON(http.StatusOK, dto.NewSuccessResponse("Dashboard refreshed", snapshot))
}
