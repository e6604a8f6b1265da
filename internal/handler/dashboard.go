package handler

import (
	"net/http"

	"campuskart/internal/dto"
	"campuskart/internal/service"

	"github.com/gin-gonic/gin"
)

// DashboardHandler serves the profit reports backing the admin dashboard.
type DashboardHandler struct{ svc service.ReportService }

func NewDashboardHandler(svc service.ReportService) *DashboardHandler {
	return &DashboardHandler{svc: svc}
}

// DailyProfit aggregates one civil day in the configured report time zone.
// Realized mode counts only orders whose latest payment is paid; pipeline
// counts every non-cancelled order.
func (h *DashboardHandler) DailyProfit(c *gin.Context) {
	var filter dto.DailyProfitFilter
	if !bindQuery(c, &filter) {
		return
	}
	resp, err := h.svc.DailyProfit(c.Request.Context(), filter)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// TopProducts ranks products by profit over a trailing window of whole days.
func (h *DashboardHandler) TopProducts(c *gin.Context) {
	var filter dto.TopProductsFilter
	if !bindQuery(c, &filter) {
		return
	}
	resp, err := h.svc.TopProducts(c.Request.Context(), filter)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
