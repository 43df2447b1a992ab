package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/mvaldez/projecttracker/internal/services"
	"github.com/mvaldez/projecttracker/pkg/response"
)

type DashboardHandler struct {
	dashboard *services.DashboardService
}

func NewDashboardHandler(dashboard *services.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboard: dashboard}
}

// GetStats returns the summary statistics and deadline insights
// GET /api/dashboard/stats
func (h *DashboardHandler) GetStats(c *gin.Context) {
	response.Success(c, h.dashboard.GetStats())
}
