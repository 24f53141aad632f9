package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/agency-portal/services"
)

// DashboardController serves the admin home cards and sidebar badges
type DashboardController struct {
	dashboard *services.DashboardService
}

func NewDashboardController(dashboard *services.DashboardService) *DashboardController {
	return &DashboardController{dashboard: dashboard}
}

func (dc *DashboardController) RegisterRoutes(admin *gin.RouterGroup) {
	admin.GET("/dashboard/stats", dc.GetStats)
	admin.GET("/sidebar/counts", dc.GetSidebarCounts)
}

func (dc *DashboardController) GetStats(c *gin.Context) {
	stats, err := dc.dashboard.Stats(c.Request.Context())
	if err != nil {
		respondError(c, "Failed to retrieve dashboard stats", err)
		return
	}
	success(c, http.StatusOK, stats)
}

func (dc *DashboardController) GetSidebarCounts(c *gin.Context) {
	counts, err := dc.dashboard.SidebarCounts(c.Request.Context())
	if err != nil {
		respondError(c, "Failed to retrieve sidebar counts", err)
		return
	}
	success(c, http.StatusOK, counts)
}
