package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/incial/incial-workhub-sub000/internal/service"
	"github.com/incial/incial-workhub-sub000/pkg/response"
)

// DashboardHandler 仪表盘模块 HTTP 处理器
type DashboardHandler struct {
	dashboardSvc service.DashboardService
}

// NewDashboardHandler 创建 DashboardHandler
func NewDashboardHandler(dashboardSvc service.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardSvc: dashboardSvc}
}

// GetStats 仪表盘聚合统计
// GET /api/v1/dashboard/stats
func (h *DashboardHandler) GetStats(c *gin.Context) {
	result, err := h.dashboardSvc.GetStats(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, result)
}

// GetLeaderboard 完成数排行榜
// GET /api/v1/dashboard/leaderboard
func (h *DashboardHandler) GetLeaderboard(c *gin.Context) {
	result, err := h.dashboardSvc.GetLeaderboard(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, result)
}
