package handler

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ambalavanan01/self-study-hub/internal/service"
	"github.com/ambalavanan01/self-study-hub/pkg/response"
)

// DashboardHandler 仪表盘模块 HTTP 处理器
type DashboardHandler struct {
	dashboardSvc service.DashboardService
}

// NewDashboardHandler 创建 DashboardHandler
func NewDashboardHandler(dashboardSvc service.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardSvc: dashboardSvc}
}

// Get 仪表盘聚合视图
// GET /api/v1/dashboard
func (h *DashboardHandler) Get(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	dashboard, err := h.dashboardSvc.Get(c.Request.Context(), userID, time.Now())
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, dashboard)
}
