package handler

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ambalavanan01/self-study-hub/internal/dto"
	"github.com/ambalavanan01/self-study-hub/internal/service"
	"github.com/ambalavanan01/self-study-hub/pkg/response"
)

// StudyHandler 学习（番茄钟）模块 HTTP 处理器
type StudyHandler struct {
	studySvc service.StudyService
}

// NewStudyHandler 创建 StudyHandler
func NewStudyHandler(studySvc service.StudyService) *StudyHandler {
	return &StudyHandler{studySvc: studySvc}
}

// LogSession 记录一次完成的专注时段
// POST /api/v1/study/sessions
func (h *StudyHandler) LogSession(c *gin.Context) {
	var req dto.LogStudySessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	if err := h.studySvc.LogSession(c.Request.Context(), userID, &req); err != nil {
		response.InternalError(c)
		return
	}

	response.Created(c, nil)
}

// Stats 学习统计
// GET /api/v1/study/stats
func (h *StudyHandler) Stats(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	stats, err := h.studySvc.Stats(c.Request.Context(), userID, time.Now())
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, stats)
}

// GetTimerSettings 读取番茄钟时长偏好
// GET /api/v1/study/timer-settings
func (h *StudyHandler) GetTimerSettings(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	settings, err := h.studySvc.GetTimerSettings(c.Request.Context(), userID)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, settings)
}

// SaveTimerSettings 保存番茄钟时长偏好
// PUT /api/v1/study/timer-settings
func (h *StudyHandler) SaveTimerSettings(c *gin.Context) {
	var req dto.TimerSettings
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	if err := h.studySvc.SaveTimerSettings(c.Request.Context(), userID, &req); err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, &req)
}
