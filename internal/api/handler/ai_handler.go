package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ambalavanan01/self-study-hub/internal/dto"
	"github.com/ambalavanan01/self-study-hub/internal/service"
	"github.com/ambalavanan01/self-study-hub/pkg/response"
)

// AIHandler 学习助手模块 HTTP 处理器
type AIHandler struct {
	aiSvc service.AIService
}

// NewAIHandler 创建 AIHandler
func NewAIHandler(aiSvc service.AIService) *AIHandler {
	return &AIHandler{aiSvc: aiSvc}
}

// AnalyzeCGPA 成绩分析
// POST /api/v1/ai/analyze-cgpa
func (h *AIHandler) AnalyzeCGPA(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	result, err := h.aiSvc.AnalyzeCGPA(c.Request.Context(), userID)
	if err != nil {
		h.handleAIError(c, err)
		return
	}

	response.OK(c, result)
}

// StudyGuide 学习指南生成
// POST /api/v1/ai/study-guide
func (h *AIHandler) StudyGuide(c *gin.Context) {
	var req dto.StudyGuideRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	result, err := h.aiSvc.StudyGuide(c.Request.Context(), userID, &req)
	if err != nil {
		h.handleAIError(c, err)
		return
	}

	response.OK(c, result)
}

// DailyBriefing 按兴趣生成当日趋势简报
// GET /api/v1/ai/daily-briefing
func (h *AIHandler) DailyBriefing(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	result, err := h.aiSvc.DailyBriefing(c.Request.Context(), userID, time.Now())
	if err != nil {
		h.handleAIError(c, err)
		return
	}

	response.OK(c, result)
}

// ListInterests 兴趣列表
// GET /api/v1/ai/interests
func (h *AIHandler) ListInterests(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	interests, err := h.aiSvc.ListInterests(c.Request.Context(), userID)
	if err != nil {
		h.handleAIError(c, err)
		return
	}

	response.OK(c, gin.H{"list": interests})
}

// AddInterest 添加兴趣
// POST /api/v1/ai/interests
func (h *AIHandler) AddInterest(c *gin.Context) {
	var req dto.AddInterestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	interest, err := h.aiSvc.AddInterest(c.Request.Context(), userID, &req)
	if err != nil {
		h.handleAIError(c, err)
		return
	}

	response.Created(c, interest)
}

// DeleteInterest 删除兴趣
// DELETE /api/v1/ai/interests/:id
func (h *AIHandler) DeleteInterest(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "兴趣ID不能为空")
		return
	}

	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	if err := h.aiSvc.DeleteInterest(c.Request.Context(), userID, id); err != nil {
		h.handleAIError(c, err)
		return
	}

	response.OK(c, nil)
}

// ── 错误映射 ──

func (h *AIHandler) handleAIError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrAIUnavailable):
		response.Error(c, http.StatusServiceUnavailable, 17001, "AI 服务暂不可用")
	case errors.Is(err, service.ErrNoGradeData):
		response.BadRequest(c, 17002, "暂无成绩数据可供分析")
	case errors.Is(err, service.ErrNoInterests):
		response.BadRequest(c, 17003, "请先添加兴趣方向")
	case errors.Is(err, service.ErrInterestNotFound):
		response.NotFound(c, 17004, "兴趣不存在")
	default:
		response.InternalError(c)
	}
}
