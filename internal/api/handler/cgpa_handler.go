package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/ambalavanan01/self-study-hub/internal/dto"
	"github.com/ambalavanan01/self-study-hub/internal/service"
	"github.com/ambalavanan01/self-study-hub/pkg/response"
)

// CGPAHandler 成绩模块 HTTP 处理器
type CGPAHandler struct {
	cgpaSvc service.CGPAService
}

// NewCGPAHandler 创建 CGPAHandler
func NewCGPAHandler(cgpaSvc service.CGPAService) *CGPAHandler {
	return &CGPAHandler{cgpaSvc: cgpaSvc}
}

// ListSemesters 学期列表（含科目与学期 GPA）
// GET /api/v1/semesters
func (h *CGPAHandler) ListSemesters(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	semesters, err := h.cgpaSvc.ListSemesters(c.Request.Context(), userID)
	if err != nil {
		h.handleCGPAError(c, err)
		return
	}

	response.OK(c, gin.H{"list": semesters})
}

// CreateSemester 创建学期
// POST /api/v1/semesters
func (h *CGPAHandler) CreateSemester(c *gin.Context) {
	var req dto.CreateSemesterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	semester, err := h.cgpaSvc.CreateSemester(c.Request.Context(), userID, &req)
	if err != nil {
		h.handleCGPAError(c, err)
		return
	}

	response.Created(c, semester)
}

// DeleteSemester 删除学期（级联删除科目）
// DELETE /api/v1/semesters/:id
func (h *CGPAHandler) DeleteSemester(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "学期ID不能为空")
		return
	}

	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	if err := h.cgpaSvc.DeleteSemester(c.Request.Context(), userID, id); err != nil {
		h.handleCGPAError(c, err)
		return
	}

	response.OK(c, nil)
}

// Overview CGPA 总览：CGPA、总学分、学年分组与图表序列
// GET /api/v1/cgpa/overview
func (h *CGPAHandler) Overview(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	overview, err := h.cgpaSvc.Overview(c.Request.Context(), userID)
	if err != nil {
		h.handleCGPAError(c, err)
		return
	}

	response.OK(c, overview)
}

// AddSubject 向学期添加科目
// POST /api/v1/semesters/:id/subjects
func (h *CGPAHandler) AddSubject(c *gin.Context) {
	semesterID := c.Param("id")
	if semesterID == "" {
		response.BadRequest(c, 10001, "学期ID不能为空")
		return
	}

	var req dto.CreateSubjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	subject, err := h.cgpaSvc.AddSubject(c.Request.Context(), userID, semesterID, &req)
	if err != nil {
		h.handleCGPAError(c, err)
		return
	}

	response.Created(c, subject)
}

// UpdateSubject 编辑科目
// PUT /api/v1/subjects/:id
func (h *CGPAHandler) UpdateSubject(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "科目ID不能为空")
		return
	}

	var req dto.UpdateSubjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	subject, err := h.cgpaSvc.UpdateSubject(c.Request.Context(), userID, id, &req)
	if err != nil {
		h.handleCGPAError(c, err)
		return
	}

	response.OK(c, subject)
}

// DeleteSubject 删除科目
// DELETE /api/v1/subjects/:id
func (h *CGPAHandler) DeleteSubject(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "科目ID不能为空")
		return
	}

	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	if err := h.cgpaSvc.DeleteSubject(c.Request.Context(), userID, id); err != nil {
		h.handleCGPAError(c, err)
		return
	}

	response.OK(c, nil)
}

// ── 错误映射 ──

func (h *CGPAHandler) handleCGPAError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrSemesterNotFound):
		response.NotFound(c, 12001, "学期不存在")
	case errors.Is(err, service.ErrSemesterDuplicate):
		response.BadRequest(c, 12002, "该年份与学期组合已存在")
	case errors.Is(err, service.ErrSubjectNotFound):
		response.NotFound(c, 12003, "科目不存在")
	case errors.Is(err, service.ErrGradeInvalid):
		response.BadRequest(c, 12004, "等级无效")
	default:
		response.InternalError(c)
	}
}
