package dto

// ── 文件模块 DTO ──

// FileResponse 文件元数据响应
type FileResponse struct {
	ID         string `json:"id"`
	FileName   string `json:"file_name"`
	SizeBytes  int64  `json:"size_bytes"`
	FileType   string `json:"file_type"`
	FileURL    string `json:"file_url"`
	UploadedAt string `json:"uploaded_at"`
}

// FileExport 文件元数据导入/导出格式。
// 仅迁移记录，不迁移内容——导入后 file_url 可能指向已不存在的对象
type FileExport struct {
	FileName  string `json:"file_name"`
	SizeBytes int64  `json:"size_bytes"`
	FileType  string `json:"file_type"`
	FileURL   string `json:"file_url"`
}
