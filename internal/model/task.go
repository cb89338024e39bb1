package model

import "time"

// 任务状态（规范值）
const (
	TaskStatusTodo       = "todo"
	TaskStatusInProgress = "in_progress"
	TaskStatusCompleted  = "completed"
)

// 任务优先级
const (
	TaskPriorityLow    = "low"
	TaskPriorityMedium = "medium"
	TaskPriorityHigh   = "high"
)

// NormalizeTaskStatus 将历史上并存的两套状态词汇归一为三态枚举。
// "in-progress" 与 "done" 是旧数据中出现过的变体，宽容解析。
// 无法识别的输入返回 ok=false。
func NormalizeTaskStatus(s string) (string, bool) {
	switch s {
	case TaskStatusTodo:
		return TaskStatusTodo, true
	case TaskStatusInProgress, "in-progress":
		return TaskStatusInProgress, true
	case TaskStatusCompleted, "done":
		return TaskStatusCompleted, true
	}
	return "", false
}

// Task 任务表 — 对应 tasks
type Task struct {
	TaskID      string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"task_id"`
	UserID      string    `gorm:"type:uuid;not null;index"                       json:"user_id"`
	Title       string    `gorm:"type:varchar(200);not null"                     json:"title"`
	Description string    `gorm:"type:text"                                      json:"description"`
	Status      string    `gorm:"type:varchar(20);not null;default:'todo'"       json:"status"`   // todo | in_progress | completed
	Priority    string    `gorm:"type:varchar(10);not null;default:'medium'"     json:"priority"` // low | medium | high
	DueDate     time.Time `gorm:"type:date;not null"                             json:"due_date"`
	BaseModel
}

// TableName 指定表名
func (Task) TableName() string { return "tasks" }
