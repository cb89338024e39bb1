package model

import "time"

// StudySession 专注学习记录 — 对应 study_sessions
// 仅在专注（focus）番茄钟完整结束时写入一条
type StudySession struct {
	SessionID   string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"session_id"`
	UserID      string    `gorm:"type:uuid;not null;index"                       json:"user_id"`
	Duration    int       `gorm:"not null"                                       json:"duration"` // 分钟
	CompletedAt time.Time `gorm:"not null"                                       json:"completed_at"`
}

// TableName 指定表名
func (StudySession) TableName() string { return "study_sessions" }
