package dto

// ── 学习（番茄钟）模块 DTO ──

// LogStudySessionRequest 记录一次完成的专注时段
type LogStudySessionRequest struct {
	Duration int `json:"duration" binding:"required,min=1,max=180"` // 分钟
}

// StudyStatsResponse 学习统计
type StudyStatsResponse struct {
	SessionsToday     int `json:"sessions_today"`
	TotalSessions     int `json:"total_sessions"`
	TotalFocusMinutes int `json:"total_focus_minutes"`
}

// TimerSettings 番茄钟时长偏好（分钟），经 KV 按用户持久化
type TimerSettings struct {
	FocusMinutes      int `json:"focus_minutes"       binding:"required,min=1,max=180"`
	ShortBreakMinutes int `json:"short_break_minutes" binding:"required,min=1,max=60"`
	LongBreakMinutes  int `json:"long_break_minutes"  binding:"required,min=1,max=60"`
}
