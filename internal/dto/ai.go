package dto

// ── AI 助手模块 DTO ──

// StudyGuideRequest 学习指南生成请求
type StudyGuideRequest struct {
	Topic string `json:"topic" binding:"required,min=2,max=200"`
}

// AIContentResponse AI 生成内容响应
type AIContentResponse struct {
	Content string `json:"content"`
	Cached  bool   `json:"cached,omitempty"` // 每日简报命中缓存时为 true
}

// AddInterestRequest 添加兴趣请求
type AddInterestRequest struct {
	Interest string `json:"interest" binding:"required,min=1,max=100"`
}

// InterestResponse 兴趣响应
type InterestResponse struct {
	ID       string `json:"id"`
	Interest string `json:"interest"`
}
