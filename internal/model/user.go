package model

// User 用户资料表 — 对应 profiles
// 自托管认证：认证身份与资料行合并为一张表，
// 原实现中 "注册成功但资料行写入失败产生孤儿身份" 的问题自然消失。
type User struct {
	UserID       string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"user_id"`
	Name         string `gorm:"type:varchar(100);not null"                     json:"name"`
	Email        string `gorm:"type:varchar(255);not null;uniqueIndex"         json:"email"`
	PasswordHash string `gorm:"type:varchar(255);not null"                     json:"-"`
	BaseModel
}

// TableName 指定表名
func (User) TableName() string { return "profiles" }
