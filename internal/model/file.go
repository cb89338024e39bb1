package model

import "time"

// FileRecord 文件元数据表 — 对应 files
// 文件内容存放在对象存储，StoragePath 为 "<user_id>/<uuid>_<文件名>"
type FileRecord struct {
	FileID      string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"file_id"`
	UserID      string    `gorm:"type:uuid;not null;index"                       json:"user_id"`
	FileName    string    `gorm:"type:varchar(255);not null"                     json:"file_name"`
	SizeBytes   int64     `gorm:"not null"                                       json:"size_bytes"`
	FileType    string    `gorm:"type:varchar(100)"                              json:"file_type"`
	FileURL     string    `gorm:"type:text;not null"                             json:"file_url"`
	StoragePath string    `gorm:"type:text;not null"                             json:"storage_path"`
	UploadedAt  time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"             json:"uploaded_at"`
}

// TableName 指定表名
func (FileRecord) TableName() string { return "files" }
