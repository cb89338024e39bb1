package model

// Subject 科目表 — 对应 subjects
// Grade 为字母等级（S/A/B/C/D/E），绩点换算由 internal/gpa 负责
type Subject struct {
	SubjectID   string  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"subject_id"`
	UserID      string  `gorm:"type:uuid;not null;index"                       json:"user_id"`
	SemesterID  string  `gorm:"type:uuid;not null;index"                       json:"semester_id"`
	SubjectName string  `gorm:"type:varchar(200);not null"                     json:"subject_name"`
	SubjectCode string  `gorm:"type:varchar(50);not null"                      json:"subject_code"`
	Grade       string  `gorm:"type:varchar(2);not null"                       json:"grade"`
	Credit      float64 `gorm:"type:numeric(4,1);not null"                     json:"credit"`
	BaseModel
}

// TableName 指定表名
func (Subject) TableName() string { return "subjects" }
