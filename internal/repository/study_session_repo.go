package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/ambalavanan01/self-study-hub/internal/model"
)

// StudySessionRepository 学习记录数据访问接口
type StudySessionRepository interface {
	Create(ctx context.Context, session *model.StudySession) error
	CountByUser(ctx context.Context, userID string) (int64, error)
	CountByUserSince(ctx context.Context, userID string, since time.Time) (int64, error)
	SumDurationByUser(ctx context.Context, userID string) (int64, error)
}

type studySessionRepo struct {
	db *gorm.DB
}

// NewStudySessionRepo 创建 StudySessionRepository 实例
func NewStudySessionRepo(db *gorm.DB) StudySessionRepository {
	return &studySessionRepo{db: db}
}

func (r *studySessionRepo) Create(ctx context.Context, session *model.StudySession) error {
	return r.db.WithContext(ctx).Create(session).Error
}

func (r *studySessionRepo) CountByUser(ctx context.Context, userID string) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&model.StudySession{}).
		Where("user_id = ?", userID).
		Count(&n).Error
	return n, err
}

func (r *studySessionRepo) CountByUserSince(ctx context.Context, userID string, since time.Time) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&model.StudySession{}).
		Where("user_id = ? AND completed_at >= ?", userID, since).
		Count(&n).Error
	return n, err
}

func (r *studySessionRepo) SumDurationByUser(ctx context.Context, userID string) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).
		Model(&model.StudySession{}).
		Where("user_id = ?", userID).
		Select("COALESCE(SUM(duration), 0)").
		Scan(&total).Error
	return total, err
}
