package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/ambalavanan01/self-study-hub/internal/model"
)

// SemesterRepository 学期数据访问接口。
// 所有查询按 user_id 过滤——归属过滤是每条仓储查询的硬性约定
type SemesterRepository interface {
	Create(ctx context.Context, semester *model.Semester) error
	GetByID(ctx context.Context, id string, userID string) (*model.Semester, error)
	ListByUser(ctx context.Context, userID string) ([]model.Semester, error)
	Delete(ctx context.Context, id string, userID string) error
	// ImportBatch 在单个事务中批量写入学期与其科目（JSON 导入）
	ImportBatch(ctx context.Context, semesters []model.Semester) error
}

type semesterRepo struct {
	db *gorm.DB
}

// NewSemesterRepo 创建 SemesterRepository 实例
func NewSemesterRepo(db *gorm.DB) SemesterRepository {
	return &semesterRepo{db: db}
}

func (r *semesterRepo) Create(ctx context.Context, semester *model.Semester) error {
	return r.db.WithContext(ctx).Create(semester).Error
}

func (r *semesterRepo) GetByID(ctx context.Context, id string, userID string) (*model.Semester, error) {
	var sem model.Semester
	err := r.db.WithContext(ctx).
		Preload("Subjects").
		Where("semester_id = ? AND user_id = ?", id, userID).
		First(&sem).Error
	if err != nil {
		return nil, err
	}
	return &sem, nil
}

// ListByUser 返回用户全部学期（含科目），按时间先后排序：
// 年份升序，同年内 Fall 在 Winter 之前
func (r *semesterRepo) ListByUser(ctx context.Context, userID string) ([]model.Semester, error) {
	var sems []model.Semester
	err := r.db.WithContext(ctx).
		Preload("Subjects").
		Where("user_id = ?", userID).
		Order("year ASC, term ASC").
		Find(&sems).Error
	return sems, err
}

// Delete 删除学期；科目经外键 ON DELETE CASCADE 级联删除
func (r *semesterRepo) Delete(ctx context.Context, id string, userID string) error {
	return r.db.WithContext(ctx).
		Where("semester_id = ? AND user_id = ?", id, userID).
		Delete(&model.Semester{}).Error
}

func (r *semesterRepo) ImportBatch(ctx context.Context, semesters []model.Semester) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for i := range semesters {
			if err := tx.Create(&semesters[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
