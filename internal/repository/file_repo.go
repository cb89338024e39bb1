package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/ambalavanan01/self-study-hub/internal/model"
)

// FileRepository 文件元数据访问接口
type FileRepository interface {
	Create(ctx context.Context, file *model.FileRecord) error
	GetByID(ctx context.Context, id string, userID string) (*model.FileRecord, error)
	// ListByUser 按上传时间倒序
	ListByUser(ctx context.Context, userID string) ([]model.FileRecord, error)
	Delete(ctx context.Context, id string, userID string) error
	CreateBatch(ctx context.Context, files []model.FileRecord) error
}

type fileRepo struct {
	db *gorm.DB
}

// NewFileRepo 创建 FileRepository 实例
func NewFileRepo(db *gorm.DB) FileRepository {
	return &fileRepo{db: db}
}

func (r *fileRepo) Create(ctx context.Context, file *model.FileRecord) error {
	return r.db.WithContext(ctx).Create(file).Error
}

func (r *fileRepo) GetByID(ctx context.Context, id string, userID string) (*model.FileRecord, error) {
	var file model.FileRecord
	err := r.db.WithContext(ctx).
		Where("file_id = ? AND user_id = ?", id, userID).
		First(&file).Error
	if err != nil {
		return nil, err
	}
	return &file, nil
}

func (r *fileRepo) ListByUser(ctx context.Context, userID string) ([]model.FileRecord, error) {
	var files []model.FileRecord
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("uploaded_at DESC").
		Find(&files).Error
	return files, err
}

func (r *fileRepo) Delete(ctx context.Context, id string, userID string) error {
	return r.db.WithContext(ctx).
		Where("file_id = ? AND user_id = ?", id, userID).
		Delete(&model.FileRecord{}).Error
}

func (r *fileRepo) CreateBatch(ctx context.Context, files []model.FileRecord) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for i := range files {
			if err := tx.Create(&files[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
