package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/ambalavanan01/self-study-hub/internal/model"
)

// UserInterestRepository 用户兴趣数据访问接口
type UserInterestRepository interface {
	Create(ctx context.Context, interest *model.UserInterest) error
	ListByUser(ctx context.Context, userID string) ([]model.UserInterest, error)
	Delete(ctx context.Context, id string, userID string) error
}

type userInterestRepo struct {
	db *gorm.DB
}

// NewUserInterestRepo 创建 UserInterestRepository 实例
func NewUserInterestRepo(db *gorm.DB) UserInterestRepository {
	return &userInterestRepo{db: db}
}

func (r *userInterestRepo) Create(ctx context.Context, interest *model.UserInterest) error {
	return r.db.WithContext(ctx).Create(interest).Error
}

func (r *userInterestRepo) ListByUser(ctx context.Context, userID string) ([]model.UserInterest, error) {
	var interests []model.UserInterest
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&interests).Error
	return interests, err
}

func (r *userInterestRepo) Delete(ctx context.Context, id string, userID string) error {
	result := r.db.WithContext(ctx).
		Where("interest_id = ? AND user_id = ?", id, userID).
		Delete(&model.UserInterest{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
