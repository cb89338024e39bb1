package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/ambalavanan01/self-study-hub/internal/model"
)

// TaskRepository 任务数据访问接口。
// Postgres 实现与本地存储实现（见 task_local.go）共用此接口，
// 一个部署只启用其一——同一逻辑任务集绝不同时落两个后端。
// 更新/删除都要求携带 userID 做归属校验。
type TaskRepository interface {
	Create(ctx context.Context, task *model.Task) error
	// ListByUser 按截止日期升序返回用户全部任务
	ListByUser(ctx context.Context, userID string) ([]model.Task, error)
	// ListUpcoming 返回 todo 状态、按截止日期升序的前 limit 条
	ListUpcoming(ctx context.Context, userID string, limit int) ([]model.Task, error)
	UpdateStatus(ctx context.Context, id string, userID string, status string) error
	Delete(ctx context.Context, id string, userID string) error
}

type taskRepo struct {
	db *gorm.DB
}

// NewTaskRepo 创建 Postgres 任务仓储
func NewTaskRepo(db *gorm.DB) TaskRepository {
	return &taskRepo{db: db}
}

func (r *taskRepo) Create(ctx context.Context, task *model.Task) error {
	return r.db.WithContext(ctx).Create(task).Error
}

func (r *taskRepo) ListByUser(ctx context.Context, userID string) ([]model.Task, error) {
	var tasks []model.Task
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("due_date ASC").
		Find(&tasks).Error
	return tasks, err
}

func (r *taskRepo) ListUpcoming(ctx context.Context, userID string, limit int) ([]model.Task, error) {
	var tasks []model.Task
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND status = ?", userID, model.TaskStatusTodo).
		Order("due_date ASC").
		Limit(limit).
		Find(&tasks).Error
	return tasks, err
}

func (r *taskRepo) UpdateStatus(ctx context.Context, id string, userID string, status string) error {
	res := r.db.WithContext(ctx).
		Model(&model.Task{}).
		Where("task_id = ? AND user_id = ?", id, userID).
		Update("status", status)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *taskRepo) Delete(ctx context.Context, id string, userID string) error {
	res := r.db.WithContext(ctx).
		Where("task_id = ? AND user_id = ?", id, userID).
		Delete(&model.Task{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
