package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/ambalavanan01/self-study-hub/internal/localtask"
	"github.com/ambalavanan01/self-study-hub/internal/model"
)

// localTaskRepo 以设备本地存储实现 TaskRepository，
// 供无 Postgres 任务表的部署（feature.local_tasks）使用。
// 错误映射到 gorm 哨兵值，Service 层无需分辨后端。
type localTaskRepo struct {
	store *localtask.Store
}

// NewLocalTaskRepo 用本地任务存储包装出 TaskRepository
func NewLocalTaskRepo(store *localtask.Store) TaskRepository {
	return &localTaskRepo{store: store}
}

func (r *localTaskRepo) Create(_ context.Context, task *model.Task) error {
	return r.store.Add(task, task.UserID)
}

func (r *localTaskRepo) ListByUser(_ context.Context, userID string) ([]model.Task, error) {
	return r.store.ListForUser(userID)
}

func (r *localTaskRepo) ListUpcoming(_ context.Context, userID string, limit int) ([]model.Task, error) {
	tasks, err := r.store.ListForUser(userID)
	if err != nil {
		return nil, err
	}
	upcoming := make([]model.Task, 0, limit)
	for _, t := range tasks {
		if t.Status != model.TaskStatusTodo {
			continue
		}
		upcoming = append(upcoming, t)
		if len(upcoming) == limit {
			break
		}
	}
	return upcoming, nil
}

func (r *localTaskRepo) UpdateStatus(_ context.Context, id string, userID string, status string) error {
	return mapLocalErr(r.store.UpdateStatus(id, userID, status))
}

func (r *localTaskRepo) Delete(_ context.Context, id string, userID string) error {
	return mapLocalErr(r.store.Remove(id, userID))
}

// mapLocalErr 将本地存储哨兵错误映射为 gorm 哨兵值。
// 越权与不存在同样折叠为未找到，与 Postgres 实现的按
// user_id 过滤行为一致，不向调用方泄露任务归属信息
func mapLocalErr(err error) error {
	if errors.Is(err, localtask.ErrTaskNotFound) || errors.Is(err, localtask.ErrNotOwner) {
		return gorm.ErrRecordNotFound
	}
	return err
}
