package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/ambalavanan01/self-study-hub/internal/dto"
	"github.com/ambalavanan01/self-study-hub/internal/model"
	"github.com/ambalavanan01/self-study-hub/internal/repository"
)

// ── 任务模块业务错误 ──

var (
	ErrTaskNotFound      = errors.New("任务不存在")
	ErrDueDateInvalid    = errors.New("截止日期格式无效")
	ErrTaskStatusInvalid = errors.New("任务状态无效")
)

// TaskService 任务业务接口。
// 后端（Postgres / 本地存储）由注入的 TaskRepository 决定
type TaskService interface {
	Create(ctx context.Context, userID string, req *dto.CreateTaskRequest) (*dto.TaskResponse, error)
	List(ctx context.Context, userID string) ([]dto.TaskResponse, error)
	UpdateStatus(ctx context.Context, userID string, taskID string, req *dto.UpdateTaskStatusRequest) error
	Delete(ctx context.Context, userID string, taskID string) error
}

type taskService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewTaskService 创建 TaskService 实例
func NewTaskService(repo *repository.Repository, logger *zap.Logger) TaskService {
	return &taskService{repo: repo, logger: logger}
}

// ────────────────────── Create ──────────────────────

func (s *taskService) Create(ctx context.Context, userID string, req *dto.CreateTaskRequest) (*dto.TaskResponse, error) {
	dueDate, err := time.Parse("2006-01-02", req.DueDate)
	if err != nil {
		return nil, ErrDueDateInvalid
	}

	task := &model.Task{
		UserID:      userID,
		Title:       req.Title,
		Description: req.Description,
		Status:      model.TaskStatusTodo,
		Priority:    req.Priority,
		DueDate:     dueDate,
	}
	if err := s.repo.Task.Create(ctx, task); err != nil {
		s.logger.Error("创建任务失败", zap.Error(err))
		return nil, err
	}

	return toTaskResponse(task), nil
}

// ────────────────────── List ──────────────────────

func (s *taskService) List(ctx context.Context, userID string) ([]dto.TaskResponse, error) {
	tasks, err := s.repo.Task.ListByUser(ctx, userID)
	if err != nil {
		s.logger.Error("列出任务失败", zap.Error(err))
		return nil, err
	}

	result := make([]dto.TaskResponse, 0, len(tasks))
	for i := range tasks {
		result = append(result, *toTaskResponse(&tasks[i]))
	}
	return result, nil
}

// ────────────────────── UpdateStatus ──────────────────────

func (s *taskService) UpdateStatus(ctx context.Context, userID string, taskID string, req *dto.UpdateTaskStatusRequest) error {
	status, ok := model.NormalizeTaskStatus(req.Status)
	if !ok {
		return ErrTaskStatusInvalid
	}

	if err := s.repo.Task.UpdateStatus(ctx, taskID, userID, status); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTaskNotFound
		}
		s.logger.Error("更新任务状态失败", zap.String("task_id", taskID), zap.Error(err))
		return err
	}
	return nil
}

// ────────────────────── Delete ──────────────────────

func (s *taskService) Delete(ctx context.Context, userID string, taskID string) error {
	if err := s.repo.Task.Delete(ctx, taskID, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTaskNotFound
		}
		s.logger.Error("删除任务失败", zap.String("task_id", taskID), zap.Error(err))
		return err
	}
	return nil
}

// ── 内部辅助方法 ──

func toTaskResponse(task *model.Task) *dto.TaskResponse {
	return &dto.TaskResponse{
		ID:          task.TaskID,
		Title:       task.Title,
		Description: task.Description,
		Status:      task.Status,
		Priority:    task.Priority,
		DueDate:     task.DueDate.Format("2006-01-02"),
	}
}
