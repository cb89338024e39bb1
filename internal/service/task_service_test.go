package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/ambalavanan01/self-study-hub/internal/dto"
	"github.com/ambalavanan01/self-study-hub/internal/localtask"
	"github.com/ambalavanan01/self-study-hub/internal/model"
	"github.com/ambalavanan01/self-study-hub/internal/repository"
)

// ── 测试辅助 ──

func setupTestTaskService() TaskService {
	return NewTaskService(newTestRepo(), zap.NewNop())
}

// ── Create 测试 ──

func TestTaskService_Create_Success(t *testing.T) {
	svc := setupTestTaskService()

	resp, err := svc.Create(context.Background(), "user-1", &dto.CreateTaskRequest{
		Title:    "完成实验报告",
		Priority: "high",
		DueDate:  "2026-09-15",
	})
	if err != nil {
		t.Fatalf("Create 应成功: %v", err)
	}
	if resp.Status != model.TaskStatusTodo {
		t.Errorf("新任务状态期望 todo，实际=%s", resp.Status)
	}
	if resp.DueDate != "2026-09-15" {
		t.Errorf("截止日期不符，实际=%s", resp.DueDate)
	}
}

func TestTaskService_Create_BadDueDate(t *testing.T) {
	svc := setupTestTaskService()

	cases := []string{"15-09-2026", "2026/09/15", "tomorrow", ""}
	for _, due := range cases {
		if _, err := svc.Create(context.Background(), "user-1", &dto.CreateTaskRequest{
			Title: "t", Priority: "low", DueDate: due,
		}); !errors.Is(err, ErrDueDateInvalid) {
			t.Errorf("due_date=%q 期望 ErrDueDateInvalid，实际: %v", due, err)
		}
	}
}

// ── List 测试 ──

func TestTaskService_List_SortedByDueDate(t *testing.T) {
	svc := setupTestTaskService()
	ctx := context.Background()

	for _, due := range []string{"2026-09-20", "2026-09-05", "2026-09-12"} {
		if _, err := svc.Create(ctx, "user-1", &dto.CreateTaskRequest{
			Title: "t", Priority: "medium", DueDate: due,
		}); err != nil {
			t.Fatalf("Create 应成功: %v", err)
		}
	}

	tasks, err := svc.List(ctx, "user-1")
	if err != nil {
		t.Fatalf("List 应成功: %v", err)
	}
	if len(tasks) != 3 {
		t.Fatalf("期望 3 条任务，实际=%d", len(tasks))
	}
	want := []string{"2026-09-05", "2026-09-12", "2026-09-20"}
	for i, w := range want {
		if tasks[i].DueDate != w {
			t.Errorf("第 %d 条期望 %s，实际=%s", i, w, tasks[i].DueDate)
		}
	}
}

// ── UpdateStatus 测试 ──

func TestTaskService_UpdateStatus_Normalization(t *testing.T) {
	svc := setupTestTaskService()
	ctx := context.Background()

	created, _ := svc.Create(ctx, "user-1", &dto.CreateTaskRequest{
		Title: "t", Priority: "low", DueDate: "2026-09-01",
	})

	// 历史变体宽容归一化
	if err := svc.UpdateStatus(ctx, "user-1", created.ID, &dto.UpdateTaskStatusRequest{Status: "in-progress"}); err != nil {
		t.Fatalf("UpdateStatus 应成功: %v", err)
	}
	tasks, _ := svc.List(ctx, "user-1")
	if tasks[0].Status != model.TaskStatusInProgress {
		t.Errorf("期望 in_progress，实际=%s", tasks[0].Status)
	}

	if err := svc.UpdateStatus(ctx, "user-1", created.ID, &dto.UpdateTaskStatusRequest{Status: "done"}); err != nil {
		t.Fatalf("UpdateStatus 应成功: %v", err)
	}
	tasks, _ = svc.List(ctx, "user-1")
	if tasks[0].Status != model.TaskStatusCompleted {
		t.Errorf("期望 completed，实际=%s", tasks[0].Status)
	}
}

func TestTaskService_UpdateStatus_Invalid(t *testing.T) {
	svc := setupTestTaskService()
	ctx := context.Background()

	created, _ := svc.Create(ctx, "user-1", &dto.CreateTaskRequest{
		Title: "t", Priority: "low", DueDate: "2026-09-01",
	})

	if err := svc.UpdateStatus(ctx, "user-1", created.ID, &dto.UpdateTaskStatusRequest{Status: "paused"}); !errors.Is(err, ErrTaskStatusInvalid) {
		t.Errorf("无法识别的状态期望 ErrTaskStatusInvalid，实际: %v", err)
	}
	if err := svc.UpdateStatus(ctx, "user-1", "no-such-id", &dto.UpdateTaskStatusRequest{Status: "completed"}); !errors.Is(err, ErrTaskNotFound) {
		t.Errorf("期望 ErrTaskNotFound，实际: %v", err)
	}
}

// ── Delete 测试 ──

func TestTaskService_Delete(t *testing.T) {
	svc := setupTestTaskService()
	ctx := context.Background()

	created, _ := svc.Create(ctx, "user-1", &dto.CreateTaskRequest{
		Title: "t", Priority: "low", DueDate: "2026-09-01",
	})

	// 他人无法删除
	if err := svc.Delete(ctx, "user-2", created.ID); !errors.Is(err, ErrTaskNotFound) {
		t.Errorf("跨用户删除期望 ErrTaskNotFound，实际: %v", err)
	}

	if err := svc.Delete(ctx, "user-1", created.ID); err != nil {
		t.Fatalf("Delete 应成功: %v", err)
	}
	if err := svc.Delete(ctx, "user-1", created.ID); !errors.Is(err, ErrTaskNotFound) {
		t.Errorf("二次删除期望 ErrTaskNotFound，实际: %v", err)
	}
}

// ── 本地存储后端测试 ──

func setupTestTaskServiceLocal() TaskService {
	repo := newTestRepo()
	repo.Task = repository.NewLocalTaskRepo(localtask.NewStore(localtask.NewMemKV(), zap.NewNop()))
	return NewTaskService(repo, zap.NewNop())
}

func TestTaskService_LocalBackend_CrossUserHiddenAsNotFound(t *testing.T) {
	svc := setupTestTaskServiceLocal()
	ctx := context.Background()

	created, err := svc.Create(ctx, "user-1", &dto.CreateTaskRequest{
		Title:    "复习网络原理",
		Priority: "medium",
		DueDate:  "2026-09-10",
	})
	if err != nil {
		t.Fatalf("Create 应成功: %v", err)
	}

	// 他人任务对当前用户不可见：更新与删除均报任务不存在，
	// 与 Postgres 后端按 user_id 过滤的行为一致
	if err := svc.UpdateStatus(ctx, "user-2", created.ID, &dto.UpdateTaskStatusRequest{Status: "completed"}); !errors.Is(err, ErrTaskNotFound) {
		t.Errorf("跨用户更新期望 ErrTaskNotFound，实际=%v", err)
	}
	if err := svc.Delete(ctx, "user-2", created.ID); !errors.Is(err, ErrTaskNotFound) {
		t.Errorf("跨用户删除期望 ErrTaskNotFound，实际=%v", err)
	}

	// 本人操作不受影响
	if err := svc.UpdateStatus(ctx, "user-1", created.ID, &dto.UpdateTaskStatusRequest{Status: "completed"}); err != nil {
		t.Errorf("本人更新应成功: %v", err)
	}
}
