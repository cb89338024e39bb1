package localtask

import (
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/ambalavanan01/self-study-hub/internal/model"
)

func newTestStore() *Store {
	return NewStore(NewMemKV(), zap.NewNop())
}

func due(day int) time.Time {
	return time.Date(2026, 9, day, 0, 0, 0, 0, time.UTC)
}

func TestStore_AddAndList(t *testing.T) {
	s := newTestStore()

	task := &model.Task{Title: "复习数据结构", Status: model.TaskStatusTodo, Priority: "high", DueDate: due(10)}
	if err := s.Add(task, "user-1"); err != nil {
		t.Fatalf("Add 不应报错: %v", err)
	}
	if task.TaskID == "" {
		t.Error("Add 应分配新 ID")
	}

	tasks, err := s.ListForUser("user-1")
	if err != nil {
		t.Fatalf("ListForUser 不应报错: %v", err)
	}
	if len(tasks) != 1 {
		t.Fatalf("期望 1 条任务，实际=%d", len(tasks))
	}
	if tasks[0].Title != "复习数据结构" {
		t.Errorf("标题不符，实际=%s", tasks[0].Title)
	}
}

func TestStore_ListSortedByDueDate(t *testing.T) {
	s := newTestStore()

	for _, d := range []int{20, 5, 12} {
		task := &model.Task{Title: "t", Status: model.TaskStatusTodo, DueDate: due(d)}
		if err := s.Add(task, "user-1"); err != nil {
			t.Fatalf("Add 不应报错: %v", err)
		}
	}

	tasks, _ := s.ListForUser("user-1")
	if len(tasks) != 3 {
		t.Fatalf("期望 3 条任务，实际=%d", len(tasks))
	}
	for i := 1; i < len(tasks); i++ {
		if tasks[i].DueDate.Before(tasks[i-1].DueDate) {
			t.Error("任务应按截止日期升序")
		}
	}
}

func TestStore_UserIsolation(t *testing.T) {
	s := newTestStore()

	a := &model.Task{Title: "a 的任务", Status: model.TaskStatusTodo, DueDate: due(1)}
	b := &model.Task{Title: "b 的任务", Status: model.TaskStatusTodo, DueDate: due(2)}
	s.Add(a, "user-a")
	s.Add(b, "user-b")

	tasks, _ := s.ListForUser("user-a")
	if len(tasks) != 1 || tasks[0].Title != "a 的任务" {
		t.Errorf("user-a 应只看到自己的任务，实际=%v", tasks)
	}
}

func TestStore_UpdateStatus(t *testing.T) {
	s := newTestStore()
	task := &model.Task{Title: "t", Status: model.TaskStatusTodo, DueDate: due(1)}
	s.Add(task, "user-1")

	// 容错归一化：in-progress → in_progress
	if err := s.UpdateStatus(task.TaskID, "user-1", "in-progress"); err != nil {
		t.Fatalf("UpdateStatus 不应报错: %v", err)
	}
	tasks, _ := s.ListForUser("user-1")
	if tasks[0].Status != model.TaskStatusInProgress {
		t.Errorf("期望状态 %s，实际=%s", model.TaskStatusInProgress, tasks[0].Status)
	}

	if err := s.UpdateStatus(task.TaskID, "user-1", "paused"); err == nil {
		t.Error("无法识别的状态应报错")
	}
	if err := s.UpdateStatus("no-such-id", "user-1", "completed"); !errors.Is(err, ErrTaskNotFound) {
		t.Errorf("期望 ErrTaskNotFound，实际: %v", err)
	}
}

func TestStore_OwnershipEnforced(t *testing.T) {
	s := newTestStore()
	task := &model.Task{Title: "t", Status: model.TaskStatusTodo, DueDate: due(1)}
	s.Add(task, "user-a")

	if err := s.UpdateStatus(task.TaskID, "user-b", "completed"); !errors.Is(err, ErrNotOwner) {
		t.Errorf("跨 owner 更新期望 ErrNotOwner，实际: %v", err)
	}
	if err := s.Remove(task.TaskID, "user-b"); !errors.Is(err, ErrNotOwner) {
		t.Errorf("跨 owner 删除期望 ErrNotOwner，实际: %v", err)
	}

	if err := s.Remove(task.TaskID, "user-a"); err != nil {
		t.Fatalf("owner 删除不应报错: %v", err)
	}
	tasks, _ := s.ListForUser("user-a")
	if len(tasks) != 0 {
		t.Errorf("删除后应无任务，实际=%d", len(tasks))
	}
}

func TestStore_CorruptedDataTreatedAsEmpty(t *testing.T) {
	kv := NewMemKV()
	kv.Set(StorageKey, []byte("{not json"))
	s := NewStore(kv, zap.NewNop())

	tasks, err := s.ListForUser("user-1")
	if err != nil {
		t.Fatalf("损坏数据不应报错: %v", err)
	}
	if len(tasks) != 0 {
		t.Errorf("损坏数据应按空集合处理，实际=%d", len(tasks))
	}

	// 损坏后仍可正常写入
	task := &model.Task{Title: "t", Status: model.TaskStatusTodo, DueDate: due(1)}
	if err := s.Add(task, "user-1"); err != nil {
		t.Fatalf("损坏后写入不应报错: %v", err)
	}
}
