package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/ambalavanan01/self-study-hub/internal/dto"
)

// ── 测试辅助 ──

func setupTestTimetableService() TimetableService {
	return NewTimetableService(newTestRepo(), zap.NewNop())
}

func strPtr(s string) *string { return &s }

// ── Create 测试 ──

func TestTimetableService_Create_DerivesEndTime(t *testing.T) {
	svc := setupTestTimetableService()
	ctx := context.Background()

	theory, err := svc.Create(ctx, "user-1", &dto.CreateTimetableEntryRequest{
		Day: "Monday", Type: "theory",
		SubjectName: "DSA", SubjectCode: "CS201",
		StartTime: "08:00", SlotCode: strPtr("A1"),
	})
	if err != nil {
		t.Fatalf("Create 应成功: %v", err)
	}
	if theory.EndTime != "09:30" {
		t.Errorf("理论课期望结束 09:30，实际=%s", theory.EndTime)
	}

	lab, err := svc.Create(ctx, "user-1", &dto.CreateTimetableEntryRequest{
		Day: "Tuesday", Type: "lab",
		SubjectName: "OS Lab", SubjectCode: "CS301L",
		StartTime: "14:00", SlotLabel: strPtr("Evening"),
	})
	if err != nil {
		t.Fatalf("Create 应成功: %v", err)
	}
	if lab.EndTime != "15:40" {
		t.Errorf("实验课期望结束 15:40，实际=%s", lab.EndTime)
	}
}

func TestTimetableService_Create_OutOfWindow(t *testing.T) {
	svc := setupTestTimetableService()
	ctx := context.Background()

	// 07:30 早于教学时段
	if _, err := svc.Create(ctx, "user-1", &dto.CreateTimetableEntryRequest{
		Day: "Monday", Type: "theory",
		SubjectName: "x", SubjectCode: "X1", StartTime: "07:30",
	}); !errors.Is(err, ErrTimeOutOfWindow) {
		t.Errorf("时段外期望 ErrTimeOutOfWindow，实际: %v", err)
	}

	// 18:30 + 90 分钟越过 19:30
	if _, err := svc.Create(ctx, "user-1", &dto.CreateTimetableEntryRequest{
		Day: "Monday", Type: "theory",
		SubjectName: "x", SubjectCode: "X1", StartTime: "18:30",
	}); !errors.Is(err, ErrTimeOutOfWindow) {
		t.Errorf("结束越界期望 ErrTimeOutOfWindow，实际: %v", err)
	}

	// 18:00 + 90 = 19:30 恰好压线，允许
	if _, err := svc.Create(ctx, "user-1", &dto.CreateTimetableEntryRequest{
		Day: "Monday", Type: "theory",
		SubjectName: "x", SubjectCode: "X1", StartTime: "18:00",
	}); err != nil {
		t.Errorf("压线 19:30 应成功: %v", err)
	}
}

func TestTimetableService_Create_BadStartTime(t *testing.T) {
	svc := setupTestTimetableService()

	if _, err := svc.Create(context.Background(), "user-1", &dto.CreateTimetableEntryRequest{
		Day: "Monday", Type: "theory",
		SubjectName: "x", SubjectCode: "X1", StartTime: "8am",
	}); !errors.Is(err, ErrStartTimeInvalid) {
		t.Errorf("格式错误期望 ErrStartTimeInvalid，实际: %v", err)
	}
}

func TestTimetableService_Create_SlotMismatch(t *testing.T) {
	svc := setupTestTimetableService()
	ctx := context.Background()

	// 理论课不带 slot_label
	if _, err := svc.Create(ctx, "user-1", &dto.CreateTimetableEntryRequest{
		Day: "Monday", Type: "theory",
		SubjectName: "x", SubjectCode: "X1", StartTime: "08:00",
		SlotLabel: strPtr("Morning"),
	}); !errors.Is(err, ErrSlotMismatch) {
		t.Errorf("理论课带 slot_label 期望 ErrSlotMismatch，实际: %v", err)
	}

	// 实验课不带 slot_code
	if _, err := svc.Create(ctx, "user-1", &dto.CreateTimetableEntryRequest{
		Day: "Monday", Type: "lab",
		SubjectName: "x", SubjectCode: "X1", StartTime: "08:00",
		SlotCode: strPtr("A1"),
	}); !errors.Is(err, ErrSlotMismatch) {
		t.Errorf("实验课带 slot_code 期望 ErrSlotMismatch，实际: %v", err)
	}
}

// ── Update 测试 ──

func TestTimetableService_Update_RederivesEndTime(t *testing.T) {
	svc := setupTestTimetableService()
	ctx := context.Background()

	entry, _ := svc.Create(ctx, "user-1", &dto.CreateTimetableEntryRequest{
		Day: "Monday", Type: "theory",
		SubjectName: "DSA", SubjectCode: "CS201", StartTime: "08:00",
	})

	updated, err := svc.Update(ctx, "user-1", entry.ID, &dto.UpdateTimetableEntryRequest{
		StartTime: strPtr("10:00"),
	})
	if err != nil {
		t.Fatalf("Update 应成功: %v", err)
	}
	if updated.EndTime != "11:30" {
		t.Errorf("改开始时间后期望结束 11:30，实际=%s", updated.EndTime)
	}

	// 越界的改动被拒绝
	if _, err := svc.Update(ctx, "user-1", entry.ID, &dto.UpdateTimetableEntryRequest{
		StartTime: strPtr("19:00"),
	}); !errors.Is(err, ErrTimeOutOfWindow) {
		t.Errorf("越界改动期望 ErrTimeOutOfWindow，实际: %v", err)
	}
}

func TestTimetableService_Update_NotFound(t *testing.T) {
	svc := setupTestTimetableService()

	if _, err := svc.Update(context.Background(), "user-1", "no-such-id", &dto.UpdateTimetableEntryRequest{
		StartTime: strPtr("10:00"),
	}); !errors.Is(err, ErrEntryNotFound) {
		t.Errorf("期望 ErrEntryNotFound，实际: %v", err)
	}
}

// ── Today 测试 ──

func TestTimetableService_Today(t *testing.T) {
	svc := setupTestTimetableService()
	ctx := context.Background()

	// 2026-03-02 是周一
	now := time.Date(2026, 3, 2, 8, 30, 0, 0, time.UTC)

	svc.Create(ctx, "user-1", &dto.CreateTimetableEntryRequest{
		Day: "Monday", Type: "theory",
		SubjectName: "DSA", SubjectCode: "CS201", StartTime: "08:00",
	})
	svc.Create(ctx, "user-1", &dto.CreateTimetableEntryRequest{
		Day: "Monday", Type: "theory",
		SubjectName: "OS", SubjectCode: "CS301", StartTime: "10:00",
	})
	// 周二的课不应出现在周一视图
	svc.Create(ctx, "user-1", &dto.CreateTimetableEntryRequest{
		Day: "Tuesday", Type: "theory",
		SubjectName: "DBMS", SubjectCode: "CS302", StartTime: "08:00",
	})

	resp, err := svc.Today(ctx, "user-1", now)
	if err != nil {
		t.Fatalf("Today 应成功: %v", err)
	}
	if resp.Day != "Monday" {
		t.Errorf("期望 Monday，实际=%s", resp.Day)
	}
	if len(resp.Sessions) != 2 {
		t.Fatalf("期望 2 节课，实际=%d", len(resp.Sessions))
	}
	if !resp.Sessions[0].Active {
		t.Error("08:00-09:30 在 08:30 应为进行中")
	}
	if resp.Sessions[1].Active {
		t.Error("10:00 的课在 08:30 不应为进行中")
	}
	if resp.NextIndex != 1 {
		t.Errorf("期望下一节索引 1，实际=%d", resp.NextIndex)
	}
	if resp.MinutesUntilNext == nil || *resp.MinutesUntilNext != 90 {
		t.Errorf("期望距下一节 90 分钟，实际=%v", resp.MinutesUntilNext)
	}
}

func TestTimetableService_Today_NoMoreClasses(t *testing.T) {
	svc := setupTestTimetableService()
	ctx := context.Background()
	now := time.Date(2026, 3, 2, 18, 0, 0, 0, time.UTC)

	svc.Create(ctx, "user-1", &dto.CreateTimetableEntryRequest{
		Day: "Monday", Type: "theory",
		SubjectName: "DSA", SubjectCode: "CS201", StartTime: "08:00",
	})

	resp, err := svc.Today(ctx, "user-1", now)
	if err != nil {
		t.Fatalf("Today 应成功: %v", err)
	}
	if resp.NextIndex != -1 {
		t.Errorf("全部开课后期望 NextIndex=-1，实际=%d", resp.NextIndex)
	}
	if resp.MinutesUntilNext != nil {
		t.Errorf("无下一节时不应有倒计时，实际=%v", *resp.MinutesUntilNext)
	}
}
