package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/ambalavanan01/self-study-hub/internal/dto"
	"github.com/ambalavanan01/self-study-hub/internal/localtask"
	"github.com/ambalavanan01/self-study-hub/internal/model"
	"github.com/ambalavanan01/self-study-hub/internal/repository"
)

// TimerSettingsKey 番茄钟偏好在 KV 中的键前缀，按用户区分
const TimerSettingsKey = "study_timer_settings"

// 番茄钟默认时长（分钟）
var defaultTimerSettings = dto.TimerSettings{
	FocusMinutes:      25,
	ShortBreakMinutes: 5,
	LongBreakMinutes:  15,
}

// StudyService 学习（番茄钟）业务接口。
// 只记录完整结束的专注时段；计时本身在客户端进行
type StudyService interface {
	LogSession(ctx context.Context, userID string, req *dto.LogStudySessionRequest) error
	Stats(ctx context.Context, userID string, now time.Time) (*dto.StudyStatsResponse, error)
	GetTimerSettings(ctx context.Context, userID string) (*dto.TimerSettings, error)
	SaveTimerSettings(ctx context.Context, userID string, settings *dto.TimerSettings) error
}

type studyService struct {
	repo   *repository.Repository
	kv     localtask.KV
	logger *zap.Logger
}

// NewStudyService 创建 StudyService 实例
func NewStudyService(repo *repository.Repository, kv localtask.KV, logger *zap.Logger) StudyService {
	return &studyService{repo: repo, kv: kv, logger: logger}
}

// ────────────────────── LogSession ──────────────────────

func (s *studyService) LogSession(ctx context.Context, userID string, req *dto.LogStudySessionRequest) error {
	session := &model.StudySession{
		UserID:      userID,
		Duration:    req.Duration,
		CompletedAt: time.Now(),
	}
	if err := s.repo.StudySession.Create(ctx, session); err != nil {
		s.logger.Error("记录学习时段失败", zap.Error(err))
		return err
	}
	return nil
}

// ────────────────────── Stats ──────────────────────

func (s *studyService) Stats(ctx context.Context, userID string, now time.Time) (*dto.StudyStatsResponse, error) {
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	today, err := s.repo.StudySession.CountByUserSince(ctx, userID, dayStart)
	if err != nil {
		s.logger.Error("统计今日时段失败", zap.Error(err))
		return nil, err
	}
	total, err := s.repo.StudySession.CountByUser(ctx, userID)
	if err != nil {
		s.logger.Error("统计全部时段失败", zap.Error(err))
		return nil, err
	}
	minutes, err := s.repo.StudySession.SumDurationByUser(ctx, userID)
	if err != nil {
		s.logger.Error("统计专注时长失败", zap.Error(err))
		return nil, err
	}

	return &dto.StudyStatsResponse{
		SessionsToday:     int(today),
		TotalSessions:     int(total),
		TotalFocusMinutes: int(minutes),
	}, nil
}

// ────────────────────── GetTimerSettings ──────────────────────

func (s *studyService) GetTimerSettings(_ context.Context, userID string) (*dto.TimerSettings, error) {
	raw, err := s.kv.Get(timerKey(userID))
	if err != nil {
		if errors.Is(err, localtask.ErrKeyNotFound) {
			settings := defaultTimerSettings
			return &settings, nil
		}
		s.logger.Error("读取番茄钟偏好失败", zap.Error(err))
		return nil, err
	}

	var settings dto.TimerSettings
	if err := json.Unmarshal(raw, &settings); err != nil {
		// 损坏的偏好视为未设置
		s.logger.Warn("番茄钟偏好解析失败，回退默认值", zap.Error(err))
		settings = defaultTimerSettings
	}
	return &settings, nil
}

// ────────────────────── SaveTimerSettings ──────────────────────

func (s *studyService) SaveTimerSettings(_ context.Context, userID string, settings *dto.TimerSettings) error {
	raw, err := json.Marshal(settings)
	if err != nil {
		return err
	}
	if err := s.kv.Set(timerKey(userID), raw); err != nil {
		s.logger.Error("保存番茄钟偏好失败", zap.Error(err))
		return err
	}
	return nil
}

func timerKey(userID string) string {
	return TimerSettingsKey + ":" + userID
}
