package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/ambalavanan01/self-study-hub/internal/ai"
	"github.com/ambalavanan01/self-study-hub/internal/dto"
	"github.com/ambalavanan01/self-study-hub/internal/gpa"
	"github.com/ambalavanan01/self-study-hub/internal/model"
	"github.com/ambalavanan01/self-study-hub/internal/repository"
	"github.com/ambalavanan01/self-study-hub/pkg/redis"
)

// ── AI 助手模块业务错误 ──

var (
	ErrAIUnavailable    = errors.New("AI 服务不可用")
	ErrNoGradeData      = errors.New("暂无成绩数据可供分析")
	ErrNoInterests      = errors.New("请先添加兴趣方向")
	ErrInterestNotFound = errors.New("兴趣不存在")
)

// AIService 学习助手业务接口：成绩分析、学习指南、每日趋势简报
type AIService interface {
	AnalyzeCGPA(ctx context.Context, userID string) (*dto.AIContentResponse, error)
	StudyGuide(ctx context.Context, userID string, req *dto.StudyGuideRequest) (*dto.AIContentResponse, error)
	// DailyBriefing 按兴趣生成当日趋势简报，同一用户当日只生成一次
	DailyBriefing(ctx context.Context, userID string, now time.Time) (*dto.AIContentResponse, error)
	AddInterest(ctx context.Context, userID string, req *dto.AddInterestRequest) (*dto.InterestResponse, error)
	ListInterests(ctx context.Context, userID string) ([]dto.InterestResponse, error)
	DeleteInterest(ctx context.Context, userID string, interestID string) error
}

type aiService struct {
	repo   *repository.Repository
	client *ai.Client
	rdb    *redis.Client
	logger *zap.Logger
}

// NewAIService 创建 AIService 实例。
// rdb 可为 nil（简报缓存降级为每次请求都生成）
func NewAIService(repo *repository.Repository, client *ai.Client, rdb *redis.Client, logger *zap.Logger) AIService {
	return &aiService{repo: repo, client: client, rdb: rdb, logger: logger}
}

// ────────────────────── AnalyzeCGPA ──────────────────────

func (s *aiService) AnalyzeCGPA(ctx context.Context, userID string) (*dto.AIContentResponse, error) {
	semesters, err := s.repo.Semester.ListByUser(ctx, userID)
	if err != nil {
		s.logger.Error("列出学期失败", zap.Error(err))
		return nil, err
	}
	if len(semesters) == 0 {
		return nil, ErrNoGradeData
	}

	content, err := s.complete(ctx,
		"You are an academic advisor for engineering students. Be concise and practical.",
		buildGradeSummary(semesters)+
			"\n\nAnalyze this academic record. Point out trends across semesters, "+
			"weak areas worth attention, and three concrete suggestions to improve the CGPA.")
	if err != nil {
		return nil, err
	}
	return &dto.AIContentResponse{Content: content}, nil
}

// ────────────────────── StudyGuide ──────────────────────

func (s *aiService) StudyGuide(ctx context.Context, userID string, req *dto.StudyGuideRequest) (*dto.AIContentResponse, error) {
	content, err := s.complete(ctx,
		"You are a study coach. Produce structured, actionable study plans.",
		fmt.Sprintf("Create a study guide for the topic %q: key concepts to master, "+
			"a suggested order of study, common pitfalls, and practice ideas.", req.Topic))
	if err != nil {
		return nil, err
	}
	return &dto.AIContentResponse{Content: content}, nil
}

// ────────────────────── DailyBriefing ──────────────────────

func (s *aiService) DailyBriefing(ctx context.Context, userID string, now time.Time) (*dto.AIContentResponse, error) {
	day := now.Format("2006-01-02")

	if s.rdb != nil {
		cached, err := s.rdb.GetDailyBriefing(ctx, userID, day)
		if err != nil {
			s.logger.Warn("读取简报缓存失败", zap.Error(err))
		} else if cached != "" {
			return &dto.AIContentResponse{Content: cached, Cached: true}, nil
		}
	}

	interests, err := s.repo.UserInterest.ListByUser(ctx, userID)
	if err != nil {
		s.logger.Error("列出兴趣失败", zap.Error(err))
		return nil, err
	}
	if len(interests) == 0 {
		return nil, ErrNoInterests
	}

	topics := make([]string, 0, len(interests))
	for _, it := range interests {
		topics = append(topics, it.Interest)
	}

	content, err := s.complete(ctx,
		"You are a tech and academia trend curator for students.",
		fmt.Sprintf("Today is %s. Write a short daily briefing on current trends and "+
			"noteworthy developments in: %s. Group by topic, three bullet points each.",
			day, strings.Join(topics, ", ")))
	if err != nil {
		return nil, err
	}

	if s.rdb != nil {
		if err := s.rdb.CacheDailyBriefing(ctx, userID, day, content); err != nil {
			s.logger.Warn("写入简报缓存失败", zap.Error(err))
		}
	}

	return &dto.AIContentResponse{Content: content}, nil
}

// ────────────────────── AddInterest ──────────────────────

func (s *aiService) AddInterest(ctx context.Context, userID string, req *dto.AddInterestRequest) (*dto.InterestResponse, error) {
	interest := &model.UserInterest{
		UserID:   userID,
		Interest: req.Interest,
	}
	if err := s.repo.UserInterest.Create(ctx, interest); err != nil {
		s.logger.Error("添加兴趣失败", zap.Error(err))
		return nil, err
	}
	return &dto.InterestResponse{ID: interest.InterestID, Interest: interest.Interest}, nil
}

// ────────────────────── ListInterests ──────────────────────

func (s *aiService) ListInterests(ctx context.Context, userID string) ([]dto.InterestResponse, error) {
	interests, err := s.repo.UserInterest.ListByUser(ctx, userID)
	if err != nil {
		s.logger.Error("列出兴趣失败", zap.Error(err))
		return nil, err
	}

	result := make([]dto.InterestResponse, 0, len(interests))
	for _, it := range interests {
		result = append(result, dto.InterestResponse{ID: it.InterestID, Interest: it.Interest})
	}
	return result, nil
}

// ────────────────────── DeleteInterest ──────────────────────

func (s *aiService) DeleteInterest(ctx context.Context, userID string, interestID string) error {
	if err := s.repo.UserInterest.Delete(ctx, interestID, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrInterestNotFound
		}
		s.logger.Error("删除兴趣失败", zap.String("interest_id", interestID), zap.Error(err))
		return err
	}
	return nil
}

// ── 内部辅助方法 ──

func (s *aiService) complete(ctx context.Context, system, user string) (string, error) {
	content, err := s.client.Complete(ctx, []ai.Message{
		{Role: "system", Content: system},
		{Role: "user", Content: user},
	})
	if err != nil {
		if errors.Is(err, ai.ErrNoAPIKey) {
			return "", ErrAIUnavailable
		}
		s.logger.Error("AI 补全失败", zap.Error(err))
		return "", ErrAIUnavailable
	}
	return content, nil
}

// buildGradeSummary 把成绩单压成紧凑文本作为提示词素材
func buildGradeSummary(semesters []model.Semester) string {
	var b strings.Builder
	fmt.Fprintf(&b, "CGPA: %.2f (total credits %.1f)\n", gpa.ComputeCGPA(semesters), gpa.TotalCredits(semesters))
	for _, sem := range semesters {
		fmt.Fprintf(&b, "%s %d (GPA %.2f):\n", sem.Term, sem.Year, gpa.ComputeGPA(sem.Subjects))
		for _, sub := range sem.Subjects {
			fmt.Fprintf(&b, "  - %s (%s): grade %s, %.1f credits\n",
				sub.SubjectName, sub.SubjectCode, sub.Grade, sub.Credit)
		}
	}
	return b.String()
}
