package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/ambalavanan01/self-study-hub/internal/dto"
	"github.com/ambalavanan01/self-study-hub/internal/gpa"
	"github.com/ambalavanan01/self-study-hub/internal/repository"
)

// 仪表盘展示的待办条数上限
const dashboardTaskLimit = 5

// DashboardService 仪表盘聚合接口：CGPA 概要、临近任务、今日课程、成绩曲线
type DashboardService interface {
	Get(ctx context.Context, userID string, now time.Time) (*dto.DashboardResponse, error)
}

type dashboardService struct {
	repo      *repository.Repository
	timetable TimetableService
	logger    *zap.Logger
}

// NewDashboardService 创建 DashboardService 实例
func NewDashboardService(repo *repository.Repository, timetable TimetableService, logger *zap.Logger) DashboardService {
	return &dashboardService{repo: repo, timetable: timetable, logger: logger}
}

func (s *dashboardService) Get(ctx context.Context, userID string, now time.Time) (*dto.DashboardResponse, error) {
	semesters, err := s.repo.Semester.ListByUser(ctx, userID)
	if err != nil {
		s.logger.Error("列出学期失败", zap.Error(err))
		return nil, err
	}

	tasks, err := s.repo.Task.ListUpcoming(ctx, userID, dashboardTaskLimit)
	if err != nil {
		s.logger.Error("列出临近任务失败", zap.Error(err))
		return nil, err
	}

	today, err := s.timetable.Today(ctx, userID, now)
	if err != nil {
		return nil, err
	}

	resp := &dto.DashboardResponse{
		CGPA:          gpa.ComputeCGPA(semesters),
		TotalCredits:  gpa.TotalCredits(semesters),
		TasksDue:      make([]dto.TaskResponse, 0, len(tasks)),
		TodaySchedule: *today,
		Series:        make([]dto.GPASeriesPoint, 0),
	}
	for i := range tasks {
		resp.TasksDue = append(resp.TasksDue, *toTaskResponse(&tasks[i]))
	}
	for _, p := range gpa.Series(semesters) {
		resp.Series = append(resp.Series, dto.GPASeriesPoint{Label: p.Label, GPA: p.GPA})
	}

	return resp, nil
}
