package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/ambalavanan01/self-study-hub/internal/dto"
	"github.com/ambalavanan01/self-study-hub/internal/gpa"
	"github.com/ambalavanan01/self-study-hub/internal/model"
	"github.com/ambalavanan01/self-study-hub/internal/repository"
)

// ── CGPA 模块业务错误 ──

var (
	ErrSemesterNotFound  = errors.New("学期不存在")
	ErrSemesterDuplicate = errors.New("该年份与学期组合已存在")
	ErrSubjectNotFound   = errors.New("科目不存在")
	ErrGradeInvalid      = errors.New("等级无效")
)

// CGPAService 成绩模块业务接口：学期与科目的增删改，GPA/CGPA 汇总
type CGPAService interface {
	CreateSemester(ctx context.Context, userID string, req *dto.CreateSemesterRequest) (*dto.SemesterResponse, error)
	DeleteSemester(ctx context.Context, userID string, semesterID string) error
	ListSemesters(ctx context.Context, userID string) ([]dto.SemesterResponse, error)
	Overview(ctx context.Context, userID string) (*dto.CGPAOverviewResponse, error)
	AddSubject(ctx context.Context, userID string, semesterID string, req *dto.CreateSubjectRequest) (*dto.SubjectResponse, error)
	UpdateSubject(ctx context.Context, userID string, subjectID string, req *dto.UpdateSubjectRequest) (*dto.SubjectResponse, error)
	DeleteSubject(ctx context.Context, userID string, subjectID string) error
}

type cgpaService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewCGPAService 创建 CGPAService 实例
func NewCGPAService(repo *repository.Repository, logger *zap.Logger) CGPAService {
	return &cgpaService{repo: repo, logger: logger}
}

// ────────────────────── CreateSemester ──────────────────────

func (s *cgpaService) CreateSemester(ctx context.Context, userID string, req *dto.CreateSemesterRequest) (*dto.SemesterResponse, error) {
	// 同一用户同一 (year, term) 只允许一条
	existing, err := s.repo.Semester.ListByUser(ctx, userID)
	if err != nil {
		s.logger.Error("列出学期失败", zap.Error(err))
		return nil, err
	}
	for _, sem := range existing {
		if sem.Year == req.Year && sem.Term == req.Term {
			return nil, ErrSemesterDuplicate
		}
	}

	semester := &model.Semester{
		UserID: userID,
		Year:   req.Year,
		Term:   req.Term,
	}
	if err := s.repo.Semester.Create(ctx, semester); err != nil {
		s.logger.Error("创建学期失败", zap.Error(err))
		return nil, err
	}

	return s.toSemesterResponse(semester), nil
}

// ────────────────────── DeleteSemester ──────────────────────

func (s *cgpaService) DeleteSemester(ctx context.Context, userID string, semesterID string) error {
	if _, err := s.repo.Semester.GetByID(ctx, semesterID, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrSemesterNotFound
		}
		s.logger.Error("查询学期失败", zap.String("semester_id", semesterID), zap.Error(err))
		return err
	}

	// 科目随外键级联删除
	if err := s.repo.Semester.Delete(ctx, semesterID, userID); err != nil {
		s.logger.Error("删除学期失败", zap.String("semester_id", semesterID), zap.Error(err))
		return err
	}
	return nil
}

// ────────────────────── ListSemesters ──────────────────────

func (s *cgpaService) ListSemesters(ctx context.Context, userID string) ([]dto.SemesterResponse, error) {
	semesters, err := s.repo.Semester.ListByUser(ctx, userID)
	if err != nil {
		s.logger.Error("列出学期失败", zap.Error(err))
		return nil, err
	}

	result := make([]dto.SemesterResponse, 0, len(semesters))
	for i := range semesters {
		result = append(result, *s.toSemesterResponse(&semesters[i]))
	}
	return result, nil
}

// ────────────────────── Overview ──────────────────────

func (s *cgpaService) Overview(ctx context.Context, userID string) (*dto.CGPAOverviewResponse, error) {
	semesters, err := s.repo.Semester.ListByUser(ctx, userID)
	if err != nil {
		s.logger.Error("列出学期失败", zap.Error(err))
		return nil, err
	}

	resp := &dto.CGPAOverviewResponse{
		CGPA:         gpa.ComputeCGPA(semesters),
		TotalCredits: gpa.TotalCredits(semesters),
		Years:        make([]dto.YearGroupResponse, 0),
		Series:       make([]dto.GPASeriesPoint, 0),
	}

	for _, p := range gpa.Series(semesters) {
		resp.Series = append(resp.Series, dto.GPASeriesPoint{Label: p.Label, GPA: p.GPA})
	}

	for _, g := range gpa.YearGroups(semesters) {
		group := dto.YearGroupResponse{
			Year:      g.Year,
			Label:     g.Label,
			GPA:       g.GPA,
			Semesters: make([]dto.SemesterResponse, 0, len(g.Semesters)),
		}
		for i := range g.Semesters {
			group.Semesters = append(group.Semesters, *s.toSemesterResponse(&g.Semesters[i]))
		}
		resp.Years = append(resp.Years, group)
	}

	return resp, nil
}

// ────────────────────── AddSubject ──────────────────────

func (s *cgpaService) AddSubject(ctx context.Context, userID string, semesterID string, req *dto.CreateSubjectRequest) (*dto.SubjectResponse, error) {
	if _, err := s.repo.Semester.GetByID(ctx, semesterID, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSemesterNotFound
		}
		s.logger.Error("查询学期失败", zap.String("semester_id", semesterID), zap.Error(err))
		return nil, err
	}

	if _, ok := gpa.GradePoint(req.Grade); !ok {
		return nil, ErrGradeInvalid
	}

	subject := &model.Subject{
		UserID:      userID,
		SemesterID:  semesterID,
		SubjectName: req.SubjectName,
		SubjectCode: req.SubjectCode,
		Grade:       req.Grade,
		Credit:      req.Credit,
	}
	if err := s.repo.Subject.Create(ctx, subject); err != nil {
		s.logger.Error("创建科目失败", zap.Error(err))
		return nil, err
	}

	return toSubjectResponse(subject), nil
}

// ────────────────────── UpdateSubject ──────────────────────

func (s *cgpaService) UpdateSubject(ctx context.Context, userID string, subjectID string, req *dto.UpdateSubjectRequest) (*dto.SubjectResponse, error) {
	subject, err := s.repo.Subject.GetByID(ctx, subjectID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSubjectNotFound
		}
		s.logger.Error("查询科目失败", zap.String("subject_id", subjectID), zap.Error(err))
		return nil, err
	}

	if req.SubjectName != nil {
		subject.SubjectName = *req.SubjectName
	}
	if req.SubjectCode != nil {
		subject.SubjectCode = *req.SubjectCode
	}
	if req.Grade != nil {
		if _, ok := gpa.GradePoint(*req.Grade); !ok {
			return nil, ErrGradeInvalid
		}
		subject.Grade = *req.Grade
	}
	if req.Credit != nil {
		subject.Credit = *req.Credit
	}

	if err := s.repo.Subject.Update(ctx, subject); err != nil {
		s.logger.Error("更新科目失败", zap.String("subject_id", subjectID), zap.Error(err))
		return nil, err
	}

	return toSubjectResponse(subject), nil
}

// ────────────────────── DeleteSubject ──────────────────────

func (s *cgpaService) DeleteSubject(ctx context.Context, userID string, subjectID string) error {
	if _, err := s.repo.Subject.GetByID(ctx, subjectID, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrSubjectNotFound
		}
		s.logger.Error("查询科目失败", zap.String("subject_id", subjectID), zap.Error(err))
		return err
	}

	if err := s.repo.Subject.Delete(ctx, subjectID, userID); err != nil {
		s.logger.Error("删除科目失败", zap.String("subject_id", subjectID), zap.Error(err))
		return err
	}
	return nil
}

// ── 内部辅助方法 ──

func (s *cgpaService) toSemesterResponse(semester *model.Semester) *dto.SemesterResponse {
	subjects := make([]dto.SubjectResponse, 0, len(semester.Subjects))
	for i := range semester.Subjects {
		subjects = append(subjects, *toSubjectResponse(&semester.Subjects[i]))
	}
	return &dto.SemesterResponse{
		ID:       semester.SemesterID,
		Year:     semester.Year,
		Term:     semester.Term,
		GPA:      gpa.ComputeGPA(semester.Subjects),
		Subjects: subjects,
	}
}

func toSubjectResponse(subject *model.Subject) *dto.SubjectResponse {
	return &dto.SubjectResponse{
		ID:          subject.SubjectID,
		SubjectName: subject.SubjectName,
		SubjectCode: subject.SubjectCode,
		Grade:       subject.Grade,
		Credit:      subject.Credit,
	}
}
