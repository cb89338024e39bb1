package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/ambalavanan01/self-study-hub/internal/dto"
)

// ── 测试辅助 ──

func setupTestCGPAService() CGPAService {
	return NewCGPAService(newTestRepo(), zap.NewNop())
}

// ── CreateSemester 测试 ──

func TestCGPAService_CreateSemester_Success(t *testing.T) {
	svc := setupTestCGPAService()

	resp, err := svc.CreateSemester(context.Background(), "user-1", &dto.CreateSemesterRequest{Year: 2025, Term: "Fall"})
	if err != nil {
		t.Fatalf("CreateSemester 应成功: %v", err)
	}
	if resp.Year != 2025 || resp.Term != "Fall" {
		t.Errorf("学期字段不符: %+v", resp)
	}
	if resp.GPA != 0 {
		t.Errorf("空学期 GPA 期望 0，实际=%v", resp.GPA)
	}
}

func TestCGPAService_CreateSemester_Duplicate(t *testing.T) {
	svc := setupTestCGPAService()
	ctx := context.Background()

	if _, err := svc.CreateSemester(ctx, "user-1", &dto.CreateSemesterRequest{Year: 2025, Term: "Fall"}); err != nil {
		t.Fatalf("首次创建应成功: %v", err)
	}
	if _, err := svc.CreateSemester(ctx, "user-1", &dto.CreateSemesterRequest{Year: 2025, Term: "Fall"}); !errors.Is(err, ErrSemesterDuplicate) {
		t.Errorf("重复 (year, term) 期望 ErrSemesterDuplicate，实际: %v", err)
	}

	// 不同 term 或不同用户不算重复
	if _, err := svc.CreateSemester(ctx, "user-1", &dto.CreateSemesterRequest{Year: 2025, Term: "Winter"}); err != nil {
		t.Errorf("不同 term 应成功: %v", err)
	}
	if _, err := svc.CreateSemester(ctx, "user-2", &dto.CreateSemesterRequest{Year: 2025, Term: "Fall"}); err != nil {
		t.Errorf("不同用户应成功: %v", err)
	}
}

// ── AddSubject 测试 ──

func TestCGPAService_AddSubject(t *testing.T) {
	svc := setupTestCGPAService()
	ctx := context.Background()

	sem, _ := svc.CreateSemester(ctx, "user-1", &dto.CreateSemesterRequest{Year: 2025, Term: "Fall"})

	sub, err := svc.AddSubject(ctx, "user-1", sem.ID, &dto.CreateSubjectRequest{
		SubjectName: "Data Structures",
		SubjectCode: "CS201",
		Grade:       "A",
		Credit:      4,
	})
	if err != nil {
		t.Fatalf("AddSubject 应成功: %v", err)
	}
	if sub.Grade != "A" || sub.Credit != 4 {
		t.Errorf("科目字段不符: %+v", sub)
	}
}

func TestCGPAService_AddSubject_SemesterOwnership(t *testing.T) {
	svc := setupTestCGPAService()
	ctx := context.Background()

	sem, _ := svc.CreateSemester(ctx, "user-1", &dto.CreateSemesterRequest{Year: 2025, Term: "Fall"})

	if _, err := svc.AddSubject(ctx, "user-2", sem.ID, &dto.CreateSubjectRequest{
		SubjectName: "x", SubjectCode: "X1", Grade: "A", Credit: 3,
	}); !errors.Is(err, ErrSemesterNotFound) {
		t.Errorf("他人学期期望 ErrSemesterNotFound，实际: %v", err)
	}
}

func TestCGPAService_AddSubject_InvalidGrade(t *testing.T) {
	svc := setupTestCGPAService()
	ctx := context.Background()

	sem, _ := svc.CreateSemester(ctx, "user-1", &dto.CreateSemesterRequest{Year: 2025, Term: "Fall"})

	if _, err := svc.AddSubject(ctx, "user-1", sem.ID, &dto.CreateSubjectRequest{
		SubjectName: "x", SubjectCode: "X1", Grade: "F", Credit: 3,
	}); !errors.Is(err, ErrGradeInvalid) {
		t.Errorf("未知等级期望 ErrGradeInvalid，实际: %v", err)
	}
}

// ── UpdateSubject 测试 ──

func TestCGPAService_UpdateSubject(t *testing.T) {
	svc := setupTestCGPAService()
	ctx := context.Background()

	sem, _ := svc.CreateSemester(ctx, "user-1", &dto.CreateSemesterRequest{Year: 2025, Term: "Fall"})
	sub, _ := svc.AddSubject(ctx, "user-1", sem.ID, &dto.CreateSubjectRequest{
		SubjectName: "DSA", SubjectCode: "CS201", Grade: "B", Credit: 4,
	})

	grade := "S"
	updated, err := svc.UpdateSubject(ctx, "user-1", sub.ID, &dto.UpdateSubjectRequest{Grade: &grade})
	if err != nil {
		t.Fatalf("UpdateSubject 应成功: %v", err)
	}
	if updated.Grade != "S" {
		t.Errorf("期望等级 S，实际=%s", updated.Grade)
	}
	if updated.SubjectName != "DSA" {
		t.Errorf("未更新字段不应改变，实际=%s", updated.SubjectName)
	}

	bad := "Z"
	if _, err := svc.UpdateSubject(ctx, "user-1", sub.ID, &dto.UpdateSubjectRequest{Grade: &bad}); !errors.Is(err, ErrGradeInvalid) {
		t.Errorf("未知等级期望 ErrGradeInvalid，实际: %v", err)
	}
	if _, err := svc.UpdateSubject(ctx, "user-1", "no-such-id", &dto.UpdateSubjectRequest{Grade: &grade}); !errors.Is(err, ErrSubjectNotFound) {
		t.Errorf("期望 ErrSubjectNotFound，实际: %v", err)
	}
}

// ── DeleteSemester 测试 ──

func TestCGPAService_DeleteSemester_Cascade(t *testing.T) {
	svc := setupTestCGPAService()
	ctx := context.Background()

	sem, _ := svc.CreateSemester(ctx, "user-1", &dto.CreateSemesterRequest{Year: 2025, Term: "Fall"})
	svc.AddSubject(ctx, "user-1", sem.ID, &dto.CreateSubjectRequest{
		SubjectName: "DSA", SubjectCode: "CS201", Grade: "A", Credit: 4,
	})

	if err := svc.DeleteSemester(ctx, "user-1", sem.ID); err != nil {
		t.Fatalf("DeleteSemester 应成功: %v", err)
	}
	if err := svc.DeleteSemester(ctx, "user-1", sem.ID); !errors.Is(err, ErrSemesterNotFound) {
		t.Errorf("二次删除期望 ErrSemesterNotFound，实际: %v", err)
	}

	overview, err := svc.Overview(ctx, "user-1")
	if err != nil {
		t.Fatalf("Overview 应成功: %v", err)
	}
	if overview.CGPA != 0 || overview.TotalCredits != 0 {
		t.Errorf("级联删除后应无成绩数据: %+v", overview)
	}
}

// ── Overview 测试 ──

func TestCGPAService_Overview(t *testing.T) {
	svc := setupTestCGPAService()
	ctx := context.Background()
	userID := "user-1"

	fall, _ := svc.CreateSemester(ctx, userID, &dto.CreateSemesterRequest{Year: 2025, Term: "Fall"})
	winter, _ := svc.CreateSemester(ctx, userID, &dto.CreateSemesterRequest{Year: 2025, Term: "Winter"})

	// Fall: A(9)×4 = 36；Winter: B(8)×2 = 16；CGPA = 52/6 ≈ 8.67
	svc.AddSubject(ctx, userID, fall.ID, &dto.CreateSubjectRequest{
		SubjectName: "DSA", SubjectCode: "CS201", Grade: "A", Credit: 4,
	})
	svc.AddSubject(ctx, userID, winter.ID, &dto.CreateSubjectRequest{
		SubjectName: "OS", SubjectCode: "CS301", Grade: "B", Credit: 2,
	})

	overview, err := svc.Overview(ctx, userID)
	if err != nil {
		t.Fatalf("Overview 应成功: %v", err)
	}
	if overview.CGPA != 8.67 {
		t.Errorf("期望 CGPA=8.67，实际=%v", overview.CGPA)
	}
	if overview.TotalCredits != 6 {
		t.Errorf("期望总学分 6，实际=%v", overview.TotalCredits)
	}
	if len(overview.Series) != 2 {
		t.Fatalf("期望序列 2 个点，实际=%d", len(overview.Series))
	}
	if overview.Series[0].Label != "Fall 2025" || overview.Series[0].GPA != 9 {
		t.Errorf("序列首点不符: %+v", overview.Series[0])
	}
	if len(overview.Years) != 1 {
		t.Fatalf("期望 1 个学年分组，实际=%d", len(overview.Years))
	}
	if overview.Years[0].Label != "First Year" {
		t.Errorf("首个学年标签期望 First Year，实际=%s", overview.Years[0].Label)
	}
}
