package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"gorm.io/gorm"

	"github.com/ambalavanan01/self-study-hub/internal/model"
	"github.com/ambalavanan01/self-study-hub/internal/repository"
)

// newTestRepo 组装全 mock 的仓储聚合。
// Semester 与 Subject 两个 mock 互相关联，ListByUser 会像真实实现一样带出科目
func newTestRepo() *repository.Repository {
	subjects := newMockSubjectRepo()
	semesters := newMockSemesterRepo()
	semesters.subjects = subjects
	return &repository.Repository{
		User:         newMockUserRepo(),
		Semester:     semesters,
		Subject:      subjects,
		Timetable:    newMockTimetableRepo(),
		Task:         newMockTaskRepo(),
		File:         newMockFileRepo(),
		StudySession: newMockStudySessionRepo(),
		UserInterest: newMockUserInterestRepo(),
	}
}

// ── Mock UserRepository ──

type mockUserRepo struct {
	users map[string]*model.User
	seq   int
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[string]*model.User)}
}

func (m *mockUserRepo) Create(_ context.Context, user *model.User) error {
	if user.UserID == "" {
		m.seq++
		user.UserID = fmt.Sprintf("user-%d", m.seq)
	}
	m.users[user.UserID] = user
	return nil
}

func (m *mockUserRepo) GetByID(_ context.Context, id string) (*model.User, error) {
	if u, ok := m.users[id]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) GetByEmail(_ context.Context, email string) (*model.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) UpdatePassword(_ context.Context, id string, passwordHash string) error {
	u, ok := m.users[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	u.PasswordHash = passwordHash
	return nil
}

// ── Mock SemesterRepository ──

type mockSemesterRepo struct {
	semesters map[string]*model.Semester
	subjects  *mockSubjectRepo // 非 nil 时 ListByUser 带科目预加载
	seq       int
}

func newMockSemesterRepo() *mockSemesterRepo {
	return &mockSemesterRepo{semesters: make(map[string]*model.Semester)}
}

func (m *mockSemesterRepo) Create(_ context.Context, semester *model.Semester) error {
	if semester.SemesterID == "" {
		m.seq++
		semester.SemesterID = fmt.Sprintf("sem-%d", m.seq)
	}
	m.semesters[semester.SemesterID] = semester
	return nil
}

func (m *mockSemesterRepo) GetByID(_ context.Context, id string, userID string) (*model.Semester, error) {
	if s, ok := m.semesters[id]; ok && s.UserID == userID {
		return s, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockSemesterRepo) ListByUser(_ context.Context, userID string) ([]model.Semester, error) {
	var result []model.Semester
	for _, s := range m.semesters {
		if s.UserID != userID {
			continue
		}
		copied := *s
		if m.subjects != nil {
			copied.Subjects = m.subjects.listBySemester(s.SemesterID)
		}
		result = append(result, copied)
	}
	// 与真实实现一致：year 升序，同年 term 升序（Fall < Winter）
	sort.Slice(result, func(i, j int) bool {
		if result[i].Year != result[j].Year {
			return result[i].Year < result[j].Year
		}
		return result[i].Term < result[j].Term
	})
	return result, nil
}

func (m *mockSemesterRepo) Delete(_ context.Context, id string, userID string) error {
	s, ok := m.semesters[id]
	if !ok || s.UserID != userID {
		return gorm.ErrRecordNotFound
	}
	delete(m.semesters, id)
	if m.subjects != nil {
		m.subjects.removeBySemester(id)
	}
	return nil
}

func (m *mockSemesterRepo) ImportBatch(ctx context.Context, semesters []model.Semester) error {
	for i := range semesters {
		sem := &semesters[i]
		if err := m.Create(ctx, sem); err != nil {
			return err
		}
		// 与真实实现一致：关联科目随学期一并写入
		if m.subjects != nil {
			for j := range sem.Subjects {
				sub := sem.Subjects[j]
				sub.SemesterID = sem.SemesterID
				if err := m.subjects.Create(ctx, &sub); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

// ── Mock SubjectRepository ──

type mockSubjectRepo struct {
	subjects map[string]*model.Subject
	seq      int
}

func newMockSubjectRepo() *mockSubjectRepo {
	return &mockSubjectRepo{subjects: make(map[string]*model.Subject)}
}

func (m *mockSubjectRepo) Create(_ context.Context, subject *model.Subject) error {
	if subject.SubjectID == "" {
		m.seq++
		subject.SubjectID = fmt.Sprintf("sub-%d", m.seq)
	}
	m.subjects[subject.SubjectID] = subject
	return nil
}

func (m *mockSubjectRepo) GetByID(_ context.Context, id string, userID string) (*model.Subject, error) {
	if s, ok := m.subjects[id]; ok && s.UserID == userID {
		return s, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockSubjectRepo) Update(_ context.Context, subject *model.Subject) error {
	if _, ok := m.subjects[subject.SubjectID]; !ok {
		return gorm.ErrRecordNotFound
	}
	m.subjects[subject.SubjectID] = subject
	return nil
}

func (m *mockSubjectRepo) Delete(_ context.Context, id string, userID string) error {
	s, ok := m.subjects[id]
	if !ok || s.UserID != userID {
		return gorm.ErrRecordNotFound
	}
	delete(m.subjects, id)
	return nil
}

func (m *mockSubjectRepo) listBySemester(semesterID string) []model.Subject {
	var result []model.Subject
	for _, s := range m.subjects {
		if s.SemesterID == semesterID {
			result = append(result, *s)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].SubjectID < result[j].SubjectID })
	return result
}

func (m *mockSubjectRepo) removeBySemester(semesterID string) {
	for id, s := range m.subjects {
		if s.SemesterID == semesterID {
			delete(m.subjects, id)
		}
	}
}

// ── Mock TimetableRepository ──

type mockTimetableRepo struct {
	entries map[string]*model.TimetableEntry
	seq     int
}

func newMockTimetableRepo() *mockTimetableRepo {
	return &mockTimetableRepo{entries: make(map[string]*model.TimetableEntry)}
}

func (m *mockTimetableRepo) Create(_ context.Context, entry *model.TimetableEntry) error {
	if entry.EntryID == "" {
		m.seq++
		entry.EntryID = fmt.Sprintf("entry-%d", m.seq)
	}
	m.entries[entry.EntryID] = entry
	return nil
}

func (m *mockTimetableRepo) GetByID(_ context.Context, id string, userID string) (*model.TimetableEntry, error) {
	if e, ok := m.entries[id]; ok && e.UserID == userID {
		return e, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockTimetableRepo) ListByUser(_ context.Context, userID string, day string) ([]model.TimetableEntry, error) {
	var result []model.TimetableEntry
	for _, e := range m.entries {
		if e.UserID != userID {
			continue
		}
		if day != "" && e.Day != day {
			continue
		}
		result = append(result, *e)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].StartTime < result[j].StartTime })
	return result, nil
}

func (m *mockTimetableRepo) Update(_ context.Context, entry *model.TimetableEntry) error {
	if _, ok := m.entries[entry.EntryID]; !ok {
		return gorm.ErrRecordNotFound
	}
	m.entries[entry.EntryID] = entry
	return nil
}

func (m *mockTimetableRepo) Delete(_ context.Context, id string, userID string) error {
	e, ok := m.entries[id]
	if !ok || e.UserID != userID {
		return gorm.ErrRecordNotFound
	}
	delete(m.entries, id)
	return nil
}

func (m *mockTimetableRepo) CreateBatch(ctx context.Context, entries []model.TimetableEntry) error {
	for i := range entries {
		if err := m.Create(ctx, &entries[i]); err != nil {
			return err
		}
	}
	return nil
}

// ── Mock TaskRepository ──

type mockTaskRepo struct {
	tasks map[string]*model.Task
	seq   int
}

func newMockTaskRepo() *mockTaskRepo {
	return &mockTaskRepo{tasks: make(map[string]*model.Task)}
}

func (m *mockTaskRepo) Create(_ context.Context, task *model.Task) error {
	if task.TaskID == "" {
		m.seq++
		task.TaskID = fmt.Sprintf("task-%d", m.seq)
	}
	m.tasks[task.TaskID] = task
	return nil
}

func (m *mockTaskRepo) ListByUser(_ context.Context, userID string) ([]model.Task, error) {
	var result []model.Task
	for _, t := range m.tasks {
		if t.UserID == userID {
			result = append(result, *t)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].DueDate.Before(result[j].DueDate) })
	return result, nil
}

func (m *mockTaskRepo) ListUpcoming(_ context.Context, userID string, limit int) ([]model.Task, error) {
	var result []model.Task
	for _, t := range m.tasks {
		if t.UserID == userID && t.Status == model.TaskStatusTodo {
			result = append(result, *t)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].DueDate.Before(result[j].DueDate) })
	if len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

func (m *mockTaskRepo) UpdateStatus(_ context.Context, id string, userID string, status string) error {
	t, ok := m.tasks[id]
	if !ok || t.UserID != userID {
		return gorm.ErrRecordNotFound
	}
	t.Status = status
	return nil
}

func (m *mockTaskRepo) Delete(_ context.Context, id string, userID string) error {
	t, ok := m.tasks[id]
	if !ok || t.UserID != userID {
		return gorm.ErrRecordNotFound
	}
	delete(m.tasks, id)
	return nil
}

// ── Mock FileRepository ──

type mockFileRepo struct {
	files map[string]*model.FileRecord
	seq   int
}

func newMockFileRepo() *mockFileRepo {
	return &mockFileRepo{files: make(map[string]*model.FileRecord)}
}

func (m *mockFileRepo) Create(_ context.Context, file *model.FileRecord) error {
	if file.FileID == "" {
		m.seq++
		file.FileID = fmt.Sprintf("file-%d", m.seq)
	}
	m.files[file.FileID] = file
	return nil
}

func (m *mockFileRepo) GetByID(_ context.Context, id string, userID string) (*model.FileRecord, error) {
	if f, ok := m.files[id]; ok && f.UserID == userID {
		return f, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockFileRepo) ListByUser(_ context.Context, userID string) ([]model.FileRecord, error) {
	var result []model.FileRecord
	for _, f := range m.files {
		if f.UserID == userID {
			result = append(result, *f)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].UploadedAt.After(result[j].UploadedAt) })
	return result, nil
}

func (m *mockFileRepo) Delete(_ context.Context, id string, userID string) error {
	f, ok := m.files[id]
	if !ok || f.UserID != userID {
		return gorm.ErrRecordNotFound
	}
	delete(m.files, id)
	return nil
}

func (m *mockFileRepo) CreateBatch(ctx context.Context, files []model.FileRecord) error {
	for i := range files {
		if err := m.Create(ctx, &files[i]); err != nil {
			return err
		}
	}
	return nil
}

// ── Mock StudySessionRepository ──

type mockStudySessionRepo struct {
	sessions []model.StudySession
}

func newMockStudySessionRepo() *mockStudySessionRepo {
	return &mockStudySessionRepo{}
}

func (m *mockStudySessionRepo) Create(_ context.Context, session *model.StudySession) error {
	if session.SessionID == "" {
		session.SessionID = fmt.Sprintf("sess-%d", len(m.sessions)+1)
	}
	m.sessions = append(m.sessions, *session)
	return nil
}

func (m *mockStudySessionRepo) CountByUser(_ context.Context, userID string) (int64, error) {
	var n int64
	for _, s := range m.sessions {
		if s.UserID == userID {
			n++
		}
	}
	return n, nil
}

func (m *mockStudySessionRepo) CountByUserSince(_ context.Context, userID string, since time.Time) (int64, error) {
	var n int64
	for _, s := range m.sessions {
		if s.UserID == userID && !s.CompletedAt.Before(since) {
			n++
		}
	}
	return n, nil
}

func (m *mockStudySessionRepo) SumDurationByUser(_ context.Context, userID string) (int64, error) {
	var sum int64
	for _, s := range m.sessions {
		if s.UserID == userID {
			sum += int64(s.Duration)
		}
	}
	return sum, nil
}

// ── Mock UserInterestRepository ──

type mockUserInterestRepo struct {
	interests map[string]*model.UserInterest
	seq       int
}

func newMockUserInterestRepo() *mockUserInterestRepo {
	return &mockUserInterestRepo{interests: make(map[string]*model.UserInterest)}
}

func (m *mockUserInterestRepo) Create(_ context.Context, interest *model.UserInterest) error {
	if interest.InterestID == "" {
		m.seq++
		interest.InterestID = fmt.Sprintf("int-%d", m.seq)
	}
	m.interests[interest.InterestID] = interest
	return nil
}

func (m *mockUserInterestRepo) ListByUser(_ context.Context, userID string) ([]model.UserInterest, error) {
	var result []model.UserInterest
	for _, i := range m.interests {
		if i.UserID == userID {
			result = append(result, *i)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].InterestID < result[j].InterestID })
	return result, nil
}

func (m *mockUserInterestRepo) Delete(_ context.Context, id string, userID string) error {
	i, ok := m.interests[id]
	if !ok || i.UserID != userID {
		return gorm.ErrRecordNotFound
	}
	delete(m.interests, id)
	return nil
}
