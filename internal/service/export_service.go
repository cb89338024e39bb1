package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/ambalavanan01/self-study-hub/internal/dto"
	"github.com/ambalavanan01/self-study-hub/internal/gpa"
	"github.com/ambalavanan01/self-study-hub/internal/model"
	"github.com/ambalavanan01/self-study-hub/internal/repository"
	"github.com/ambalavanan01/self-study-hub/internal/timeutil"
)

// ── 导出模块业务错误 ──

var (
	ErrExportNoData       = errors.New("暂无数据可导出")
	ErrImportPayloadBad   = errors.New("导入数据格式无效")
	ErrExportGenerateFail = errors.New("生成导出文件失败")
)

// ExportService 数据导出/导入业务接口
//
// 设计说明：
//   - JSON 导出为设备间迁移格式，导入时所有标识符重新生成
//   - Excel 与 ICS 为只读导出，不提供对应导入
//   - 导出以 bytes.Buffer 返回，由 Handler 层设置响应头后写入 Response
type ExportService interface {
	ExportCGPAJSON(ctx context.Context, userID string) (*bytes.Buffer, string, error)
	ImportCGPAJSON(ctx context.Context, userID string, data []byte) (*dto.ImportResultResponse, error)
	ExportTimetableJSON(ctx context.Context, userID string) (*bytes.Buffer, string, error)
	ImportTimetableJSON(ctx context.Context, userID string, data []byte) (int, error)
	ExportFilesJSON(ctx context.Context, userID string) (*bytes.Buffer, string, error)
	ImportFilesJSON(ctx context.Context, userID string, data []byte) (int, error)
	// ExportCGPAExcel 成绩单 Excel：按学期一行一科目，附每学期 GPA 与总 CGPA
	ExportCGPAExcel(ctx context.Context, userID string) (*bytes.Buffer, string, error)
	// ExportTimetableExcel 课程表 Excel：周一至周五 × 开始时间网格
	ExportTimetableExcel(ctx context.Context, userID string) (*bytes.Buffer, string, error)
	// ExportTimetableICS 课程表 iCalendar：每门课一个按周重复的事件
	ExportTimetableICS(ctx context.Context, userID string) (*bytes.Buffer, string, error)
}

type exportService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewExportService 创建 ExportService 实例
func NewExportService(repo *repository.Repository, logger *zap.Logger) ExportService {
	return &exportService{repo: repo, logger: logger}
}

// ═══════════════════════════════════════════════════════════
// CGPA JSON 导出 / 导入
// ═══════════════════════════════════════════════════════════

func (s *exportService) ExportCGPAJSON(ctx context.Context, userID string) (*bytes.Buffer, string, error) {
	semesters, err := s.repo.Semester.ListByUser(ctx, userID)
	if err != nil {
		s.logger.Error("列出学期失败", zap.Error(err))
		return nil, "", err
	}
	if len(semesters) == 0 {
		return nil, "", ErrExportNoData
	}

	export := make([]dto.SemesterExport, 0, len(semesters))
	for _, sem := range semesters {
		item := dto.SemesterExport{
			Year:     sem.Year,
			Term:     sem.Term,
			Subjects: make([]dto.SubjectExport, 0, len(sem.Subjects)),
		}
		for _, sub := range sem.Subjects {
			item.Subjects = append(item.Subjects, dto.SubjectExport{
				SubjectName: sub.SubjectName,
				SubjectCode: sub.SubjectCode,
				Grade:       sub.Grade,
				Credit:      sub.Credit,
			})
		}
		export = append(export, item)
	}

	buf, err := marshalIndent(export)
	if err != nil {
		s.logger.Error("序列化成绩数据失败", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}
	return buf, "cgpa_export.json", nil
}

func (s *exportService) ImportCGPAJSON(ctx context.Context, userID string, data []byte) (*dto.ImportResultResponse, error) {
	var payload []dto.SemesterExport
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, ErrImportPayloadBad
	}

	semesters := make([]model.Semester, 0, len(payload))
	subjectCount := 0
	for _, item := range payload {
		if item.Term != model.TermFall && item.Term != model.TermWinter {
			return nil, ErrImportPayloadBad
		}
		sem := model.Semester{
			UserID: userID,
			Year:   item.Year,
			Term:   item.Term,
		}
		for _, sub := range item.Subjects {
			if _, ok := gpa.GradePoint(sub.Grade); !ok {
				return nil, ErrImportPayloadBad
			}
			if sub.Credit <= 0 {
				return nil, ErrImportPayloadBad
			}
			sem.Subjects = append(sem.Subjects, model.Subject{
				UserID:      userID,
				SubjectName: sub.SubjectName,
				SubjectCode: sub.SubjectCode,
				Grade:       sub.Grade,
				Credit:      sub.Credit,
			})
			subjectCount++
		}
		semesters = append(semesters, sem)
	}

	// 单事务写入：要么全部导入，要么一条不留
	if err := s.repo.Semester.ImportBatch(ctx, semesters); err != nil {
		s.logger.Error("导入成绩数据失败", zap.Error(err))
		return nil, err
	}

	return &dto.ImportResultResponse{
		ImportedSemesters: len(semesters),
		ImportedSubjects:  subjectCount,
	}, nil
}

// ═══════════════════════════════════════════════════════════
// 课程表 JSON 导出 / 导入
// ═══════════════════════════════════════════════════════════

func (s *exportService) ExportTimetableJSON(ctx context.Context, userID string) (*bytes.Buffer, string, error) {
	entries, err := s.repo.Timetable.ListByUser(ctx, userID, "")
	if err != nil {
		s.logger.Error("列出课程失败", zap.Error(err))
		return nil, "", err
	}
	if len(entries) == 0 {
		return nil, "", ErrExportNoData
	}

	export := make([]dto.TimetableEntryExport, 0, len(entries))
	for _, e := range entries {
		export = append(export, dto.TimetableEntryExport{
			Day:         e.Day,
			Type:        e.Type,
			SubjectName: e.SubjectName,
			SubjectCode: e.SubjectCode,
			StartTime:   e.StartTime,
			EndTime:     e.EndTime,
			SlotCode:    e.SlotCode,
			SlotLabel:   e.SlotLabel,
			RoomNumber:  e.RoomNumber,
			Credit:      e.Credit,
		})
	}

	buf, err := marshalIndent(export)
	if err != nil {
		s.logger.Error("序列化课程数据失败", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}
	return buf, "timetable_export.json", nil
}

func (s *exportService) ImportTimetableJSON(ctx context.Context, userID string, data []byte) (int, error) {
	var payload []dto.TimetableEntryExport
	if err := json.Unmarshal(data, &payload); err != nil {
		return 0, ErrImportPayloadBad
	}

	entries := make([]model.TimetableEntry, 0, len(payload))
	for _, item := range payload {
		if !validDay(item.Day) {
			return 0, ErrImportPayloadBad
		}
		// 导出文件中的 end_time 一律忽略，重新推导
		endTime, err := deriveEndTime(item.StartTime, item.Type)
		if err != nil {
			return 0, ErrImportPayloadBad
		}
		entries = append(entries, model.TimetableEntry{
			UserID:      userID,
			Day:         item.Day,
			Type:        item.Type,
			SubjectName: item.SubjectName,
			SubjectCode: item.SubjectCode,
			StartTime:   item.StartTime,
			EndTime:     endTime,
			SlotCode:    item.SlotCode,
			SlotLabel:   item.SlotLabel,
			RoomNumber:  item.RoomNumber,
			Credit:      item.Credit,
		})
	}

	if err := s.repo.Timetable.CreateBatch(ctx, entries); err != nil {
		s.logger.Error("导入课程数据失败", zap.Error(err))
		return 0, err
	}
	return len(entries), nil
}

// ═══════════════════════════════════════════════════════════
// 文件元数据 JSON 导出
// ═══════════════════════════════════════════════════════════

func (s *exportService) ExportFilesJSON(ctx context.Context, userID string) (*bytes.Buffer, string, error) {
	files, err := s.repo.File.ListByUser(ctx, userID)
	if err != nil {
		s.logger.Error("列出文件失败", zap.Error(err))
		return nil, "", err
	}
	if len(files) == 0 {
		return nil, "", ErrExportNoData
	}

	export := make([]dto.FileExport, 0, len(files))
	for _, f := range files {
		export = append(export, dto.FileExport{
			FileName:  f.FileName,
			SizeBytes: f.SizeBytes,
			FileType:  f.FileType,
			FileURL:   f.FileURL,
		})
	}

	buf, err := marshalIndent(export)
	if err != nil {
		s.logger.Error("序列化文件数据失败", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}
	return buf, "files_export.json", nil
}

// ImportFilesJSON 导入文件元数据记录。
// 只恢复记录，不恢复对象内容，file_url 可能指向已不存在的对象
func (s *exportService) ImportFilesJSON(ctx context.Context, userID string, data []byte) (int, error) {
	var payload []dto.FileExport
	if err := json.Unmarshal(data, &payload); err != nil || len(payload) == 0 {
		return 0, ErrImportPayloadBad
	}

	records := make([]model.FileRecord, 0, len(payload))
	for _, f := range payload {
		if f.FileName == "" || f.SizeBytes < 0 {
			return 0, ErrImportPayloadBad
		}
		records = append(records, model.FileRecord{
			UserID:     userID,
			FileName:   f.FileName,
			SizeBytes:  f.SizeBytes,
			FileType:   f.FileType,
			FileURL:    f.FileURL,
			UploadedAt: time.Now(),
		})
	}

	if err := s.repo.File.CreateBatch(ctx, records); err != nil {
		s.logger.Error("导入文件记录失败", zap.Error(err))
		return 0, err
	}
	s.logger.Info("文件元数据导入完成",
		zap.String("user_id", userID), zap.Int("count", len(records)))
	return len(records), nil
}

// ═══════════════════════════════════════════════════════════
// ExportCGPAExcel — 成绩单导出为 Excel
// ═══════════════════════════════════════════════════════════

func (s *exportService) ExportCGPAExcel(ctx context.Context, userID string) (*bytes.Buffer, string, error) {
	semesters, err := s.repo.Semester.ListByUser(ctx, userID)
	if err != nil {
		s.logger.Error("列出学期失败", zap.Error(err))
		return nil, "", err
	}
	if len(semesters) == 0 {
		return nil, "", ErrExportNoData
	}

	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Grades"
	idx, _ := f.NewSheet(sheetName)
	f.SetActiveSheet(idx)
	f.DeleteSheet("Sheet1")

	f.SetColWidth(sheetName, "A", "A", 16)
	f.SetColWidth(sheetName, "B", "B", 30)
	f.SetColWidth(sheetName, "C", "C", 14)
	f.SetColWidth(sheetName, "D", "E", 10)

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})

	f.SetCellValue(sheetName, "A1", fmt.Sprintf("CGPA %.2f — %.1f credits",
		gpa.ComputeCGPA(semesters), gpa.TotalCredits(semesters)))
	f.MergeCell(sheetName, "A1", "E1")
	f.SetCellStyle(sheetName, "A1", "A1", headerStyle)

	row := 2
	f.SetCellValue(sheetName, cell("A", row), "Semester")
	f.SetCellValue(sheetName, cell("B", row), "Subject")
	f.SetCellValue(sheetName, cell("C", row), "Code")
	f.SetCellValue(sheetName, cell("D", row), "Grade")
	f.SetCellValue(sheetName, cell("E", row), "Credits")
	row++

	for _, sem := range semesters {
		label := fmt.Sprintf("%s %d (GPA %.2f)", sem.Term, sem.Year, gpa.ComputeGPA(sem.Subjects))
		for _, sub := range sem.Subjects {
			f.SetCellValue(sheetName, cell("A", row), label)
			f.SetCellValue(sheetName, cell("B", row), sub.SubjectName)
			f.SetCellValue(sheetName, cell("C", row), sub.SubjectCode)
			f.SetCellValue(sheetName, cell("D", row), sub.Grade)
			f.SetCellValue(sheetName, cell("E", row), sub.Credit)
			row++
		}
	}

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		s.logger.Error("写入 Excel 失败", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}
	return buf, "cgpa_report.xlsx", nil
}

// ═══════════════════════════════════════════════════════════
// ExportTimetableExcel — 课程表导出为 Excel
// ═══════════════════════════════════════════════════════════
//
// 输出格式：
//   - 行：该用户课程表中出现过的开始时间（升序）
//   - 列：Monday ~ Friday
//   - 单元格：科目名 (教室)

func (s *exportService) ExportTimetableExcel(ctx context.Context, userID string) (*bytes.Buffer, string, error) {
	entries, err := s.repo.Timetable.ListByUser(ctx, userID, "")
	if err != nil {
		s.logger.Error("列出课程失败", zap.Error(err))
		return nil, "", err
	}
	if len(entries) == 0 {
		return nil, "", ErrExportNoData
	}

	// "start:day" → cellText；开始时间去重后即行头（仓储已按 start_time 排序）
	cellIndex := make(map[string]string)
	var starts []string
	startSeen := make(map[string]bool)
	for _, e := range entries {
		text := e.SubjectName
		if e.RoomNumber != nil && *e.RoomNumber != "" {
			text += " (" + *e.RoomNumber + ")"
		}
		cellIndex[e.StartTime+":"+e.Day] = text
		if !startSeen[e.StartTime] {
			startSeen[e.StartTime] = true
			starts = append(starts, e.StartTime)
		}
	}

	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Timetable"
	idx, _ := f.NewSheet(sheetName)
	f.SetActiveSheet(idx)
	f.DeleteSheet("Sheet1")

	f.SetColWidth(sheetName, "A", "A", 10)
	for i := range timeutil.Days {
		col := colName(1 + i)
		f.SetColWidth(sheetName, col, col, 24)
	}

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})

	row := 1
	f.SetCellValue(sheetName, cell("A", row), "Time")
	f.SetCellStyle(sheetName, cell("A", row), cell(colName(len(timeutil.Days)), row), headerStyle)
	for i, day := range timeutil.Days {
		f.SetCellValue(sheetName, cell(colName(1+i), row), day)
	}

	row = 2
	for _, start := range starts {
		f.SetCellValue(sheetName, cell("A", row), start)
		for i, day := range timeutil.Days {
			if text, ok := cellIndex[start+":"+day]; ok {
				f.SetCellValue(sheetName, cell(colName(1+i), row), text)
			} else {
				f.SetCellValue(sheetName, cell(colName(1+i), row), "-")
			}
		}
		row++
	}

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		s.logger.Error("写入 Excel 失败", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}
	return buf, "timetable.xlsx", nil
}

// ═══════════════════════════════════════════════════════════
// ExportTimetableICS — 课程表导出为 iCalendar
// ═══════════════════════════════════════════════════════════
//
// 每门课生成一个事件，FREQ=WEEKLY 按周重复，
// DTSTART 取自导出时刻之后最近一个对应星期

func (s *exportService) ExportTimetableICS(ctx context.Context, userID string) (*bytes.Buffer, string, error) {
	entries, err := s.repo.Timetable.ListByUser(ctx, userID, "")
	if err != nil {
		s.logger.Error("列出课程失败", zap.Error(err))
		return nil, "", err
	}
	if len(entries) == 0 {
		return nil, "", ErrExportNoData
	}

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//self-study-hub//timetable//EN")

	now := time.Now()
	for _, e := range entries {
		startAt, endAt, err := nextOccurrence(&e, now)
		if err != nil {
			s.logger.Warn("课程时间解析失败，跳过",
				zap.String("entry_id", e.EntryID), zap.Error(err))
			continue
		}

		event := cal.AddEvent(uuid.New().String() + "@self-study-hub")
		event.SetCreatedTime(now)
		event.SetDtStampTime(now)
		event.SetStartAt(startAt)
		event.SetEndAt(endAt)
		event.SetSummary(fmt.Sprintf("%s (%s)", e.SubjectName, e.SubjectCode))
		if e.RoomNumber != nil {
			event.SetLocation(*e.RoomNumber)
		}
		event.AddRrule("FREQ=WEEKLY;BYDAY=" + icsByDay[e.Day])
	}

	buf := bytes.NewBufferString(cal.Serialize())
	return buf, "timetable.ics", nil
}

// ── 辅助函数 ──

var icsByDay = map[string]string{
	"Monday":    "MO",
	"Tuesday":   "TU",
	"Wednesday": "WE",
	"Thursday":  "TH",
	"Friday":    "FR",
}

var weekdayOf = map[string]time.Weekday{
	"Monday":    time.Monday,
	"Tuesday":   time.Tuesday,
	"Wednesday": time.Wednesday,
	"Thursday":  time.Thursday,
	"Friday":    time.Friday,
}

// nextOccurrence 计算课程在 now 之后最近一次的起止时刻
func nextOccurrence(e *model.TimetableEntry, now time.Time) (time.Time, time.Time, error) {
	startMin, err := timeutil.ParseClock(e.StartTime)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	endMin, err := timeutil.ParseClock(e.EndTime)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}

	target, ok := weekdayOf[e.Day]
	if !ok {
		return time.Time{}, time.Time{}, fmt.Errorf("未知星期: %s", e.Day)
	}
	daysAhead := (int(target) - int(now.Weekday()) + 7) % 7

	date := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()).
		AddDate(0, 0, daysAhead)
	startAt := date.Add(time.Duration(startMin) * time.Minute)
	endAt := date.Add(time.Duration(endMin) * time.Minute)
	return startAt, endAt, nil
}

func validDay(day string) bool {
	for _, d := range timeutil.Days {
		if d == day {
			return true
		}
	}
	return false
}

func marshalIndent(v interface{}) (*bytes.Buffer, error) {
	raw, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, err
	}
	return bytes.NewBuffer(raw), nil
}

func colName(idx int) string {
	name, _ := excelize.ColumnNumberToName(idx + 1)
	return name
}

func cell(col string, row int) string {
	return fmt.Sprintf("%s%d", col, row)
}
