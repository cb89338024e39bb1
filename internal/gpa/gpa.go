// Package gpa 实现绩点与 GPA/CGPA 的纯计算。
//
// 设计说明：
//   - 本包不做任何 I/O，输入由调用方（Service 层）从仓储取出后传入。
//   - 未知等级或非法学分的科目按 "排除" 处理：既不计分也不计学分，
//     绝不将其当作 0 分学分拉低平均值，也绝不因此报错。
//   - 结果保留两位小数，采用四舍五入（远离零方向），与前端
//     toFixed(2) 的展示值保持一致，避免新旧数据对账出现偏差。
package gpa

import (
	"fmt"
	"math"

	"github.com/ambalavanan01/self-study-hub/internal/model"
)

// GradePoints 字母等级 → 绩点换算表
var GradePoints = map[string]int{
	"S": 10,
	"A": 9,
	"B": 8,
	"C": 7,
	"D": 6,
	"E": 5,
}

// GradePoint 查询等级绩点；未知等级返回 ok=false，表示该科目不参与平均
func GradePoint(grade string) (int, bool) {
	p, ok := GradePoints[grade]
	return p, ok
}

// SeriesPoint GPA 时间序列点（图表数据）
type SeriesPoint struct {
	Label string  `json:"label"` // "{term} {year}"
	GPA   float64 `json:"gpa"`
}

// YearGroup 按学年分组的 GPA 汇总
type YearGroup struct {
	Year      int              `json:"year"`
	Label     string           `json:"label"` // First Year / Second Year / ...
	GPA       float64          `json:"gpa"`
	Semesters []model.Semester `json:"semesters"`
}

// ComputeGPA 计算一组科目的加权 GPA。
// 空输入、学分合计为 0（含全部等级未知）时返回 0，绝不除零。
func ComputeGPA(subjects []model.Subject) float64 {
	totalPoints, totalCredits := accumulate(subjects)
	if totalCredits == 0 {
		return 0
	}
	return round2(totalPoints / totalCredits)
}

// ComputeCGPA 计算跨全部学期的累计 GPA（所有科目摊平后同一口径加权）
func ComputeCGPA(semesters []model.Semester) float64 {
	var totalPoints, totalCredits float64
	for _, sem := range semesters {
		p, c := accumulate(sem.Subjects)
		totalPoints += p
		totalCredits += c
	}
	if totalCredits == 0 {
		return 0
	}
	return round2(totalPoints / totalCredits)
}

// TotalCredits 统计参与计算的学分合计（排除规则与 ComputeGPA 一致）
func TotalCredits(semesters []model.Semester) float64 {
	var total float64
	for _, sem := range semesters {
		_, c := accumulate(sem.Subjects)
		total += c
	}
	return total
}

// Series 按调用方给定的学期顺序生成 GPA 序列，排序由调用方负责
func Series(semesters []model.Semester) []SeriesPoint {
	points := make([]SeriesPoint, 0, len(semesters))
	for _, sem := range semesters {
		points = append(points, SeriesPoint{
			Label: fmt.Sprintf("%s %d", sem.Term, sem.Year),
			GPA:   ComputeGPA(sem.Subjects),
		})
	}
	return points
}

// YearGroups 按入学年份分组并计算学年 GPA（该学年全部科目的并集）。
// 学年称谓由 (year - 最小year) 的位次决定，超出四年按 "{n}th Year" 兜底。
// 返回顺序：学年升序；组内保持调用方给定的学期顺序。
func YearGroups(semesters []model.Semester) []YearGroup {
	if len(semesters) == 0 {
		return nil
	}

	minYear := semesters[0].Year
	for _, sem := range semesters {
		if sem.Year < minYear {
			minYear = sem.Year
		}
	}

	grouped := make(map[int][]model.Semester)
	var order []int
	for _, sem := range semesters {
		if _, ok := grouped[sem.Year]; !ok {
			order = append(order, sem.Year)
		}
		grouped[sem.Year] = append(grouped[sem.Year], sem)
	}
	// 学年升序
	for i := 0; i < len(order); i++ {
		for j := i + 1; j < len(order); j++ {
			if order[j] < order[i] {
				order[i], order[j] = order[j], order[i]
			}
		}
	}

	groups := make([]YearGroup, 0, len(order))
	for _, year := range order {
		sems := grouped[year]
		var subjects []model.Subject
		for _, sem := range sems {
			subjects = append(subjects, sem.Subjects...)
		}
		groups = append(groups, YearGroup{
			Year:      year,
			Label:     yearLabel(year - minYear),
			GPA:       ComputeGPA(subjects),
			Semesters: sems,
		})
	}
	return groups
}

// ── 内部辅助 ──

// accumulate 累加 Σ(绩点×学分) 与 Σ(学分)，排除未知等级与非法学分
func accumulate(subjects []model.Subject) (points, credits float64) {
	for _, sub := range subjects {
		p, ok := GradePoints[sub.Grade]
		if !ok {
			continue
		}
		if sub.Credit <= 0 || math.IsNaN(sub.Credit) || math.IsInf(sub.Credit, 0) {
			continue
		}
		points += float64(p) * sub.Credit
		credits += sub.Credit
	}
	return points, credits
}

var yearLabels = []string{"First Year", "Second Year", "Third Year", "Fourth Year"}

func yearLabel(diff int) string {
	if diff >= 0 && diff < len(yearLabels) {
		return yearLabels[diff]
	}
	return fmt.Sprintf("%dth Year", diff+1)
}

// round2 保留两位小数，四舍五入（远离零）
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
