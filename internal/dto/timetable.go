package dto

// ── 课程表模块 DTO ──

// CreateTimetableEntryRequest 添加课程请求。
// 不接受 end_time：结束时间由服务端按课程类型推导。
type CreateTimetableEntryRequest struct {
	Day         string  `json:"day"          binding:"required,oneof=Monday Tuesday Wednesday Thursday Friday"`
	Type        string  `json:"type"         binding:"required,oneof=theory lab"`
	SubjectName string  `json:"subject_name" binding:"required,min=1,max=200"`
	SubjectCode string  `json:"subject_code" binding:"required,min=1,max=50"`
	StartTime   string  `json:"start_time"   binding:"required"` // HH:mm
	SlotCode    *string `json:"slot_code"    binding:"omitempty,max=10"`  // 仅 theory
	SlotLabel   *string `json:"slot_label"   binding:"omitempty,oneof=Morning Evening"` // 仅 lab
	RoomNumber  *string `json:"room_number"  binding:"omitempty,max=20"`
	Credit      float64 `json:"credit"       binding:"omitempty,gte=0,max=10"`
}

// UpdateTimetableEntryRequest 编辑课程请求。
// 改动 start_time 或 type 时结束时间重新推导。
type UpdateTimetableEntryRequest struct {
	Day         *string  `json:"day"          binding:"omitempty,oneof=Monday Tuesday Wednesday Thursday Friday"`
	Type        *string  `json:"type"         binding:"omitempty,oneof=theory lab"`
	SubjectName *string  `json:"subject_name" binding:"omitempty,min=1,max=200"`
	SubjectCode *string  `json:"subject_code" binding:"omitempty,min=1,max=50"`
	StartTime   *string  `json:"start_time"`
	SlotCode    *string  `json:"slot_code"    binding:"omitempty,max=10"`
	SlotLabel   *string  `json:"slot_label"   binding:"omitempty,oneof=Morning Evening"`
	RoomNumber  *string  `json:"room_number"  binding:"omitempty,max=20"`
	Credit      *float64 `json:"credit"       binding:"omitempty,gte=0,max=10"`
}

// TimetableListRequest 课程列表查询
type TimetableListRequest struct {
	Day string `form:"day" binding:"omitempty,oneof=Monday Tuesday Wednesday Thursday Friday Saturday Sunday"`
}

// TimetableEntryResponse 课程条目响应
type TimetableEntryResponse struct {
	ID          string  `json:"id"`
	Day         string  `json:"day"`
	Type        string  `json:"type"`
	SubjectName string  `json:"subject_name"`
	SubjectCode string  `json:"subject_code"`
	StartTime   string  `json:"start_time"`
	EndTime     string  `json:"end_time"`
	SlotCode    *string `json:"slot_code,omitempty"`
	SlotLabel   *string `json:"slot_label,omitempty"`
	RoomNumber  *string `json:"room_number,omitempty"`
	Credit      float64 `json:"credit"`
}

// TodaySessionResponse 今日课程（附实时标注）
type TodaySessionResponse struct {
	TimetableEntryResponse
	Active bool `json:"active"` // now ∈ [start, end)
}

// TodayScheduleResponse "今日视图"。
// 消费方按 ≤60 秒粒度轮询刷新；服务端按请求时刻计算，无状态。
type TodayScheduleResponse struct {
	Day              string                 `json:"day"`
	Sessions         []TodaySessionResponse `json:"sessions"`
	NextIndex        int                    `json:"next_index"`         // -1 表示没有下一节
	MinutesUntilNext *int                   `json:"minutes_until_next,omitempty"`
}

// TimetableEntryExport 课程条目导入/导出格式
type TimetableEntryExport struct {
	Day         string  `json:"day"`
	Type        string  `json:"type"`
	SubjectName string  `json:"subject_name"`
	SubjectCode string  `json:"subject_code"`
	StartTime   string  `json:"start_time"`
	EndTime     string  `json:"end_time,omitempty"` // 导入时忽略，重新推导
	SlotCode    *string `json:"slot_code,omitempty"`
	SlotLabel   *string `json:"slot_label,omitempty"`
	RoomNumber  *string `json:"room_number,omitempty"`
	Credit      float64 `json:"credit"`
}
