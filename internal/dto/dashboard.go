package dto

// DashboardResponse 仪表盘聚合响应
type DashboardResponse struct {
	CGPA          float64               `json:"cgpa"`
	TotalCredits  float64               `json:"total_credits"`
	TasksDue      []TaskResponse        `json:"tasks_due"`      // todo 状态，按截止日期升序，至多 5 条
	TodaySchedule TodayScheduleResponse `json:"today_schedule"`
	Series        []GPASeriesPoint      `json:"series"`
}
