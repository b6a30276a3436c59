package dto

// CalendarQuery 日历查询参数
type CalendarQuery struct {
	Year  int `form:"year" binding:"required"`
	Month int `form:"month" binding:"required,min=1,max=12"`
}

// CalendarItemResponse 统一日历条目响应
type CalendarItemResponse struct {
	ID       string `json:"id"`
	DateKey  string `json:"date_key"`
	SortTime int64  `json:"sort_time"`
	Kind     string `json:"kind"` // task | meeting
	Title    string `json:"title"`
	Status   string `json:"status"`
	Priority string `json:"priority,omitempty"`
}

// CalendarResponse 月度日历响应：按日期键分桶的条目
type CalendarResponse struct {
	Year   int                               `json:"year"`
	Month  int                               `json:"month"`
	Days   map[string][]CalendarItemResponse `json:"days"`
	Counts CalendarCounts                    `json:"counts"`
}

// CalendarCounts 当月条目计数
type CalendarCounts struct {
	Tasks    int `json:"tasks"`
	Meetings int `json:"meetings"`
}

// MonthCellResponse 月历格子响应
// 前导空白格 Day 为 0；HasTask/HasMeeting 用于渲染打点
type MonthCellResponse struct {
	Day        int    `json:"day"`
	DateKey    string `json:"date_key,omitempty"`
	HasTask    bool   `json:"has_task"`
	HasMeeting bool   `json:"has_meeting"`
}

// MonthGridResponse 月历网格响应
type MonthGridResponse struct {
	Year  int                 `json:"year"`
	Month int                 `json:"month"`
	Cells []MonthCellResponse `json:"cells"`
}
