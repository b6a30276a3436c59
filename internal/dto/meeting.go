package dto

import "time"

// CreateMeetingRequest 创建会议请求
type CreateMeetingRequest struct {
	Title     string    `json:"title" binding:"required"`
	DateTime  time.Time `json:"date_time" binding:"required"`
	Status    string    `json:"status"`
	Link      string    `json:"link"`
	Notes     string    `json:"notes"`
	CompanyID *int64    `json:"company_id"`
}

// UpdateMeetingRequest 更新会议请求（所有字段可选）
type UpdateMeetingRequest struct {
	Title     *string    `json:"title"`
	DateTime  *time.Time `json:"date_time"`
	Status    *string    `json:"status"`
	Link      *string    `json:"link"`
	Notes     *string    `json:"notes"`
	CompanyID *int64     `json:"company_id"`
}

// MeetingListRequest 会议列表查询参数
type MeetingListRequest struct {
	Search string `form:"search"`
	Status string `form:"status"`
	From   string `form:"from"` // 含边界：date_time 所在日历日 >= from
}

// MeetingResponse 会议响应
type MeetingResponse struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	DateTime  time.Time `json:"date_time"`
	Status    string    `json:"status"`
	Link      string    `json:"link,omitempty"`
	Notes     string    `json:"notes,omitempty"`
	CompanyID *int64    `json:"company_id,omitempty"`
	UpdatedAt time.Time `json:"updated_at"`
}
