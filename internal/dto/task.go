package dto

import "time"

// CreateTaskRequest 创建任务请求
type CreateTaskRequest struct {
	Title                string  `json:"title" binding:"required"`
	Description          string  `json:"description"`
	Status               string  `json:"status"`
	Priority             string  `json:"priority"`
	TaskType             string  `json:"task_type"`
	AssigneeID           *string `json:"assignee_id"`
	AssigneeName         string  `json:"assignee_name"`
	DueDate              string  `json:"due_date" binding:"required"` // YYYY-MM-DD
	CompanyID            *int64  `json:"company_id"`
	IsVisibleOnMainBoard *bool   `json:"is_visible_on_main_board"`
	Link                 string  `json:"link"`
}

// UpdateTaskRequest 更新任务请求（所有字段可选）
type UpdateTaskRequest struct {
	Title                *string `json:"title"`
	Description          *string `json:"description"`
	Status               *string `json:"status"`
	Priority             *string `json:"priority"`
	TaskType             *string `json:"task_type"`
	AssigneeID           *string `json:"assignee_id"`
	AssigneeName         *string `json:"assignee_name"`
	DueDate              *string `json:"due_date"`
	CompanyID            *int64  `json:"company_id"`
	IsVisibleOnMainBoard *bool   `json:"is_visible_on_main_board"`
	Link                 *string `json:"link"`
}

// TaskListRequest 任务列表查询参数（筛选 + 排序）
type TaskListRequest struct {
	Search   string `form:"search"`
	Status   string `form:"status"`
	Priority string `form:"priority"`
	Assignee string `form:"assignee"`
	DueFrom  string `form:"due_from"`
	SortBy   string `form:"sort_by"`
	Order    string `form:"order"` // asc | desc
}

// TaskResponse 任务响应
type TaskResponse struct {
	ID                   int64     `json:"id"`
	Title                string    `json:"title"`
	Description          string    `json:"description,omitempty"`
	Status               string    `json:"status"`
	Priority             string    `json:"priority,omitempty"`
	TaskType             string    `json:"task_type,omitempty"`
	AssigneeID           *string   `json:"assignee_id,omitempty"`
	AssigneeName         string    `json:"assignee_name,omitempty"`
	DueDate              string    `json:"due_date,omitempty"`
	CompanyID            *int64    `json:"company_id,omitempty"`
	IsVisibleOnMainBoard bool      `json:"is_visible_on_main_board"`
	Link                 string    `json:"link,omitempty"`
	UpdatedAt            time.Time `json:"updated_at"`
	UpdatedBy            *string   `json:"updated_by,omitempty"`
}
