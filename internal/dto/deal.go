package dto

import "github.com/shopspring/decimal"

// CreateDealRequest 创建商机请求
// WorkTypes 接收原始 JSON，兼容 "设计" 与 {"name":"设计"} 两种历史形态
type CreateDealRequest struct {
	CompanyName  string          `json:"company_name" binding:"required"`
	Contact      string          `json:"contact"`
	Status       string          `json:"status"`
	DealValue    decimal.Decimal `json:"deal_value"`
	AssigneeID   *string         `json:"assignee_id"`
	AssigneeName string          `json:"assignee_name"`
	LeadSources  []string        `json:"lead_sources"`
	WorkTypes    []interface{}   `json:"work_types"`
	Tags         []string        `json:"tags"`
	LastContact  string          `json:"last_contact"`   // YYYY-MM-DD
	NextFollowUp string          `json:"next_follow_up"` // YYYY-MM-DD
}

// UpdateDealRequest 更新商机请求（所有字段可选）
type UpdateDealRequest struct {
	CompanyName  *string          `json:"company_name"`
	Contact      *string          `json:"contact"`
	Status       *string          `json:"status"`
	DealValue    *decimal.Decimal `json:"deal_value"`
	AssigneeID   *string          `json:"assignee_id"`
	AssigneeName *string          `json:"assignee_name"`
	LeadSources  *[]string        `json:"lead_sources"`
	WorkTypes    *[]interface{}   `json:"work_types"`
	Tags         *[]string        `json:"tags"`
	LastContact  *string          `json:"last_contact"`
	NextFollowUp *string          `json:"next_follow_up"`
}

// DealListRequest 商机列表查询参数
type DealListRequest struct {
	Search   string `form:"search"`
	Status   string `form:"status"`
	Assignee string `form:"assignee"`
	Source   string `form:"source"`
	WorkType string `form:"work_type"`
	SortBy   string `form:"sort_by"`
	Order    string `form:"order"`
}

// DealResponse 商机响应
// WorkTypes 统一输出字符串形态（经 Label 归一，空标签已剔除）
type DealResponse struct {
	ID           int64           `json:"id"`
	CompanyName  string          `json:"company_name"`
	Contact      string          `json:"contact,omitempty"`
	Status       string          `json:"status"`
	DealValue    decimal.Decimal `json:"deal_value"`
	AssigneeID   *string         `json:"assignee_id,omitempty"`
	AssigneeName string          `json:"assignee_name,omitempty"`
	LeadSources  []string        `json:"lead_sources,omitempty"`
	WorkTypes    []string        `json:"work_types"`
	Tags         []string        `json:"tags,omitempty"`
	LastContact  string          `json:"last_contact,omitempty"`
	NextFollowUp string          `json:"next_follow_up,omitempty"`
}
