package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// AssigneeStat 按负责人聚合的任务统计
// Completed/InProgress/Pending 三个桶不保证覆盖全部状态（如 Dropped 只计入 Total）
type AssigneeStat struct {
	Name           string  `json:"name"`
	Total          int     `json:"total"`
	Completed      int     `json:"completed"`
	InProgress     int     `json:"in_progress"`
	Pending        int     `json:"pending"`
	CompletionRate float64 `json:"completion_rate"` // 百分比；Total 为 0 时为 0
}

// RevenueSource 按主要线索来源聚合的收入
type RevenueSource struct {
	Source string          `json:"source"`
	Total  decimal.Decimal `json:"total"`
}

// WorkTypeCount 按工种标签聚合的商机数
type WorkTypeCount struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

// DashboardStatsResponse 仪表盘聚合响应
type DashboardStatsResponse struct {
	AssigneeStats   []AssigneeStat  `json:"assignee_stats"`
	Leaderboard     []AssigneeStat  `json:"leaderboard"` // 按完成数降序，前三名为领奖台位
	RevenueBySource []RevenueSource `json:"revenue_by_source"`
	ConversionRate  float64         `json:"conversion_rate"` // 百分比
	WorkTypeCounts  []WorkTypeCount `json:"work_type_counts"`
	TotalTasks      int             `json:"total_tasks"`
	TotalMeetings   int             `json:"total_meetings"`
	TotalDeals      int             `json:"total_deals"`
	GeneratedAt     time.Time       `json:"generated_at"`
}

// LeaderboardResponse 排行榜响应
type LeaderboardResponse struct {
	Entries     []AssigneeStat `json:"entries"`
	GeneratedAt time.Time      `json:"generated_at"`
}
