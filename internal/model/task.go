package model

// ── 任务状态 ──

const (
	TaskStatusNotStarted = "Not Started"
	TaskStatusInProgress = "In Progress"
	TaskStatusInReview   = "In Review"
	TaskStatusPosted     = "Posted"
	TaskStatusCompleted  = "Completed"
	TaskStatusDone       = "Done"
	TaskStatusDropped    = "Dropped"
)

// IsClosedStatus 任务是否已收尾（Completed/Done/Posted）
// 用于完成数统计；Dropped 属于终止态但不计入收尾。
func IsClosedStatus(status string) bool {
	switch status {
	case TaskStatusCompleted, TaskStatusDone, TaskStatusPosted:
		return true
	}
	return false
}

// IsCalendarExcluded 任务是否从日历视图排除
// 日历只展示待办工作：Completed/Done 不再出现在时间线上，
// Posted 在最终确认前仍占据时间线。
func IsCalendarExcluded(status string) bool {
	return status == TaskStatusCompleted || status == TaskStatusDone
}

// ── 任务优先级 ──

const (
	TaskPriorityLow    = "Low"
	TaskPriorityMedium = "Medium"
	TaskPriorityHigh   = "High"
)

// PriorityWeight 优先级的业务序权重：High=3 > Medium=2 > Low=1
// 未知或缺失的优先级权重为 0，排序时落在最后
func PriorityWeight(priority string) int {
	switch priority {
	case TaskPriorityHigh:
		return 3
	case TaskPriorityMedium:
		return 2
	case TaskPriorityLow:
		return 1
	}
	return 0
}

// Task 任务表 — 对应 tasks
type Task struct {
	ID                   int64    `gorm:"primaryKey;autoIncrement"       json:"id"`
	Title                string   `gorm:"type:varchar(300);not null"     json:"title"`
	Description          string   `gorm:"type:text"                      json:"description,omitempty"`
	Status               string   `gorm:"type:varchar(20);not null;default:'Not Started'" json:"status"`
	Priority             string   `gorm:"type:varchar(10)"               json:"priority,omitempty"`
	TaskType             string   `gorm:"type:varchar(50)"               json:"task_type,omitempty"`
	AssigneeID           *string  `gorm:"type:uuid"                      json:"assignee_id,omitempty"`
	AssigneeName         string   `gorm:"type:varchar(100)"              json:"assignee_name,omitempty"`
	DueDate              DateOnly `gorm:"type:date"                      json:"due_date,omitempty"`
	CompanyID            *int64   `json:"company_id,omitempty"` // 为空表示内部任务
	IsVisibleOnMainBoard bool     `gorm:"not null;default:true"          json:"is_visible_on_main_board"`
	Link                 string   `gorm:"type:varchar(500)"              json:"link,omitempty"`
	VersionedModel

	// 关联
	Assignee *User `gorm:"foreignKey:AssigneeID;references:UserID" json:"assignee,omitempty"`
	Company  *Deal `gorm:"foreignKey:CompanyID;references:ID"      json:"company,omitempty"`
}

// TableName 指定表名
func (Task) TableName() string { return "tasks" }
