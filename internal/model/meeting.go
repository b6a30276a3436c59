package model

import "time"

// ── 会议状态 ──

const (
	MeetingStatusScheduled = "Scheduled"
	MeetingStatusCompleted = "Completed"
	MeetingStatusCancelled = "Cancelled"
	MeetingStatusPostponed = "Postponed"
)

// Meeting 会议表 — 对应 meetings
// 会议带具体时间点；无论状态如何都保留在日历视图中
type Meeting struct {
	ID        int64     `gorm:"primaryKey;autoIncrement"   json:"id"`
	Title     string    `gorm:"type:varchar(300);not null" json:"title"`
	DateTime  time.Time `gorm:"not null"                   json:"date_time"`
	Status    string    `gorm:"type:varchar(20);not null;default:'Scheduled'" json:"status"`
	Link      string    `gorm:"type:varchar(500)"          json:"link,omitempty"`
	Notes     string    `gorm:"type:text"                  json:"notes,omitempty"`
	CompanyID *int64    `json:"company_id,omitempty"`
	VersionedModel

	// 关联
	Company *Deal `gorm:"foreignKey:CompanyID;references:ID" json:"company,omitempty"`
}

// TableName 指定表名
func (Meeting) TableName() string { return "meetings" }
