package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

// ── 商机状态 ──

const (
	DealStatusLead       = "lead"
	DealStatusOnProgress = "on-progress"
	DealStatusQuoteSent  = "quote-sent"
	DealStatusOnboarded  = "onboarded"
	DealStatusCompleted  = "completed"
	DealStatusDrop       = "drop"
)

// IsWonStatus 商机是否已成交（onboarded/completed），用于转化率统计
func IsWonStatus(status string) bool {
	return status == DealStatusOnboarded || status == DealStatusCompleted
}

// ── 工种标签 ──
//
// 历史数据中工种字段存在两种形态："设计" 或 {"name": "设计"}。
// WorkTag 在反序列化时统一归一为字符串，序列化时只输出字符串形态。
// 所有读取方（筛选、排序、展示、导出）统一经过 Label 取值，不得各自判型。

// WorkTag 工种标签，兼容字符串与对象两种存储形态
type WorkTag struct {
	Name string
}

// UnmarshalJSON 兼容 "设计" 与 {"name":"设计"} 两种形态
func (t *WorkTag) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		t.Name = s
		return nil
	}
	var obj struct {
		Name string `json:"name"`
	}
	if err := json.Unmarshal(b, &obj); err != nil {
		return fmt.Errorf("WorkTag: 无法识别的工种格式: %s", string(b))
	}
	t.Name = obj.Name
	return nil
}

// MarshalJSON 统一输出字符串形态
func (t WorkTag) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.Name)
}

// Label 工种标签的唯一取值入口
// 入参兼容 WorkTag / string / {"name": ...} map；其他类型返回空串
func Label(v interface{}) string {
	switch w := v.(type) {
	case WorkTag:
		return w.Name
	case *WorkTag:
		if w == nil {
			return ""
		}
		return w.Name
	case string:
		return w
	case map[string]interface{}:
		if name, ok := w["name"].(string); ok {
			return name
		}
	}
	return ""
}

// WorkTypeList 对应 JSONB 工种数组，实现 GORM Scanner/Valuer 接口
type WorkTypeList []WorkTag

// Scan 解析 JSONB 数组，元素可为字符串或 {name} 对象
func (l *WorkTypeList) Scan(src interface{}) error {
	if src == nil {
		*l = nil
		return nil
	}
	var b []byte
	switch v := src.(type) {
	case []byte:
		b = v
	case string:
		b = []byte(v)
	default:
		return fmt.Errorf("WorkTypeList.Scan: unsupported type %T", src)
	}
	if len(b) == 0 {
		*l = WorkTypeList{}
		return nil
	}
	return json.Unmarshal(b, l)
}

// Value 序列化为 JSONB 数组（统一字符串形态）
func (l WorkTypeList) Value() (driver.Value, error) {
	if l == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(l)
}

// Labels 返回非空标签列表（已通过 Label 归一，空标签跳过）
func (l WorkTypeList) Labels() []string {
	result := make([]string, 0, len(l))
	for _, t := range l {
		if label := Label(t); label != "" {
			result = append(result, label)
		}
	}
	return result
}

// Deal 商机/客户表 — 对应 deals
type Deal struct {
	ID           int64           `gorm:"primaryKey;autoIncrement"   json:"id"`
	CompanyName  string          `gorm:"type:varchar(200);not null" json:"company_name"`
	Contact      string          `gorm:"type:varchar(200)"          json:"contact,omitempty"`
	Status       string          `gorm:"type:varchar(20);not null;default:'lead'" json:"status"`
	DealValue    decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"deal_value"`
	AssigneeID   *string         `gorm:"type:uuid"                  json:"assignee_id,omitempty"`
	AssigneeName string          `gorm:"type:varchar(100)"          json:"assignee_name,omitempty"`
	LeadSources  StringArray     `gorm:"type:text[]"                json:"lead_sources,omitempty"` // 首元素为主要来源
	WorkTypes    WorkTypeList    `gorm:"type:jsonb"                 json:"work_types"`
	Tags         StringArray     `gorm:"type:text[]"                json:"tags,omitempty"`
	LastContact  DateOnly        `gorm:"type:date"                  json:"last_contact,omitempty"`
	NextFollowUp DateOnly        `gorm:"type:date"                  json:"next_follow_up,omitempty"`
	VersionedModel

	// 关联
	Assignee *User `gorm:"foreignKey:AssigneeID;references:UserID" json:"assignee,omitempty"`
}

// TableName 指定表名
func (Deal) TableName() string { return "deals" }

// PrimaryLeadSource 主要线索来源（首元素），缺失时返回 "Unknown" 哨兵值
func (d *Deal) PrimaryLeadSource() string {
	if len(d.LeadSources) == 0 || d.LeadSources[0] == "" {
		return "Unknown"
	}
	return d.LeadSources[0]
}
