package model

import (
	"database/sql/driver"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"
)

// ── PostgreSQL TEXT[] 自定义类型 ──

// StringArray 对应 PostgreSQL TEXT[] 类型，实现 GORM Scanner/Valuer 接口。
// 用于线索来源、标签等有序字符串列表。
type StringArray []string

// Scan 将 PostgreSQL 返回的 {a,b,c} 文本解析为 []string。
// 支持带引号的元素，引号内的 \" 与 \\ 按转义处理，元素可含逗号。
func (a *StringArray) Scan(src interface{}) error {
	if src == nil {
		*a = nil
		return nil
	}
	var s string
	switch v := src.(type) {
	case []byte:
		s = string(v)
	case string:
		s = v
	default:
		return fmt.Errorf("StringArray.Scan: unsupported type %T", src)
	}
	s = strings.TrimSpace(s)
	if len(s) < 2 || s[0] != '{' || s[len(s)-1] != '}' {
		return fmt.Errorf("StringArray.Scan: 非法数组字面量 %q", s)
	}
	inner := s[1 : len(s)-1]
	if inner == "" {
		*a = StringArray{}
		return nil
	}
	arr, err := parseArrayElements(inner)
	if err != nil {
		return fmt.Errorf("StringArray.Scan: %w", err)
	}
	*a = arr
	return nil
}

// parseArrayElements 解析数组字面量的内部文本（不含外层花括号）。
// 逗号分隔元素；双引号内的逗号属于元素本身，反斜杠转义下一个字符。
func parseArrayElements(s string) (StringArray, error) {
	var (
		arr      StringArray
		buf      strings.Builder
		inQuotes bool
	)
	for i := 0; i < len(s); i++ {
		ch := s[i]
		switch {
		case inQuotes:
			switch ch {
			case '\\':
				i++
				if i >= len(s) {
					return nil, fmt.Errorf("转义符后缺少字符: %q", s)
				}
				buf.WriteByte(s[i])
			case '"':
				inQuotes = false
			default:
				buf.WriteByte(ch)
			}
		case ch == '"':
			inQuotes = true
		case ch == ',':
			arr = append(arr, buf.String())
			buf.Reset()
		default:
			buf.WriteByte(ch)
		}
	}
	if inQuotes {
		return nil, fmt.Errorf("引号未闭合: %q", s)
	}
	arr = append(arr, buf.String())
	return arr, nil
}

// Value 将 []string 序列化为 PostgreSQL {a,b,c} 文本。
// 所有元素统一加引号，反斜杠与双引号转义，与 Scan 对偶。
func (a StringArray) Value() (driver.Value, error) {
	if a == nil {
		return nil, nil
	}
	parts := make([]string, len(a))
	for i, s := range a {
		escaped := strings.ReplaceAll(s, `\`, `\\`)
		escaped = strings.ReplaceAll(escaped, `"`, `\"`)
		parts[i] = `"` + escaped + `"`
	}
	return "{" + strings.Join(parts, ",") + "}", nil
}

// ── 日期（无时间部分）自定义类型 ──

// DateOnly 对应 PostgreSQL DATE 类型，内存中以 "2006-01-02" 字符串表示。
// 任务截止日期没有时间部分，按日历日比较，不做时区换算。
type DateOnly string

// Scan 兼容驱动返回的 time.Time / string / []byte。
func (d *DateOnly) Scan(src interface{}) error {
	if src == nil {
		*d = ""
		return nil
	}
	switch v := src.(type) {
	case time.Time:
		*d = DateOnly(v.Format("2006-01-02"))
	case string:
		*d = DateOnly(v)
	case []byte:
		*d = DateOnly(v)
	default:
		return fmt.Errorf("DateOnly.Scan: unsupported type %T", src)
	}
	// 截断可能附带的时间部分
	if len(*d) > 10 {
		*d = (*d)[:10]
	}
	return nil
}

// Value 输出 "2006-01-02" 文本，空值写 NULL。
func (d DateOnly) Value() (driver.Value, error) {
	if d == "" {
		return nil, nil
	}
	return string(d), nil
}

// Parse 解析为 time.Time（本地时区的零点）
func (d DateOnly) Parse() (time.Time, error) {
	return time.ParseInLocation("2006-01-02", string(d), time.Local)
}

// ── 通用审计字段 ──

// BaseModel 通用审计字段（所有业务模型嵌入）
type BaseModel struct {
	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	CreatedBy *string   `gorm:"type:uuid"                          json:"created_by,omitempty"`
	UpdatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
	UpdatedBy *string   `gorm:"type:uuid"                          json:"updated_by,omitempty"`
}

// SoftDeleteModel 支持软删除的审计字段
type SoftDeleteModel struct {
	BaseModel
	DeletedAt gorm.DeletedAt `gorm:"index"    json:"deleted_at,omitempty"`
	DeletedBy *string        `gorm:"type:uuid" json:"deleted_by,omitempty"`
}

// VersionedModel 支持乐观锁的软删除模型
type VersionedModel struct {
	SoftDeleteModel
	Version int `gorm:"not null;default:1" json:"version"`
}
