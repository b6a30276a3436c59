package service

import (
	"sort"
	"strings"

	"github.com/incial/incial-workhub-sub000/internal/model"
)

// ── 筛选/排序管线 ─────────────────────────────────────────────
//
// 职责：对任意记录集合应用谓词链（逻辑与）与稳定排序，
// 供表格、看板、仪表盘共用，替代各页面内散落的内联筛选逻辑。
//
// 约定：
//   - 未设置的谓词恒为真——不选任何筛选条件时原样返回输入（含顺序）
//   - 排序稳定：键相等的记录保持输入相对顺序
//   - 优先级按业务序权重比较（High=3 > Medium=2 > Low=1，未知=0），
//     不按字母序
// ─────────────────────────────────────────────────────────────

// Predicate 记录谓词
type Predicate[T any] func(T) bool

// ApplyFilters 按谓词链（逻辑与）过滤记录
// nil 谓词视为恒真；全部谓词为空时返回与输入相同的新切片
func ApplyFilters[T any](records []T, preds ...Predicate[T]) []T {
	result := make([]T, 0, len(records))
outer:
	for _, r := range records {
		for _, p := range preds {
			if p != nil && !p(r) {
				continue outer
			}
		}
		result = append(result, r)
	}
	return result
}

// ApplySort 稳定排序，返回新切片，不修改输入
func ApplySort[T any](records []T, less func(a, b T) bool) []T {
	result := make([]T, len(records))
	copy(result, records)
	sort.SliceStable(result, func(i, j int) bool {
		return less(result[i], result[j])
	})
	return result
}

// Descending 反转比较器方向
func Descending[T any](less func(a, b T) bool) func(a, b T) bool {
	return func(a, b T) bool { return less(b, a) }
}

// MatchesSearch 大小写不敏感的子串匹配
// 任一字段命中即为真；空查询恒为真；缺失字段按空串参与匹配，不报错
func MatchesSearch(query string, fields ...string) bool {
	if query == "" {
		return true
	}
	q := strings.ToLower(query)
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), q) {
			return true
		}
	}
	return false
}

// ── 排序状态切换 ──

// 排序方向
const (
	SortAsc  = "asc"
	SortDesc = "desc"
)

// SortState 表头交互的排序状态（由调用方持有，核心不保存状态）
type SortState struct {
	Key       string `json:"key"`
	Direction string `json:"direction"`
}

// NextSort 计算点击表头后的下一个排序状态
// 再次点击同一键时在 asc/desc 间切换；点击新键时重置为 asc
func NextSort(cur SortState, key string) SortState {
	if cur.Key == key {
		dir := SortAsc
		if cur.Direction == SortAsc {
			dir = SortDesc
		}
		return SortState{Key: key, Direction: dir}
	}
	return SortState{Key: key, Direction: SortAsc}
}

// ── 任务筛选 ──

// TaskFilter 任务列表筛选条件（各字段独立可选，逻辑与）
type TaskFilter struct {
	Search   string `form:"search"`
	Status   string `form:"status"`
	Priority string `form:"priority"`
	Assignee string `form:"assignee"`
	DueFrom  string `form:"due_from"` // 含边界：due_date >= due_from
}

// TaskPredicates 将筛选条件展开为谓词链
func TaskPredicates(f TaskFilter) []Predicate[model.Task] {
	var preds []Predicate[model.Task]
	if f.Search != "" {
		preds = append(preds, func(t model.Task) bool {
			return MatchesSearch(f.Search, t.Title, t.Description, t.AssigneeName)
		})
	}
	if f.Status != "" {
		preds = append(preds, func(t model.Task) bool { return t.Status == f.Status })
	}
	if f.Priority != "" {
		preds = append(preds, func(t model.Task) bool { return t.Priority == f.Priority })
	}
	if f.Assignee != "" {
		preds = append(preds, func(t model.Task) bool { return t.AssigneeName == f.Assignee })
	}
	if f.DueFrom != "" {
		preds = append(preds, func(t model.Task) bool {
			return t.DueDate != "" && string(t.DueDate) >= f.DueFrom
		})
	}
	return preds
}

// TaskLess 按键名构造任务比较器（升序）
// 支持 title / status / assignee / due_date / priority；未知键保持原顺序
func TaskLess(key string) func(a, b model.Task) bool {
	switch key {
	case "title":
		return func(a, b model.Task) bool { return a.Title < b.Title }
	case "status":
		return func(a, b model.Task) bool { return a.Status < b.Status }
	case "assignee":
		return func(a, b model.Task) bool { return a.AssigneeName < b.AssigneeName }
	case "due_date":
		return func(a, b model.Task) bool { return dueDateRank(a) < dueDateRank(b) }
	case "priority":
		return func(a, b model.Task) bool {
			return model.PriorityWeight(a.Priority) < model.PriorityWeight(b.Priority)
		}
	}
	return func(a, b model.Task) bool { return false }
}

// PinTodayLess 优先队列视图的复合排序：
// 今天到期的排最前（不论优先级），其次按优先级权重降序，最后按截止日升序。
// 三级比较必须在一个比较器内完成，不能拆成三次独立排序。
func PinTodayLess(today string) func(a, b model.Task) bool {
	return func(a, b model.Task) bool {
		aToday := string(a.DueDate) == today
		bToday := string(b.DueDate) == today
		if aToday != bToday {
			return aToday
		}
		aw, bw := model.PriorityWeight(a.Priority), model.PriorityWeight(b.Priority)
		if aw != bw {
			return aw > bw
		}
		return dueDateRank(a) < dueDateRank(b)
	}
}

// dueDateRank 截止日排序键：缺失的截止日排在所有日期之后
func dueDateRank(t model.Task) string {
	if t.DueDate == "" {
		return "9999-12-31"
	}
	return string(t.DueDate)
}

// ── 商机筛选 ──

// DealFilter 商机列表筛选条件
type DealFilter struct {
	Search   string `form:"search"`
	Status   string `form:"status"`
	Assignee string `form:"assignee"`
	Source   string `form:"source"`    // 主要线索来源
	WorkType string `form:"work_type"` // 工种标签（经 Label 归一后比较）
}

// DealPredicates 将筛选条件展开为谓词链
func DealPredicates(f DealFilter) []Predicate[model.Deal] {
	var preds []Predicate[model.Deal]
	if f.Search != "" {
		preds = append(preds, func(d model.Deal) bool {
			return MatchesSearch(f.Search, d.CompanyName, d.Contact, d.AssigneeName)
		})
	}
	if f.Status != "" {
		preds = append(preds, func(d model.Deal) bool { return d.Status == f.Status })
	}
	if f.Assignee != "" {
		preds = append(preds, func(d model.Deal) bool { return d.AssigneeName == f.Assignee })
	}
	if f.Source != "" {
		preds = append(preds, func(d model.Deal) bool { return d.PrimaryLeadSource() == f.Source })
	}
	if f.WorkType != "" {
		preds = append(preds, func(d model.Deal) bool {
			for _, label := range d.WorkTypes.Labels() {
				if label == f.WorkType {
					return true
				}
			}
			return false
		})
	}
	return preds
}

// DealLess 按键名构造商机比较器（升序）
func DealLess(key string) func(a, b model.Deal) bool {
	switch key {
	case "company_name":
		return func(a, b model.Deal) bool { return a.CompanyName < b.CompanyName }
	case "status":
		return func(a, b model.Deal) bool { return a.Status < b.Status }
	case "deal_value":
		return func(a, b model.Deal) bool { return a.DealValue.LessThan(b.DealValue) }
	case "last_contact":
		return func(a, b model.Deal) bool { return a.LastContact < b.LastContact }
	case "next_follow_up":
		return func(a, b model.Deal) bool { return a.NextFollowUp < b.NextFollowUp }
	}
	return func(a, b model.Deal) bool { return false }
}
