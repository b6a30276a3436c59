package service

import (
	"fmt"
	"time"

	"github.com/incial/incial-workhub-sub000/internal/model"
)

// ── 日历归一化 ────────────────────────────────────────────────
//
// 职责：将任务与会议两类异构记录投影为统一的 CalendarItem 列表，
// 并按日历日建立索引供月视图渲染。
//
// 设计决策：
//   - 已完成任务（Completed/Done）不出现在时间线上；会议不论状态均保留
//   - 日期键一律由本地年月日分量构造，绝不从 ISO 字符串截取，
//     避免 UTC 偏移导致跨日错位
//   - 单条记录日期非法时仅跳过该条，不中断整批归一化
//   - 输出为一次性快照，数据更新后整体重算，不做增量维护
// ─────────────────────────────────────────────────────────────

// 日历条目类型标签
const (
	CalendarKindTask    = "task"
	CalendarKindMeeting = "meeting"
)

// CalendarItem 任务/会议的统一日历投影
// ID 形如 task-12 / meeting-7，保证跨类型全局唯一；
// Task/Meeting 二选一持有原始记录的引用，归一化不复制不修改源数据。
type CalendarItem struct {
	ID       string `json:"id"`
	DateKey  string `json:"date_key"`  // YYYY-MM-DD
	SortTime int64  `json:"sort_time"` // 同日排序用：任务为 0，会议为毫秒时间戳
	Kind     string `json:"kind"`
	Title    string `json:"title"`
	Status   string `json:"status"`
	Priority string `json:"priority,omitempty"` // 仅任务

	Task    *model.Task    `json:"-"`
	Meeting *model.Meeting `json:"-"`
}

// DateKeyOf 由本地日历分量构造日期键
func DateKeyOf(t time.Time) string {
	y, m, d := t.Date()
	return fmt.Sprintf("%04d-%02d-%02d", y, int(m), d)
}

// NormalizeCalendar 将任务与会议投影为 CalendarItem 列表
// 输出顺序为输入顺序的拼接（任务在前，会议在后），同日内的先后由消费方按 SortTime 决定
func NormalizeCalendar(tasks []model.Task, meetings []model.Meeting) []CalendarItem {
	items := make([]CalendarItem, 0, len(tasks)+len(meetings))

	for i := range tasks {
		t := &tasks[i]
		if model.IsCalendarExcluded(t.Status) {
			continue
		}
		due, err := t.DueDate.Parse()
		if err != nil {
			continue // 单条日期非法，跳过不中断
		}
		items = append(items, CalendarItem{
			ID:       fmt.Sprintf("%s-%d", CalendarKindTask, t.ID),
			DateKey:  DateKeyOf(due),
			SortTime: 0,
			Kind:     CalendarKindTask,
			Title:    t.Title,
			Status:   t.Status,
			Priority: t.Priority,
			Task:     t,
		})
	}

	for i := range meetings {
		m := &meetings[i]
		if m.DateTime.IsZero() {
			continue
		}
		items = append(items, CalendarItem{
			ID:       fmt.Sprintf("%s-%d", CalendarKindMeeting, m.ID),
			DateKey:  DateKeyOf(m.DateTime),
			SortTime: m.DateTime.UnixMilli(),
			Kind:     CalendarKindMeeting,
			Title:    m.Title,
			Status:   m.Status,
			Meeting:  m,
		})
	}

	return items
}

// ── 日期分桶索引 ──

// CalendarIndex 按日期键分桶的日历索引
// 额外维护"有任务的日期"与"有会议的日期"两个布尔集合，
// 月历格子打点时 O(1) 查询，无需逐格扫描
type CalendarIndex struct {
	byDate      map[string][]CalendarItem
	taskDays    map[string]bool
	meetingDays map[string]bool
}

// IndexByDate 单次线性遍历构建日历索引
func IndexByDate(items []CalendarItem) *CalendarIndex {
	idx := &CalendarIndex{
		byDate:      make(map[string][]CalendarItem),
		taskDays:    make(map[string]bool),
		meetingDays: make(map[string]bool),
	}
	for _, item := range items {
		idx.byDate[item.DateKey] = append(idx.byDate[item.DateKey], item)
		switch item.Kind {
		case CalendarKindTask:
			idx.taskDays[item.DateKey] = true
		case CalendarKindMeeting:
			idx.meetingDays[item.DateKey] = true
		}
	}
	return idx
}

// Items 返回指定日期的条目（保持归一化输出顺序）
func (idx *CalendarIndex) Items(dateKey string) []CalendarItem {
	return idx.byDate[dateKey]
}

// HasEvent 指定日期是否存在指定类型的条目
func (idx *CalendarIndex) HasEvent(dateKey, kind string) bool {
	switch kind {
	case CalendarKindTask:
		return idx.taskDays[dateKey]
	case CalendarKindMeeting:
		return idx.meetingDays[dateKey]
	}
	return false
}

// Dates 返回所有有条目的日期键（无序）
func (idx *CalendarIndex) Dates() []string {
	keys := make([]string, 0, len(idx.byDate))
	for k := range idx.byDate {
		keys = append(keys, k)
	}
	return keys
}

// ── 月历格子 ──

// MonthCell 月历中的一个格子
// 周起始对齐的前导空白格 Day 为 0、DateKey 为空；月末不补尾部空白
type MonthCell struct {
	Day     int    `json:"day"`
	DateKey string `json:"date_key,omitempty"`
}

// MonthCells 枚举指定年月的月历格子
// 先按当月 1 号的星期生成前导空白格（周日为一周起点），再逐日生成
func MonthCells(year int, month time.Month) []MonthCell {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.Local)
	daysInMonth := time.Date(year, month+1, 0, 0, 0, 0, 0, time.Local).Day()
	offset := int(first.Weekday()) // Sunday=0

	cells := make([]MonthCell, 0, offset+daysInMonth)
	for i := 0; i < offset; i++ {
		cells = append(cells, MonthCell{})
	}
	for day := 1; day <= daysInMonth; day++ {
		cells = append(cells, MonthCell{
			Day:     day,
			DateKey: fmt.Sprintf("%04d-%02d-%02d", year, int(month), day),
		})
	}
	return cells
}
