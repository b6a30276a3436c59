package service

import (
	"testing"
	"time"

	"github.com/incial/incial-workhub-sub000/internal/model"
)

// ── 日期键 ──

func TestDateKeyOf_LocalComponents(t *testing.T) {
	// 本地时区的午夜后半小时：日期键必须落在当天，不能因 UTC 偏移跨日
	early := time.Date(2026, 3, 1, 0, 30, 0, 0, time.Local)
	if got := DateKeyOf(early); got != "2026-03-01" {
		t.Errorf("期望 2026-03-01，实际=%s", got)
	}

	late := time.Date(2025, 12, 31, 23, 0, 0, 0, time.Local)
	if got := DateKeyOf(late); got != "2025-12-31" {
		t.Errorf("期望 2025-12-31，实际=%s", got)
	}
}

// ── 归一化 ──

func TestNormalizeCalendar_TaskProjection(t *testing.T) {
	tasks := []model.Task{
		{ID: 1, Title: "写周报", Status: model.TaskStatusInProgress, Priority: model.TaskPriorityHigh, DueDate: "2026-08-10"},
	}

	items := NormalizeCalendar(tasks, nil)

	if len(items) != 1 {
		t.Fatalf("期望 1 条，实际=%d", len(items))
	}
	item := items[0]
	if item.ID != "task-1" {
		t.Errorf("期望 ID=task-1，实际=%s", item.ID)
	}
	if item.DateKey != "2026-08-10" {
		t.Errorf("期望 DateKey=2026-08-10，实际=%s", item.DateKey)
	}
	if item.SortTime != 0 {
		t.Errorf("任务 SortTime 应为 0，实际=%d", item.SortTime)
	}
	if item.Kind != CalendarKindTask {
		t.Errorf("期望 Kind=task，实际=%s", item.Kind)
	}
	if item.Priority != model.TaskPriorityHigh {
		t.Errorf("期望 Priority=High，实际=%s", item.Priority)
	}
}

func TestNormalizeCalendar_MeetingProjection(t *testing.T) {
	dt := time.Date(2026, 8, 12, 14, 30, 0, 0, time.Local)
	meetings := []model.Meeting{
		{ID: 7, Title: "客户评审", Status: model.MeetingStatusScheduled, DateTime: dt},
	}

	items := NormalizeCalendar(nil, meetings)

	if len(items) != 1 {
		t.Fatalf("期望 1 条，实际=%d", len(items))
	}
	item := items[0]
	if item.ID != "meeting-7" {
		t.Errorf("期望 ID=meeting-7，实际=%s", item.ID)
	}
	if item.SortTime != dt.UnixMilli() {
		t.Errorf("会议 SortTime 应为毫秒时间戳 %d，实际=%d", dt.UnixMilli(), item.SortTime)
	}
	if item.DateKey != "2026-08-12" {
		t.Errorf("期望 DateKey=2026-08-12，实际=%s", item.DateKey)
	}
}

func TestNormalizeCalendar_ExcludesClosedTasks(t *testing.T) {
	tasks := []model.Task{
		{ID: 1, Title: "a", Status: model.TaskStatusCompleted, DueDate: "2026-08-10"},
		{ID: 2, Title: "b", Status: model.TaskStatusDone, DueDate: "2026-08-10"},
		{ID: 3, Title: "c", Status: model.TaskStatusPosted, DueDate: "2026-08-10"},
		{ID: 4, Title: "d", Status: model.TaskStatusInProgress, DueDate: "2026-08-10"},
	}

	items := NormalizeCalendar(tasks, nil)

	// Completed/Done 排除；Posted 在最终确认前仍占据时间线
	if len(items) != 2 {
		t.Fatalf("期望 2 条，实际=%d", len(items))
	}
	if items[0].ID != "task-3" || items[1].ID != "task-4" {
		t.Errorf("期望 task-3/task-4，实际=%s/%s", items[0].ID, items[1].ID)
	}
}

func TestNormalizeCalendar_SkipsBadDates(t *testing.T) {
	tasks := []model.Task{
		{ID: 1, Title: "a", Status: model.TaskStatusNotStarted, DueDate: "2026-08-10"},
		{ID: 2, Title: "b", Status: model.TaskStatusNotStarted, DueDate: "not-a-date"},
		{ID: 3, Title: "c", Status: model.TaskStatusNotStarted, DueDate: "2026-08-11"},
	}
	meetings := []model.Meeting{
		{ID: 1, Title: "m", Status: model.MeetingStatusScheduled}, // 零值时间
	}

	items := NormalizeCalendar(tasks, meetings)

	// 单条日期非法仅跳过该条，其余照常输出
	if len(items) != 2 {
		t.Fatalf("期望 2 条，实际=%d", len(items))
	}
	if items[0].ID != "task-1" || items[1].ID != "task-3" {
		t.Errorf("期望 task-1/task-3，实际=%s/%s", items[0].ID, items[1].ID)
	}
}

// ── 日期分桶索引 ──

func TestIndexByDate(t *testing.T) {
	dt := time.Date(2026, 8, 10, 9, 0, 0, 0, time.Local)
	items := NormalizeCalendar(
		[]model.Task{
			{ID: 1, Title: "a", Status: model.TaskStatusNotStarted, DueDate: "2026-08-10"},
			{ID: 2, Title: "b", Status: model.TaskStatusNotStarted, DueDate: "2026-08-11"},
		},
		[]model.Meeting{
			{ID: 1, Title: "m", Status: model.MeetingStatusScheduled, DateTime: dt},
		},
	)

	idx := IndexByDate(items)

	if got := len(idx.Items("2026-08-10")); got != 2 {
		t.Errorf("2026-08-10 期望 2 条，实际=%d", got)
	}
	if got := len(idx.Items("2026-08-11")); got != 1 {
		t.Errorf("2026-08-11 期望 1 条，实际=%d", got)
	}
	if idx.Items("2026-08-12") != nil {
		t.Error("无条目日期应返回 nil")
	}

	if !idx.HasEvent("2026-08-10", CalendarKindTask) {
		t.Error("2026-08-10 应有任务打点")
	}
	if !idx.HasEvent("2026-08-10", CalendarKindMeeting) {
		t.Error("2026-08-10 应有会议打点")
	}
	if idx.HasEvent("2026-08-11", CalendarKindMeeting) {
		t.Error("2026-08-11 不应有会议打点")
	}
	if got := len(idx.Dates()); got != 2 {
		t.Errorf("期望 2 个日期键，实际=%d", got)
	}
}

// ── 月历格子 ──

func TestMonthCells_LeadingPadding(t *testing.T) {
	// 2026-08-01 是周六：6 个前导空白格 + 31 天
	cells := MonthCells(2026, time.August)

	if len(cells) != 37 {
		t.Fatalf("期望 37 格，实际=%d", len(cells))
	}
	for i := 0; i < 6; i++ {
		if cells[i].Day != 0 || cells[i].DateKey != "" {
			t.Errorf("第 %d 格应为空白格，实际 Day=%d", i, cells[i].Day)
		}
	}
	if cells[6].Day != 1 || cells[6].DateKey != "2026-08-01" {
		t.Errorf("第 7 格应为 8 月 1 日，实际 Day=%d DateKey=%s", cells[6].Day, cells[6].DateKey)
	}
	if cells[36].Day != 31 || cells[36].DateKey != "2026-08-31" {
		t.Errorf("末格应为 8 月 31 日，实际 Day=%d", cells[36].Day)
	}
}

func TestMonthCells_NoPaddingWhenMonthStartsSunday(t *testing.T) {
	// 2026-02-01 是周日：无前导空白格，28 天
	cells := MonthCells(2026, time.February)

	if len(cells) != 28 {
		t.Fatalf("期望 28 格，实际=%d", len(cells))
	}
	if cells[0].Day != 1 || cells[0].DateKey != "2026-02-01" {
		t.Errorf("首格应为 2 月 1 日，实际 Day=%d", cells[0].Day)
	}
}
