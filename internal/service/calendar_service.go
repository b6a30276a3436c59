package service

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/incial/incial-workhub-sub000/internal/dto"
	"github.com/incial/incial-workhub-sub000/internal/repository"
)

// ErrCalendarInvalidMonth 月份超出 1-12 范围
var ErrCalendarInvalidMonth = errors.New("月份无效，应在 1-12 之间")

// CalendarService 日历模块业务接口
type CalendarService interface {
	// GetMonth 指定年月的日历视图：按日期键分桶，桶内按 SortTime 升序（任务在前）
	GetMonth(ctx context.Context, year, month int) (*dto.CalendarResponse, error)
	// GetMonthGrid 月历网格：周起始对齐的格子序列，附任务/会议打点标记
	GetMonthGrid(ctx context.Context, year, month int) (*dto.MonthGridResponse, error)
}

type calendarService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewCalendarService 创建 CalendarService 实例
func NewCalendarService(repo *repository.Repository, logger *zap.Logger) CalendarService {
	return &calendarService{repo: repo, logger: logger}
}

// buildIndex 拉取任务与会议并归一化建索引，日历两个视图共用
func (s *calendarService) buildIndex(ctx context.Context) (*CalendarIndex, error) {
	tasks, err := s.repo.Task.ListAll(ctx)
	if err != nil {
		s.logger.Error("查询任务列表失败", zap.Error(err))
		return nil, err
	}
	meetings, err := s.repo.Meeting.ListAll(ctx)
	if err != nil {
		s.logger.Error("查询会议列表失败", zap.Error(err))
		return nil, err
	}
	return IndexByDate(NormalizeCalendar(tasks, meetings)), nil
}

// monthPrefix 日期键的年月前缀，如 "2026-08-"
func monthPrefix(year, month int) string {
	return DateKeyOf(time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.Local))[:8]
}

func (s *calendarService) GetMonth(ctx context.Context, year, month int) (*dto.CalendarResponse, error) {
	if month < 1 || month > 12 {
		return nil, ErrCalendarInvalidMonth
	}
	idx, err := s.buildIndex(ctx)
	if err != nil {
		return nil, err
	}

	prefix := monthPrefix(year, month)
	days := make(map[string][]dto.CalendarItemResponse)
	var counts dto.CalendarCounts

	for _, dateKey := range idx.Dates() {
		if !strings.HasPrefix(dateKey, prefix) {
			continue
		}
		items := idx.Items(dateKey)

		// 同日内任务（SortTime=0）排在会议之前，会议按开始时间升序
		ordered := make([]CalendarItem, len(items))
		copy(ordered, items)
		sort.SliceStable(ordered, func(i, j int) bool {
			return ordered[i].SortTime < ordered[j].SortTime
		})

		bucket := make([]dto.CalendarItemResponse, 0, len(ordered))
		for _, item := range ordered {
			bucket = append(bucket, dto.CalendarItemResponse{
				ID:       item.ID,
				DateKey:  item.DateKey,
				SortTime: item.SortTime,
				Kind:     item.Kind,
				Title:    item.Title,
				Status:   item.Status,
				Priority: item.Priority,
			})
			switch item.Kind {
			case CalendarKindTask:
				counts.Tasks++
			case CalendarKindMeeting:
				counts.Meetings++
			}
		}
		days[dateKey] = bucket
	}

	return &dto.CalendarResponse{
		Year:   year,
		Month:  month,
		Days:   days,
		Counts: counts,
	}, nil
}

func (s *calendarService) GetMonthGrid(ctx context.Context, year, month int) (*dto.MonthGridResponse, error) {
	if month < 1 || month > 12 {
		return nil, ErrCalendarInvalidMonth
	}
	idx, err := s.buildIndex(ctx)
	if err != nil {
		return nil, err
	}

	cells := MonthCells(year, time.Month(month))
	result := make([]dto.MonthCellResponse, 0, len(cells))
	for _, cell := range cells {
		result = append(result, dto.MonthCellResponse{
			Day:        cell.Day,
			DateKey:    cell.DateKey,
			HasTask:    cell.Day != 0 && idx.HasEvent(cell.DateKey, CalendarKindTask),
			HasMeeting: cell.Day != 0 && idx.HasEvent(cell.DateKey, CalendarKindMeeting),
		})
	}

	return &dto.MonthGridResponse{Year: year, Month: month, Cells: result}, nil
}
