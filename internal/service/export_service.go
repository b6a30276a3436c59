package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"strconv"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/incial/incial-workhub-sub000/config"
	"github.com/incial/incial-workhub-sub000/internal/repository"
)

// ── 导出模块业务错误 ──

var ErrExportNoData = errors.New("没有可导出的数据")

// ExportService 导出模块业务接口
type ExportService interface {
	// StatsXLSX 导出仪表盘统计为 Excel 工作簿（排行榜 + 收入来源两个工作表）
	StatsXLSX(ctx context.Context) (*bytes.Buffer, error)
	// TasksCSV 导出全部任务为 CSV
	TasksCSV(ctx context.Context) (*bytes.Buffer, error)
	// DealsCSV 导出全部商机为 CSV
	DealsCSV(ctx context.Context) (*bytes.Buffer, error)
}

type exportService struct {
	cfg    *config.Config
	repo   *repository.Repository
	logger *zap.Logger
}

// NewExportService 创建 ExportService 实例
func NewExportService(cfg *config.Config, repo *repository.Repository, logger *zap.Logger) ExportService {
	return &exportService{cfg: cfg, repo: repo, logger: logger}
}

func (s *exportService) StatsXLSX(ctx context.Context) (*bytes.Buffer, error) {
	tasks, err := s.repo.Task.ListAll(ctx)
	if err != nil {
		s.logger.Error("查询任务列表失败", zap.Error(err))
		return nil, err
	}
	deals, err := s.repo.Deal.ListAll(ctx)
	if err != nil {
		s.logger.Error("查询商机列表失败", zap.Error(err))
		return nil, err
	}
	if len(tasks) == 0 && len(deals) == 0 {
		return nil, ErrExportNoData
	}

	leaderboard := RankLeaderboard(ComputeAssigneeStats(tasks))
	revenue := ComputeRevenueBySource(deals, s.cfg.Export.RevenueTopN)

	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			s.logger.Warn("关闭 Excel 文件失败", zap.Error(err))
		}
	}()

	// ── 排行榜工作表 ──
	const sheetLeaderboard = "排行榜"
	if err := f.SetSheetName("Sheet1", sheetLeaderboard); err != nil {
		return nil, err
	}
	headers := []string{"排名", "负责人", "任务总数", "已完成", "进行中", "待开始", "完成率"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheetLeaderboard, cell, h); err != nil {
			return nil, err
		}
	}
	for row, stat := range leaderboard {
		values := []interface{}{
			row + 1,
			stat.Name,
			stat.Total,
			stat.Completed,
			stat.InProgress,
			stat.Pending,
			fmt.Sprintf("%.1f%%", stat.CompletionRate),
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			if err := f.SetCellValue(sheetLeaderboard, cell, v); err != nil {
				return nil, err
			}
		}
	}

	// ── 收入来源工作表 ──
	const sheetRevenue = "收入来源"
	if _, err := f.NewSheet(sheetRevenue); err != nil {
		return nil, err
	}
	if err := f.SetCellValue(sheetRevenue, "A1", "线索来源"); err != nil {
		return nil, err
	}
	if err := f.SetCellValue(sheetRevenue, "B1", "收入合计"); err != nil {
		return nil, err
	}
	for row, src := range revenue {
		if err := f.SetCellValue(sheetRevenue, fmt.Sprintf("A%d", row+2), src.Source); err != nil {
			return nil, err
		}
		if err := f.SetCellValue(sheetRevenue, fmt.Sprintf("B%d", row+2), src.Total.String()); err != nil {
			return nil, err
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		s.logger.Error("生成 Excel 文件失败", zap.Error(err))
		return nil, err
	}
	return buf, nil
}

func (s *exportService) TasksCSV(ctx context.Context) (*bytes.Buffer, error) {
	tasks, err := s.repo.Task.ListAll(ctx)
	if err != nil {
		s.logger.Error("查询任务列表失败", zap.Error(err))
		return nil, err
	}
	if len(tasks) == 0 {
		return nil, ErrExportNoData
	}

	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	if err := w.Write([]string{"ID", "标题", "状态", "优先级", "负责人", "截止日期", "类型"}); err != nil {
		return nil, err
	}
	for i := range tasks {
		t := &tasks[i]
		record := []string{
			strconv.FormatInt(t.ID, 10),
			t.Title,
			t.Status,
			t.Priority,
			t.AssigneeName,
			string(t.DueDate),
			t.TaskType,
		}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		s.logger.Error("生成任务 CSV 失败", zap.Error(err))
		return nil, err
	}
	return buf, nil
}

func (s *exportService) DealsCSV(ctx context.Context) (*bytes.Buffer, error) {
	deals, err := s.repo.Deal.ListAll(ctx)
	if err != nil {
		s.logger.Error("查询商机列表失败", zap.Error(err))
		return nil, err
	}
	if len(deals) == 0 {
		return nil, ErrExportNoData
	}

	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	if err := w.Write([]string{"ID", "公司", "联系人", "状态", "金额", "负责人", "主要来源", "下次跟进"}); err != nil {
		return nil, err
	}
	for i := range deals {
		d := &deals[i]
		record := []string{
			strconv.FormatInt(d.ID, 10),
			d.CompanyName,
			d.Contact,
			d.Status,
			d.DealValue.String(),
			d.AssigneeName,
			d.PrimaryLeadSource(),
			string(d.NextFollowUp),
		}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		s.logger.Error("生成商机 CSV 失败", zap.Error(err))
		return nil, err
	}
	return buf, nil
}
