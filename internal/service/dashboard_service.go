package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/incial/incial-workhub-sub000/config"
	"github.com/incial/incial-workhub-sub000/internal/dto"
	"github.com/incial/incial-workhub-sub000/internal/model"
	"github.com/incial/incial-workhub-sub000/internal/repository"
)

// DashboardService 仪表盘模块业务接口
type DashboardService interface {
	GetStats(ctx context.Context) (*dto.DashboardStatsResponse, error)
	GetLeaderboard(ctx context.Context) (*dto.LeaderboardResponse, error)
}

type dashboardService struct {
	cfg    *config.Config
	repo   *repository.Repository
	logger *zap.Logger
}

// NewDashboardService 创建 DashboardService 实例
func NewDashboardService(cfg *config.Config, repo *repository.Repository, logger *zap.Logger) DashboardService {
	return &dashboardService{cfg: cfg, repo: repo, logger: logger}
}

// canonicalAssignees 将任务上的负责人统一为用户表中的当前展示名
// 任务快照里的 AssigneeName 可能滞后于改名；有 AssigneeID 且能查到用户时以用户表为准，
// 保证同一个人不会因历史名字分裂成两个统计桶
func (s *dashboardService) canonicalAssignees(ctx context.Context, tasks []model.Task) []model.Task {
	users, err := s.repo.User.ListAll(ctx)
	if err != nil {
		// 用户表不可用时退化为使用任务快照名，统计仍可出
		s.logger.Warn("查询用户列表失败，负责人统计使用任务快照名", zap.Error(err))
		return tasks
	}
	nameByID := make(map[string]string, len(users))
	for i := range users {
		nameByID[users[i].UserID] = users[i].Name
	}

	result := make([]model.Task, len(tasks))
	copy(result, tasks)
	for i := range result {
		if result[i].AssigneeID == nil {
			continue
		}
		if name, ok := nameByID[*result[i].AssigneeID]; ok && name != "" {
			result[i].AssigneeName = name
		}
	}
	return result
}

func (s *dashboardService) GetStats(ctx context.Context) (*dto.DashboardStatsResponse, error) {
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
	deals, err := s.repo.Deal.ListAll(ctx)
	if err != nil {
		s.logger.Error("查询商机列表失败", zap.Error(err))
		return nil, err
	}

	tasks = s.canonicalAssignees(ctx, tasks)
	stats := ComputeAssigneeStats(tasks)

	return &dto.DashboardStatsResponse{
		AssigneeStats:   stats,
		Leaderboard:     RankLeaderboard(stats),
		RevenueBySource: ComputeRevenueBySource(deals, s.cfg.Export.RevenueTopN),
		ConversionRate:  ComputeConversionRate(deals),
		WorkTypeCounts:  ComputeWorkTypeCounts(deals),
		TotalTasks:      len(tasks),
		TotalMeetings:   len(meetings),
		TotalDeals:      len(deals),
		GeneratedAt:     time.Now(),
	}, nil
}

func (s *dashboardService) GetLeaderboard(ctx context.Context) (*dto.LeaderboardResponse, error) {
	tasks, err := s.repo.Task.ListAll(ctx)
	if err != nil {
		s.logger.Error("查询任务列表失败", zap.Error(err))
		return nil, err
	}
	tasks = s.canonicalAssignees(ctx, tasks)

	return &dto.LeaderboardResponse{
		Entries:     RankLeaderboard(ComputeAssigneeStats(tasks)),
		GeneratedAt: time.Now(),
	}, nil
}
