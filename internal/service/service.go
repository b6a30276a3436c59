package service

import (
	"go.uber.org/zap"

	"github.com/incial/incial-workhub-sub000/config"
	"github.com/incial/incial-workhub-sub000/internal/repository"
	"github.com/incial/incial-workhub-sub000/pkg/jwt"
	"github.com/incial/incial-workhub-sub000/pkg/redis"
)

// Service 所有 Service 的聚合入口
type Service struct {
	Auth      AuthService
	User      UserService
	Task      TaskService
	Meeting   MeetingService
	Deal      DealService
	Calendar  CalendarService
	Dashboard DashboardService
	Export    ExportService
}

// NewService 创建 Service 聚合
func NewService(
	cfg *config.Config,
	repo *repository.Repository,
	jwtMgr *jwt.Manager,
	rdb *redis.Client,
	logger *zap.Logger,
) *Service {
	return &Service{
		Auth:      NewAuthService(cfg, repo, jwtMgr, rdb, logger),
		User:      NewUserService(repo, logger),
		Task:      NewTaskService(repo, logger),
		Meeting:   NewMeetingService(cfg, repo, logger),
		Deal:      NewDealService(repo, logger),
		Calendar:  NewCalendarService(repo, logger),
		Dashboard: NewDashboardService(cfg, repo, logger),
		Export:    NewExportService(cfg, repo, logger),
	}
}
