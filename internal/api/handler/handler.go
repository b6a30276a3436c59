package handler

import "github.com/incial/incial-workhub-sub000/internal/service"

// Handler 所有 Handler 的聚合入口
type Handler struct {
	Auth      *AuthHandler
	User      *UserHandler
	Task      *TaskHandler
	Meeting   *MeetingHandler
	Deal      *DealHandler
	Calendar  *CalendarHandler
	Dashboard *DashboardHandler
	Export    *ExportHandler
}

// NewHandler 创建 Handler 聚合
func NewHandler(svc *service.Service) *Handler {
	return &Handler{
		Auth:      NewAuthHandler(svc.Auth),
		User:      NewUserHandler(svc.User),
		Task:      NewTaskHandler(svc.Task),
		Meeting:   NewMeetingHandler(svc.Meeting),
		Deal:      NewDealHandler(svc.Deal),
		Calendar:  NewCalendarHandler(svc.Calendar),
		Dashboard: NewDashboardHandler(svc.Dashboard),
		Export:    NewExportHandler(svc.Export),
	}
}
