package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/incial/incial-workhub-sub000/internal/dto"
	"github.com/incial/incial-workhub-sub000/internal/model"
	"github.com/incial/incial-workhub-sub000/internal/repository"
)

// ── 任务模块业务错误 ──

var (
	ErrTaskNotFound       = errors.New("任务不存在")
	ErrTaskInvalidDueDate = errors.New("截止日期格式无效，应为 YYYY-MM-DD")
	ErrTaskInvalidStatus  = errors.New("任务状态无效")
)

// validTaskStatuses 合法任务状态集合
// 状态流转的合法性不在此校验（由前端流程约束），这里只拒绝未知状态值
var validTaskStatuses = map[string]bool{
	model.TaskStatusNotStarted: true,
	model.TaskStatusInProgress: true,
	model.TaskStatusInReview:   true,
	model.TaskStatusPosted:     true,
	model.TaskStatusCompleted:  true,
	model.TaskStatusDone:       true,
	model.TaskStatusDropped:    true,
}

// TaskService 任务模块业务接口
type TaskService interface {
	Create(ctx context.Context, req *dto.CreateTaskRequest, operator string) (*dto.TaskResponse, error)
	GetByID(ctx context.Context, id int64) (*dto.TaskResponse, error)
	Update(ctx context.Context, id int64, req *dto.UpdateTaskRequest, operator string) (*dto.TaskResponse, error)
	Delete(ctx context.Context, id int64, operator string) error
	// List 应用筛选与稳定排序后返回任务列表
	List(ctx context.Context, req *dto.TaskListRequest) ([]dto.TaskResponse, error)
	// Queue 优先队列视图：今天到期 > 优先级权重降序 > 截止日升序
	Queue(ctx context.Context) ([]dto.TaskResponse, error)
}

type taskService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewTaskService 创建 TaskService 实例
func NewTaskService(repo *repository.Repository, logger *zap.Logger) TaskService {
	return &taskService{repo: repo, logger: logger}
}

func (s *taskService) Create(ctx context.Context, req *dto.CreateTaskRequest, operator string) (*dto.TaskResponse, error) {
	if _, err := model.DateOnly(req.DueDate).Parse(); err != nil {
		return nil, ErrTaskInvalidDueDate
	}
	status := req.Status
	if status == "" {
		status = model.TaskStatusNotStarted
	}
	if !validTaskStatuses[status] {
		return nil, ErrTaskInvalidStatus
	}

	task := model.Task{
		Title:        req.Title,
		Description:  req.Description,
		Status:       status,
		Priority:     req.Priority,
		TaskType:     req.TaskType,
		AssigneeID:   req.AssigneeID,
		AssigneeName: req.AssigneeName,
		DueDate:      model.DateOnly(req.DueDate),
		CompanyID:    req.CompanyID,
		Link:         req.Link,
	}
	task.IsVisibleOnMainBoard = true
	if req.IsVisibleOnMainBoard != nil {
		task.IsVisibleOnMainBoard = *req.IsVisibleOnMainBoard
	}
	task.CreatedBy = &operator

	if err := s.repo.Task.Create(ctx, &task); err != nil {
		s.logger.Error("创建任务失败", zap.Error(err))
		return nil, err
	}

	resp := toTaskResponse(task)
	return &resp, nil
}

func (s *taskService) GetByID(ctx context.Context, id int64) (*dto.TaskResponse, error) {
	task, err := s.repo.Task.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		s.logger.Error("查询任务失败", zap.Error(err))
		return nil, err
	}
	resp := toTaskResponse(*task)
	return &resp, nil
}

func (s *taskService) Update(ctx context.Context, id int64, req *dto.UpdateTaskRequest, operator string) (*dto.TaskResponse, error) {
	task, err := s.repo.Task.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, err
	}

	// 应用更新
	if req.Title != nil {
		task.Title = *req.Title
	}
	if req.Description != nil {
		task.Description = *req.Description
	}
	if req.Status != nil {
		if !validTaskStatuses[*req.Status] {
			return nil, ErrTaskInvalidStatus
		}
		task.Status = *req.Status
	}
	if req.Priority != nil {
		task.Priority = *req.Priority
	}
	if req.TaskType != nil {
		task.TaskType = *req.TaskType
	}
	if req.AssigneeID != nil {
		task.AssigneeID = req.AssigneeID
	}
	if req.AssigneeName != nil {
		task.AssigneeName = *req.AssigneeName
	}
	if req.DueDate != nil {
		if _, err := model.DateOnly(*req.DueDate).Parse(); err != nil {
			return nil, ErrTaskInvalidDueDate
		}
		task.DueDate = model.DateOnly(*req.DueDate)
	}
	if req.CompanyID != nil {
		task.CompanyID = req.CompanyID
	}
	if req.IsVisibleOnMainBoard != nil {
		task.IsVisibleOnMainBoard = *req.IsVisibleOnMainBoard
	}
	if req.Link != nil {
		task.Link = *req.Link
	}
	task.UpdatedBy = &operator

	if err := s.repo.Task.Update(ctx, task); err != nil {
		s.logger.Error("更新任务失败", zap.Error(err))
		return nil, err
	}

	resp := toTaskResponse(*task)
	return &resp, nil
}

func (s *taskService) Delete(ctx context.Context, id int64, operator string) error {
	if _, err := s.repo.Task.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTaskNotFound
		}
		return err
	}
	if err := s.repo.Task.Delete(ctx, id, operator); err != nil {
		s.logger.Error("删除任务失败", zap.Error(err))
		return err
	}
	return nil
}

func (s *taskService) List(ctx context.Context, req *dto.TaskListRequest) ([]dto.TaskResponse, error) {
	tasks, err := s.repo.Task.ListAll(ctx)
	if err != nil {
		s.logger.Error("查询任务列表失败", zap.Error(err))
		return nil, err
	}

	filtered := ApplyFilters(tasks, TaskPredicates(TaskFilter{
		Search:   req.Search,
		Status:   req.Status,
		Priority: req.Priority,
		Assignee: req.Assignee,
		DueFrom:  req.DueFrom,
	})...)

	if req.SortBy != "" {
		less := TaskLess(req.SortBy)
		if req.Order == SortDesc {
			less = Descending(less)
		}
		filtered = ApplySort(filtered, less)
	}

	return toTaskResponses(filtered), nil
}

func (s *taskService) Queue(ctx context.Context) ([]dto.TaskResponse, error) {
	tasks, err := s.repo.Task.ListAll(ctx)
	if err != nil {
		s.logger.Error("查询任务列表失败", zap.Error(err))
		return nil, err
	}

	// 队列只展示待办工作：收尾与已放弃的任务不进入队列
	open := ApplyFilters(tasks, func(t model.Task) bool {
		return !model.IsClosedStatus(t.Status) && t.Status != model.TaskStatusDropped
	})

	today := DateKeyOf(time.Now())
	ordered := ApplySort(open, PinTodayLess(today))

	return toTaskResponses(ordered), nil
}

// ── 响应转换器 ──

func toTaskResponses(tasks []model.Task) []dto.TaskResponse {
	result := make([]dto.TaskResponse, 0, len(tasks))
	for _, t := range tasks {
		result = append(result, toTaskResponse(t))
	}
	return result
}

func toTaskResponse(t model.Task) dto.TaskResponse {
	return dto.TaskResponse{
		ID:                   t.ID,
		Title:                t.Title,
		Description:          t.Description,
		Status:               t.Status,
		Priority:             t.Priority,
		TaskType:             t.TaskType,
		AssigneeID:           t.AssigneeID,
		AssigneeName:         t.AssigneeName,
		DueDate:              string(t.DueDate),
		CompanyID:            t.CompanyID,
		IsVisibleOnMainBoard: t.IsVisibleOnMainBoard,
		Link:                 t.Link,
		UpdatedAt:            t.UpdatedAt,
		UpdatedBy:            t.UpdatedBy,
	}
}
