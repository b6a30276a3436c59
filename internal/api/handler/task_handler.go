package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/incial/incial-workhub-sub000/internal/dto"
	"github.com/incial/incial-workhub-sub000/internal/service"
	apperrors "github.com/incial/incial-workhub-sub000/pkg/errors"
	"github.com/incial/incial-workhub-sub000/pkg/response"
)

// TaskHandler 任务模块 HTTP 处理器
type TaskHandler struct {
	taskSvc service.TaskService
}

// NewTaskHandler 创建 TaskHandler
func NewTaskHandler(taskSvc service.TaskService) *TaskHandler {
	return &TaskHandler{taskSvc: taskSvc}
}

// ListTasks 任务列表（支持筛选与排序）
// GET /api/v1/tasks?search=&status=&priority=&assignee=&due_from=&sort_by=&order=
func (h *TaskHandler) ListTasks(c *gin.Context) {
	var req dto.TaskListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	list, err := h.taskSvc.List(c.Request.Context(), &req)
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, list)
}

// GetQueue 优先队列视图
// GET /api/v1/tasks/queue
func (h *TaskHandler) GetQueue(c *gin.Context) {
	list, err := h.taskSvc.Queue(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, list)
}

// GetTask 按 ID 查询任务
// GET /api/v1/tasks/:id
func (h *TaskHandler) GetTask(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	result, err := h.taskSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleTaskError(c, err)
		return
	}
	response.OK(c, result)
}

// CreateTask 创建任务
// POST /api/v1/tasks
func (h *TaskHandler) CreateTask(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.taskSvc.Create(c.Request.Context(), &req, userID)
	if err != nil {
		h.handleTaskError(c, err)
		return
	}
	response.Created(c, result)
}

// UpdateTask 更新任务
// PUT /api/v1/tasks/:id
func (h *TaskHandler) UpdateTask(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req dto.UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.taskSvc.Update(c.Request.Context(), id, &req, userID)
	if err != nil {
		h.handleTaskError(c, err)
		return
	}
	response.OK(c, result)
}

// DeleteTask 删除任务（软删除）
// DELETE /api/v1/tasks/:id
func (h *TaskHandler) DeleteTask(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.taskSvc.Delete(c.Request.Context(), id, userID); err != nil {
		h.handleTaskError(c, err)
		return
	}
	response.OK(c, nil)
}

func (h *TaskHandler) handleTaskError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrTaskNotFound):
		response.NotFound(c, 13001, "任务不存在")
	case errors.Is(err, service.ErrTaskInvalidDueDate):
		response.BadRequest(c, 13002, "截止日期格式无效，应为 YYYY-MM-DD")
	case errors.Is(err, service.ErrTaskInvalidStatus):
		response.BadRequest(c, 13003, "任务状态无效")
	case errors.Is(err, apperrors.ErrOptimisticLock):
		response.Conflict(c, 13004, "任务已被其他操作修改，请刷新后重试")
	default:
		response.InternalError(c)
	}
}
