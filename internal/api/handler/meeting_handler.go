package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/incial/incial-workhub-sub000/internal/dto"
	"github.com/incial/incial-workhub-sub000/internal/service"
	apperrors "github.com/incial/incial-workhub-sub000/pkg/errors"
	"github.com/incial/incial-workhub-sub000/pkg/response"
)

// MeetingHandler 会议模块 HTTP 处理器
type MeetingHandler struct {
	meetingSvc service.MeetingService
}

// NewMeetingHandler 创建 MeetingHandler
func NewMeetingHandler(meetingSvc service.MeetingService) *MeetingHandler {
	return &MeetingHandler{meetingSvc: meetingSvc}
}

// ListMeetings 会议列表
// GET /api/v1/meetings?search=&status=&from=
func (h *MeetingHandler) ListMeetings(c *gin.Context) {
	var req dto.MeetingListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	list, err := h.meetingSvc.List(c.Request.Context(), &req)
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, list)
}

// GetMeeting 按 ID 查询会议
// GET /api/v1/meetings/:id
func (h *MeetingHandler) GetMeeting(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	result, err := h.meetingSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleMeetingError(c, err)
		return
	}
	response.OK(c, result)
}

// CreateMeeting 创建会议
// POST /api/v1/meetings
func (h *MeetingHandler) CreateMeeting(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.CreateMeetingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.meetingSvc.Create(c.Request.Context(), &req, userID)
	if err != nil {
		h.handleMeetingError(c, err)
		return
	}
	response.Created(c, result)
}

// UpdateMeeting 更新会议
// PUT /api/v1/meetings/:id
func (h *MeetingHandler) UpdateMeeting(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req dto.UpdateMeetingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.meetingSvc.Update(c.Request.Context(), id, &req, userID)
	if err != nil {
		h.handleMeetingError(c, err)
		return
	}
	response.OK(c, result)
}

// DeleteMeeting 删除会议（软删除）
// DELETE /api/v1/meetings/:id
func (h *MeetingHandler) DeleteMeeting(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.meetingSvc.Delete(c.Request.Context(), id, userID); err != nil {
		h.handleMeetingError(c, err)
		return
	}
	response.OK(c, nil)
}

// GetICSFeed 导出会议 iCalendar 订阅源
// GET /api/v1/meetings/feed.ics
func (h *MeetingHandler) GetICSFeed(c *gin.Context) {
	feed, err := h.meetingSvc.ICSFeed(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="meetings.ics"`)
	c.Data(http.StatusOK, "text/calendar; charset=utf-8", []byte(feed))
}

func (h *MeetingHandler) handleMeetingError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrMeetingNotFound):
		response.NotFound(c, 14001, "会议不存在")
	case errors.Is(err, service.ErrMeetingInvalidStatus):
		response.BadRequest(c, 14002, "会议状态无效")
	case errors.Is(err, service.ErrMeetingMissingTime):
		response.BadRequest(c, 14003, "会议时间不能为空")
	case errors.Is(err, apperrors.ErrOptimisticLock):
		response.Conflict(c, 14004, "会议已被其他操作修改，请刷新后重试")
	default:
		response.InternalError(c)
	}
}
