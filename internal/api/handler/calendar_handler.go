package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/incial/incial-workhub-sub000/internal/dto"
	"github.com/incial/incial-workhub-sub000/internal/service"
	"github.com/incial/incial-workhub-sub000/pkg/response"
)

// CalendarHandler 日历模块 HTTP 处理器
type CalendarHandler struct {
	calendarSvc service.CalendarService
}

// NewCalendarHandler 创建 CalendarHandler
func NewCalendarHandler(calendarSvc service.CalendarService) *CalendarHandler {
	return &CalendarHandler{calendarSvc: calendarSvc}
}

// GetMonth 月度日历视图
// GET /api/v1/calendar?year=2026&month=8
func (h *CalendarHandler) GetMonth(c *gin.Context) {
	var q dto.CalendarQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.calendarSvc.GetMonth(c.Request.Context(), q.Year, q.Month)
	if err != nil {
		h.handleCalendarError(c, err)
		return
	}
	response.OK(c, result)
}

// GetMonthGrid 月历网格（含任务/会议打点）
// GET /api/v1/calendar/grid?year=2026&month=8
func (h *CalendarHandler) GetMonthGrid(c *gin.Context) {
	var q dto.CalendarQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.calendarSvc.GetMonthGrid(c.Request.Context(), q.Year, q.Month)
	if err != nil {
		h.handleCalendarError(c, err)
		return
	}
	response.OK(c, result)
}

func (h *CalendarHandler) handleCalendarError(c *gin.Context, err error) {
	if errors.Is(err, service.ErrCalendarInvalidMonth) {
		response.BadRequest(c, 16001, "月份无效，应在 1-12 之间")
		return
	}
	response.InternalError(c)
}
