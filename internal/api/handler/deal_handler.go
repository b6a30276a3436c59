package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/incial/incial-workhub-sub000/internal/dto"
	"github.com/incial/incial-workhub-sub000/internal/service"
	apperrors "github.com/incial/incial-workhub-sub000/pkg/errors"
	"github.com/incial/incial-workhub-sub000/pkg/response"
)

// DealHandler 商机模块 HTTP 处理器
type DealHandler struct {
	dealSvc service.DealService
}

// NewDealHandler 创建 DealHandler
func NewDealHandler(dealSvc service.DealService) *DealHandler {
	return &DealHandler{dealSvc: dealSvc}
}

// ListDeals 商机列表（支持筛选与排序）
// GET /api/v1/deals?search=&status=&assignee=&source=&work_type=&sort_by=&order=
func (h *DealHandler) ListDeals(c *gin.Context) {
	var req dto.DealListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	list, err := h.dealSvc.List(c.Request.Context(), &req)
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, list)
}

// GetDeal 按 ID 查询商机
// GET /api/v1/deals/:id
func (h *DealHandler) GetDeal(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	result, err := h.dealSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleDealError(c, err)
		return
	}
	response.OK(c, result)
}

// CreateDeal 创建商机
// POST /api/v1/deals
func (h *DealHandler) CreateDeal(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.CreateDealRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.dealSvc.Create(c.Request.Context(), &req, userID)
	if err != nil {
		h.handleDealError(c, err)
		return
	}
	response.Created(c, result)
}

// UpdateDeal 更新商机
// PUT /api/v1/deals/:id
func (h *DealHandler) UpdateDeal(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req dto.UpdateDealRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.dealSvc.Update(c.Request.Context(), id, &req, userID)
	if err != nil {
		h.handleDealError(c, err)
		return
	}
	response.OK(c, result)
}

// DeleteDeal 删除商机（软删除）
// DELETE /api/v1/deals/:id
func (h *DealHandler) DeleteDeal(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.dealSvc.Delete(c.Request.Context(), id, userID); err != nil {
		h.handleDealError(c, err)
		return
	}
	response.OK(c, nil)
}

func (h *DealHandler) handleDealError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrDealNotFound):
		response.NotFound(c, 15001, "商机不存在")
	case errors.Is(err, service.ErrDealInvalidStatus):
		response.BadRequest(c, 15002, "商机状态无效")
	case errors.Is(err, service.ErrDealInvalidDate):
		response.BadRequest(c, 15003, "日期格式无效，应为 YYYY-MM-DD")
	case errors.Is(err, apperrors.ErrOptimisticLock):
		response.Conflict(c, 15004, "商机已被其他操作修改，请刷新后重试")
	default:
		response.InternalError(c)
	}
}
