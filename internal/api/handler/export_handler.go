package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/incial/incial-workhub-sub000/internal/service"
	"github.com/incial/incial-workhub-sub000/pkg/response"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ExportHandler 导出模块 HTTP 处理器
type ExportHandler struct {
	exportSvc service.ExportService
}

// NewExportHandler 创建 ExportHandler
func NewExportHandler(exportSvc service.ExportService) *ExportHandler {
	return &ExportHandler{exportSvc: exportSvc}
}

// ExportStats 导出仪表盘统计 Excel
// GET /api/v1/export/stats
func (h *ExportHandler) ExportStats(c *gin.Context) {
	buf, err := h.exportSvc.StatsXLSX(c.Request.Context())
	if err != nil {
		h.handleExportError(c, err)
		return
	}

	c.Header("Content-Description", "File Transfer")
	c.Header("Content-Disposition", `attachment; filename="dashboard-stats.xlsx"`)
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}

// ExportTasks 导出任务 CSV
// GET /api/v1/export/tasks
func (h *ExportHandler) ExportTasks(c *gin.Context) {
	buf, err := h.exportSvc.TasksCSV(c.Request.Context())
	if err != nil {
		h.handleExportError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="tasks.csv"`)
	c.Data(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}

// ExportDeals 导出商机 CSV
// GET /api/v1/export/deals
func (h *ExportHandler) ExportDeals(c *gin.Context) {
	buf, err := h.exportSvc.DealsCSV(c.Request.Context())
	if err != nil {
		h.handleExportError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="deals.csv"`)
	c.Data(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}

func (h *ExportHandler) handleExportError(c *gin.Context, err error) {
	if errors.Is(err, service.ErrExportNoData) {
		response.NotFound(c, 17001, "没有可导出的数据")
		return
	}
	response.InternalError(c)
}
