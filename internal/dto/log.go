package dto

import "time"

// ── 服药记录模块 DTO ──

// CreateLogRequest 标记服药请求
type CreateLogRequest struct {
	ScheduleID  string    `json:"schedule_id" binding:"required,uuid"`
	Compartment string    `json:"compartment" binding:"required"` // morning | afternoon | evening | night
	TakenAt     time.Time `json:"taken_at"    binding:"required"` // ISO-8601
	Date        string    `json:"date"        binding:"required"` // YYYY-MM-DD
}

// LogResponse 服药记录响应
type LogResponse struct {
	ID          string `json:"id"`
	ScheduleID  string `json:"schedule_id"`
	Compartment string `json:"compartment"`
	Date        string `json:"date"`
	TakenAt     string `json:"taken_at"` // ISO-8601
}
