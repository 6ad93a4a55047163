package dto

// ── 用药计划模块 DTO ──

// UpdateScheduleRequest 部分更新用药计划请求
// 所有字段均可选：缺省字段保持原值；时间字段传 "" 表示清除
type UpdateScheduleRequest struct {
	Name             *string `json:"name"              binding:"omitempty,min=1,max=100"`
	MorningTime      *string `json:"morning_time"`
	MorningEnabled   *bool   `json:"morning_enabled"`
	AfternoonTime    *string `json:"afternoon_time"`
	AfternoonEnabled *bool   `json:"afternoon_enabled"`
	EveningTime      *string `json:"evening_time"`
	EveningEnabled   *bool   `json:"evening_enabled"`
	NightTime        *string `json:"night_time"`
	NightEnabled     *bool   `json:"night_enabled"`
}

// ScheduleResponse 用药计划响应
type ScheduleResponse struct {
	ID               string  `json:"id"`
	Name             string  `json:"name"`
	MorningTime      *string `json:"morning_time"`
	MorningEnabled   bool    `json:"morning_enabled"`
	AfternoonTime    *string `json:"afternoon_time"`
	AfternoonEnabled bool    `json:"afternoon_enabled"`
	EveningTime      *string `json:"evening_time"`
	EveningEnabled   bool    `json:"evening_enabled"`
	NightTime        *string `json:"night_time"`
	NightEnabled     bool    `json:"night_enabled"`
	CreatedAt        string  `json:"created_at"`
	UpdatedAt        string  `json:"updated_at"`
}
