package dto

// ── 提醒模块 DTO ──

// ReminderStatusResponse 当前提醒状态响应
// 供前端每分钟轮询一次；未加载到用药计划时 active/next 均为 null
type ReminderStatusResponse struct {
	Date               string           `json:"date"`                  // YYYY-MM-DD
	ActiveCompartment  *string          `json:"active_compartment"`    // 当前应服药的药仓，无则 null
	NextMedicationTime *string          `json:"next_medication_time"`  // "Morning at 8:00 AM" 或完成提示
	Progress           ProgressResponse `json:"progress"`
}

// ProgressResponse 每日服药进度
type ProgressResponse struct {
	Completed    int `json:"completed"`     // 今日已记录的服药次数
	EnabledTotal int `json:"enabled_total"` // 启用的药仓数量
}
