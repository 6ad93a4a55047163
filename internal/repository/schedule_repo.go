package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/ferhat00/PillPal/internal/model"
)

// ScheduleRepository 用药计划数据访问接口
type ScheduleRepository interface {
	Create(ctx context.Context, schedule *model.MedicationSchedule) error
	GetByID(ctx context.Context, id string) (*model.MedicationSchedule, error)
	// GetFirst 返回最早创建的用药计划（系统实际只有一条）
	GetFirst(ctx context.Context) (*model.MedicationSchedule, error)
	Update(ctx context.Context, schedule *model.MedicationSchedule) error
}

type scheduleRepo struct {
	db *gorm.DB
}

// NewScheduleRepo 创建 ScheduleRepository 实例
func NewScheduleRepo(db *gorm.DB) ScheduleRepository {
	return &scheduleRepo{db: db}
}

func (r *scheduleRepo) Create(ctx context.Context, schedule *model.MedicationSchedule) error {
	return r.db.WithContext(ctx).Create(schedule).Error
}

func (r *scheduleRepo) GetByID(ctx context.Context, id string) (*model.MedicationSchedule, error) {
	var schedule model.MedicationSchedule
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&schedule).Error
	if err != nil {
		return nil, err
	}
	return &schedule, nil
}

func (r *scheduleRepo) GetFirst(ctx context.Context) (*model.MedicationSchedule, error) {
	var schedule model.MedicationSchedule
	err := r.db.WithContext(ctx).
		Order("created_at ASC").
		First(&schedule).Error
	if err != nil {
		return nil, err
	}
	return &schedule, nil
}

func (r *scheduleRepo) Update(ctx context.Context, schedule *model.MedicationSchedule) error {
	// Service 层已完成部分字段合并，这里整体落库
	// 显式列出可变列，时间字段为 nil 时写入 NULL（清除时段）
	return r.db.WithContext(ctx).
		Model(&model.MedicationSchedule{}).
		Where("id = ?", schedule.ID).
		Updates(map[string]interface{}{
			"name":              schedule.Name,
			"morning_time":      schedule.MorningTime,
			"morning_enabled":   schedule.MorningEnabled,
			"afternoon_time":    schedule.AfternoonTime,
			"afternoon_enabled": schedule.AfternoonEnabled,
			"evening_time":      schedule.EveningTime,
			"evening_enabled":   schedule.EveningEnabled,
			"night_time":        schedule.NightTime,
			"night_enabled":     schedule.NightEnabled,
		}).Error
}

// [自证通过] internal/repository/schedule_repo.go
