package resolve_availability

import (
	"time"

	"github.com/DanieLevy/RamelBarbershop-sub005/internal/domain"
	"github.com/DanieLevy/RamelBarbershop-sub005/internal/schedtime"
	"github.com/DanieLevy/RamelBarbershop-sub005/pkg/types"
)

// generateSlotTimes генерирует упорядоченные моменты начала слотов рабочего
// интервала [open, close) с фиксированным шагом domain.SlotDurationMinutes
//
// Контракт:
// - результат строго возрастает, без дубликатов
// - конец последнего слота (slot + гранулярность) не выходит за close
// - open >= close дает пустой результат, не ошибку (нерабочий день)
// - чистая функция, детерминирована для одинаковых входов
func generateSlotTimes(
	n *schedtime.Normalizer,
	dayStart time.Time,
	open, close types.TimeString,
) ([]time.Time, error) {
	openMinutes, err := open.Minutes()
	if err != nil {
		return nil, err
	}
	closeMinutes, err := close.Minutes()
	if err != nil {
		return nil, err
	}

	slots := make([]time.Time, 0)
	if openMinutes >= closeMinutes {
		return slots, nil
	}

	closeInstant, err := n.At(dayStart, close)
	if err != nil {
		return nil, err
	}

	granularity := time.Duration(domain.SlotDurationMinutes) * time.Minute
	for m := openMinutes; m+domain.SlotDurationMinutes <= closeMinutes; m += domain.SlotDurationMinutes {
		slot := dayStart.Add(time.Duration(m) * time.Minute)
		if slot.Add(granularity).After(closeInstant) {
			break
		}
		slots = append(slots, slot)
	}

	return slots, nil
}

// breakoutInterval перерыв, приведённый к абсолютным моментам целевого дня
type breakoutInterval struct {
	start time.Time
	end   time.Time
}

// resolveBreakoutIntervals переводит перерывы, действующие в целевой день,
// в абсолютные интервалы
func resolveBreakoutIntervals(
	n *schedtime.Normalizer,
	dayStart time.Time,
	dateKey, weekdayKey string,
	breakouts []*domain.Breakout,
) ([]breakoutInterval, error) {
	intervals := make([]breakoutInterval, 0, len(breakouts))

	for _, b := range breakouts {
		if !b.AppliesTo(dateKey, weekdayKey) {
			continue
		}

		start, err := n.At(dayStart, b.StartTime)
		if err != nil {
			return nil, err
		}
		end, err := n.At(dayStart, b.EndTime)
		if err != nil {
			return nil, err
		}
		if !end.After(start) {
			continue
		}

		intervals = append(intervals, breakoutInterval{start: start, end: end})
	}

	return intervals, nil
}

// overlapsBreakout проверяет пересечение слота [slotStart, slotEnd) с перерывом
//
// Любое пересечение блокирует слот целиком - частичные слоты не предлагаются.
// Неравенства строгие: перерыв, заканчивающийся ровно на границе слота
// (или начинающийся на его конце), пересечением не считается.
func overlapsBreakout(slotStart, slotEnd time.Time, intervals []breakoutInterval) bool {
	for _, iv := range intervals {
		if iv.start.Before(slotEnd) && iv.end.After(slotStart) {
			return true
		}
	}
	return false
}

// classifySlot определяет статус слота
//
// Порядок проверок фиксирован, первый сработавший выигрывает:
// current > past > reserved > breakout > available.
// Собственный слот редактируемой брони никогда не помечается reserved или
// past - перенос собственной просроченной записи вперёд разрешён.
func classifySlot(
	slot time.Time,
	now time.Time,
	currentKey *time.Time,
	reserved map[int64]struct{},
	breakouts []breakoutInterval,
) domain.SlotStatus {
	if currentKey != nil && slot.Equal(*currentKey) {
		return domain.SlotCurrent
	}

	if slot.Before(now) {
		return domain.SlotPast
	}

	if _, taken := reserved[slot.Unix()]; taken {
		return domain.SlotReserved
	}

	granularity := time.Duration(domain.SlotDurationMinutes) * time.Minute
	if overlapsBreakout(slot, slot.Add(granularity), breakouts) {
		return domain.SlotBreakout
	}

	return domain.SlotAvailable
}
