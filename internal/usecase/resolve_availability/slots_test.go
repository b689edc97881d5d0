package resolve_availability

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DanieLevy/RamelBarbershop-sub005/internal/domain"
	"github.com/DanieLevy/RamelBarbershop-sub005/internal/schedtime"
	"github.com/DanieLevy/RamelBarbershop-sub005/pkg/types"
)

func newTestNormalizer(t *testing.T) *schedtime.Normalizer {
	t.Helper()
	n, err := schedtime.NewNormalizer("Asia/Jerusalem")
	require.NoError(t, err)
	return n
}

func testDayStart(t *testing.T, n *schedtime.Normalizer) time.Time {
	t.Helper()
	// 2026-08-30 - воскресенье
	dayStart, err := n.DayStart(time.Date(2026, 8, 30, 12, 0, 0, 0, n.Location()))
	require.NoError(t, err)
	return dayStart
}

func TestGenerateSlotTimes(t *testing.T) {
	n := newTestNormalizer(t)
	dayStart := testDayStart(t, n)

	tests := []struct {
		name      string
		open      types.TimeString
		close     types.TimeString
		wantCount int
	}{
		{name: "morning shift", open: "09:00", close: "13:00", wantCount: 8},
		{name: "full default day", open: "09:00", close: "21:00", wantCount: 24},
		{name: "single slot", open: "09:00", close: "09:30", wantCount: 1},
		{name: "interval shorter than slot", open: "09:00", close: "09:20", wantCount: 0},
		{name: "open equals close", open: "09:00", close: "09:00", wantCount: 0},
		{name: "open after close", open: "13:00", close: "09:00", wantCount: 0},
		{name: "until end of day", open: "23:00", close: "24:00", wantCount: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			slots, err := generateSlotTimes(n, dayStart, tt.open, tt.close)
			require.NoError(t, err)
			assert.Len(t, slots, tt.wantCount)
		})
	}
}

func TestGenerateSlotTimes_MonotonicAndBounded(t *testing.T) {
	n := newTestNormalizer(t)
	dayStart := testDayStart(t, n)

	slots, err := generateSlotTimes(n, dayStart, "09:00", "13:00")
	require.NoError(t, err)
	require.NotEmpty(t, slots)

	// Первый слот на открытии
	openInstant, err := n.At(dayStart, "09:00")
	require.NoError(t, err)
	assert.True(t, slots[0].Equal(openInstant))

	// Строго возрастают с шагом в один слот, без дубликатов
	granularity := time.Duration(domain.SlotDurationMinutes) * time.Minute
	for i := 1; i < len(slots); i++ {
		assert.Equal(t, granularity, slots[i].Sub(slots[i-1]))
	}

	// Конец последнего слота не выходит за закрытие
	closeInstant, err := n.At(dayStart, "13:00")
	require.NoError(t, err)
	last := slots[len(slots)-1]
	assert.False(t, last.Add(granularity).After(closeInstant))
}

func TestGenerateSlotTimes_InvalidHours(t *testing.T) {
	n := newTestNormalizer(t)
	dayStart := testDayStart(t, n)

	_, err := generateSlotTimes(n, dayStart, "9am", "13:00")
	require.Error(t, err)
}

func TestOverlapsBreakout(t *testing.T) {
	n := newTestNormalizer(t)
	dayStart := testDayStart(t, n)

	at := func(ts types.TimeString) time.Time {
		instant, err := n.At(dayStart, ts)
		require.NoError(t, err)
		return instant
	}

	interval := breakoutInterval{start: at("12:00"), end: at("13:00")}

	tests := []struct {
		name      string
		slotStart types.TimeString
		want      bool
	}{
		{name: "slot ends exactly at breakout start", slotStart: "11:30", want: false},
		{name: "slot overlaps breakout start", slotStart: "11:45", want: true},
		{name: "slot inside breakout", slotStart: "12:00", want: true},
		{name: "slot overlaps breakout end", slotStart: "12:45", want: true},
		{name: "slot starts exactly at breakout end", slotStart: "13:00", want: false},
	}

	granularity := time.Duration(domain.SlotDurationMinutes) * time.Minute
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start := at(tt.slotStart)
			got := overlapsBreakout(start, start.Add(granularity), []breakoutInterval{interval})
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolveBreakoutIntervals(t *testing.T) {
	n := newTestNormalizer(t)
	dayStart := testDayStart(t, n)
	oneOffDate := dayStart

	otherWeekday := domain.WeekdayMonday
	sameWeekday := domain.WeekdaySunday

	breakouts := []*domain.Breakout{
		// Разовый перерыв в целевой день
		{ID: 1, Date: &oneOffDate, StartTime: "12:00", EndTime: "12:30"},
		// Еженедельный перерыв в целевой день недели
		{ID: 2, Weekday: &sameWeekday, StartTime: "15:00", EndTime: "15:30"},
		// Еженедельный перерыв в другой день недели
		{ID: 3, Weekday: &otherWeekday, StartTime: "10:00", EndTime: "10:30"},
		// Вырожденный интервал игнорируется
		{ID: 4, Weekday: &sameWeekday, StartTime: "16:00", EndTime: "16:00"},
	}

	intervals, err := resolveBreakoutIntervals(n, dayStart, "2026-08-30", domain.WeekdaySunday, breakouts)
	require.NoError(t, err)
	require.Len(t, intervals, 2)

	assert.Equal(t, 12, intervals[0].start.In(n.Location()).Hour())
	assert.Equal(t, 15, intervals[1].start.In(n.Location()).Hour())
}

func TestClassifySlot(t *testing.T) {
	n := newTestNormalizer(t)
	dayStart := testDayStart(t, n)

	at := func(ts types.TimeString) time.Time {
		instant, err := n.At(dayStart, ts)
		require.NoError(t, err)
		return instant
	}

	now := at("12:10")
	current := at("10:00")
	reserved := map[int64]struct{}{
		at("14:00").Unix(): {},
	}
	breakouts := []breakoutInterval{
		{start: at("15:00"), end: at("16:00")},
	}

	tests := []struct {
		name string
		slot types.TimeString
		want domain.SlotStatus
	}{
		{name: "free future slot", slot: "13:00", want: domain.SlotAvailable},
		{name: "before now", slot: "11:30", want: domain.SlotPast},
		{name: "slot containing now", slot: "12:00", want: domain.SlotPast},
		{name: "next slot after now", slot: "12:30", want: domain.SlotAvailable},
		{name: "reserved", slot: "14:00", want: domain.SlotReserved},
		{name: "breakout", slot: "15:30", want: domain.SlotBreakout},
		{name: "own current slot wins over past", slot: "10:00", want: domain.SlotCurrent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := classifySlot(at(tt.slot), now, &current, reserved, breakouts)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestClassifySlot_NoCurrentReservation(t *testing.T) {
	n := newTestNormalizer(t)
	dayStart := testDayStart(t, n)

	slot, err := n.At(dayStart, "10:00")
	require.NoError(t, err)
	now, err := n.At(dayStart, "09:00")
	require.NoError(t, err)

	got := classifySlot(slot, now, nil, map[int64]struct{}{}, nil)
	assert.Equal(t, domain.SlotAvailable, got)
}
