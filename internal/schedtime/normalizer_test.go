package schedtime

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DanieLevy/RamelBarbershop-sub005/internal/domain"
)

func newTestNormalizer(t *testing.T) *Normalizer {
	t.Helper()
	n, err := NewNormalizer("Asia/Jerusalem")
	require.NoError(t, err)
	return n
}

func TestNewNormalizer_UnknownZone(t *testing.T) {
	_, err := NewNormalizer("Atlantis/Lost")
	require.ErrorIs(t, err, ErrUnknownZone)
}

func TestNormalizer_DayStart(t *testing.T) {
	n := newTestNormalizer(t)

	// 2026-08-28 01:30 UTC = 2026-08-28 04:30 в Иерусалиме (IDT, +03)
	instant := time.Date(2026, 8, 28, 1, 30, 0, 0, time.UTC)

	start, err := n.DayStart(instant)
	require.NoError(t, err)

	assert.Equal(t, 2026, start.Year())
	assert.Equal(t, time.August, start.Month())
	assert.Equal(t, 28, start.Day())
	assert.Equal(t, 0, start.Hour())
	assert.Equal(t, 0, start.Minute())
	assert.Equal(t, n.Location(), start.Location())
}

func TestNormalizer_DayStart_CrossesDateLine(t *testing.T) {
	n := newTestNormalizer(t)

	// 2026-08-27 22:30 UTC уже 2026-08-28 01:30 в Иерусалиме
	instant := time.Date(2026, 8, 27, 22, 30, 0, 0, time.UTC)

	start, err := n.DayStart(instant)
	require.NoError(t, err)
	assert.Equal(t, 28, start.Day())
}

func TestNormalizer_DayEnd(t *testing.T) {
	n := newTestNormalizer(t)

	instant := time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)

	start, err := n.DayStart(instant)
	require.NoError(t, err)
	end, err := n.DayEnd(instant)
	require.NoError(t, err)

	assert.Equal(t, start.AddDate(0, 0, 1), end)
	assert.Equal(t, 24*time.Hour, end.Sub(start))
}

func TestNormalizer_InvalidTimestamps(t *testing.T) {
	n := newTestNormalizer(t)

	tests := []struct {
		name  string
		value time.Time
	}{
		{name: "zero time", value: time.Time{}},
		{name: "before 1970", value: time.Date(1969, 12, 31, 0, 0, 0, 0, time.UTC)},
		{name: "after 9999", value: time.Date(10000, 1, 1, 0, 0, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := n.DayStart(tt.value)
			require.ErrorIs(t, err, ErrInvalidTimestamp)

			_, err = n.DayKey(tt.value)
			require.ErrorIs(t, err, ErrInvalidTimestamp)

			_, err = n.DateKey(tt.value)
			require.ErrorIs(t, err, ErrInvalidTimestamp)
		})
	}
}

func TestNormalizer_DayKey(t *testing.T) {
	n := newTestNormalizer(t)

	// 2026-08-28 - пятница
	friday := time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)
	key, err := n.DayKey(friday)
	require.NoError(t, err)
	assert.Equal(t, domain.WeekdayFriday, key)

	// 2026-08-27 22:00 UTC - уже пятница в Иерусалиме
	lateThursday := time.Date(2026, 8, 27, 22, 0, 0, 0, time.UTC)
	key, err = n.DayKey(lateThursday)
	require.NoError(t, err)
	assert.Equal(t, domain.WeekdayFriday, key)
}

func TestNormalizer_DateKey(t *testing.T) {
	n := newTestNormalizer(t)

	key, err := n.DateKey(time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, "2026-08-28", key)
}

func TestNormalizer_SlotKey(t *testing.T) {
	n := newTestNormalizer(t)

	dayStart, err := n.DayStart(time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	tests := []struct {
		name   string
		offset time.Duration
		want   time.Duration
	}{
		{name: "exact slot boundary", offset: 10 * time.Hour, want: 10 * time.Hour},
		{name: "mid slot", offset: 10*time.Hour + 17*time.Minute, want: 10 * time.Hour},
		{name: "just before next slot", offset: 10*time.Hour + 29*time.Minute, want: 10 * time.Hour},
		{name: "second half hour", offset: 10*time.Hour + 30*time.Minute, want: 10*time.Hour + 30*time.Minute},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			key, err := n.SlotKey(dayStart.Add(tt.offset))
			require.NoError(t, err)
			assert.Equal(t, dayStart.Add(tt.want), key)
		})
	}
}

func TestNormalizer_SlotKey_SameSlotSameKey(t *testing.T) {
	n := newTestNormalizer(t)

	base := time.Date(2026, 8, 28, 10, 0, 0, 0, n.Location())

	a, err := n.SlotKey(base.Add(3 * time.Minute))
	require.NoError(t, err)
	b, err := n.SlotKey(base.Add(29 * time.Minute))
	require.NoError(t, err)

	assert.True(t, a.Equal(b))
}

func TestNormalizer_SameDay(t *testing.T) {
	n := newTestNormalizer(t)

	morning := time.Date(2026, 8, 28, 6, 0, 0, 0, n.Location())
	evening := time.Date(2026, 8, 28, 23, 30, 0, 0, n.Location())
	nextDay := time.Date(2026, 8, 29, 0, 0, 0, 0, n.Location())

	assert.True(t, n.SameDay(morning, evening))
	assert.False(t, n.SameDay(evening, nextDay))

	// Один и тот же момент в разных таймзонах - один календарный день барбершопа
	assert.True(t, n.SameDay(morning, morning.UTC()))
}

func TestNormalizer_At(t *testing.T) {
	n := newTestNormalizer(t)

	day := time.Date(2026, 8, 28, 15, 45, 0, 0, n.Location())

	instant, err := n.At(day, "10:30")
	require.NoError(t, err)

	assert.Equal(t, 10, instant.In(n.Location()).Hour())
	assert.Equal(t, 30, instant.In(n.Location()).Minute())
	assert.Equal(t, 28, instant.In(n.Location()).Day())

	_, err = n.At(day, "25:00")
	require.ErrorIs(t, err, ErrInvalidTimestamp)
}
