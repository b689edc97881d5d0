// Package schedtime изолирует всю календарную арифметику планирования
// в одной фиксированной civil таймзоне барбершопа.
//
// Таймзоны сервера и клиентов не совпадают с таймзоной барбершопа,
// поэтому "сегодня", "день недели" и границы суток нельзя вычислять
// через локальное время рантайма - только через Normalizer.
package schedtime

import (
	"errors"
	"fmt"
	"time"

	"github.com/DanieLevy/RamelBarbershop-sub005/internal/domain"
	"github.com/DanieLevy/RamelBarbershop-sub005/pkg/types"
)

var (
	// ErrInvalidTimestamp возвращается для нулевых и выходящих за разумные
	// пределы моментов времени
	ErrInvalidTimestamp = errors.New("schedtime: invalid timestamp")

	// ErrUnknownZone возвращается, когда таймзона не найдена в tzdata
	ErrUnknownZone = errors.New("schedtime: unknown time zone")
)

// Границы допустимых лет для моментов времени планирования
const (
	minYear = 1970
	maxYear = 9999
)

// weekdayKeys имена дней недели, как их хранит WorkDay
var weekdayKeys = [...]string{
	time.Sunday:    domain.WeekdaySunday,
	time.Monday:    domain.WeekdayMonday,
	time.Tuesday:   domain.WeekdayTuesday,
	time.Wednesday: domain.WeekdayWednesday,
	time.Thursday:  domain.WeekdayThursday,
	time.Friday:    domain.WeekdayFriday,
	time.Saturday:  domain.WeekdaySaturday,
}

// Normalizer переводит абсолютные моменты времени в календарные координаты
// таймзоны барбершопа и обратно
type Normalizer struct {
	loc *time.Location
}

// NewNormalizer создает Normalizer для указанной таймзоны (например "Asia/Jerusalem")
func NewNormalizer(zone string) (*Normalizer, error) {
	loc, err := time.LoadLocation(zone)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrUnknownZone, zone, err)
	}
	return &Normalizer{loc: loc}, nil
}

// Location возвращает таймзону планирования
func (n *Normalizer) Location() *time.Location {
	return n.loc
}

// Now возвращает текущий момент в таймзоне планирования
func (n *Normalizer) Now() time.Time {
	return time.Now().In(n.loc)
}

// DayStart возвращает полночь календарного дня, содержащего t
func (n *Normalizer) DayStart(t time.Time) (time.Time, error) {
	if err := validate(t); err != nil {
		return time.Time{}, err
	}
	local := t.In(n.loc)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, n.loc), nil
}

// DayEnd возвращает полночь следующего календарного дня
func (n *Normalizer) DayEnd(t time.Time) (time.Time, error) {
	start, err := n.DayStart(t)
	if err != nil {
		return time.Time{}, err
	}
	// AddDate корректно переживает переходы на летнее время
	return start.AddDate(0, 0, 1), nil
}

// DayKey возвращает имя дня недели в нижнем регистре ("sunday".."saturday")
func (n *Normalizer) DayKey(t time.Time) (string, error) {
	if err := validate(t); err != nil {
		return "", err
	}
	return weekdayKeys[t.In(n.loc).Weekday()], nil
}

// DateKey возвращает календарный ключ "YYYY-MM-DD"
func (n *Normalizer) DateKey(t time.Time) (string, error) {
	if err := validate(t); err != nil {
		return "", err
	}
	return t.In(n.loc).Format(domain.DateFormat), nil
}

// SlotKey усекает момент до границы слота
// Два момента внутри одного слота дают одинаковый ключ, что делает
// сравнения нечувствительными к суб-слотовому дрожанию
func (n *Normalizer) SlotKey(t time.Time) (time.Time, error) {
	start, err := n.DayStart(t)
	if err != nil {
		return time.Time{}, err
	}

	elapsed := t.In(n.loc).Sub(start)
	granularity := time.Duration(domain.SlotDurationMinutes) * time.Minute
	return start.Add(elapsed.Truncate(granularity)), nil
}

// SameDay проверяет, что два момента принадлежат одному календарному дню
func (n *Normalizer) SameDay(a, b time.Time) bool {
	la, lb := a.In(n.loc), b.In(n.loc)
	y1, m1, d1 := la.Date()
	y2, m2, d2 := lb.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// At возвращает абсолютный момент: wall-clock время ts в календарном дне day
func (n *Normalizer) At(day time.Time, ts types.TimeString) (time.Time, error) {
	start, err := n.DayStart(day)
	if err != nil {
		return time.Time{}, err
	}

	minutes, err := ts.Minutes()
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %v", ErrInvalidTimestamp, err)
	}

	return start.Add(time.Duration(minutes) * time.Minute), nil
}

func validate(t time.Time) error {
	if t.IsZero() {
		return fmt.Errorf("%w: zero time", ErrInvalidTimestamp)
	}
	if year := t.Year(); year < minYear || year > maxYear {
		return fmt.Errorf("%w: year %d out of range", ErrInvalidTimestamp, year)
	}
	return nil
}
