package domain

import (
	"time"

	"github.com/DanieLevy/RamelBarbershop-sub005/pkg/types"
)

// WorkDay рабочие часы барбера на день недели
//
// Семантика отсутствия/флага:
//   - строки нет вовсе: барбер работает по дефолтным часам барбершопа
//   - строка есть, IsWorking = false: день явно нерабочий, fallback на часы
//     барбершопа НЕ выполняется
//   - строка есть, IsWorking = true: часы заданы StartTime/EndTime
type WorkDay struct {
	ID        int64
	BarberID  int64
	Weekday   string // "sunday".."saturday"
	IsWorking bool
	StartTime types.TimeString
	EndTime   types.TimeString

	CreatedAt time.Time
	UpdatedAt time.Time
}

// HasHours returns true if both start and end times are set
func (w *WorkDay) HasHours() bool {
	return !w.StartTime.IsZero() && !w.EndTime.IsZero()
}

// Breakout личный перерыв барбера внутри рабочего дня
// Либо разовый (Date задан), либо еженедельный (Weekday задан)
type Breakout struct {
	ID       int64
	BarberID int64

	// Date дата разового перерыва (nil для еженедельного)
	Date *time.Time
	// Weekday день недели еженедельного перерыва (nil для разового)
	Weekday *string

	StartTime types.TimeString
	EndTime   types.TimeString

	CreatedAt time.Time
}

// AppliesTo проверяет, действует ли перерыв в день с данными ключами
func (b *Breakout) AppliesTo(dateKey, weekdayKey string) bool {
	if b.Date != nil {
		return b.Date.Format(DateFormat) == dateKey
	}
	if b.Weekday != nil {
		return *b.Weekday == weekdayKey
	}
	return false
}

// Closure закрытие барбершопа (BarberID == nil) или конкретного барбера
// Диапазон дат включительный с обеих сторон
type Closure struct {
	ID       int64
	BarberID *int64

	StartDate time.Time
	EndDate   time.Time
	Reason    *string

	CreatedAt time.Time
}

// IsShopWide returns true if the closure applies to the whole shop
func (c *Closure) IsShopWide() bool {
	return c.BarberID == nil
}

// Covers проверяет, попадает ли дата (по календарному ключу) в диапазон закрытия
func (c *Closure) Covers(dateKey string) bool {
	start := c.StartDate.Format(DateFormat)
	end := c.EndDate.Format(DateFormat)
	return dateKey >= start && dateKey <= end
}

// ClosureSet закрытия, пересекающие запрошенный период
type ClosureSet struct {
	Shop   []*Closure
	Barber []*Closure
}

// ShopHours дефолтные часы работы барбершопа
type ShopHours struct {
	Start types.TimeString
	End   types.TimeString
}

// Service услуга барбершопа
// Цена денормализуется в бронь при создании и при смене услуги
type Service struct {
	ID    int64
	Name  string
	Price float64
}
