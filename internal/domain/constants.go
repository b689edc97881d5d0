package domain

import "github.com/DanieLevy/RamelBarbershop-sub005/pkg/types"

// Slot configuration
const (
	// SlotDurationMinutes фиксированная длительность слота
	// Все услуги барбершопа укладываются в один слот
	SlotDurationMinutes = 30
)

// Default shop working hours
// Используются, когда у барбера нет строки WorkDay на день недели
// и в shop_settings нет переопределения
const (
	DefaultShopOpenTime  = types.TimeString("09:00")
	DefaultShopCloseTime = types.TimeString("21:00")
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// Weekday keys, как они хранятся в строках WorkDay
const (
	WeekdaySunday    = "sunday"
	WeekdayMonday    = "monday"
	WeekdayTuesday   = "tuesday"
	WeekdayWednesday = "wednesday"
	WeekdayThursday  = "thursday"
	WeekdayFriday    = "friday"
	WeekdaySaturday  = "saturday"
)

// TerminalStatuses статусы, в которых бронь нельзя редактировать
var TerminalStatuses = []ReservationStatus{
	StatusCancelled,
	StatusCompleted,
}
