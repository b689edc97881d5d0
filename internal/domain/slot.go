package domain

import "time"

// SlotStatus классификация слота резолвером доступности
type SlotStatus string

const (
	// SlotAvailable слот свободен для записи
	SlotAvailable SlotStatus = "available"
	// SlotReserved слот занят чужой confirmed бронью
	SlotReserved SlotStatus = "reserved"
	// SlotBreakout слот пересекается с перерывом барбера
	SlotBreakout SlotStatus = "breakout"
	// SlotPast слот сегодняшнего дня, время которого уже прошло
	SlotPast SlotStatus = "past"
	// SlotCurrent собственный слот редактируемой брони
	SlotCurrent SlotStatus = "current"
)

// Slot derived значение, не персистится - вычисляется заново при каждом
// вызове резолвера доступности
type Slot struct {
	Timestamp time.Time
	Status    SlotStatus
}

// IsAvailable returns true if the slot can be booked
func (s *Slot) IsAvailable() bool {
	return s.Status == SlotAvailable
}
