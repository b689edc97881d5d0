package domain

import "time"

// ReservationStatus represents the status of a reservation
type ReservationStatus string

const (
	StatusConfirmed ReservationStatus = "confirmed"
	StatusCancelled ReservationStatus = "cancelled"
	StatusCompleted ReservationStatus = "completed"
)

// Reservation represents a customer appointment with a barber
//
// Version - монотонный счётчик для optimistic concurrency control.
// Инкрементируется при каждом успешном редактировании, проверяется
// в условном UPDATE. Инвариант хранилища: не более одной confirmed
// брони на пару (barber_id, time_timestamp).
type Reservation struct {
	ID         int64
	BarberID   int64
	CustomerID int64
	ServiceID  int64

	// DateTimestamp полночь календарного дня брони в таймзоне барбершопа
	DateTimestamp time.Time
	// TimeTimestamp абсолютный момент начала записи
	TimeTimestamp time.Time

	Status  ReservationStatus
	Version int64

	// Denormalized service data for history
	ServiceName  string
	ServicePrice float64

	CancellationReason *string
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsConfirmed returns true if the reservation is confirmed
func (r *Reservation) IsConfirmed() bool {
	return r.Status == StatusConfirmed
}

// CanBeEdited returns true if the reservation can be rescheduled
// Отменённые и завершённые брони - терминальные для редактирования
func (r *Reservation) CanBeEdited() bool {
	return r.Status == StatusConfirmed
}

// CanBeCancelled returns true if the reservation can be cancelled
func (r *Reservation) CanBeCancelled() bool {
	return r.Status == StatusConfirmed
}

// IsTerminal returns true if the reservation is in a terminal state
func (r *Reservation) IsTerminal() bool {
	for _, s := range TerminalStatuses {
		if r.Status == s {
			return true
		}
	}
	return false
}

// ReservationTime пара (id, время начала) confirmed брони
// Используется резолвером доступности для разметки занятых слотов
type ReservationTime struct {
	ID   int64
	Time time.Time
}

// ReservationPatch набор полей, атомарно применяемых при редактировании брони
// Все поля применяются вместе с инкрементом версии, либо не применяется ничего
type ReservationPatch struct {
	DateTimestamp time.Time
	TimeTimestamp time.Time

	// Смена услуги (опционально, все три поля вместе)
	ServiceID    *int64
	ServiceName  *string
	ServicePrice *float64
}

// HasServiceChange returns true if the patch changes the service
func (p *ReservationPatch) HasServiceChange() bool {
	return p.ServiceID != nil
}
