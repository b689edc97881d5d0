package pushservice

import "time"

// ReservationEvent тип события по брони
type ReservationEvent string

const (
	EventRescheduled ReservationEvent = "rescheduled"
	EventCancelled   ReservationEvent = "cancelled"
)

// Notification запрос на push уведомление второй стороне брони
type Notification struct {
	Event         ReservationEvent `json:"event"`
	ReservationID int64            `json:"reservation_id"`
	RecipientID   int64            `json:"recipient_id"`
	InitiatorID   int64            `json:"initiator_id"`
	BarberID      int64            `json:"barber_id"`
	NewTime       *time.Time       `json:"new_time,omitempty"`
}
