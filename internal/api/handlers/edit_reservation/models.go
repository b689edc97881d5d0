package edit_reservation

import (
	"time"

	"github.com/DanieLevy/RamelBarbershop-sub005/internal/domain"
	editReservation "github.com/DanieLevy/RamelBarbershop-sub005/internal/usecase/edit_reservation"
	"github.com/DanieLevy/RamelBarbershop-sub005/pkg/types"
)

// EditReservationRequest тело запроса на перенос брони
type EditReservationRequest struct {
	ExpectedVersion int64  `json:"expectedVersion"`
	NewDate         string `json:"newDate"`      // "2026-08-28"
	NewStartTime    string `json:"newStartTime"` // "10:30"
	NewServiceID    *int64 `json:"newServiceId,omitempty"`
}

// EditReservationResponse ответ с обновлённой бронью
type EditReservationResponse struct {
	ID           int64   `json:"id"`
	BarberID     int64   `json:"barberId"`
	CustomerID   int64   `json:"customerId"`
	ServiceID    int64   `json:"serviceId"`
	Date         string  `json:"date"`
	StartTime    string  `json:"startTime"`
	Timestamp    int64   `json:"timestamp"`
	Status       string  `json:"status"`
	Version      int64   `json:"version"`
	ServiceName  string  `json:"serviceName"`
	ServicePrice float64 `json:"servicePrice"`
}

// ToUseCaseRequest конвертирует HTTP запрос в запрос use case
// Дата интерпретируется в таймзоне барбершопа, иначе для зон западнее UTC
// полночь UTC выпадает на предыдущий календарный день
func (r *EditReservationRequest) ToUseCaseRequest(reservationID, callerID int64, loc *time.Location) (*editReservation.Request, error) {
	date, err := time.ParseInLocation(domain.DateFormat, r.NewDate, loc)
	if err != nil {
		return nil, err
	}

	startTime, err := types.NewTimeStringFromString(r.NewStartTime)
	if err != nil {
		return nil, err
	}

	return &editReservation.Request{
		ReservationID:   reservationID,
		CallerID:        callerID,
		ExpectedVersion: r.ExpectedVersion,
		NewDate:         date,
		NewStartTime:    startTime,
		NewServiceID:    r.NewServiceID,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *editReservation.Response, loc *time.Location) *EditReservationResponse {
	reservation := resp.Reservation
	start := reservation.TimeTimestamp.In(loc)

	return &EditReservationResponse{
		ID:           reservation.ID,
		BarberID:     reservation.BarberID,
		CustomerID:   reservation.CustomerID,
		ServiceID:    reservation.ServiceID,
		Date:         start.Format(domain.DateFormat),
		StartTime:    start.Format(domain.TimeFormat),
		Timestamp:    reservation.TimeTimestamp.Unix(),
		Status:       string(reservation.Status),
		Version:      reservation.Version,
		ServiceName:  reservation.ServiceName,
		ServicePrice: reservation.ServicePrice,
	}
}
