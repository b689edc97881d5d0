package models

import (
	"time"

	"github.com/DanieLevy/RamelBarbershop-sub005/internal/domain"
)

// Request модели

// CancelReservationRequest запрос на отмену брони
type CancelReservationRequest struct {
	UserID             int64  `json:"userId"`
	CancellationReason string `json:"cancellationReason"`
}

// GetBarberReservationsRequest запрос на получение броней барбера за день
type GetBarberReservationsRequest struct {
	BarberID        int64     `json:"barberId"`
	UserID          int64     `json:"userId"`
	Date            time.Time `json:"date"`
	IncludeInactive bool      `json:"includeInactive,omitempty"` // Включить отменённые и завершённые брони
}

// Response модели

// ReservationResponse ответ с данными брони
type ReservationResponse struct {
	ID         int64  `json:"id"`
	BarberID   int64  `json:"barberId"`
	CustomerID int64  `json:"customerId"`
	ServiceID  int64  `json:"serviceId"`
	Date       string `json:"date"`      // "2026-08-28"
	StartTime  string `json:"startTime"` // "10:30"
	Timestamp  int64  `json:"timestamp"` // Unix время начала записи
	Status     string `json:"status"`
	Version    int64  `json:"version"`

	// Денормализованные данные
	ServiceName  string  `json:"serviceName"`
	ServicePrice float64 `json:"servicePrice"`

	CancellationReason *string `json:"cancellationReason,omitempty"`
	CancelledAt        *string `json:"cancelledAt,omitempty"` // ISO 8601 format

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ReservationListResponse ответ со списком броней
type ReservationListResponse struct {
	Reservations []ReservationResponse `json:"reservations"`
}

// Методы конвертации

// FromDomainReservation конвертирует domain модель в DTO
// Дата и время начала форматируются в таймзоне loc (таймзона барбершопа)
func FromDomainReservation(r *domain.Reservation, loc *time.Location) *ReservationResponse {
	if r == nil {
		return nil
	}

	start := r.TimeTimestamp.In(loc)

	resp := &ReservationResponse{
		ID:                 r.ID,
		BarberID:           r.BarberID,
		CustomerID:         r.CustomerID,
		ServiceID:          r.ServiceID,
		Date:               start.Format(domain.DateFormat),
		StartTime:          start.Format(domain.TimeFormat),
		Timestamp:          r.TimeTimestamp.Unix(),
		Status:             string(r.Status),
		Version:            r.Version,
		ServiceName:        r.ServiceName,
		ServicePrice:       r.ServicePrice,
		CancellationReason: r.CancellationReason,
		CreatedAt:          r.CreatedAt,
		UpdatedAt:          r.UpdatedAt,
	}

	if r.CancelledAt != nil {
		cancelledStr := r.CancelledAt.Format(time.RFC3339)
		resp.CancelledAt = &cancelledStr
	}

	return resp
}

// FromDomainReservationList конвертирует список domain моделей в DTO
func FromDomainReservationList(reservations []*domain.Reservation, loc *time.Location) *ReservationListResponse {
	if reservations == nil {
		return &ReservationListResponse{
			Reservations: []ReservationResponse{},
		}
	}

	resp := &ReservationListResponse{
		Reservations: make([]ReservationResponse, len(reservations)),
	}

	for i, reservation := range reservations {
		if r := FromDomainReservation(reservation, loc); r != nil {
			resp.Reservations[i] = *r
		}
	}

	return resp
}
