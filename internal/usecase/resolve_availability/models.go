package resolve_availability

import (
	"time"

	"github.com/DanieLevy/RamelBarbershop-sub005/internal/domain"
)

// Request модель запроса на разметку слотов
type Request struct {
	BarberID int64     // ID барбера
	Date     time.Time // Любой момент внутри целевого календарного дня
	// ExcludeReservationID ID редактируемой брони (опционально)
	// Её собственный слот помечается как current, а не reserved
	ExcludeReservationID *int64
}

// Response модель ответа с размеченными слотами
//
// All содержит полный аннотированный список для UI-режима "показать занятые",
// Available - только свободные слоты.
// Пустые списки - нормальный результат (выходной, закрытие), не ошибка.
type Response struct {
	BarberID int64
	Date     time.Time // Полночь целевого дня в таймзоне барбершопа
	// ClosedReason причина закрытия, если день попал под Closure
	// При пересечении закрытий барбершопа и барбера причина барбершопа важнее
	ClosedReason *string

	All       []domain.Slot
	Available []domain.Slot
}

// emptyResponse ответ без слотов (нерабочий день или закрытие)
func emptyResponse(barberID int64, dayStart time.Time, closedReason *string) *Response {
	return &Response{
		BarberID:     barberID,
		Date:         dayStart,
		ClosedReason: closedReason,
		All:          []domain.Slot{},
		Available:    []domain.Slot{},
	}
}
