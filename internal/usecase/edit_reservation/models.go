package edit_reservation

import (
	"time"

	"github.com/DanieLevy/RamelBarbershop-sub005/internal/domain"
	"github.com/DanieLevy/RamelBarbershop-sub005/pkg/types"
)

// Request модель запроса на перенос брони
type Request struct {
	ReservationID int64 // ID редактируемой брони
	CallerID      int64 // ID вызывающего пользователя (из контекста авторизации)

	// ExpectedVersion версия брони, которую наблюдал вызывающий при загрузке
	// Несовпадение на момент записи - конфликт, мутация не применяется
	ExpectedVersion int64

	NewDate      time.Time        // Любой момент внутри целевого календарного дня
	NewStartTime types.TimeString // Время начала слота ("HH:MM")

	// NewServiceID новая услуга (опционально)
	NewServiceID *int64
}

// Response модель ответа с обновлённой бронью
type Response struct {
	Reservation *domain.Reservation
}
