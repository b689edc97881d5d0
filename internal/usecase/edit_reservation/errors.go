package edit_reservation

import "errors"

var (
	// ErrReservationNotFound возвращается, когда бронь не найдена
	ErrReservationNotFound = errors.New("edit_reservation: reservation not found")

	// ErrInvalidState возвращается при попытке редактировать отменённую или завершённую бронь
	ErrInvalidState = errors.New("edit_reservation: reservation is not editable")

	// ErrConcurrencyConflict возвращается при несовпадении версии
	// Бронь была изменена кем-то другим между load и save, нужен reload
	ErrConcurrencyConflict = errors.New("edit_reservation: reservation was modified concurrently")

	// ErrSlotAlreadyTaken возвращается, когда версия совпала, но целевой слот
	// уже занят другой confirmed бронью. Отличается от конфликта версий:
	// достаточно перечитать сетку слотов, не всю бронь
	ErrSlotAlreadyTaken = errors.New("edit_reservation: target slot is already taken")

	// ErrAccessDenied возвращается, когда вызывающий не имеет права редактировать бронь
	ErrAccessDenied = errors.New("edit_reservation: access denied")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("edit_reservation: invalid input data")

	// ErrInvalidTimestamp возвращается при некорректной целевой дате/времени
	ErrInvalidTimestamp = errors.New("edit_reservation: invalid timestamp")

	// ErrTargetInPast возвращается при попытке перенести бронь в прошлое
	ErrTargetInPast = errors.New("edit_reservation: target slot is in the past")

	// ErrServiceNotFound возвращается, когда новая услуга не найдена
	ErrServiceNotFound = errors.New("edit_reservation: service not found")

	// ErrStoreUnavailable возвращается при недоступности хранилища
	// Безопасно повторить весь вызов с теми же аргументами
	ErrStoreUnavailable = errors.New("edit_reservation: store unavailable")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("edit_reservation: internal error")
)
