package reservation

import "errors"

var (
	// ErrReservationNotFound возвращается, когда бронь не найдена
	ErrReservationNotFound = errors.New("reservation.repository: reservation not found")

	// ErrVersionMismatch возвращается, когда версия строки не совпала с ожидаемой
	// (бронь была изменена кем-то другим между чтением и записью)
	ErrVersionMismatch = errors.New("reservation.repository: version mismatch")

	// ErrSlotTaken возвращается, когда версия совпала, но целевой слот
	// уже занят другой confirmed бронью этого барбера
	ErrSlotTaken = errors.New("reservation.repository: slot already taken")

	// ErrNotEditable возвращается при попытке изменить отменённую или завершённую бронь
	ErrNotEditable = errors.New("reservation.repository: reservation is not editable")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("reservation.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("reservation.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("reservation.repository: failed to scan row")
)
