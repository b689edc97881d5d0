package resolve_availability

import "errors"

var (
	// ErrBarberNotFound возвращается, когда барбер не найден или пользователь не барбер
	ErrBarberNotFound = errors.New("resolve_availability: barber not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("resolve_availability: invalid input data")

	// ErrInvalidTimestamp возвращается при некорректной дате запроса
	ErrInvalidTimestamp = errors.New("resolve_availability: invalid timestamp")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("resolve_availability: internal error")
)
