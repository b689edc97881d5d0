package resolve_availability

import "fmt"

// validateRequest проверяет корректность входных данных
func validateRequest(req *Request) error {
	if req == nil {
		return fmt.Errorf("%w: request is nil", ErrInvalidInput)
	}

	if req.BarberID <= 0 {
		return fmt.Errorf("%w: barber_id must be positive, got %d", ErrInvalidInput, req.BarberID)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidTimestamp)
	}

	if req.ExcludeReservationID != nil && *req.ExcludeReservationID <= 0 {
		return fmt.Errorf("%w: exclude_reservation_id must be positive, got %d", ErrInvalidInput, *req.ExcludeReservationID)
	}

	return nil
}
