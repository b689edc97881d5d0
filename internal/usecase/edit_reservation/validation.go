package edit_reservation

import "fmt"

// validateRequest проверяет корректность входных данных
func validateRequest(req *Request) error {
	if req == nil {
		return fmt.Errorf("%w: request is nil", ErrInvalidInput)
	}

	if req.ReservationID <= 0 {
		return fmt.Errorf("%w: reservation_id must be positive, got %d", ErrInvalidInput, req.ReservationID)
	}

	if req.CallerID <= 0 {
		return fmt.Errorf("%w: caller_id must be positive, got %d", ErrInvalidInput, req.CallerID)
	}

	if req.ExpectedVersion < 0 {
		return fmt.Errorf("%w: expected_version must be non-negative, got %d", ErrInvalidInput, req.ExpectedVersion)
	}

	if req.NewDate.IsZero() {
		return fmt.Errorf("%w: new_date is required", ErrInvalidTimestamp)
	}

	if err := req.NewStartTime.Validate(); err != nil {
		return fmt.Errorf("%w: new_start_time: %v", ErrInvalidInput, err)
	}

	// "24:00" допустимо только как конец рабочего дня, слот там начаться не может
	if minutes, err := req.NewStartTime.Minutes(); err != nil || minutes >= 24*60 {
		return fmt.Errorf("%w: new_start_time %q is not a valid slot start", ErrInvalidInput, req.NewStartTime)
	}

	if req.NewServiceID != nil && *req.NewServiceID <= 0 {
		return fmt.Errorf("%w: new_service_id must be positive, got %d", ErrInvalidInput, *req.NewServiceID)
	}

	return nil
}
