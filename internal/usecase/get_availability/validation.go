package get_availability

import (
	"fmt"
)

// validateRequest проверяет корректность входных данных
func validateRequest(req *Request) error {
	if req.ActivityID <= 0 {
		return fmt.Errorf("%w: activity id must be positive", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if req.PartySize < 1 {
		return fmt.Errorf("%w: party size must be at least 1", ErrInvalidInput)
	}

	return nil
}
