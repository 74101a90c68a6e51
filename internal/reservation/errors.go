package reservation

import (
	"errors"
	"fmt"
)

var (
	ErrCapacityExceeded     = errors.New("reservation capacity exceeded")
	ErrInvalidDate          = errors.New("invalid reservation date")
	ErrDuplicateReservation = errors.New("reservation already exists for this shop and date")
	ErrDateRequired         = errors.New("reservation date is required")
	ErrShopRequired         = errors.New("reservation shop is required")
	ErrNotFound             = errors.New("reservation not found")

	// ErrMalformedDate is an ErrInvalidDate for input that is not YYYY-MM-DD.
	ErrMalformedDate = fmt.Errorf("%w: expected YYYY-MM-DD", ErrInvalidDate)
)

// CapacityError carries the limit that was hit. It matches
// ErrCapacityExceeded under errors.Is.
type CapacityError struct {
	Limit int
}

func (e *CapacityError) Error() string {
	return fmt.Sprintf("%s: limit is %d", ErrCapacityExceeded, e.Limit)
}

func (e *CapacityError) Is(target error) bool {
	return target == ErrCapacityExceeded
}

// Reason turns a rejection into the message shown to the user.
func Reason(err error) string {
	switch {
	case errors.Is(err, ErrDateRequired):
		return "Please select a date."
	case errors.Is(err, ErrShopRequired):
		return "Please select both a date and a massage shop."
	case errors.Is(err, ErrCapacityExceeded):
		var ce *CapacityError
		if errors.As(err, &ce) {
			return fmt.Sprintf("You can only reserve up to %d queues.", ce.Limit)
		}
		return "You can only reserve up to 3 queues."
	case errors.Is(err, ErrMalformedDate):
		return "Please enter the date as YYYY-MM-DD."
	case errors.Is(err, ErrInvalidDate):
		return "Cannot reserve for a date in the past."
	case errors.Is(err, ErrDuplicateReservation):
		return "You already have a reservation at this shop on this date."
	case errors.Is(err, ErrNotFound):
		return "Reservation not found."
	case err == nil:
		return ""
	default:
		return err.Error()
	}
}
