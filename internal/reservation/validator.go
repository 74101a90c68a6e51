package reservation

import (
	"fmt"
	"strings"
	"time"

	"reservequeue/internal/catalog"

	"github.com/google/uuid"
)

// DefaultCapacity is how many reservations one user may hold at once.
const DefaultCapacity = 3

// Validator enforces the booking rules against a user's current list. It
// holds no state of its own.
type Validator struct {
	Now      func() time.Time
	Capacity int
	NewID    func() string
}

func NewValidator() *Validator {
	return &Validator{
		Now:      time.Now,
		Capacity: DefaultCapacity,
		NewID:    uuid.NewString,
	}
}

// Validate checks a candidate (shop, date) against existing and returns a
// Pending draft with a fresh ID. Checks run in a fixed order and the first
// failure is returned. The date is trimmed before any check and stored
// trimmed.
func (v *Validator) Validate(existing []Reservation, shop catalog.Shop, date string) (Reservation, error) {
	if shop.IsZero() {
		return Reservation{}, ErrShopRequired
	}
	date = strings.TrimSpace(date)
	if date == "" {
		return Reservation{}, ErrDateRequired
	}
	if len(existing) >= v.capacity() {
		return Reservation{}, &CapacityError{Limit: v.capacity()}
	}
	if err := v.checkDate(date); err != nil {
		return Reservation{}, err
	}
	for _, r := range existing {
		if r.Shop.ID == shop.ID && strings.TrimSpace(r.Date) == date {
			return Reservation{}, fmt.Errorf("%w: shop %d on %s", ErrDuplicateReservation, shop.ID, date)
		}
	}

	return Reservation{
		ID:     v.newID(),
		Shop:   shop,
		Date:   date,
		Status: StatusPending,
	}, nil
}

// ValidateEdit applies a new shop and date to current. Only the date rule is
// re-checked; capacity and duplicates are not. A successful edit always
// resets the status to Pending.
func (v *Validator) ValidateEdit(current Reservation, shop catalog.Shop, date string) (Reservation, error) {
	if shop.IsZero() {
		return Reservation{}, ErrShopRequired
	}
	date = strings.TrimSpace(date)
	if date == "" {
		return Reservation{}, ErrDateRequired
	}
	if err := v.checkDate(date); err != nil {
		return Reservation{}, err
	}

	edited := current
	edited.Shop = shop
	edited.Date = date
	edited.Status = StatusPending
	return edited, nil
}

// checkDate rejects dates strictly before today. Time of day is ignored.
func (v *Validator) checkDate(date string) error {
	d, err := ParseDate(date)
	if err != nil {
		return fmt.Errorf("%w: %q", ErrMalformedDate, date)
	}
	if d.Before(v.today()) {
		return fmt.Errorf("%w: %s is before today", ErrInvalidDate, date)
	}
	return nil
}

func (v *Validator) today() time.Time {
	now := time.Now
	if v.Now != nil {
		now = v.Now
	}
	t := now().In(time.Local)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.Local)
}

func (v *Validator) capacity() int {
	if v.Capacity <= 0 {
		return DefaultCapacity
	}
	return v.Capacity
}

func (v *Validator) newID() string {
	if v.NewID == nil {
		return uuid.NewString()
	}
	return v.NewID()
}
