package reservation

import (
	"fmt"

	"reservequeue/internal/catalog"
)

// Store is the in-memory reservation list of one user session. It is driven
// by a single caller and does no locking.
type Store struct {
	validator *Validator
	items     []Reservation
}

func NewStore(v *Validator) *Store {
	if v == nil {
		v = NewValidator()
	}
	return &Store{validator: v}
}

// Seed loads reservations as they are, bypassing validation.
func (s *Store) Seed(rs ...Reservation) {
	s.items = append(s.items, rs...)
}

// Clear drops every reservation, e.g. when the user logs out.
func (s *Store) Clear() {
	s.items = nil
}

func (s *Store) List() []Reservation {
	out := make([]Reservation, len(s.items))
	copy(out, s.items)
	return out
}

func (s *Store) Len() int {
	return len(s.items)
}

func (s *Store) Capacity() int {
	return s.validator.capacity()
}

// Remaining reports how many more reservations can be added.
func (s *Store) Remaining() int {
	if n := s.Capacity() - len(s.items); n > 0 {
		return n
	}
	return 0
}

func (s *Store) Get(id string) (Reservation, error) {
	i := s.index(id)
	if i < 0 {
		return Reservation{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return s.items[i], nil
}

func (s *Store) Add(shop catalog.Shop, date string) (Reservation, error) {
	r, err := s.validator.Validate(s.items, shop, date)
	if err != nil {
		return Reservation{}, err
	}
	s.items = append(s.items, r)
	return r, nil
}

func (s *Store) Update(id string, shop catalog.Shop, date string) (Reservation, error) {
	i := s.index(id)
	if i < 0 {
		return Reservation{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	edited, err := s.validator.ValidateEdit(s.items[i], shop, date)
	if err != nil {
		return Reservation{}, err
	}
	s.items[i] = edited
	return edited, nil
}

// Remove deletes exactly the reservation with id and keeps the order of the
// rest.
func (s *Store) Remove(id string) error {
	i := s.index(id)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	s.items = append(s.items[:i:i], s.items[i+1:]...)
	return nil
}

func (s *Store) index(id string) int {
	for i, r := range s.items {
		if r.ID == id {
			return i
		}
	}
	return -1
}

// SampleReservations returns the two demo reservations the tickets view
// starts with.
func SampleReservations(c *catalog.Catalog, newID func() string) []Reservation {
	samples := []struct {
		shopID int
		date   string
		status Status
	}{
		{1, "2025-05-01", StatusConfirmed},
		{3, "2025-05-15", StatusPending},
	}
	out := make([]Reservation, 0, len(samples))
	for _, smp := range samples {
		shop, err := c.Lookup(smp.shopID)
		if err != nil {
			continue
		}
		out = append(out, Reservation{ID: newID(), Shop: shop, Date: smp.date, Status: smp.status})
	}
	return out
}
