package reservation

import (
	"testing"
	"time"

	"reservequeue/internal/catalog"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	return NewStore(fixedValidator(time.Date(2026, 1, 15, 9, 0, 0, 0, time.Local)))
}

func TestStore_Scenario(t *testing.T) {
	s := newTestStore(t)

	first, err := s.Add(shop(t, 1), "2099-01-01")
	require.NoError(t, err)
	require.Equal(t, 1, s.Len())
	assert.Equal(t, StatusPending, s.List()[0].Status)
	assert.Equal(t, first, s.List()[0])

	_, err = s.Add(shop(t, 1), "2099-01-01")
	assert.ErrorIs(t, err, ErrDuplicateReservation)
	assert.Equal(t, 1, s.Len())

	_, err = s.Add(shop(t, 2), "2099-01-01")
	require.NoError(t, err)
	_, err = s.Add(shop(t, 1), "2099-01-02")
	require.NoError(t, err)
	assert.Equal(t, 3, s.Len())
	assert.Equal(t, 0, s.Remaining())

	before := s.List()
	_, err = s.Add(shop(t, 4), "2099-02-01")
	assert.ErrorIs(t, err, ErrCapacityExceeded)
	assert.Equal(t, before, s.List())
}

func TestStore_NeverExceedsCapacity(t *testing.T) {
	s := newTestStore(t)
	dates := []string{"2026-02-01", "2026-02-02", "2026-02-03", "2026-02-04", "2026-02-05", "2026-02-06"}
	for i, d := range dates {
		_, _ = s.Add(shop(t, i%4+1), d)
		assert.LessOrEqual(t, s.Len(), DefaultCapacity)
	}
	assert.Equal(t, DefaultCapacity, s.Len())
}

func TestStore_PaddedDateIsSameDay(t *testing.T) {
	s := newTestStore(t)
	_, err := s.Add(shop(t, 1), "2099-01-01")
	require.NoError(t, err)

	_, err = s.Add(shop(t, 1), " 2099-01-01")
	assert.ErrorIs(t, err, ErrDuplicateReservation)
	require.Equal(t, 1, s.Len())
	assert.Equal(t, "2099-01-01", s.List()[0].Date)
}

func TestStore_PastDateRejected(t *testing.T) {
	s := newTestStore(t)
	_, err := s.Add(shop(t, 1), "2026-01-14")
	assert.ErrorIs(t, err, ErrInvalidDate)
	assert.Zero(t, s.Len())
}

func TestStore_Update(t *testing.T) {
	s := newTestStore(t)
	r, err := s.Add(shop(t, 1), "2026-02-01")
	require.NoError(t, err)

	t.Run("past date leaves original", func(t *testing.T) {
		_, err := s.Update(r.ID, shop(t, 2), "2025-12-31")
		assert.ErrorIs(t, err, ErrInvalidDate)
		got, err := s.Get(r.ID)
		require.NoError(t, err)
		assert.Equal(t, r, got)
	})

	t.Run("confirmed resets to pending", func(t *testing.T) {
		s.items[0].Status = StatusConfirmed
		got, err := s.Update(r.ID, shop(t, 3), "2026-02-10")
		require.NoError(t, err)
		assert.Equal(t, StatusPending, got.Status)
		assert.Equal(t, 3, got.Shop.ID)
		assert.Equal(t, []Reservation{got}, s.List())
	})

	t.Run("unknown id", func(t *testing.T) {
		_, err := s.Update("nope", shop(t, 1), "2026-02-10")
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestStore_Remove(t *testing.T) {
	s := newTestStore(t)
	a, err := s.Add(shop(t, 1), "2026-02-01")
	require.NoError(t, err)
	b, err := s.Add(shop(t, 2), "2026-02-01")
	require.NoError(t, err)
	c, err := s.Add(shop(t, 3), "2026-02-01")
	require.NoError(t, err)

	snapshot := s.List()
	require.NoError(t, s.Remove(b.ID))
	assert.Equal(t, []Reservation{a, c}, s.List())
	assert.Len(t, snapshot, 3, "earlier List result must not change")

	assert.ErrorIs(t, s.Remove(b.ID), ErrNotFound)
	assert.Equal(t, 2, s.Len())
	assert.Equal(t, 1, s.Remaining())
}

func TestStore_SeedBypassesValidation(t *testing.T) {
	s := newTestStore(t)
	n := 0
	samples := SampleReservations(catalog.Builtin(), func() string { n++; return string(rune('a' + n)) })
	require.Len(t, samples, 2)
	s.Seed(samples...)

	list := s.List()
	require.Len(t, list, 2)
	assert.Equal(t, "Relax Spa", list[0].Shop.Name)
	assert.Equal(t, StatusConfirmed, list[0].Status)
	assert.Equal(t, "Tranquil Touch", list[1].Shop.Name)
	assert.Equal(t, StatusPending, list[1].Status)
}
