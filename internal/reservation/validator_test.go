package reservation

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"reservequeue/internal/catalog"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedValidator(now time.Time) *Validator {
	n := 0
	return &Validator{
		Now:      func() time.Time { return now },
		Capacity: DefaultCapacity,
		NewID: func() string {
			n++
			return fmt.Sprintf("r-%d", n)
		},
	}
}

func shop(t *testing.T, id int) catalog.Shop {
	t.Helper()
	s, err := catalog.Builtin().Lookup(id)
	require.NoError(t, err)
	return s
}

func TestValidator_Validate(t *testing.T) {
	now := time.Date(2026, 3, 10, 15, 30, 0, 0, time.Local)
	existing := []Reservation{
		{ID: "a", Shop: catalog.Shop{ID: 1}, Date: "2026-03-12", Status: StatusPending},
	}

	tests := []struct {
		name     string
		existing []Reservation
		shopID   int
		date     string
		wantDate string
		wantErr  error
	}{
		{name: "accepted", existing: existing, shopID: 2, date: "2026-03-12"},
		{name: "today is allowed", existing: existing, shopID: 1, date: "2026-03-10"},
		{name: "missing date", existing: existing, shopID: 1, date: "", wantErr: ErrDateRequired},
		{name: "missing shop", existing: existing, shopID: 0, date: "2026-03-12", wantErr: ErrShopRequired},
		{name: "yesterday", existing: existing, shopID: 2, date: "2026-03-09", wantErr: ErrInvalidDate},
		{name: "malformed", existing: existing, shopID: 2, date: "03/12/2026", wantErr: ErrMalformedDate},
		{name: "duplicate pair", existing: existing, shopID: 1, date: "2026-03-12", wantErr: ErrDuplicateReservation},
		{name: "padded duplicate", existing: existing, shopID: 1, date: " 2026-03-12\t", wantErr: ErrDuplicateReservation},
		{name: "padded date stored trimmed", existing: existing, shopID: 3, date: " 2026-03-12 ", wantDate: "2026-03-12"},
		{name: "blank date", existing: existing, shopID: 1, date: "   ", wantErr: ErrDateRequired},
		{
			name: "capacity checked before date",
			existing: []Reservation{
				{ID: "a", Shop: catalog.Shop{ID: 1}, Date: "2026-03-12"},
				{ID: "b", Shop: catalog.Shop{ID: 2}, Date: "2026-03-12"},
				{ID: "c", Shop: catalog.Shop{ID: 3}, Date: "2026-03-12"},
			},
			shopID:  4,
			date:    "2020-01-01",
			wantErr: ErrCapacityExceeded,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := fixedValidator(now)
			var s catalog.Shop
			if tt.shopID != 0 {
				s = shop(t, tt.shopID)
			}

			got, err := v.Validate(tt.existing, s, tt.date)
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Empty(t, got.ID)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "r-1", got.ID)
			assert.Equal(t, StatusPending, got.Status)
			wantDate := tt.date
			if tt.wantDate != "" {
				wantDate = tt.wantDate
			}
			assert.Equal(t, wantDate, got.Date)
			assert.Equal(t, s, got.Shop)
		})
	}
}

func TestValidator_ValidateEdit(t *testing.T) {
	now := time.Date(2026, 3, 10, 0, 0, 1, 0, time.Local)
	v := fixedValidator(now)
	current := Reservation{ID: "x", Shop: shop(t, 1), Date: "2026-04-01", Status: StatusConfirmed}

	t.Run("resets status and keeps id", func(t *testing.T) {
		got, err := v.ValidateEdit(current, shop(t, 2), "2026-04-02")
		require.NoError(t, err)
		assert.Equal(t, "x", got.ID)
		assert.Equal(t, 2, got.Shop.ID)
		assert.Equal(t, "2026-04-02", got.Date)
		assert.Equal(t, StatusPending, got.Status)
	})

	t.Run("unchanged fields still reset status", func(t *testing.T) {
		got, err := v.ValidateEdit(current, current.Shop, current.Date)
		require.NoError(t, err)
		assert.Equal(t, StatusPending, got.Status)
	})

	t.Run("padded date is trimmed", func(t *testing.T) {
		got, err := v.ValidateEdit(current, current.Shop, " 2026-04-03 ")
		require.NoError(t, err)
		assert.Equal(t, "2026-04-03", got.Date)
	})

	t.Run("past date", func(t *testing.T) {
		_, err := v.ValidateEdit(current, current.Shop, "2026-03-09")
		assert.ErrorIs(t, err, ErrInvalidDate)
	})

	t.Run("requires shop and date", func(t *testing.T) {
		_, err := v.ValidateEdit(current, catalog.Shop{}, "2026-04-02")
		assert.ErrorIs(t, err, ErrShopRequired)
		_, err = v.ValidateEdit(current, current.Shop, "")
		assert.ErrorIs(t, err, ErrDateRequired)
	})
}

func TestCapacityError(t *testing.T) {
	err := fmt.Errorf("add: %w", &CapacityError{Limit: 5})
	assert.True(t, errors.Is(err, ErrCapacityExceeded))
	assert.Equal(t, "You can only reserve up to 5 queues.", Reason(err))
}

func TestReason(t *testing.T) {
	assert.Equal(t, "", Reason(nil))
	assert.Equal(t, "Cannot reserve for a date in the past.", Reason(fmt.Errorf("%w: x", ErrInvalidDate)))
	assert.Equal(t, "Please enter the date as YYYY-MM-DD.", Reason(fmt.Errorf("%w: x", ErrMalformedDate)))
	assert.Equal(t, "You already have a reservation at this shop on this date.", Reason(ErrDuplicateReservation))
	assert.Equal(t, "boom", Reason(errors.New("boom")))
}

func TestParseStatus(t *testing.T) {
	for in, want := range map[string]Status{
		"pending":   StatusPending,
		"Confirmed": StatusConfirmed,
		"CANCELLED": StatusCancelled,
		"canceled":  StatusCancelled,
	} {
		got, err := ParseStatus(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got)
	}
	_, err := ParseStatus("finished")
	assert.Error(t, err)
}

func TestFormatDate(t *testing.T) {
	assert.Equal(t, "Friday, May 1, 2026", FormatDate("2026-05-01"))
	assert.Equal(t, "soon", FormatDate("soon"))
}
