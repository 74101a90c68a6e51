package reservation

import (
	"fmt"
	"strings"
	"time"

	"reservequeue/internal/catalog"
)

type Status string

const (
	StatusPending   Status = "Pending"
	StatusConfirmed Status = "Confirmed"
	StatusCancelled Status = "Cancelled"
)

// ParseStatus accepts any casing of a known status.
func ParseStatus(s string) (Status, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "pending":
		return StatusPending, nil
	case "confirmed":
		return StatusConfirmed, nil
	case "cancelled", "canceled":
		return StatusCancelled, nil
	}
	return "", fmt.Errorf("unknown reservation status %q", s)
}

// DateLayout is the day-granularity format reservation dates are kept in.
const DateLayout = "2006-01-02"

// Reservation is a user's booking of a shop for one calendar day.
type Reservation struct {
	ID     string
	Shop   catalog.Shop
	Date   string
	Status Status
}

// Day parses the reservation date as local midnight.
func (r Reservation) Day() (time.Time, error) {
	return ParseDate(r.Date)
}

func ParseDate(date string) (time.Time, error) {
	return time.ParseInLocation(DateLayout, strings.TrimSpace(date), time.Local)
}

// FormatDate renders a date the long way, e.g. "Friday, May 1, 2026".
// Unparseable input is returned as is.
func FormatDate(date string) string {
	d, err := ParseDate(date)
	if err != nil {
		return date
	}
	return d.Format("Monday, January 2, 2006")
}
