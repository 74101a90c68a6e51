package catalog

import (
	"errors"
	"fmt"
)

// ErrShopNotFound is returned when an identifier is not in the catalog.
var ErrShopNotFound = errors.New("shop not found")

// Shop is a bookable location. Records are reference data and never change.
type Shop struct {
	ID        int    `json:"id"`
	Name      string `json:"name"`
	Address   string `json:"address"`
	Telephone string `json:"telephone"`
	Hours     string `json:"hours"`
}

func (s Shop) IsZero() bool {
	return s.ID == 0
}

func (s Shop) String() string {
	return fmt.Sprintf("%d. %s (%s, %s, %s)", s.ID, s.Name, s.Address, s.Telephone, s.Hours)
}

var builtin = []Shop{
	{ID: 1, Name: "Relax Spa", Address: "123 Wellness St.", Telephone: "123-456-7890", Hours: "9:00 AM - 9:00 PM"},
	{ID: 2, Name: "Serenity Massage", Address: "456 Peace Rd.", Telephone: "987-654-3210", Hours: "10:00 AM - 8:00 PM"},
	{ID: 3, Name: "Tranquil Touch", Address: "789 Calm Blvd.", Telephone: "555-123-4567", Hours: "11:00 AM - 7:00 PM"},
	{ID: 4, Name: "Healing Hands", Address: "321 Therapy Ave.", Telephone: "222-333-4444", Hours: "8:00 AM - 6:00 PM"},
}

// BuiltinShops returns a copy of the four fixed shop records.
func BuiltinShops() []Shop {
	out := make([]Shop, len(builtin))
	copy(out, builtin)
	return out
}
