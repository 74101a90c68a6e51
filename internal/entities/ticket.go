package entities

import "time"

// Ticket is a reservation record as the REST API sees it. The API also calls
// it an appointment; both routes share this shape.
type Ticket struct {
	ID        string    `json:"_id"`
	User      string    `json:"user"`
	Hospital  Hospital  `json:"hospital"`
	Date      string    `json:"date"`
	Status    string    `json:"status"` // Pending, Confirmed, Cancelled
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type Appointment = Ticket
