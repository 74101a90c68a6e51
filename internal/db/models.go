package db

import "time"

// User is an account of the mock API.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}

// Ticket is one stored reservation. Date is kept as YYYY-MM-DD.
type Ticket struct {
	ID         string
	UserID     string
	HospitalID int
	Date       string
	Status     string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
