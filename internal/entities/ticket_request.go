package entities

type TicketRequest struct {
	Date string `json:"date" validate:"required"`
}

// TicketUpdateRequest moves a ticket. Hospital is optional; zero keeps the
// current one.
type TicketUpdateRequest struct {
	Hospital int    `json:"hospital,omitempty" validate:"omitempty,gt=0"`
	Date     string `json:"date" validate:"required"`
}

type MessageResponse struct {
	Message string `json:"message"`
}
