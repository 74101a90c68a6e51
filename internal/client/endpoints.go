package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"reservequeue/internal/entities"
)

// Hospitals

func (c *Client) ListHospitals(ctx context.Context) ([]entities.Hospital, error) {
	var out []entities.Hospital
	if err := c.do(ctx, http.MethodGet, "hospitals", "", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Appointments

func (c *Client) ListAppointments(ctx context.Context, token string) ([]entities.Appointment, error) {
	var out []entities.Appointment
	if err := c.do(ctx, http.MethodGet, "appointments", token, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreateAppointment(ctx context.Context, hospitalID int, req entities.TicketRequest, token string) (*entities.Appointment, error) {
	var out entities.Appointment
	path := fmt.Sprintf("hospitals/%d/appointments", hospitalID)
	if err := c.do(ctx, http.MethodPost, path, token, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteAppointment(ctx context.Context, id, token string) (*entities.MessageResponse, error) {
	var out entities.MessageResponse
	if err := c.do(ctx, http.MethodDelete, "appointments/"+url.PathEscape(id), token, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Tickets

func (c *Client) ListTickets(ctx context.Context, token string) ([]entities.Ticket, error) {
	var out []entities.Ticket
	if err := c.do(ctx, http.MethodGet, "tickets", token, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetTicket(ctx context.Context, id, token string) (*entities.Ticket, error) {
	var out entities.Ticket
	if err := c.do(ctx, http.MethodGet, "tickets/"+url.PathEscape(id), token, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateTicket(ctx context.Context, hospitalID int, req entities.TicketRequest, token string) (*entities.Ticket, error) {
	var out entities.Ticket
	path := fmt.Sprintf("hospitals/%d/tickets", hospitalID)
	if err := c.do(ctx, http.MethodPost, path, token, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateTicket(ctx context.Context, id string, req entities.TicketUpdateRequest, token string) (*entities.Ticket, error) {
	var out entities.Ticket
	if err := c.do(ctx, http.MethodPut, "tickets/"+url.PathEscape(id), token, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteTicket(ctx context.Context, id, token string) (*entities.MessageResponse, error) {
	var out entities.MessageResponse
	if err := c.do(ctx, http.MethodDelete, "tickets/"+url.PathEscape(id), token, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Auth

func (c *Client) Register(ctx context.Context, req entities.RegisterRequest) (*entities.AuthResponse, error) {
	var out entities.AuthResponse
	if err := c.do(ctx, http.MethodPost, "auth/register/", "", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Login(ctx context.Context, req entities.LoginRequest) (*entities.AuthResponse, error) {
	var out entities.AuthResponse
	if err := c.do(ctx, http.MethodPost, "auth/login", "", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
