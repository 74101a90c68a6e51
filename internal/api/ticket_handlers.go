package api

import (
	"net/http"
	"strconv"

	"reservequeue/internal/auth"
	"reservequeue/internal/entities"
	apperrors "reservequeue/internal/errors"
	"reservequeue/internal/service"

	"github.com/gorilla/mux"
)

// TicketHandler serves both /tickets and /appointments; they are the same
// records under two names.
type TicketHandler struct {
	Service *service.TicketService
}

func NewTicketHandler(svc *service.TicketService) *TicketHandler {
	return &TicketHandler{Service: svc}
}

func currentUser(r *http.Request) (string, error) {
	claims := auth.UserFromContext(r.Context())
	if claims == nil {
		return "", apperrors.ErrUnauthorized("Not authorized")
	}
	return claims.Subject, nil
}

func (h *TicketHandler) ListTickets(w http.ResponseWriter, r *http.Request) {
	userID, err := currentUser(r)
	if err != nil {
		writeError(w, err)
		return
	}
	tickets, err := h.Service.ListTickets(userID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, tickets)
}

func (h *TicketHandler) GetTicket(w http.ResponseWriter, r *http.Request) {
	userID, err := currentUser(r)
	if err != nil {
		writeError(w, err)
		return
	}
	ticket, err := h.Service.GetTicket(userID, mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ticket)
}

func (h *TicketHandler) CreateTicket(w http.ResponseWriter, r *http.Request) {
	userID, err := currentUser(r)
	if err != nil {
		writeError(w, err)
		return
	}
	hospitalID, err := strconv.Atoi(mux.Vars(r)["hospitalId"])
	if err != nil {
		writeError(w, apperrors.ErrBadRequest("Invalid hospital id"))
		return
	}
	var req entities.TicketRequest
	if err := decode(r, &req); err != nil {
		writeError(w, err)
		return
	}
	ticket, err := h.Service.CreateTicket(userID, hospitalID, req.Date)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, ticket)
}

func (h *TicketHandler) UpdateTicket(w http.ResponseWriter, r *http.Request) {
	userID, err := currentUser(r)
	if err != nil {
		writeError(w, err)
		return
	}
	var req entities.TicketUpdateRequest
	if err := decode(r, &req); err != nil {
		writeError(w, err)
		return
	}
	ticket, err := h.Service.UpdateTicket(userID, mux.Vars(r)["id"], req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ticket)
}

func (h *TicketHandler) DeleteTicket(w http.ResponseWriter, r *http.Request) {
	userID, err := currentUser(r)
	if err != nil {
		writeError(w, err)
		return
	}
	if err := h.Service.DeleteTicket(userID, mux.Vars(r)["id"]); err != nil {
		writeError(w, err)
		return
	}
	writeMessage(w, http.StatusOK, "Reservation cancelled")
}
