package service

import (
	"fmt"
	"sync"
	"time"

	"reservequeue/internal/catalog"
	"reservequeue/internal/db"
	"reservequeue/internal/entities"
	"reservequeue/internal/repository"
	"reservequeue/internal/reservation"

	"github.com/sirupsen/logrus"
)

// TicketService applies the reservation rules to each user's tickets. The
// same Validator backs the console client.
type TicketService struct {
	Repo      repository.TicketRepository
	Hospitals *repository.HospitalRepository
	Validator *reservation.Validator
	Now       func() time.Time

	// serializes check-then-write so one user cannot race past the limit
	mu sync.Mutex
}

func NewTicketService(repo repository.TicketRepository, hospitals *repository.HospitalRepository, v *reservation.Validator) *TicketService {
	if v == nil {
		v = reservation.NewValidator()
	}
	return &TicketService{Repo: repo, Hospitals: hospitals, Validator: v, Now: time.Now}
}

func (s *TicketService) ListTickets(userID string) ([]entities.Ticket, error) {
	rows, err := s.Repo.ListByUser(userID)
	if err != nil {
		return nil, fmt.Errorf("list tickets: %w", err)
	}
	out := make([]entities.Ticket, 0, len(rows))
	for _, row := range rows {
		out = append(out, s.toEntity(row))
	}
	return out, nil
}

// GetTicket hides tickets of other users behind ErrTicketNotFound.
func (s *TicketService) GetTicket(userID, id string) (*entities.Ticket, error) {
	row, err := s.owned(userID, id)
	if err != nil {
		return nil, err
	}
	t := s.toEntity(*row)
	return &t, nil
}

func (s *TicketService) CreateTicket(userID string, hospitalID int, date string) (*entities.Ticket, error) {
	shop, err := s.Hospitals.Get(hospitalID)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.Repo.ListByUser(userID)
	if err != nil {
		return nil, fmt.Errorf("list tickets: %w", err)
	}
	draft, err := s.Validator.Validate(s.toReservations(rows), shop, date)
	if err != nil {
		return nil, err
	}

	now := s.Now()
	row := db.Ticket{
		ID:         draft.ID,
		UserID:     userID,
		HospitalID: draft.Shop.ID,
		Date:       draft.Date,
		Status:     string(draft.Status),
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := s.Repo.Insert(row); err != nil {
		return nil, fmt.Errorf("insert ticket: %w", err)
	}
	logrus.WithFields(logrus.Fields{
		"ticket_id": row.ID,
		"user_id":   userID,
		"hospital":  row.HospitalID,
		"date":      row.Date,
	}).Info("ticket created")

	t := s.toEntity(row)
	return &t, nil
}

// UpdateTicket moves a ticket to another hospital and/or date. Only the date
// rule is checked again and the status always goes back to Pending.
func (s *TicketService) UpdateTicket(userID, id string, req entities.TicketUpdateRequest) (*entities.Ticket, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	row, err := s.owned(userID, id)
	if err != nil {
		return nil, err
	}
	hospitalID := req.Hospital
	if hospitalID == 0 {
		hospitalID = row.HospitalID
	}
	shop, err := s.Hospitals.Get(hospitalID)
	if err != nil {
		return nil, err
	}

	edited, err := s.Validator.ValidateEdit(s.toReservation(*row), shop, req.Date)
	if err != nil {
		return nil, err
	}
	row.HospitalID = edited.Shop.ID
	row.Date = edited.Date
	row.Status = string(edited.Status)
	row.UpdatedAt = s.Now()
	if err := s.Repo.Update(*row); err != nil {
		return nil, fmt.Errorf("update ticket: %w", err)
	}
	logrus.WithFields(logrus.Fields{"ticket_id": id, "user_id": userID}).Info("ticket updated")

	t := s.toEntity(*row)
	return &t, nil
}

func (s *TicketService) DeleteTicket(userID, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.owned(userID, id); err != nil {
		return err
	}
	if err := s.Repo.Delete(id); err != nil {
		return fmt.Errorf("delete ticket: %w", err)
	}
	logrus.WithFields(logrus.Fields{"ticket_id": id, "user_id": userID}).Info("ticket deleted")
	return nil
}

func (s *TicketService) owned(userID, id string) (*db.Ticket, error) {
	row, err := s.Repo.Get(id)
	if err != nil {
		return nil, err
	}
	if row.UserID != userID {
		return nil, fmt.Errorf("%w: %s", repository.ErrTicketNotFound, id)
	}
	return row, nil
}

func (s *TicketService) shop(id int) catalog.Shop {
	shop, err := s.Hospitals.Get(id)
	if err != nil {
		return catalog.Shop{ID: id}
	}
	return shop
}

func (s *TicketService) toReservation(row db.Ticket) reservation.Reservation {
	status, err := reservation.ParseStatus(row.Status)
	if err != nil {
		status = reservation.StatusPending
	}
	return reservation.Reservation{ID: row.ID, Shop: s.shop(row.HospitalID), Date: row.Date, Status: status}
}

func (s *TicketService) toReservations(rows []db.Ticket) []reservation.Reservation {
	out := make([]reservation.Reservation, 0, len(rows))
	for _, row := range rows {
		out = append(out, s.toReservation(row))
	}
	return out
}

func (s *TicketService) toEntity(row db.Ticket) entities.Ticket {
	return entities.Ticket{
		ID:        row.ID,
		User:      row.UserID,
		Hospital:  catalog.ToHospital(s.shop(row.HospitalID)),
		Date:      row.Date,
		Status:    row.Status,
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}
}
