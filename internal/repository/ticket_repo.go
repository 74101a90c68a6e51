package repository

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"reservequeue/internal/db"
	"reservequeue/internal/reservation"

	"github.com/sirupsen/logrus"
)

var ErrTicketNotFound = errors.New("ticket not found")

type TicketRepository interface {
	ListByUser(userID string) ([]db.Ticket, error)
	Get(id string) (*db.Ticket, error)
	Insert(t db.Ticket) error
	Update(t db.Ticket) error
	Delete(id string) error

	// Used by the confirmation job.
	GetPendingTicketIDsCreatedBefore(before time.Time) ([]string, error)
	UpdateTicketStatuses(ids []string, from, to string, before time.Time) (int, error)
}

// ticketRepository keeps tickets in memory, in insertion order. The mock API
// serves requests concurrently, so every access takes the lock.
type ticketRepository struct {
	mu    sync.RWMutex
	order []string
	byID  map[string]*db.Ticket
}

func NewTicketRepository() TicketRepository {
	return &ticketRepository{byID: make(map[string]*db.Ticket)}
}

func (r *ticketRepository) ListByUser(userID string) ([]db.Ticket, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := []db.Ticket{}
	for _, id := range r.order {
		if t := r.byID[id]; t.UserID == userID {
			out = append(out, *t)
		}
	}
	return out, nil
}

func (r *ticketRepository) Get(id string) (*db.Ticket, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.byID[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrTicketNotFound, id)
	}
	cp := *t
	return &cp, nil
}

func (r *ticketRepository) Insert(t db.Ticket) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.byID[t.ID]; exists {
		return fmt.Errorf("ticket %s already exists", t.ID)
	}
	r.byID[t.ID] = &t
	r.order = append(r.order, t.ID)
	return nil
}

func (r *ticketRepository) Update(t db.Ticket) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[t.ID]; !ok {
		return fmt.Errorf("%w: %s", ErrTicketNotFound, t.ID)
	}
	r.byID[t.ID] = &t
	return nil
}

func (r *ticketRepository) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[id]; !ok {
		return fmt.Errorf("%w: %s", ErrTicketNotFound, id)
	}
	delete(r.byID, id)
	for i, oid := range r.order {
		if oid == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

// GetPendingTicketIDsCreatedBefore returns pending tickets created (or last
// edited) before the given time.
func (r *ticketRepository) GetPendingTicketIDsCreatedBefore(before time.Time) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var ids []string
	for _, id := range r.order {
		t := r.byID[id]
		if t.Status == string(reservation.StatusPending) && t.UpdatedAt.Before(before) {
			ids = append(ids, id)
		}
	}
	return ids, nil
}

// UpdateTicketStatuses moves the listed tickets from one status to another.
// The status and the before cutoff are checked again under the write lock, so
// a ticket edited after the ids were collected is left alone.
func (r *ticketRepository) UpdateTicketStatuses(ids []string, from, to string, before time.Time) (int, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	now := time.Now()
	n := 0
	for _, id := range ids {
		t, ok := r.byID[id]
		if !ok || t.Status != from || !t.UpdatedAt.Before(before) {
			continue
		}
		t.Status = to
		t.UpdatedAt = now
		n++
	}
	logrus.WithFields(logrus.Fields{"count": n, "status": to}).Debug("updated ticket statuses")
	return n, nil
}
