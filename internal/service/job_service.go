package service

import (
	"fmt"
	"time"

	"reservequeue/internal/repository"
	"reservequeue/internal/reservation"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

type JobService struct {
	Repo repository.TicketRepository
	Now  func() time.Time
}

func NewJobService(repo repository.TicketRepository) *JobService {
	return &JobService{Repo: repo, Now: time.Now}
}

// ConfirmPendingTickets marks tickets that have stayed Pending for longer
// than after as Confirmed. It stands in for staff accepting a booking.
func (s *JobService) ConfirmPendingTickets(after time.Duration) (int, error) {
	log := logrus.WithField("job", "confirm_pending")
	log.Debug("checking for tickets to confirm")

	cutoff := s.Now().Add(-after)
	ids, err := s.Repo.GetPendingTicketIDsCreatedBefore(cutoff)
	if err != nil {
		return 0, fmt.Errorf("cron job: failed to get pending tickets: %w", err)
	}
	if len(ids) == 0 {
		log.Debug("no pending tickets to confirm")
		return 0, nil
	}

	n, err := s.Repo.UpdateTicketStatuses(ids, string(reservation.StatusPending), string(reservation.StatusConfirmed), cutoff)
	if err != nil {
		return 0, fmt.Errorf("cron job: failed to update ticket statuses: %w", err)
	}
	log.WithFields(logrus.Fields{"count": n, "ids": ids}).Info("confirmed pending tickets")
	return n, nil
}

// Schedule registers the confirmation job on c. The caller starts and stops c.
func (s *JobService) Schedule(c *cron.Cron, spec string, after time.Duration) (cron.EntryID, error) {
	id, err := c.AddFunc(spec, func() {
		if _, err := s.ConfirmPendingTickets(after); err != nil {
			logrus.WithError(err).Error("confirm pending tickets")
		}
	})
	if err != nil {
		return 0, fmt.Errorf("schedule %q: %w", spec, err)
	}
	return id, nil
}
