package repository

import (
	"sync"
	"testing"
	"time"

	"reservequeue/internal/db"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestUserRepository(t *testing.T) {
	repo := NewUserRepository()

	u, err := repo.CreateNewUser("Ann", " Ann@Example.com ", "secret1")
	require.NoError(t, err)
	assert.NotEmpty(t, u.ID)
	assert.Equal(t, "ann@example.com", u.Email)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("secret1")))

	_, err = repo.CreateNewUser("Other", "ANN@example.com", "secret2")
	assert.ErrorIs(t, err, ErrEmailTaken)

	got, err := repo.GetByEmail("ann@EXAMPLE.com")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, u.ID, got.ID)

	got, err = repo.GetByID(u.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ann", got.Name)

	missing, err := repo.GetByEmail("nobody@example.com")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestHospitalRepository(t *testing.T) {
	repo := NewHospitalRepository(nil)
	assert.Len(t, repo.List(), 4)
	s, err := repo.Get(4)
	require.NoError(t, err)
	assert.Equal(t, "Healing Hands", s.Name)
	_, err = repo.Get(5)
	assert.Error(t, err)
}

func ticket(id, user, status string, updated time.Time) db.Ticket {
	return db.Ticket{ID: id, UserID: user, HospitalID: 1, Date: "2099-01-01", Status: status, CreatedAt: updated, UpdatedAt: updated}
}

func TestTicketRepository_CRUD(t *testing.T) {
	repo := NewTicketRepository()
	now := time.Now()

	require.NoError(t, repo.Insert(ticket("a", "u1", "Pending", now)))
	require.NoError(t, repo.Insert(ticket("b", "u2", "Pending", now)))
	require.NoError(t, repo.Insert(ticket("c", "u1", "Confirmed", now)))
	assert.Error(t, repo.Insert(ticket("a", "u1", "Pending", now)))

	list, err := repo.ListByUser("u1")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "a", list[0].ID)
	assert.Equal(t, "c", list[1].ID)

	empty, err := repo.ListByUser("nobody")
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)

	got, err := repo.Get("b")
	require.NoError(t, err)
	got.Date = "2099-02-02"
	require.NoError(t, repo.Update(*got))
	again, _ := repo.Get("b")
	assert.Equal(t, "2099-02-02", again.Date)

	require.NoError(t, repo.Delete("a"))
	_, err = repo.Get("a")
	assert.ErrorIs(t, err, ErrTicketNotFound)
	assert.ErrorIs(t, repo.Delete("a"), ErrTicketNotFound)
	assert.ErrorIs(t, repo.Update(ticket("zz", "u1", "Pending", now)), ErrTicketNotFound)

	list, _ = repo.ListByUser("u1")
	assert.Len(t, list, 1)
}

func TestTicketRepository_PendingSweep(t *testing.T) {
	repo := NewTicketRepository()
	old := time.Now().Add(-time.Hour)
	fresh := time.Now()

	require.NoError(t, repo.Insert(ticket("old-pending", "u1", "Pending", old)))
	require.NoError(t, repo.Insert(ticket("old-confirmed", "u1", "Confirmed", old)))
	require.NoError(t, repo.Insert(ticket("fresh-pending", "u1", "Pending", fresh)))

	ids, err := repo.GetPendingTicketIDsCreatedBefore(time.Now().Add(-time.Minute))
	require.NoError(t, err)
	assert.Equal(t, []string{"old-pending"}, ids)

	cutoff := time.Now().Add(-time.Minute)
	n, err := repo.UpdateTicketStatuses(append(ids, "gone", "old-confirmed", "fresh-pending"), "Pending", "Confirmed", cutoff)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	got, _ := repo.Get("old-pending")
	assert.Equal(t, "Confirmed", got.Status)
	got, _ = repo.Get("fresh-pending")
	assert.Equal(t, "Pending", got.Status)

	n, err = repo.UpdateTicketStatuses(nil, "Pending", "Confirmed", cutoff)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestTicketRepository_SweepSkipsTicketsEditedAfterCollection(t *testing.T) {
	repo := NewTicketRepository()
	require.NoError(t, repo.Insert(ticket("a", "u1", "Pending", time.Now().Add(-time.Hour))))

	cutoff := time.Now().Add(-time.Minute)
	ids, err := repo.GetPendingTicketIDsCreatedBefore(cutoff)
	require.NoError(t, err)
	require.Equal(t, []string{"a"}, ids)

	// An edit lands between collecting ids and confirming them.
	require.NoError(t, repo.Update(ticket("a", "u1", "Pending", time.Now())))

	n, err := repo.UpdateTicketStatuses(ids, "Pending", "Confirmed", cutoff)
	require.NoError(t, err)
	assert.Zero(t, n)
	got, _ := repo.Get("a")
	assert.Equal(t, "Pending", got.Status)
}

func TestTicketRepository_Concurrent(t *testing.T) {
	repo := NewTicketRepository()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			id := string(rune('A'+i%26)) + string(rune('a'+i/26))
			_ = repo.Insert(ticket(id, "u1", "Pending", time.Now()))
			_, _ = repo.ListByUser("u1")
		}(i)
	}
	wg.Wait()
	list, err := repo.ListByUser("u1")
	require.NoError(t, err)
	assert.Len(t, list, 50)
}
