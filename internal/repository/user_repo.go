package repository

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"reservequeue/internal/db"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var ErrEmailTaken = errors.New("user already exists")

type UserRepository interface {
	// GetByEmail returns nil and no error when no user matches.
	GetByEmail(email string) (*db.User, error)
	GetByID(id string) (*db.User, error)
	CreateNewUser(name, email, password string) (*db.User, error)
}

type userRepository struct {
	mu      sync.RWMutex
	byEmail map[string]*db.User
	byID    map[string]*db.User
}

func NewUserRepository() UserRepository {
	return &userRepository{
		byEmail: make(map[string]*db.User),
		byID:    make(map[string]*db.User),
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (r *userRepository) GetByEmail(email string) (*db.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	u, ok := r.byEmail[normalizeEmail(email)]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (r *userRepository) GetByID(id string) (*db.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	u, ok := r.byID[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (r *userRepository) CreateNewUser(name, email, password string) (*db.User, error) {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	key := normalizeEmail(email)
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.byEmail[key]; exists {
		return nil, ErrEmailTaken
	}
	u := &db.User{
		ID:           uuid.NewString(),
		Name:         name,
		Email:        key,
		PasswordHash: string(hashedPassword),
		CreatedAt:    time.Now(),
	}
	r.byEmail[key] = u
	r.byID[u.ID] = u

	cp := *u
	return &cp, nil
}
