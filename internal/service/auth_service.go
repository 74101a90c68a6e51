package service

import (
	"errors"
	"fmt"
	"strings"

	"reservequeue/internal/auth"
	"reservequeue/internal/db"
	"reservequeue/internal/entities"
	"reservequeue/internal/repository"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrMissingFields is returned when a register field is blank after trimming.
	ErrMissingFields = errors.New("name, email and password cannot be empty")
)

type AuthService interface {
	Register(req entities.RegisterRequest) (*entities.AuthResponse, error)
	Login(email, password string) (*entities.AuthResponse, error)
	Exists(userID string) (bool, error)
}

type authService struct {
	repo   repository.UserRepository
	tokens *auth.Tokens
}

func NewAuthService(repo repository.UserRepository, tokens *auth.Tokens) AuthService {
	return &authService{repo: repo, tokens: tokens}
}

func (s *authService) Register(req entities.RegisterRequest) (*entities.AuthResponse, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" || req.Email == "" || req.Password == "" {
		return nil, ErrMissingFields
	}
	user, err := s.repo.CreateNewUser(name, req.Email, req.Password)
	if err != nil {
		return nil, err
	}
	logrus.WithFields(logrus.Fields{"user_id": user.ID, "email": user.Email}).Info("user registered")
	return s.respond(user)
}

func (s *authService) Login(email, password string) (*entities.AuthResponse, error) {
	user, err := s.repo.GetByEmail(email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return s.respond(user)
}

// Exists backs the bearer middleware. Tokens outlive the in-memory users, so
// a token from before a restart must not reach the ticket handlers.
func (s *authService) Exists(userID string) (bool, error) {
	user, err := s.repo.GetByID(userID)
	if err != nil {
		return false, err
	}
	return user != nil, nil
}

func (s *authService) respond(user *db.User) (*entities.AuthResponse, error) {
	token, err := s.tokens.Issue(user.ID, user.Name)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}
	return &entities.AuthResponse{
		ID:    user.ID,
		Name:  user.Name,
		Email: user.Email,
		Token: token,
	}, nil
}
