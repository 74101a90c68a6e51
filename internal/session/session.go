// Package session holds the logged-in user for the console. A Session is
// created once at start, filled by Login or Register and emptied by Logout;
// the value survives restarts through a Store.
package session

import (
	"context"
	"errors"
	"fmt"

	"reservequeue/internal/entities"

	"github.com/sirupsen/logrus"
)

var ErrNotAuthenticated = errors.New("not logged in")

// State is what gets persisted between runs.
type State struct {
	UserID string `json:"id"`
	User   string `json:"user"`
	Email  string `json:"email"`
	Token  string `json:"token"`
}

type Store interface {
	// Load returns nil and no error when nothing is stored.
	Load(ctx context.Context) (*State, error)
	Save(ctx context.Context, st State) error
	Clear(ctx context.Context) error
}

// Authenticator is the part of the API gateway a Session needs.
type Authenticator interface {
	Login(ctx context.Context, req entities.LoginRequest) (*entities.AuthResponse, error)
	Register(ctx context.Context, req entities.RegisterRequest) (*entities.AuthResponse, error)
}

type Session struct {
	auth  Authenticator
	store Store
	state *State
}

func New(auth Authenticator, store Store) *Session {
	if store == nil {
		store = NewMemoryStore()
	}
	return &Session{auth: auth, store: store}
}

// Restore reloads a previously saved session, if any.
func (s *Session) Restore(ctx context.Context) error {
	st, err := s.store.Load(ctx)
	if err != nil {
		return fmt.Errorf("restore session: %w", err)
	}
	if st == nil || st.User == "" {
		s.state = nil
		return nil
	}
	s.state = st
	logrus.WithField("user", st.User).Debug("session restored")
	return nil
}

func (s *Session) Login(ctx context.Context, email, password string) error {
	resp, err := s.auth.Login(ctx, entities.LoginRequest{Email: email, Password: password})
	if err != nil {
		return fmt.Errorf("login: %w", err)
	}
	return s.begin(ctx, resp)
}

func (s *Session) Register(ctx context.Context, name, email, password string) error {
	resp, err := s.auth.Register(ctx, entities.RegisterRequest{Name: name, Email: email, Password: password})
	if err != nil {
		return fmt.Errorf("register: %w", err)
	}
	return s.begin(ctx, resp)
}

func (s *Session) begin(ctx context.Context, resp *entities.AuthResponse) error {
	if resp == nil || resp.Name == "" {
		return errors.New("auth response has no user name")
	}
	st := State{UserID: resp.ID, User: resp.Name, Email: resp.Email, Token: resp.Token}
	if err := s.store.Save(ctx, st); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	s.state = &st
	logrus.WithField("user", st.User).Info("logged in")
	return nil
}

// Logout forgets the user in memory and in the store. Logging out twice is
// not an error.
func (s *Session) Logout(ctx context.Context) error {
	user := s.User()
	s.state = nil
	if err := s.store.Clear(ctx); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	if user != "" {
		logrus.WithField("user", user).Info("logged out")
	}
	return nil
}

func (s *Session) Authenticated() bool {
	return s.state != nil
}

func (s *Session) User() string {
	if s.state == nil {
		return ""
	}
	return s.state.User
}

func (s *Session) Token() string {
	if s.state == nil {
		return ""
	}
	return s.state.Token
}

// Require returns the token, or ErrNotAuthenticated.
func (s *Session) Require() (string, error) {
	if s.state == nil {
		return "", ErrNotAuthenticated
	}
	return s.state.Token, nil
}
