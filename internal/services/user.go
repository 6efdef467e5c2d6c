package services

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/dreamshare/dreams-backend/internal/auth"
	"github.com/dreamshare/dreams-backend/internal/model"
	"github.com/dreamshare/dreams-backend/internal/store"
)

// defaultAvatarImage is assigned to every new account; there is no avatar
// upload in this API.
const defaultAvatarImage = "http://images.unsplash.com/photo-1517519902248-8b2b71ef7da3?crop=entropy&cs=tinysrgb&fit=max&fm=jpg&ixid=MXwxMjA3fDB8MXxhbGx8fHx8fHx8fA&ixlib=rb-1.2.1&q=80&w=1080"

// Session is what successful signup/login hands back to the client.
type Session struct {
	UserID string `json:"userId"`
	Email  string `json:"email"`
	Token  string `json:"token"`
}

// UserService handles accounts and credential checks.
type UserService struct {
	store      store.Store
	auth       *auth.Authenticator
	bcryptCost int
}

func NewUserService(s store.Store, a *auth.Authenticator, bcryptCost int) *UserService {
	return &UserService{store: s, auth: a, bcryptCost: bcryptCost}
}

// Signup registers a new account with an empty dreams list and returns a
// fresh session. Duplicate emails conflict.
func (s *UserService) Signup(ctx context.Context, name, email, password string) (*Session, error) {
	_, err := s.store.Users().GetByEmail(ctx, email)
	switch {
	case err == nil:
		return nil, fmt.Errorf("user exists already, please login instead: %w", model.ErrConflict)
	case !errors.Is(err, model.ErrNotFound):
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	u, err := s.store.Users().Create(ctx, &model.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		Image:        defaultAvatarImage,
		Dreams:       []string{},
	})
	if err != nil {
		return nil, err
	}

	token, err := s.auth.IssueToken(u.ID, u.Email)
	if err != nil {
		return nil, err
	}
	return &Session{UserID: u.ID, Email: u.Email, Token: token}, nil
}

// Login checks the credentials and returns a fresh session. Unknown email
// and wrong password are deliberately indistinguishable to the caller.
func (s *UserService) Login(ctx context.Context, email, password string) (*Session, error) {
	u, err := s.store.Users().GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, errInvalidCredentials()
		}
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return nil, errInvalidCredentials()
	}

	token, err := s.auth.IssueToken(u.ID, u.Email)
	if err != nil {
		return nil, err
	}
	return &Session{UserID: u.ID, Email: u.Email, Token: token}, nil
}

// List returns all accounts. Password hashes never serialize.
func (s *UserService) List(ctx context.Context) ([]*model.User, error) {
	return s.store.Users().List(ctx)
}

func errInvalidCredentials() error {
	return fmt.Errorf("invalid credentials, could not log you in: %w", model.ErrUnauthorized)
}
