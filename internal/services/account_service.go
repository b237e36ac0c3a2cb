package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/mail"
	"strings"
	"time"

	"aurum/internal/auth"
	"aurum/internal/storage"

	"github.com/google/uuid"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrWeakPassword       = errors.New("password must be at least 8 characters")
	ErrInvalidEmail       = errors.New("invalid email address")
)

// UserStore is the slice of storage the account service needs.
type UserStore interface {
	CreateUser(ctx context.Context, u storage.User) error
	FindUserByEmail(ctx context.Context, email string) (storage.User, error)
	FindUserByID(ctx context.Context, id string) (storage.User, error)
}

// AccountService handles registration and login, issuing bearer tokens.
type AccountService struct {
	store UserStore
	auth  *auth.Manager
}

func NewAccountService(store UserStore, manager *auth.Manager) *AccountService {
	return &AccountService{
		store: store,
		auth:  manager,
	}
}

func (s *AccountService) Register(ctx context.Context, email, password, name string) (storage.User, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if _, err := mail.ParseAddress(email); err != nil {
		return storage.User{}, "", ErrInvalidEmail
	}
	if len(password) < 8 {
		return storage.User{}, "", ErrWeakPassword
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return storage.User{}, "", fmt.Errorf("hash password: %w", err)
	}

	user := storage.User{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: hash,
		Name:         strings.TrimSpace(name),
	}
	if err := s.store.CreateUser(ctx, user); err != nil {
		return storage.User{}, "", err
	}

	token, err := s.auth.IssueToken(user.ID, time.Now())
	if err != nil {
		return storage.User{}, "", fmt.Errorf("issue token: %w", err)
	}

	return user, token, nil
}

func (s *AccountService) Login(ctx context.Context, email, password string) (storage.User, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := s.store.FindUserByEmail(ctx, email)
	if errors.Is(err, storage.ErrNotFound) {
		// Same error as a wrong password so the response does not reveal
		// which accounts exist.
		return storage.User{}, "", ErrInvalidCredentials
	}
	if err != nil {
		return storage.User{}, "", err
	}

	if err := auth.CheckPassword(user.PasswordHash, password); err != nil {
		slog.InfoContext(ctx, "Rejected login", "email", email)
		return storage.User{}, "", ErrInvalidCredentials
	}

	token, err := s.auth.IssueToken(user.ID, time.Now())
	if err != nil {
		return storage.User{}, "", fmt.Errorf("issue token: %w", err)
	}

	return user, token, nil
}

func (s *AccountService) GetUser(ctx context.Context, id string) (storage.User, error) {
	return s.store.FindUserByID(ctx, id)
}

// VerifyToken resolves a bearer token to the user id it was issued for.
func (s *AccountService) VerifyToken(token string) (string, error) {
	return s.auth.VerifyToken(token)
}
