package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"aurum/internal/auth"
	"aurum/internal/storage"
)

type fakeUserStore struct {
	users map[string]storage.User // keyed by email
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: map[string]storage.User{}}
}

func (f *fakeUserStore) CreateUser(_ context.Context, u storage.User) error {
	if _, ok := f.users[u.Email]; ok {
		return storage.ErrEmailTaken
	}
	f.users[u.Email] = u
	return nil
}

func (f *fakeUserStore) FindUserByEmail(_ context.Context, email string) (storage.User, error) {
	u, ok := f.users[email]
	if !ok {
		return storage.User{}, storage.ErrNotFound
	}
	return u, nil
}

func (f *fakeUserStore) FindUserByID(_ context.Context, id string) (storage.User, error) {
	for _, u := range f.users {
		if u.ID == id {
			return u, nil
		}
	}
	return storage.User{}, storage.ErrNotFound
}

func newTestAccountService() (*AccountService, *fakeUserStore) {
	store := newFakeUserStore()
	manager := auth.NewManager("test-secret-at-least-32-bytes-long!!", time.Hour)
	return NewAccountService(store, manager), store
}

func TestAccountService_RegisterAndLogin(t *testing.T) {
	svc, _ := newTestAccountService()
	ctx := context.Background()

	user, token, err := svc.Register(ctx, "Ada@Example.com", "correct horse", "Ada")
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	if token == "" {
		t.Error("expected a token on registration")
	}
	if user.Email != "ada@example.com" {
		t.Errorf("email = %q, want lowercased", user.Email)
	}
	if user.PasswordHash == "correct horse" {
		t.Error("password stored in plaintext")
	}

	got, loginToken, err := svc.Login(ctx, "ada@example.com", "correct horse")
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	if got.ID != user.ID || loginToken == "" {
		t.Errorf("login returned wrong user or empty token")
	}

	id, err := svc.VerifyToken(loginToken)
	if err != nil || id != user.ID {
		t.Errorf("VerifyToken() = %q, %v; want %q", id, err, user.ID)
	}
}

func TestAccountService_RegisterValidation(t *testing.T) {
	svc, _ := newTestAccountService()
	ctx := context.Background()

	if _, _, err := svc.Register(ctx, "not-an-email", "long enough pw", "X"); !errors.Is(err, ErrInvalidEmail) {
		t.Errorf("error = %v, want ErrInvalidEmail", err)
	}
	if _, _, err := svc.Register(ctx, "a@b.com", "short", "X"); !errors.Is(err, ErrWeakPassword) {
		t.Errorf("error = %v, want ErrWeakPassword", err)
	}
}

func TestAccountService_RegisterDuplicate(t *testing.T) {
	svc, _ := newTestAccountService()
	ctx := context.Background()

	if _, _, err := svc.Register(ctx, "a@b.com", "long enough pw", "X"); err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	if _, _, err := svc.Register(ctx, "a@b.com", "long enough pw", "Y"); !errors.Is(err, storage.ErrEmailTaken) {
		t.Errorf("error = %v, want ErrEmailTaken", err)
	}
}

func TestAccountService_LoginFailures(t *testing.T) {
	svc, _ := newTestAccountService()
	ctx := context.Background()

	if _, _, err := svc.Register(ctx, "a@b.com", "long enough pw", "X"); err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	if _, _, err := svc.Login(ctx, "a@b.com", "wrong password"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("wrong password: error = %v, want ErrInvalidCredentials", err)
	}
	if _, _, err := svc.Login(ctx, "nobody@b.com", "long enough pw"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("unknown user: error = %v, want ErrInvalidCredentials", err)
	}
}
