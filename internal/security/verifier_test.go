package security

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/chirper/backend/domain"
	"github.com/chirper/backend/repository"
)

type stubUserRepo struct {
	user *domain.User
}

func (s *stubUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	if s.user != nil && s.user.Email == email {
		return s.user, nil
	}
	return nil, domain.ErrUserNotFound
}

func (s *stubUserRepo) GetAuthByEmail(context.Context, string) (*domain.AuthUser, error) {
	return nil, domain.ErrUserNotFound
}
func (s *stubUserRepo) GetCommonByEmail(context.Context, string) (*domain.CommonUser, error) {
	return nil, domain.ErrUserNotFound
}
func (s *stubUserRepo) GetCommonByActivationCode(context.Context, string) (*domain.CommonUser, error) {
	return nil, domain.ErrUserNotFound
}
func (s *stubUserRepo) GetAuthByResetCode(context.Context, string) (*domain.AuthUser, error) {
	return nil, domain.ErrUserNotFound
}
func (s *stubUserRepo) Create(context.Context, *domain.User) error            { return nil }
func (s *stubUserRepo) UpdatePending(context.Context, int64, repository.PendingUpdate) error {
	return nil
}
func (s *stubUserRepo) UpdateActivationCode(context.Context, int64, string) error { return nil }
func (s *stubUserRepo) UpdateResetCode(context.Context, int64, string) error      { return nil }
func (s *stubUserRepo) UpdatePassword(context.Context, int64, string) error       { return nil }
func (s *stubUserRepo) MarkActive(context.Context, int64) error                   { return nil }
func (s *stubUserRepo) GetPasswordHashByID(context.Context, int64) (string, error) {
	return "", domain.ErrUserNotFound
}

func TestAuthenticate(t *testing.T) {
	hasher := NewPasswordHasher(4)
	hash, err := hasher.Hash("secret123")
	if err != nil {
		t.Fatalf("Hash() error = %v", err)
	}

	active := &domain.User{Email: "jack@example.com", Active: true, PasswordHash: hash}
	inactive := &domain.User{Email: "pending@example.com", Active: false, PasswordHash: hash}
	passwordless := &domain.User{Email: "fresh@example.com", Active: true}

	cases := []struct {
		name     string
		user     *domain.User
		email    string
		password string
		wantErr  bool
	}{
		{"correct credentials", active, "jack@example.com", "secret123", false},
		{"wrong password", active, "jack@example.com", "wrong", true},
		{"unknown email", active, "ghost@example.com", "secret123", true},
		{"inactive account", inactive, "pending@example.com", "secret123", true},
		{"no password set", passwordless, "fresh@example.com", "secret123", true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			v := NewCredentialVerifier(&stubUserRepo{user: tc.user}, hasher, zap.NewNop())
			err := v.Authenticate(context.Background(), tc.email, tc.password)
			if tc.wantErr {
				if !errors.Is(err, ErrAuthenticationFailed) {
					t.Fatalf("Authenticate() error = %v, want ErrAuthenticationFailed", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Authenticate() error = %v", err)
			}
		})
	}
}
