package repository

import (
	"context"

	"github.com/chirper/backend/domain"
)

// PendingUpdate carries the fields overwritten when an inactive account
// re-enters the registration flow.
type PendingUpdate struct {
	Username string
	FullName string
	Birthday string
}

type UserRepository interface {
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetAuthByEmail(ctx context.Context, email string) (*domain.AuthUser, error)
	GetCommonByEmail(ctx context.Context, email string) (*domain.CommonUser, error)
	GetCommonByActivationCode(ctx context.Context, code string) (*domain.CommonUser, error)
	GetAuthByResetCode(ctx context.Context, code string) (*domain.AuthUser, error)
	Create(ctx context.Context, user *domain.User) error
	UpdatePending(ctx context.Context, id int64, update PendingUpdate) error
	UpdateActivationCode(ctx context.Context, id int64, code string) error
	UpdateResetCode(ctx context.Context, id int64, code string) error
	UpdatePassword(ctx context.Context, id int64, passwordHash string) error
	MarkActive(ctx context.Context, id int64) error
	GetPasswordHashByID(ctx context.Context, id int64) (string, error)
}
