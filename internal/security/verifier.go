package security

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/chirper/backend/repository"
)

// ErrAuthenticationFailed covers every verification failure: unknown email,
// inactive account, missing password, or a wrong password. Callers must not
// distinguish between these cases.
var ErrAuthenticationFailed = errors.New("security: authentication failed")

// CredentialVerifier validates email/password pairs against the user store.
type CredentialVerifier struct {
	users  repository.UserRepository
	hasher *PasswordHasher
	logger *zap.Logger
}

// NewCredentialVerifier builds a verifier on top of the user repository.
func NewCredentialVerifier(users repository.UserRepository, hasher *PasswordHasher, logger *zap.Logger) *CredentialVerifier {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CredentialVerifier{
		users:  users,
		hasher: hasher,
		logger: logger,
	}
}

// Authenticate succeeds only for an active account whose stored hash matches
// the given password. Every failure collapses into ErrAuthenticationFailed.
func (v *CredentialVerifier) Authenticate(ctx context.Context, email, password string) error {
	user, err := v.users.GetByEmail(ctx, email)
	if err != nil {
		v.logger.Debug("credential check failed", zap.String("reason", "lookup"), zap.Error(err))
		return ErrAuthenticationFailed
	}
	if !user.Active || user.PasswordHash == "" {
		v.logger.Debug("credential check failed", zap.String("reason", "inactive account"))
		return ErrAuthenticationFailed
	}
	if err := v.hasher.Compare(password, user.PasswordHash); err != nil {
		v.logger.Debug("credential check failed", zap.String("reason", "password"))
		return ErrAuthenticationFailed
	}
	return nil
}
