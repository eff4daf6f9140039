package auth

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/chirper/backend/domain"
	"github.com/chirper/backend/repository"
	"github.com/chirper/backend/usecase"
)

// Confirmation strings returned by lifecycle operations. The web client
// matches on these, so they are part of the contract.
const (
	msgUserDataChecked   = "User data checked."
	msgCodeSent          = "Registration code sent successfully"
	msgUserActivated     = "User successfully activated."
	msgResetCodeSent     = "Reset password code is send to your E-mail"
	msgPasswordChanged   = "Password successfully changed!"
	msgPasswordUpdated   = "Your password has been successfully updated."
	msgLoggedOut         = "User logged out successfully."
	registrationSubject  = "Registration code"
	passwordResetSubject = "Password reset"
	registrationTemplate = "registration-template"
	resetTemplate        = "password-reset-template"
)

const minPasswordLength = 8

// AuthResult bundles a user projection with a freshly minted token.
type AuthResult struct {
	User  *domain.AuthUser `json:"user"`
	Token string           `json:"token"`
}

// Hasher is the subset of the password hasher this service needs.
type Hasher interface {
	Hash(password string) (string, error)
	Compare(password, hash string) error
}

// Service orchestrates login, registration, activation and password
// recovery. All durable state lives in the user repository; the service
// itself is stateless.
type Service struct {
	users    repository.UserRepository
	sessions repository.SessionRepository
	verifier usecase.CredentialVerifier
	tokens   usecase.TokenIssuer
	notifier usecase.Notifier
	hasher   Hasher
	codes    CodeGenerator
	logger   *zap.Logger
}

func New(
	users repository.UserRepository,
	sessions repository.SessionRepository,
	verifier usecase.CredentialVerifier,
	tokens usecase.TokenIssuer,
	notifier usecase.Notifier,
	hasher Hasher,
	logger *zap.Logger,
) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		users:    users,
		sessions: sessions,
		verifier: verifier,
		tokens:   tokens,
		notifier: notifier,
		hasher:   hasher,
		codes:    RandomCodeGenerator{},
		logger:   logger,
	}
}

// AuthenticatedUserID returns the id of the request principal.
func (s *Service) AuthenticatedUserID(principal domain.Principal) int64 {
	return principal.ID
}

// AuthenticatedUser resolves the full user record behind the request
// principal. A missing record means the deployment is misconfigured, but it
// is still surfaced as a typed not-found.
func (s *Service) AuthenticatedUser(ctx context.Context, principal domain.Principal) (*domain.User, error) {
	return s.users.GetByEmail(ctx, principal.Email)
}

// Login verifies credentials and mints a session token. Verification
// failures collapse into a single forbidden error so callers cannot probe
// which emails exist.
func (s *Service) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	if err := s.verifier.Authenticate(ctx, email, password); err != nil {
		return nil, domain.ErrBadCredentials
	}
	user, err := s.users.GetAuthByEmail(ctx, email)
	if err != nil {
		return nil, orNotFound(err, domain.ErrUserNotFound)
	}
	return s.issueToken(ctx, user)
}

// Registration is the idempotent pre-registration step. Unknown emails get a
// fresh inactive record; pending ones are overwritten so an abandoned flow
// can be retried; active accounts are rejected.
func (s *Service) Registration(ctx context.Context, email, username, birthday string) (string, error) {
	existing, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if !domain.IsDomainError(err, domain.ErrCodeNotFound) {
			return "", err
		}
		user := &domain.User{
			Email:    email,
			Username: username,
			FullName: username,
			Birthday: birthday,
			Role:     domain.RoleUser,
			Active:   false,
		}
		if err := s.users.Create(ctx, user); err != nil {
			return "", err
		}
		s.logger.Info("user pre-registered", zap.Int64("user_id", user.ID))
		return msgUserDataChecked, nil
	}

	if !existing.Active {
		update := repository.PendingUpdate{
			Username: username,
			FullName: username,
			Birthday: birthday,
		}
		if err := s.users.UpdatePending(ctx, existing.ID, update); err != nil {
			return "", err
		}
		return msgUserDataChecked, nil
	}
	return "", domain.ErrEmailTaken
}

// SendRegistrationCode generates a new activation code, persists it and
// queues the activation email.
func (s *Service) SendRegistrationCode(ctx context.Context, email string) (string, error) {
	user, err := s.users.GetCommonByEmail(ctx, email)
	if err != nil {
		return "", orNotFound(err, domain.ErrUserNotFound)
	}

	code, err := s.codes.Generate()
	if err != nil {
		return "", err
	}
	if err := s.users.UpdateActivationCode(ctx, user.ID, code); err != nil {
		return "", err
	}

	attributes := map[string]interface{}{
		"fullName":         user.FullName,
		"registrationCode": code,
	}
	if err := s.notifier.SendTemplatedEmail(ctx, user.Email, registrationSubject, registrationTemplate, attributes); err != nil {
		return "", err
	}
	return msgCodeSent, nil
}

// ActivateUser confirms possession of the email by clearing the matching
// activation code. The account stays inactive until EndRegistration sets the
// password; the two-step split is intentional.
func (s *Service) ActivateUser(ctx context.Context, code string) (string, error) {
	user, err := s.users.GetCommonByActivationCode(ctx, code)
	if err != nil {
		return "", orNotFound(err, domain.NewError(domain.ErrCodeNotFound, "Activation code not found."))
	}
	if err := s.users.UpdateActivationCode(ctx, user.ID, ""); err != nil {
		return "", err
	}
	return msgUserActivated, nil
}

// EndRegistration sets the account password, marks the profile active and
// logs the user in.
func (s *Service) EndRegistration(ctx context.Context, email, password string) (*AuthResult, error) {
	if len(password) < minPasswordLength {
		return nil, domain.NewError(domain.ErrCodeInvalid, "Your password needs to be at least 8 characters")
	}
	user, err := s.users.GetAuthByEmail(ctx, email)
	if err != nil {
		return nil, orNotFound(err, domain.ErrUserNotFound)
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, err
	}
	if err := s.users.UpdatePassword(ctx, user.ID, hash); err != nil {
		return nil, err
	}
	if err := s.users.MarkActive(ctx, user.ID); err != nil {
		return nil, err
	}
	user.Active = true

	s.logger.Info("registration completed", zap.Int64("user_id", user.ID))
	return s.issueToken(ctx, user)
}

// UserByToken re-resolves the principal's projection and mints a fresh
// token, refreshing the client's session state.
func (s *Service) UserByToken(ctx context.Context, principal domain.Principal) (*AuthResult, error) {
	user, err := s.users.GetAuthByEmail(ctx, principal.Email)
	if err != nil {
		return nil, orNotFound(err, domain.ErrUserNotFound)
	}
	return s.issueToken(ctx, user)
}

// Logout revokes the session record behind the presented token. The JWT
// itself stays valid until expiry, so logging out twice is harmless.
func (s *Service) Logout(ctx context.Context, tokenID string) (string, error) {
	if s.sessions == nil || tokenID == "" {
		return msgLoggedOut, nil
	}
	session, err := s.sessions.Get(ctx, tokenID)
	if err != nil {
		if domain.IsDomainError(err, domain.ErrCodeNotFound) {
			return msgLoggedOut, nil
		}
		return "", err
	}
	if err := s.sessions.Delete(ctx, session.ID); err != nil {
		return "", err
	}
	s.logger.Info("session revoked", zap.Int64("user_id", session.UserID))
	return msgLoggedOut, nil
}

// FindEmail checks that an account exists for the given email without
// revealing anything else about it.
func (s *Service) FindEmail(ctx context.Context, email string) (string, error) {
	if _, err := s.users.GetCommonByEmail(ctx, email); err != nil {
		return "", orNotFound(err, domain.ErrEmailNotFound)
	}
	return msgResetCodeSent, nil
}

// FindByPasswordResetCode resolves the account a reset code belongs to.
func (s *Service) FindByPasswordResetCode(ctx context.Context, code string) (*domain.AuthUser, error) {
	user, err := s.users.GetAuthByResetCode(ctx, code)
	if err != nil {
		return nil, orNotFound(err, domain.NewError(domain.ErrCodeInvalid, "Password reset code is invalid!"))
	}
	return user, nil
}

// SendPasswordResetCode generates a reset code, persists it and queues the
// recovery email.
func (s *Service) SendPasswordResetCode(ctx context.Context, email string) (string, error) {
	user, err := s.users.GetCommonByEmail(ctx, email)
	if err != nil {
		return "", orNotFound(err, domain.ErrEmailNotFound)
	}

	code, err := s.codes.Generate()
	if err != nil {
		return "", err
	}
	if err := s.users.UpdateResetCode(ctx, user.ID, code); err != nil {
		return "", err
	}

	attributes := map[string]interface{}{
		"fullName":          user.FullName,
		"passwordResetCode": code,
	}
	if err := s.notifier.SendTemplatedEmail(ctx, user.Email, passwordResetSubject, resetTemplate, attributes); err != nil {
		return "", err
	}
	return msgResetCodeSent, nil
}

// PasswordReset completes the recovery flow: stores the new hash and clears
// the reset code. Validation failures are field-scoped for form binding.
func (s *Service) PasswordReset(ctx context.Context, email, password, password2 string) (string, error) {
	if err := checkMatchPasswords(password, password2); err != nil {
		return "", err
	}
	user, err := s.users.GetCommonByEmail(ctx, email)
	if err != nil {
		return "", orNotFound(err, domain.NewFieldError(domain.ErrCodeNotFound, "email", "Email not found"))
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return "", err
	}
	if err := s.users.UpdatePassword(ctx, user.ID, hash); err != nil {
		return "", err
	}
	if err := s.users.UpdateResetCode(ctx, user.ID, ""); err != nil {
		return "", err
	}
	return msgPasswordChanged, nil
}

// CurrentPasswordReset changes the password of a logged-in user after
// re-checking the current one.
func (s *Service) CurrentPasswordReset(ctx context.Context, principal domain.Principal, currentPassword, password, password2 string) (string, error) {
	storedHash, err := s.users.GetPasswordHashByID(ctx, principal.ID)
	if err != nil {
		return "", err
	}
	if err := s.hasher.Compare(currentPassword, storedHash); err != nil {
		return "", domain.NewFieldError(domain.ErrCodeNotFound, "currentPassword", "The password you entered was incorrect.")
	}
	if err := checkMatchPasswords(password, password2); err != nil {
		return "", err
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return "", err
	}
	if err := s.users.UpdatePassword(ctx, principal.ID, hash); err != nil {
		return "", err
	}
	return msgPasswordUpdated, nil
}

func (s *Service) issueToken(ctx context.Context, user *domain.AuthUser) (*AuthResult, error) {
	token, tokenID, err := s.tokens.CreateToken(user.ID, user.Email, domain.RoleUser)
	if err != nil {
		return nil, err
	}
	s.recordSession(ctx, tokenID, user)
	return &AuthResult{User: user, Token: token}, nil
}

// recordSession notes the minted token in the session store. The token is
// valid regardless, so store failures only log a warning.
func (s *Service) recordSession(ctx context.Context, tokenID string, user *domain.AuthUser) {
	if s.sessions == nil {
		return
	}
	if tokenID == "" {
		tokenID = uuid.NewString()
	}
	now := time.Now()
	session := &domain.Session{
		ID:        tokenID,
		UserID:    user.ID,
		Email:     user.Email,
		CreatedAt: now,
		ExpiresAt: now.Add(s.tokens.TTL()),
	}
	if err := s.sessions.Save(ctx, session); err != nil {
		s.logger.Warn("failed to record session", zap.Error(err))
	}
}

func checkMatchPasswords(password, password2 string) error {
	if password == "" {
		return domain.NewFieldError(domain.ErrCodeInvalid, "password", "Password cannot be empty.")
	}
	if password != password2 {
		return domain.NewFieldError(domain.ErrCodeInvalid, "password", "Passwords do not match.")
	}
	return nil
}

// orNotFound maps a missing-record error onto the operation's public error.
// Infrastructure failures keep their original classification.
func orNotFound(err, replacement error) error {
	if domain.IsDomainError(err, domain.ErrCodeNotFound) {
		return replacement
	}
	return err
}
