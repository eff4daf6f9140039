package usecase

import (
	"context"
	"time"
)

// Notifier delivers templated emails. Implementations are expected to queue
// durably and retry out of band; a nil error means the message was accepted,
// not that it was delivered.
type Notifier interface {
	SendTemplatedEmail(ctx context.Context, to, subject, template string, attributes map[string]interface{}) error
}

// CredentialVerifier validates an email/password pair. Failures carry no
// detail about which of the two was wrong.
type CredentialVerifier interface {
	Authenticate(ctx context.Context, email, password string) error
}

// TokenIssuer mints signed session tokens. The second return value is the
// token ID used to key session records.
type TokenIssuer interface {
	CreateToken(userID int64, email, role string) (token string, tokenID string, err error)
	TTL() time.Duration
}
