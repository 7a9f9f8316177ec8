package adapter

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// PasswordService handles password hashing and verification.
type PasswordService interface {
	// Hash returns the bcrypt hash of the password.
	Hash(password string) (string, error)

	// Compare verifies the password against a stored hash.
	Compare(hash, password string) error
}

// TokenService issues and validates access tokens.
type TokenService interface {
	// Generate issues a signed access token for the user.
	Generate(userID uuid.UUID) (string, error)

	// Validate parses the token and returns the user ID it was issued for.
	Validate(token string) (uuid.UUID, error)
}

// ReportTokenStore holds short-lived share tokens for counterparty
// statements. Tokens expire on their own; there is no delete path.
type ReportTokenStore interface {
	// Issue stores a token for the counterparty with the given TTL and
	// returns it.
	Issue(ctx context.Context, counterpartyID uuid.UUID, ttl time.Duration) (string, error)

	// Resolve returns the counterparty ID a token was issued for, or
	// ErrInvalidToken when the token is unknown or expired.
	Resolve(ctx context.Context, token string) (uuid.UUID, error)
}
