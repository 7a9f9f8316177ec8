package error

import "errors"

// Auth domain errors.
var (
	// ErrUserNotFound is returned when a user is not found.
	ErrUserNotFound = errors.New("user not found")

	// ErrEmailAlreadyRegistered is returned when registering an email that
	// already has an account.
	ErrEmailAlreadyRegistered = errors.New("email already registered")

	// ErrInvalidCredentials is returned for a failed login attempt.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrInvalidToken is returned when an access token is missing, expired
	// or malformed.
	ErrInvalidToken = errors.New("invalid or expired token")
)

// AuthErrorCode defines error codes for auth errors.
type AuthErrorCode string

const (
	ErrCodeInvalidCredentials     AuthErrorCode = "AUTH-010001"
	ErrCodeMissingToken           AuthErrorCode = "AUTH-010002"
	ErrCodeInvalidToken           AuthErrorCode = "AUTH-010003"
	ErrCodeUserNotFound           AuthErrorCode = "AUTH-020001"
	ErrCodeEmailAlreadyRegistered AuthErrorCode = "AUTH-030001"
	ErrCodeRateLimited            AuthErrorCode = "AUTH-040001"
)

// AuthError represents an auth error with code and message.
type AuthError struct {
	Code    AuthErrorCode
	Message string
	Err     error
}

func (e *AuthError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *AuthError) Unwrap() error {
	return e.Err
}

// NewAuthError creates a new AuthError.
func NewAuthError(code AuthErrorCode, message string, err error) *AuthError {
	return &AuthError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
