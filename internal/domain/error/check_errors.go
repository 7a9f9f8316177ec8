package error

import "errors"

// Check/note domain errors.
var (
	// ErrCheckNotFound is returned when a check or note is not found.
	ErrCheckNotFound = errors.New("check not found")

	// ErrInvalidCheckKind is returned for a kind other than check or note.
	ErrInvalidCheckKind = errors.New("invalid check kind")

	// ErrInvalidCheckDirection is returned for a direction other than
	// received or given.
	ErrInvalidCheckDirection = errors.New("invalid check direction")

	// ErrInvalidCheckStatus is returned for a status update target other
	// than paid or bounced.
	ErrInvalidCheckStatus = errors.New("invalid check status")

	// ErrCheckStatusTerminal is returned when updating a check that is
	// already paid or bounced.
	ErrCheckStatusTerminal = errors.New("check status is terminal")

	// ErrBounceWithoutTransaction is returned when bouncing a check that has
	// no linked ledger transaction to reverse.
	ErrBounceWithoutTransaction = errors.New("no linked transaction to reverse")
)

// CheckErrorCode defines error codes for check errors.
type CheckErrorCode string

const (
	ErrCodeInvalidCheckKind          CheckErrorCode = "CHK-010001"
	ErrCodeInvalidCheckDirection     CheckErrorCode = "CHK-010002"
	ErrCodeInvalidCheckStatus        CheckErrorCode = "CHK-010003"
	ErrCodeBounceWithoutTransaction  CheckErrorCode = "CHK-010004"
	ErrCodeCheckNotFound             CheckErrorCode = "CHK-020001"
	ErrCodeCheckStatusTerminal       CheckErrorCode = "CHK-030001"
)

// CheckError represents a check error with code and message.
type CheckError struct {
	Code    CheckErrorCode
	Message string
	Err     error
}

func (e *CheckError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *CheckError) Unwrap() error {
	return e.Err
}

// NewCheckError creates a new CheckError.
func NewCheckError(code CheckErrorCode, message string, err error) *CheckError {
	return &CheckError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
