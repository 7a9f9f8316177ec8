package error

import "errors"

// Counterparty domain errors.
var (
	// ErrCounterpartyNotFound is returned when a counterparty is not found.
	ErrCounterpartyNotFound = errors.New("counterparty not found")

	// ErrInvalidCounterpartyType is returned for a type other than customer
	// or supplier.
	ErrInvalidCounterpartyType = errors.New("invalid counterparty type")

	// ErrEmptyCounterpartyName is returned when the name is blank.
	ErrEmptyCounterpartyName = errors.New("counterparty name cannot be empty")

	// ErrInvalidPaymentDueDay is returned when the payment due day is outside 1-31.
	ErrInvalidPaymentDueDay = errors.New("payment due day must be between 1 and 31")

	// ErrCounterpartyHasBalance is returned when deleting a counterparty
	// whose derived balance is not zero.
	ErrCounterpartyHasBalance = errors.New("counterparty balance must be zero before deletion")
)

// CounterpartyErrorCode defines error codes for counterparty errors.
type CounterpartyErrorCode string

const (
	ErrCodeInvalidCounterpartyType CounterpartyErrorCode = "CPT-010001"
	ErrCodeEmptyCounterpartyName   CounterpartyErrorCode = "CPT-010002"
	ErrCodeInvalidPaymentDueDay    CounterpartyErrorCode = "CPT-010003"
	ErrCodeCounterpartyNotFound    CounterpartyErrorCode = "CPT-020001"
	ErrCodeCounterpartyHasBalance  CounterpartyErrorCode = "CPT-030001"
)

// CounterpartyError represents a counterparty error with code and message.
type CounterpartyError struct {
	Code    CounterpartyErrorCode
	Message string
	Err     error
}

func (e *CounterpartyError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *CounterpartyError) Unwrap() error {
	return e.Err
}

// NewCounterpartyError creates a new CounterpartyError.
func NewCounterpartyError(code CounterpartyErrorCode, message string, err error) *CounterpartyError {
	return &CounterpartyError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
