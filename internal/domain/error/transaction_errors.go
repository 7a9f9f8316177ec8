// Package error defines domain-specific errors for the ledger application.
package error

import "errors"

// Transaction domain errors.
var (
	// ErrTransactionNotFound is returned when a transaction is not found.
	ErrTransactionNotFound = errors.New("transaction not found")

	// ErrInvalidTxType is returned when the transaction type is not one of
	// sale, collection, purchase, payment.
	ErrInvalidTxType = errors.New("invalid transaction type")

	// ErrNonPositiveAmount is returned when the amount is zero or negative.
	ErrNonPositiveAmount = errors.New("amount must be positive")

	// ErrFutureTxDate is returned when the transaction date is in the future.
	ErrFutureTxDate = errors.New("transaction date cannot be in the future")

	// ErrItemsNotAllowed is returned when line items are supplied for a
	// collection or payment transaction.
	ErrItemsNotAllowed = errors.New("this transaction type cannot carry items")

	// ErrInsufficientStock is returned when a sale would drive a product's
	// stock negative.
	ErrInsufficientStock = errors.New("insufficient stock")

	// ErrAlreadyReversed is returned when the transaction is already
	// referenced by a compensating entry.
	ErrAlreadyReversed = errors.New("transaction has already been reversed")

	// ErrCannotReverseReversal is returned when the target of a reversal is
	// itself a compensating entry.
	ErrCannotReverseReversal = errors.New("cannot reverse a reversal")
)

// TransactionErrorCode defines error codes for transaction errors.
// Format: TXN-XXYYYY where XX is category (01 validation, 02 not found,
// 03 conflict) and YYYY is the specific error.
type TransactionErrorCode string

const (
	ErrCodeInvalidTxType          TransactionErrorCode = "TXN-010001"
	ErrCodeNonPositiveAmount      TransactionErrorCode = "TXN-010002"
	ErrCodeFutureTxDate           TransactionErrorCode = "TXN-010003"
	ErrCodeItemsNotAllowed        TransactionErrorCode = "TXN-010004"
	ErrCodeInsufficientStock      TransactionErrorCode = "TXN-010005"
	ErrCodeMissingTransactionBody TransactionErrorCode = "TXN-010006"
	ErrCodeTransactionNotFound    TransactionErrorCode = "TXN-020001"
	ErrCodeAlreadyReversed        TransactionErrorCode = "TXN-030001"
	ErrCodeCannotReverseReversal  TransactionErrorCode = "TXN-030002"
)

// TransactionError represents a transaction error with code and message.
type TransactionError struct {
	Code    TransactionErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *TransactionError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *TransactionError) Unwrap() error {
	return e.Err
}

// NewTransactionError creates a new TransactionError with the given code and message.
func NewTransactionError(code TransactionErrorCode, message string, err error) *TransactionError {
	return &TransactionError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
