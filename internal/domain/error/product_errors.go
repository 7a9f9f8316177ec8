package error

import "errors"

// Product and stock domain errors.
var (
	// ErrProductNotFound is returned when a product is not found.
	ErrProductNotFound = errors.New("product not found")

	// ErrEmptyProductName is returned when the product name is blank.
	ErrEmptyProductName = errors.New("product name cannot be empty")

	// ErrInvalidProductUnit is returned for a unit other than kg, kasa, adet.
	ErrInvalidProductUnit = errors.New("invalid product unit")

	// ErrProductNameTaken is returned when another product already has the
	// same name, compared case- and trim-insensitively.
	ErrProductNameTaken = errors.New("product name already exists")

	// ErrProductHasHistory is returned when hard-deleting a product that has
	// transaction items; such products can only be deactivated.
	ErrProductHasHistory = errors.New("product has transaction history")

	// ErrZeroAdjustmentQuantity is returned when a stock adjustment quantity is zero.
	ErrZeroAdjustmentQuantity = errors.New("adjustment quantity cannot be zero")
)

// ProductErrorCode defines error codes for product errors.
type ProductErrorCode string

const (
	ErrCodeEmptyProductName       ProductErrorCode = "PRD-010001"
	ErrCodeInvalidProductUnit     ProductErrorCode = "PRD-010002"
	ErrCodeZeroAdjustmentQuantity ProductErrorCode = "PRD-010003"
	ErrCodeProductNotFound        ProductErrorCode = "PRD-020001"
	ErrCodeProductNameTaken       ProductErrorCode = "PRD-030001"
	ErrCodeProductHasHistory      ProductErrorCode = "PRD-030002"
)

// ProductError represents a product error with code and message.
type ProductError struct {
	Code    ProductErrorCode
	Message string
	Err     error
}

func (e *ProductError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *ProductError) Unwrap() error {
	return e.Err
}

// NewProductError creates a new ProductError.
func NewProductError(code ProductErrorCode, message string, err error) *ProductError {
	return &ProductError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
