package order

import "errors"

var (
	// -- Validation & Input --
	ErrMissingCustomerFields = errors.New("customer name, email, phone and address are required")
	ErrEmptyItems            = errors.New("order must contain at least one item")
	ErrInvalidQuantity       = errors.New("item quantity must be at least 1")
	ErrTotalMismatch         = errors.New("total amount does not match sum of items")

	// -- Resource State --
	ErrOrderNotFound = errors.New("order not found")

	// -- Constants (External Systems) --
	PgUniqueViolation = "23505"
)
