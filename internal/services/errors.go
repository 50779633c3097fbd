package services

import "errors"

// Validation-class errors are recovered at the handler boundary and surfaced
// as structured client failures; none of them leaves partial mutation behind.
var (
	ErrNotFound          = errors.New("not found")
	ErrForbidden         = errors.New("forbidden")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrUnavailable       = errors.New("product is not available")
	ErrEmptyCart         = errors.New("cart is empty")
	ErrInvalidInput      = errors.New("invalid input")
	ErrPaymentNotSettled = errors.New("payment not settled")
	ErrAlreadyExists     = errors.New("already exists")
	ErrUnauthenticated   = errors.New("authentication required")
)

// ErrStockIntegrity means a confirmed checkout would have driven stock below
// zero. It aborts the whole materialization and needs operator attention; it
// is never downgraded to a validation error.
var ErrStockIntegrity = errors.New("stock integrity fault")

// ErrPaymentGateway wraps transport failures talking to the payment gateway.
// The client may retry; the service never retries on its own.
var ErrPaymentGateway = errors.New("payment gateway unavailable")
