package database

import (
	"database/sql"
	"errors"

	"github.com/lib/pq"
)

type ErrorClass int

const (
	ErrorClassPermanent ErrorClass = iota
	ErrorClassTransient
	ErrorClassDeadlock
	ErrorClassSerialization
)

func ClassifyError(err error) ErrorClass {
	if err == nil {
		return ErrorClassPermanent
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case "40001":
			return ErrorClassSerialization
		case "40P01":
			return ErrorClassDeadlock
		case "55P03":
			return ErrorClassTransient
		case "23505", "23503", "23502", "23514":
			return ErrorClassPermanent
		}
	}

	if errors.Is(err, sql.ErrNoRows) {
		return ErrorClassPermanent
	}

	return ErrorClassPermanent
}

func IsRetryable(err error) bool {
	class := ClassifyError(err)
	return class == ErrorClassTransient ||
		class == ErrorClassDeadlock ||
		class == ErrorClassSerialization
}

// Validation errors reject a checkout before anything is persisted.
var (
	ErrEmptyCart       = errors.New("cart has no items")
	ErrInvalidQuantity = errors.New("item quantity must be at least 1")
	ErrMissingPhone    = errors.New("customer phone is required")
	ErrMissingShipping = errors.New("shipping cost is required")
)

var (
	ErrUserNotFound      = errors.New("user not found")
	ErrProductNotFound   = errors.New("product not found")
	ErrOrderNotFound     = errors.New("order not found")
	ErrAddressNotFound   = errors.New("address not found")
	ErrPhoneNotFound     = errors.New("phone not found")
	ErrReviewNotFound    = errors.New("review not found")
	ErrInventoryNotFound = errors.New("inventory not found")
)

// ErrPaymentGateway marks failures of the hosted-checkout provider.
// The order is already persisted by then, so callers may offer payment
// retry without recreating it.
var ErrPaymentGateway = errors.New("payment gateway error")

// ErrOrderNotPayable rejects a payment retry on an order that already
// completed or was cancelled.
var ErrOrderNotPayable = errors.New("order is not payable")
