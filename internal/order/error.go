package order

import (
	"errors"

	"github.com/lib/pq"
)

var (
	ErrUserNotAuthenticated  = errors.New("user not authenticated")
	ErrCartEmpty             = errors.New("cart is empty")
	ErrAddressNotFound       = errors.New("shipping address not found")
	ErrInvalidPaymentMethod  = errors.New("invalid payment method")
	ErrMissingIdempotencyKey = errors.New("missing idempotency key")
	ErrOrderNotFound         = errors.New("order not found")
	ErrOrderCreationFailed   = errors.New("order creation failed")
	ErrInvalidTransition     = errors.New("invalid order status transition")
	ErrForbidden             = errors.New("not allowed to access this order")
)

const pgUniqueViolation = pq.ErrorCode("23505")
