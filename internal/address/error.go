package address

import "errors"

var (
	ErrNotFound        = errors.New("address not found")
	ErrUnauthenticated = errors.New("unauthenticated")
)
