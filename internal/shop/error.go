package shop

import (
	"errors"

	"github.com/lib/pq"
)

var (
	ErrShopNotFound      = errors.New("shop not found")
	ErrShopAlreadyExists = errors.New("seller already has a shop")
	ErrNameRequired      = errors.New("shop name is required")
	ErrInvalidCoordinate = errors.New("invalid coordinate")
	ErrUnauthenticated   = errors.New("user not authenticated")
)

const pgUniqueViolation = pq.ErrorCode("23505")
