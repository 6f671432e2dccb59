package user

import (
	"errors"

	"github.com/lib/pq"
)

var (
	ErrEmailExists        = errors.New("email already registered")
	ErrProfileNotFound    = errors.New("profile not found")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidRole        = errors.New("invalid role")
)

const pgUniqueViolation = pq.ErrorCode("23505")
