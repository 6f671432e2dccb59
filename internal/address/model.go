package address

import (
	"time"

	"github.com/google/uuid"
)

type Address struct {
	ID     uuid.UUID
	UserID uuid.UUID

	Type     string
	FullName string
	Phone    string

	Line1 string
	Line2 *string

	City       string
	State      string
	PostalCode string
	Country    string

	IsDefault bool
	CreatedAt time.Time
}

type CreateAddressInput struct {
	Type         string
	FullName     string
	Phone        string
	AddressLine1 string
	AddressLine2 *string
	City         string
	State        string
	PostalCode   string
	Country      string
	SetAsDefault bool
}

type UpdateAddressInput struct {
	AddressID    uuid.UUID
	Type         string
	FullName     string
	Phone        string
	AddressLine1 string
	AddressLine2 *string
	City         string
	State        string
	PostalCode   string
	Country      string
	SetAsDefault bool
}
