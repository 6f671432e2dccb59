package user

import (
	"time"

	"github.com/google/uuid"
)

type Role string

const (
	RoleBuyer  Role = "buyer"
	RoleSeller Role = "seller"
	RoleAdmin  Role = "admin"
)

// ValidRole reports whether a signup may claim the given role. Admin
// accounts are provisioned out of band, never through the signup endpoint.
func ValidRole(r Role) bool {
	return r == RoleBuyer || r == RoleSeller
}

type Profile struct {
	ID        uuid.UUID
	Email     string
	Password  string
	FullName  string
	Phone     *string
	Role      Role
	CreatedAt time.Time
	UpdatedAt time.Time
}

type UpdateProfileParams struct {
	FullName *string
	Phone    *string
}
