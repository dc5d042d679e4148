package model

import "time"

// Role is the marketplace role of an account. It never changes after registration.
type Role string

const (
	RoleFarmer Role = "farmer"
	RoleBuyer  Role = "buyer"
	RoleAdmin  Role = "admin"
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	switch r {
	case RoleFarmer, RoleBuyer, RoleAdmin:
		return true
	}
	return false
}

// SelfAssignable reports whether a user may pick r when registering.
func (r Role) SelfAssignable() bool {
	return r == RoleFarmer || r == RoleBuyer
}

// Account represents a registered marketplace participant.
type Account struct {
	ID           int64
	Login        string
	PasswordHash string
	Role         Role
	Verified     bool
	CreatedAt    time.Time
}
