package model

import "time"

type Role string

const (
	RoleUser         Role = "USER"
	RoleLibraryAdmin Role = "LIBRARY_ADMIN"
	RoleSuperAdmin   Role = "SUPER_ADMIN"
)

// ValidRole reports whether r is one of the three known roles.
// Roles are a closed set, not a hierarchy; each endpoint lists the
// exact roles it accepts.
func ValidRole(r Role) bool {
	switch r {
	case RoleUser, RoleLibraryAdmin, RoleSuperAdmin:
		return true
	}
	return false
}

type User struct {
	ID           int64      `json:"user_id"`
	Name         string     `json:"name"`
	Email        string     `json:"email"`
	PasswordHash string     `json:"-"`
	Role         Role       `json:"role"`
	CreatedAt    time.Time  `json:"created_at"`
	LastLogin    *time.Time `json:"last_login,omitempty"`
}

// RegisterReq represents user registration payload
// swagger:model RegisterReq
type RegisterReq struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// LoginReq represents login payload
// swagger:model LoginReq
type LoginReq struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}
