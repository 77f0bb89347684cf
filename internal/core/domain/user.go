package domain

import (
	"errors"
	"strings"
	"time"
)

// Role is the single permission attribute carried by an identity.
type Role string

const (
	RoleAdministrator Role = "administrator"
	RoleFarm          Role = "farm"
	RoleCustomer      Role = "customer"
)

var ErrInvalidRole = errors.New("invalid role")

// Roles lists every role in declaration order.
func Roles() []Role {
	return []Role{RoleAdministrator, RoleFarm, RoleCustomer}
}

// ParseRole maps a raw string onto the role enum.
func ParseRole(s string) (Role, error) {
	switch Role(strings.ToLower(strings.TrimSpace(s))) {
	case RoleAdministrator:
		return RoleAdministrator, nil
	case RoleFarm:
		return RoleFarm, nil
	case RoleCustomer:
		return RoleCustomer, nil
	}
	return "", ErrInvalidRole
}

func (r Role) String() string { return string(r) }

// Identity is the read-only projection of the signed-in account. It is what
// access decisions are made against; clients never supply it directly.
type Identity struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	FullName string `json:"full_name"`
	Role     Role   `json:"role"`
}

// User models a stored account, including its credential hash.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	FullName     string    `json:"full_name"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Identity projects the account onto the fields access decisions use.
func (u *User) Identity() Identity {
	return Identity{ID: u.ID, Email: u.Email, FullName: u.FullName, Role: u.Role}
}

// Session binds an identity to a server-side session id. Sessions are created
// on login, refreshed when loaded and removed on logout.
type Session struct {
	ID        string    `json:"id"`
	Identity  Identity  `json:"identity"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}
