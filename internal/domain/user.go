package domain

import "time"

type UserRole string

const (
	RoleUser     UserRole = "user"
	RoleAdmin    UserRole = "admin"
	RoleProvider UserRole = "provider"
)

type AccountStatus string

const (
	AccountActive    AccountStatus = "active"
	AccountSuspended AccountStatus = "suspended"
)

func (s AccountStatus) Valid() bool {
	return s == AccountActive || s == AccountSuspended
}

// User is a customer account. Admins are customers with RoleAdmin.
type User struct {
	ID           int64         `json:"id"`
	Email        string        `json:"email" validate:"required,email"`
	PasswordHash string        `json:"-"`
	FullName     string        `json:"full_name"`
	Phone        string        `json:"phone,omitempty"`
	Role         UserRole      `json:"role"`
	Status       AccountStatus `json:"status"`
	CreatedAt    time.Time     `json:"created_at"`
	UpdatedAt    time.Time     `json:"updated_at"`
}
