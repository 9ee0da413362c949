package auth

import "servicehub/internal/domain"

type RegisterCustomerRequest struct {
	FullName string `json:"full_name" validate:"required,notblank,max=255"`
	Email    string `json:"email" validate:"required,email,max=255"`
	Phone    string `json:"phone" validate:"omitempty,max=32"`
	Password string `json:"password" validate:"required,notblank,min=8,max=72"`
}

type LoginRequest struct {
	Kind     domain.PrincipalKind `json:"kind"`
	Email    string               `json:"email" validate:"required,notblank"`
	Password string               `json:"password" validate:"required"`
}

// Session is what a successful login or registration hands to the client.
type Session struct {
	Token     string               `json:"token"`
	AccountID int64                `json:"account_id"`
	Kind      domain.PrincipalKind `json:"kind"`
	Role      domain.UserRole      `json:"role"`
	Email     string               `json:"email"`
	Name      string               `json:"name"`
}

// Account is the current principal as returned by /me.
type Account struct {
	Kind     domain.PrincipalKind `json:"kind"`
	User     *domain.User         `json:"user,omitempty"`
	Provider *domain.Provider     `json:"provider,omitempty"`
}
