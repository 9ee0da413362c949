package auth

import (
	"fmt"

	"servicehub/internal/domain"
)

var (
	ErrInvalidCredentials = fmt.Errorf("auth: %w", domain.ErrInvalidCredentials)
	ErrEmailAlreadyExists = fmt.Errorf("auth: %w", domain.ErrDuplicateEmail)
)
