package auth

import (
	"context"

	"servicehub/internal/domain"
	"servicehub/internal/pkg/jwt"
)

// UserRepository lists only the methods the auth service uses.
type UserRepository interface {
	Create(ctx context.Context, u *domain.User) error
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}

// ProviderReader resolves provider accounts for login and /me.
type ProviderReader interface {
	GetByEmail(ctx context.Context, email string) (*domain.Provider, error)
	GetByID(ctx context.Context, id int64) (*domain.Provider, error)
}

type tokenIssuer interface {
	GenerateToken(sub jwt.Subject) (string, error)
}
