package directory

import (
	"context"

	"servicehub/internal/domain"
)

type ProviderRepository interface {
	Create(ctx context.Context, p *domain.Provider) error
	GetByID(ctx context.Context, id int64) (*domain.Provider, error)
	SetKyc(ctx context.Context, id int64, status domain.KycStatus, verified bool) (*domain.Provider, error)
	SetStatus(ctx context.Context, id int64, status domain.AccountStatus) (*domain.Provider, error)
	ListBookable(ctx context.Context, serviceName string) ([]domain.Provider, error)
	ListAll(ctx context.Context) ([]domain.Provider, error)
	AddKycDocument(ctx context.Context, d *domain.KycDocument) error
	ListKycDocuments(ctx context.Context, providerID int64) ([]domain.KycDocument, error)
}

// ListingResolver finds the active listing a provider binds to.
type ListingResolver interface {
	GetActiveByName(ctx context.Context, name string) (*domain.Listing, error)
}

// RatingSource supplies rating aggregates. Providers without reviews are
// absent from the returned map.
type RatingSource interface {
	StatsFor(ctx context.Context, providerIDs []int64) (map[int64]domain.RatingStats, error)
}

type PasswordHasher interface {
	Hash(password string) (string, error)
}
