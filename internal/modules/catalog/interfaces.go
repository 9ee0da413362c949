package catalog

import (
	"context"

	"servicehub/internal/domain"
)

type ListingRepository interface {
	Create(ctx context.Context, l *domain.Listing) error
	GetByName(ctx context.Context, name string) (*domain.Listing, error)
	ToggleActive(ctx context.Context, id int64) (*domain.Listing, error)
	List(ctx context.Context, activeOnly bool) ([]domain.Listing, error)
}
