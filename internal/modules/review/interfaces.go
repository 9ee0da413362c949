package review

import (
	"context"

	"servicehub/internal/domain"
)

type ReviewRepository interface {
	Create(ctx context.Context, rv *domain.Review) error
	ExistsForBooking(ctx context.Context, bookingID int64) (bool, error)
	StatsFor(ctx context.Context, providerIDs []int64) (map[int64]domain.RatingStats, error)
	ListForProvider(ctx context.Context, providerID int64, limit int) ([]domain.Review, error)
	Recent(ctx context.Context, limit int) ([]domain.Review, error)
}

type BookingReader interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
}
