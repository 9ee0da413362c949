package booking

import (
	"context"

	"servicehub/internal/domain"
	"servicehub/internal/repository"

	"github.com/shopspring/decimal"
)

// BookingRepository defines the interface for booking operations
type BookingRepository interface {
	CreateForProvider(ctx context.Context, providerID int64, b *domain.Booking, prepare func(p *domain.Provider) error) error
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	UpdateStatusIf(ctx context.Context, id int64, from, to domain.BookingStatus) (bool, error)
	List(ctx context.Context, f repository.BookingFilter) ([]domain.Booking, error)
	SumAmount(ctx context.Context, f repository.BookingFilter) (decimal.Decimal, error)
	CountByStatus(ctx context.Context, f repository.BookingFilter) (map[domain.BookingStatus]int64, error)
}

// EventPublisher delivers best-effort live events to a connected principal.
type EventPublisher interface {
	Publish(kind domain.PrincipalKind, id int64, event any)
}
