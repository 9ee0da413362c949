package payment

import (
	"context"

	"servicehub/internal/domain"
)

type bookingReader interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
}

type paymentRepo interface {
	CreateIfNoActive(ctx context.Context, p *domain.Payment) error
	GetByID(ctx context.Context, id string) (*domain.Payment, error)
	ListForBooking(ctx context.Context, bookingID int64) ([]domain.Payment, error)
	SettleIfPending(ctx context.Context, id string, outcome domain.PaymentStatus, gatewayPaymentID string) (bool, error)
}
