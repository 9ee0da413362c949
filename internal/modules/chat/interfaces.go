package chat

import (
	"context"

	"servicehub/internal/domain"
)

type messageRepo interface {
	CreateMessage(ctx context.Context, msg *domain.Message) error
	GetMessages(ctx context.Context, bookingID int64, limit int, beforeID int64) ([]domain.Message, error)
}

type bookingReader interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
}

// Notifier delivers an event to a connected principal. It reports whether
// the event was queued.
type Notifier interface {
	SendTo(kind domain.PrincipalKind, id int64, v any) bool
}
