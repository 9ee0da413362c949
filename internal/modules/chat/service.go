package chat

import (
	"context"
	"strings"
	"unicode/utf8"

	"servicehub/internal/domain"
)

const (
	defaultPageSize = 50
	maxPageSize     = 200
)

type Service struct {
	messages messageRepo
	bookings bookingReader
	notifier Notifier
}

func NewService(messages messageRepo, bookings bookingReader, notifier Notifier) *Service {
	return &Service{
		messages: messages,
		bookings: bookings,
		notifier: notifier,
	}
}

// Post appends a message to the booking thread and pushes it to the other
// party if they are connected. Only the booking's customer or provider may post.
func (s *Service) Post(ctx context.Context, actor domain.Actor, bookingID int64, text string) (*domain.Message, error) {
	b, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if !b.HasParty(actor) {
		return nil, domain.ErrForbidden
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrEmptyMessage
	}
	if utf8.RuneCountInString(text) > MaxMessageLength {
		return nil, ErrMessageTooLong
	}

	msg := &domain.Message{
		BookingID:  b.ID,
		SenderKind: actor.Kind,
		SenderID:   actor.ID,
		Text:       text,
	}
	if err := s.messages.CreateMessage(ctx, msg); err != nil {
		return nil, err
	}

	if s.notifier != nil {
		kind, id := counterparty(b, actor)
		s.notifier.SendTo(kind, id, Event{Type: EventMessageCreated, Message: msg})
	}
	return msg, nil
}

// List returns a page of the booking thread in chronological order.
// beforeID pages backwards; zero means the latest page.
func (s *Service) List(ctx context.Context, actor domain.Actor, bookingID int64, limit int, beforeID int64) ([]domain.Message, error) {
	b, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if !b.HasParty(actor) && !actor.IsAdmin() {
		return nil, domain.ErrForbidden
	}

	if limit <= 0 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	return s.messages.GetMessages(ctx, bookingID, limit, beforeID)
}

func counterparty(b *domain.Booking, actor domain.Actor) (domain.PrincipalKind, int64) {
	if actor.Kind == domain.KindProvider {
		return domain.KindCustomer, b.CustomerID
	}
	return domain.KindProvider, b.ProviderID
}
