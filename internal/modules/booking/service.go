package booking

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"servicehub/internal/domain"
	"servicehub/internal/pkg/validator"
	"servicehub/internal/repository"
)

const recentLimit = 10

type Service struct {
	bookings BookingRepository
	events   EventPublisher
	now      func() time.Time
}

func NewService(bookings BookingRepository, events EventPublisher) *Service {
	return &Service{
		bookings: bookings,
		events:   events,
		now:      time.Now,
	}
}

// CreateBooking books a provider for the calling customer. The price is
// derived from the provider's rate inside the insert transaction and never
// recomputed afterwards.
func (s *Service) CreateBooking(ctx context.Context, actor domain.Actor, req CreateBookingRequest) (*domain.Booking, error) {
	if actor.Kind != domain.KindCustomer || actor.ID <= 0 {
		return nil, domain.ErrForbidden
	}

	req.ServiceName = strings.TrimSpace(req.ServiceName)
	req.BookingDate = strings.TrimSpace(req.BookingDate)
	req.BookingTime = strings.TrimSpace(req.BookingTime)
	req.Address = strings.TrimSpace(req.Address)
	req.Instructions = strings.TrimSpace(req.Instructions)
	if err := validator.Check(req); err != nil {
		return nil, err
	}
	if _, err := time.Parse(domain.BookingDateLayout, req.BookingDate); err != nil {
		return nil, ErrInvalidSchedule
	}
	if _, err := time.Parse(domain.BookingTimeLayout, req.BookingTime); err != nil {
		return nil, ErrInvalidSchedule
	}

	b := &domain.Booking{
		CustomerID:    actor.ID,
		BookingDate:   req.BookingDate,
		BookingTime:   req.BookingTime,
		DurationHours: req.DurationHours,
		Status:        domain.BookingPending,
		Address:       req.Address,
		Instructions:  req.Instructions,
	}

	err := s.bookings.CreateForProvider(ctx, req.ProviderID, b, func(p *domain.Provider) error {
		switch {
		case req.ServiceName == "":
			b.ServiceName = p.ServiceName
		case req.ServiceName != p.ServiceName:
			return ErrServiceMismatch
		default:
			b.ServiceName = req.ServiceName
		}
		b.TotalAmount = domain.Price(p.HourlyRate, b.DurationHours)
		if b.TotalAmount.GreaterThan(domain.MaxAmount) {
			return ErrAmountTooLarge
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, ErrProviderNotFound
		}
		return nil, err
	}

	s.publish(domain.KindProvider, b.ProviderID, Event{Type: EventCreated, Booking: b})
	return b, nil
}

// Transition moves a booking along the status graph. Either party or an
// admin may do so. The write is conditional on the status that was read, so
// of two racing transitions exactly one succeeds.
func (s *Service) Transition(ctx context.Context, actor domain.Actor, bookingID int64, next domain.BookingStatus) (*domain.Booking, error) {
	b, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if !b.HasParty(actor) && !actor.IsAdmin() {
		return nil, domain.ErrForbidden
	}
	if !next.Valid() {
		return nil, ErrUnknownStatus
	}
	if !b.Status.CanTransitionTo(next) {
		return nil, fmt.Errorf("%w: %s -> %s", domain.ErrIllegalTransition, b.Status, next)
	}

	ok, err := s.bookings.UpdateStatusIf(ctx, b.ID, b.Status, next)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrStaleStatus
	}

	updated, err := s.bookings.GetByID(ctx, b.ID)
	if err != nil {
		return nil, err
	}

	ev := Event{Type: EventStatusChanged, Booking: updated}
	if !actor.IsCustomer(updated.CustomerID) {
		s.publish(domain.KindCustomer, updated.CustomerID, ev)
	}
	if !actor.IsProvider(updated.ProviderID) {
		s.publish(domain.KindProvider, updated.ProviderID, ev)
	}
	return updated, nil
}

// Get returns a booking visible to the actor.
func (s *Service) Get(ctx context.Context, actor domain.Actor, bookingID int64) (*domain.Booking, error) {
	b, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if !b.HasParty(actor) && !actor.IsAdmin() {
		return nil, domain.ErrForbidden
	}
	return b, nil
}

// List returns the actor's bookings, newest first. Admins see every booking.
func (s *Service) List(ctx context.Context, actor domain.Actor, f ListFilter) ([]domain.Booking, error) {
	if f.Status != "" && !f.Status.Valid() {
		return nil, ErrUnknownStatus
	}

	rf, err := scopeFor(actor)
	if err != nil {
		return nil, err
	}
	rf.Status = f.Status
	rf.Limit = f.Limit
	return s.bookings.List(ctx, rf)
}

// Summary backs the customer and provider dashboards.
func (s *Service) Summary(ctx context.Context, actor domain.Actor) (*Summary, error) {
	rf, err := scopeFor(actor)
	if err != nil {
		return nil, err
	}

	counts, err := s.bookings.CountByStatus(ctx, rf)
	if err != nil {
		return nil, err
	}

	recentFilter := rf
	recentFilter.Limit = recentLimit
	recent, err := s.bookings.List(ctx, recentFilter)
	if err != nil {
		return nil, err
	}

	out := &Summary{Counts: counts, RecentBookings: recent}

	completed := rf
	completed.Status = domain.BookingCompleted
	switch {
	case actor.Kind == domain.KindProvider:
		now := s.now()
		completed.CreatedFrom = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
		completed.CreatedTo = completed.CreatedFrom.AddDate(0, 1, 0)
		earnings, err := s.bookings.SumAmount(ctx, completed)
		if err != nil {
			return nil, err
		}
		out.MonthlyEarnings = &earnings
	case !actor.IsAdmin():
		spent, err := s.bookings.SumAmount(ctx, completed)
		if err != nil {
			return nil, err
		}
		out.TotalSpent = &spent
	}
	return out, nil
}

func scopeFor(actor domain.Actor) (repository.BookingFilter, error) {
	switch {
	case actor.ID <= 0:
		return repository.BookingFilter{}, domain.ErrForbidden
	case actor.IsAdmin():
		return repository.BookingFilter{}, nil
	case actor.Kind == domain.KindProvider:
		return repository.BookingFilter{ProviderID: actor.ID}, nil
	case actor.Kind == domain.KindCustomer:
		return repository.BookingFilter{CustomerID: actor.ID}, nil
	default:
		return repository.BookingFilter{}, domain.ErrForbidden
	}
}

func (s *Service) publish(kind domain.PrincipalKind, id int64, ev Event) {
	if s.events == nil {
		return
	}
	s.events.Publish(kind, id, ev)
}
