package payment

import (
	"context"
	"errors"
	"strings"

	"servicehub/internal/domain"
	"servicehub/internal/pkg/validator"
	"servicehub/internal/repository"

	"github.com/google/uuid"
)

type Service struct {
	payments paymentRepo
	bookings bookingReader
	loggerf  func(format string, args ...interface{})
}

func NewService(payments paymentRepo, bookings bookingReader, loggerf func(format string, args ...interface{})) *Service {
	if loggerf == nil {
		loggerf = func(string, ...interface{}) {}
	}
	return &Service{
		payments: payments,
		bookings: bookings,
		loggerf:  loggerf,
	}
}

// Initiate opens a pending payment for the full booking amount. Only the
// booking's customer may pay, and a booking carries at most one pending or
// completed payment at a time.
func (s *Service) Initiate(ctx context.Context, actor domain.Actor, bookingID int64, req InitiateRequest) (*domain.Payment, error) {
	b, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if !actor.IsCustomer(b.CustomerID) {
		return nil, domain.ErrForbidden
	}
	if b.Status == domain.BookingCancelled {
		return nil, ErrBookingCancelled
	}

	req.Method = strings.ToLower(strings.TrimSpace(req.Method))
	if err := validator.Check(req); err != nil {
		return nil, err
	}

	p := &domain.Payment{
		ID:             uuid.NewString(),
		BookingID:      b.ID,
		CustomerID:     b.CustomerID,
		ProviderID:     b.ProviderID,
		Amount:         b.TotalAmount,
		Status:         domain.PaymentPending,
		Method:         req.Method,
		GatewayOrderID: gatewayOrderID(),
	}
	if err := s.payments.CreateIfNoActive(ctx, p); err != nil {
		if errors.Is(err, repository.ErrActivePaymentExists) {
			return nil, ErrPaymentExists
		}
		return nil, err
	}

	s.loggerf("level=info msg=payment initiated payment_id=%s booking_id=%d amount=%s", p.ID, p.BookingID, p.Amount.StringFixed(2))
	return p, nil
}

// Settle records the gateway outcome of a pending payment. Admin only.
func (s *Service) Settle(ctx context.Context, actor domain.Actor, paymentID string, req SettleRequest) (*domain.Payment, error) {
	if !actor.IsAdmin() {
		return nil, domain.ErrForbidden
	}
	if req.Outcome != domain.PaymentCompleted && req.Outcome != domain.PaymentFailed {
		return nil, ErrInvalidOutcome
	}
	req.GatewayPaymentID = strings.TrimSpace(req.GatewayPaymentID)
	if err := validator.Check(req); err != nil {
		return nil, err
	}

	if _, err := s.payments.GetByID(ctx, paymentID); err != nil {
		return nil, err
	}

	changed, err := s.payments.SettleIfPending(ctx, paymentID, req.Outcome, req.GatewayPaymentID)
	if err != nil {
		return nil, err
	}
	if !changed {
		return nil, ErrPaymentNotPending
	}

	s.loggerf("level=info msg=payment settled payment_id=%s outcome=%s admin_id=%d", paymentID, req.Outcome, actor.ID)
	return s.payments.GetByID(ctx, paymentID)
}

// ListForBooking shows a booking's payments to either party or an admin.
func (s *Service) ListForBooking(ctx context.Context, actor domain.Actor, bookingID int64) ([]domain.Payment, error) {
	b, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if !b.HasParty(actor) && !actor.IsAdmin() {
		return nil, domain.ErrForbidden
	}
	return s.payments.ListForBooking(ctx, bookingID)
}

func gatewayOrderID() string {
	return "order_" + strings.ReplaceAll(uuid.NewString(), "-", "")[:20]
}
