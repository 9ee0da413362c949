package payment

import (
	"fmt"

	"servicehub/internal/domain"
)

var (
	ErrPaymentExists     = fmt.Errorf("%w: booking already has a pending or completed payment", domain.ErrConflict)
	ErrBookingCancelled  = fmt.Errorf("%w: cancelled bookings cannot be paid", domain.ErrIllegalTransition)
	ErrPaymentNotPending = fmt.Errorf("%w: payment is not pending", domain.ErrIllegalTransition)
	ErrInvalidOutcome    = fmt.Errorf("%w: outcome must be completed or failed", domain.ErrValidation)
)
