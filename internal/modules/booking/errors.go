package booking

import (
	"fmt"

	"servicehub/internal/domain"
)

var (
	ErrProviderNotFound = fmt.Errorf("provider: %w", domain.ErrNotFound)
	ErrServiceMismatch  = fmt.Errorf("%w: provider does not offer this service", domain.ErrValidation)
	ErrInvalidSchedule  = fmt.Errorf("%w: booking_date must be YYYY-MM-DD and booking_time HH:MM", domain.ErrValidation)
	ErrAmountTooLarge   = fmt.Errorf("%w: total_amount exceeds 99999999.99", domain.ErrValidation)
	ErrUnknownStatus    = fmt.Errorf("%w: unknown booking status", domain.ErrValidation)
	// ErrStaleStatus is returned when another writer moved the booking
	// between our read and the conditional update.
	ErrStaleStatus = fmt.Errorf("%w: booking status changed concurrently", domain.ErrIllegalTransition)
)
