package review

import (
	"fmt"

	"servicehub/internal/domain"
)

var (
	ErrBookingNotCompleted = fmt.Errorf("%w: only completed bookings can be reviewed", domain.ErrIllegalTransition)
	ErrInvalidRating       = fmt.Errorf("%w: rating must be between %d and %d", domain.ErrValidation, domain.MinRating, domain.MaxRating)
	ErrAlreadyReviewed     = fmt.Errorf("%w: booking already reviewed", domain.ErrConflict)
)
