package directory

import (
	"fmt"

	"servicehub/internal/domain"
)

var (
	ErrEmailAlreadyExists = fmt.Errorf("provider: %w", domain.ErrDuplicateEmail)
	ErrInvalidRate        = fmt.Errorf("%w: hourly_rate must be between 0.01 and 99999999.99", domain.ErrValidation)
	ErrInvalidDecision    = fmt.Errorf("%w: kyc action must be approve or reject", domain.ErrValidation)
	ErrInvalidStatus      = fmt.Errorf("%w: status must be active or suspended", domain.ErrValidation)
	ErrInvalidDocument    = fmt.Errorf("%w: invalid document", domain.ErrValidation)
)
