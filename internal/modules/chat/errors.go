package chat

import (
	"fmt"

	"servicehub/internal/domain"
)

const MaxMessageLength = 2000

var (
	ErrEmptyMessage   = fmt.Errorf("%w: message text is required", domain.ErrValidation)
	ErrMessageTooLong = fmt.Errorf("%w: message text exceeds %d characters", domain.ErrValidation, MaxMessageLength)
)
