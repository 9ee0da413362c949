package admin

import (
	"fmt"

	"servicehub/internal/domain"
)

var (
	ErrInvalidStatus = fmt.Errorf("%w: status must be active or suspended", domain.ErrValidation)
	ErrSelfSuspend   = fmt.Errorf("%w: admins cannot change their own status", domain.ErrValidation)
)
