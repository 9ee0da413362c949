package catalog

import (
	"fmt"

	"servicehub/internal/domain"
)

var (
	// ErrListingExists is a validation failure: names are unique across the catalog.
	ErrListingExists   = fmt.Errorf("%w: service name already exists", domain.ErrValidation)
	ErrListingInactive = fmt.Errorf("%w: service is not active", domain.ErrValidation)
)
