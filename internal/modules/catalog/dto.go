package catalog

import "servicehub/internal/domain"

type AddListingRequest struct {
	Name        string `json:"name" validate:"required,notblank,max=128"`
	Category    string `json:"category" validate:"required,notblank,max=64"`
	Description string `json:"description"`
}

// CategoryGroup is one category with its active listings, ordered by name.
type CategoryGroup struct {
	Category string           `json:"category"`
	Services []domain.Listing `json:"services"`
}
