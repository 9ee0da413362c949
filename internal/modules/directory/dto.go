package directory

import (
	"io"

	"servicehub/internal/domain"

	"github.com/shopspring/decimal"
)

type RegisterProviderRequest struct {
	Email           string          `json:"email" validate:"required,email,max=255"`
	Password        string          `json:"password" validate:"required,notblank,min=8,max=72"`
	BusinessName    string          `json:"business_name" validate:"required,notblank,max=255"`
	OwnerName       string          `json:"owner_name" validate:"required,notblank,max=255"`
	Phone           string          `json:"phone" validate:"required,notblank,max=32"`
	ServiceName     string          `json:"service_name" validate:"required,notblank"`
	Location        string          `json:"location" validate:"required,notblank"`
	HourlyRate      decimal.Decimal `json:"hourly_rate"`
	ExperienceYears int             `json:"experience_years" validate:"gte=0,lte=80"`
	Description     string          `json:"description"`
	IdentityNumber  string          `json:"identity_number" validate:"omitempty,max=64"`
	TaxNumber       string          `json:"tax_number" validate:"omitempty,max=64"`
}

// RankedProvider is a provider with its rating aggregate.
type RankedProvider struct {
	domain.Provider
	AvgRating   *float64 `json:"avg_rating"`
	ReviewCount int64    `json:"review_count"`
}

// KycUpload is one document as received from the client.
type KycUpload struct {
	FileName    string
	ContentType string
	Size        int64
	Body        io.Reader
}

type SetStatusRequest struct {
	Status domain.AccountStatus `json:"status" binding:"required"`
}
