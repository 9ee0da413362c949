package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type KycStatus string

const (
	KycPending  KycStatus = "pending"
	KycVerified KycStatus = "verified"
	KycRejected KycStatus = "rejected"
)

type KycDecision string

const (
	KycApprove KycDecision = "approve"
	KycReject  KycDecision = "reject"
)

// Apply returns the sub-state and flag a decision sets. Both always move together.
func (d KycDecision) Apply() (KycStatus, bool, bool) {
	switch d {
	case KycApprove:
		return KycVerified, true, true
	case KycReject:
		return KycRejected, false, true
	default:
		return "", false, false
	}
}

// Provider is a provider account merged with its public profile.
type Provider struct {
	ID              int64           `json:"id"`
	Email           string          `json:"email"`
	PasswordHash    string          `json:"-"`
	BusinessName    string          `json:"business_name"`
	OwnerName       string          `json:"owner_name"`
	Phone           string          `json:"phone"`
	ServiceID       int64           `json:"service_id"`
	ServiceName     string          `json:"service_name"`
	Location        string          `json:"location"`
	HourlyRate      decimal.Decimal `json:"hourly_rate"`
	ExperienceYears int             `json:"experience_years"`
	Description     string          `json:"description,omitempty"`
	IdentityNumber  string          `json:"-"`
	TaxNumber       string          `json:"-"`
	KycStatus       KycStatus       `json:"kyc_status"`
	KycVerified     bool            `json:"kyc_verified"`
	Status          AccountStatus   `json:"status"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

func (p *Provider) Bookable() bool {
	return p.KycVerified && p.Status == AccountActive
}

type KycDocument struct {
	ID         int64     `json:"id"`
	ProviderID int64     `json:"provider_id"`
	Reference  string    `json:"reference"`
	FileName   string    `json:"file_name"`
	SizeBytes  int64     `json:"size_bytes"`
	CreatedAt  time.Time `json:"created_at"`
}
