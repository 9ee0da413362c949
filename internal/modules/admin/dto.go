package admin

import (
	"servicehub/internal/domain"

	"github.com/shopspring/decimal"
)

const recentLimit = 5

type Dashboard struct {
	TotalCustomers  int64             `json:"total_customers"`
	TotalProviders  int64             `json:"total_providers"`
	TotalBookings   int64             `json:"total_bookings"`
	PendingKyc      int64             `json:"pending_kyc"`
	TotalRevenue    decimal.Decimal   `json:"total_revenue"`
	RecentCustomers []domain.User     `json:"recent_customers"`
	RecentProviders []domain.Provider `json:"recent_providers"`
	RecentBookings  []domain.Booking  `json:"recent_bookings"`
}

type SetStatusRequest struct {
	Status domain.AccountStatus `json:"status" binding:"required"`
}
