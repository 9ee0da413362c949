package booking

import (
	"servicehub/internal/domain"

	"github.com/shopspring/decimal"
)

type CreateBookingRequest struct {
	ProviderID    int64  `json:"provider_id" validate:"required,gt=0"`
	ServiceName   string `json:"service_name"`
	BookingDate   string `json:"booking_date" validate:"required"`
	BookingTime   string `json:"booking_time" validate:"required"`
	DurationHours int    `json:"duration_hours" validate:"required,gt=0,lte=168"`
	Address       string `json:"address" validate:"required,notblank"`
	Instructions  string `json:"instructions"`
}

type UpdateStatusRequest struct {
	Status domain.BookingStatus `json:"status" binding:"required"`
}

type ListFilter struct {
	Status domain.BookingStatus
	Limit  int
}

// Summary is the dashboard view of a principal's bookings. TotalSpent is set
// for customers, MonthlyEarnings for providers.
type Summary struct {
	Counts          map[domain.BookingStatus]int64 `json:"counts"`
	TotalSpent      *decimal.Decimal               `json:"total_spent,omitempty"`
	MonthlyEarnings *decimal.Decimal               `json:"monthly_earnings,omitempty"`
	RecentBookings  []domain.Booking               `json:"recent_bookings"`
}

// Event is pushed to the counterparty when a booking is created or moves.
type Event struct {
	Type    string          `json:"type"`
	Booking *domain.Booking `json:"booking"`
}

const (
	EventCreated       = "booking.created"
	EventStatusChanged = "booking.status_changed"
)
