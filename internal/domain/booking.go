package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingConfirmed BookingStatus = "confirmed"
	BookingCompleted BookingStatus = "completed"
	BookingCancelled BookingStatus = "cancelled"
)

var bookingTransitions = map[BookingStatus][]BookingStatus{
	BookingPending:   {BookingConfirmed, BookingCancelled},
	BookingConfirmed: {BookingCompleted, BookingCancelled},
}

func (s BookingStatus) Valid() bool {
	switch s {
	case BookingPending, BookingConfirmed, BookingCompleted, BookingCancelled:
		return true
	}
	return false
}

func (s BookingStatus) Terminal() bool {
	return s == BookingCompleted || s == BookingCancelled
}

// CanTransitionTo reports whether next is an edge of the booking state graph.
func (s BookingStatus) CanTransitionTo(next BookingStatus) bool {
	for _, to := range bookingTransitions[s] {
		if to == next {
			return true
		}
	}
	return false
}

const (
	BookingDateLayout = "2006-01-02"
	BookingTimeLayout = "15:04"
)

type Booking struct {
	ID            int64           `json:"id"`
	CustomerID    int64           `json:"customer_id"`
	ProviderID    int64           `json:"provider_id"`
	ServiceName   string          `json:"service_name"`
	BookingDate   string          `json:"booking_date"`
	BookingTime   string          `json:"booking_time"`
	DurationHours int             `json:"duration_hours"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
	Status        BookingStatus   `json:"status"`
	Address       string          `json:"address"`
	Instructions  string          `json:"instructions,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// HasParty reports whether the actor is the booking's customer or provider.
func (b *Booking) HasParty(a Actor) bool {
	return a.IsCustomer(b.CustomerID) || a.IsProvider(b.ProviderID)
}

// MaxAmount is the largest money value the store holds (numeric(10,2)).
var MaxAmount = decimal.RequireFromString("99999999.99")

// Price is the frozen booking amount for a rate and a duration.
func Price(hourlyRate decimal.Decimal, hours int) decimal.Decimal {
	return hourlyRate.Mul(decimal.NewFromInt(int64(hours))).Round(2)
}
