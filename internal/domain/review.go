package domain

import "time"

const (
	MinRating = 1
	MaxRating = 5
)

type Review struct {
	ID         int64     `json:"id"`
	BookingID  int64     `json:"booking_id"`
	CustomerID int64     `json:"customer_id"`
	ProviderID int64     `json:"provider_id"`
	Rating     int       `json:"rating"`
	Comment    string    `json:"comment,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// RatingStats is a provider's review aggregate. Average is nil when the
// provider has no reviews.
type RatingStats struct {
	ProviderID int64    `json:"provider_id"`
	Average    *float64 `json:"avg_rating"`
	Count      int64    `json:"review_count"`
}
