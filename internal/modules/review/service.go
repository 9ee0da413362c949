package review

import (
	"context"
	"errors"
	"strings"

	"servicehub/internal/domain"
	"servicehub/internal/pkg/validator"
	"servicehub/internal/repository"
)

type Service struct {
	reviews  ReviewRepository
	bookings BookingReader
}

func NewService(reviews ReviewRepository, bookings BookingReader) *Service {
	return &Service{reviews: reviews, bookings: bookings}
}

// SubmitReview records the one review a completed booking allows. The
// completion check runs before the actor check.
func (s *Service) SubmitReview(ctx context.Context, actor domain.Actor, bookingID int64, req SubmitReviewRequest) (*domain.Review, error) {
	b, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if b.Status != domain.BookingCompleted {
		return nil, ErrBookingNotCompleted
	}
	if !actor.IsCustomer(b.CustomerID) {
		return nil, domain.ErrForbidden
	}
	if req.Rating < domain.MinRating || req.Rating > domain.MaxRating {
		return nil, ErrInvalidRating
	}
	req.Comment = strings.TrimSpace(req.Comment)
	if err := validator.Check(req); err != nil {
		return nil, err
	}

	exists, err := s.reviews.ExistsForBooking(ctx, b.ID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrAlreadyReviewed
	}

	rv := &domain.Review{
		BookingID:  b.ID,
		CustomerID: b.CustomerID,
		ProviderID: b.ProviderID,
		Rating:     req.Rating,
		Comment:    req.Comment,
	}
	if err := s.reviews.Create(ctx, rv); err != nil {
		if errors.Is(err, repository.ErrUniqueViolation) {
			return nil, ErrAlreadyReviewed
		}
		return nil, err
	}
	return rv, nil
}

// ProviderStats aggregates a provider's reviews on read. Average is nil
// when there are none.
func (s *Service) ProviderStats(ctx context.Context, providerID int64) (domain.RatingStats, error) {
	stats, err := s.reviews.StatsFor(ctx, []int64{providerID})
	if err != nil {
		return domain.RatingStats{}, err
	}
	if st, ok := stats[providerID]; ok {
		return st, nil
	}
	return domain.RatingStats{ProviderID: providerID}, nil
}

// StatsFor is the batch form used for directory ranking.
func (s *Service) StatsFor(ctx context.Context, providerIDs []int64) (map[int64]domain.RatingStats, error) {
	return s.reviews.StatsFor(ctx, providerIDs)
}

func (s *Service) ListForProvider(ctx context.Context, providerID int64, limit int) ([]domain.Review, error) {
	return s.reviews.ListForProvider(ctx, providerID, clampLimit(limit))
}

// Recent feeds the home page.
func (s *Service) Recent(ctx context.Context, limit int) ([]domain.Review, error) {
	return s.reviews.Recent(ctx, clampLimit(limit))
}

func clampLimit(limit int) int {
	if limit <= 0 || limit > 100 {
		return 20
	}
	return limit
}
