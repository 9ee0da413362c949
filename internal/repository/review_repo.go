package repository

import (
	"context"

	"servicehub/internal/domain"

	"gorm.io/gorm"
)

type ReviewRepository struct {
	db *gorm.DB
}

func NewReviewRepository(db *gorm.DB) *ReviewRepository {
	return &ReviewRepository{db: db}
}

func toDomainReview(m reviewModel) domain.Review {
	return domain.Review{
		ID:         m.ID,
		BookingID:  m.BookingID,
		CustomerID: m.UserID,
		ProviderID: m.ProviderID,
		Rating:     m.Rating,
		Comment:    deref(m.Comment),
		CreatedAt:  m.CreatedAt,
	}
}

// Create inserts a review. A second review for the same booking fails with
// ErrUniqueViolation.
func (r *ReviewRepository) Create(ctx context.Context, rv *domain.Review) error {
	m := reviewModel{
		BookingID:  rv.BookingID,
		UserID:     rv.CustomerID,
		ProviderID: rv.ProviderID,
		Rating:     rv.Rating,
		Comment:    optional(rv.Comment),
	}
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return translateWrite(err)
	}
	*rv = toDomainReview(m)
	return nil
}

func (r *ReviewRepository) ExistsForBooking(ctx context.Context, bookingID int64) (bool, error) {
	var cnt int64
	err := r.db.WithContext(ctx).
		Model(&reviewModel{}).
		Where("booking_id = ?", bookingID).
		Count(&cnt).Error
	return cnt > 0, err
}

// StatsFor aggregates ratings per provider. Providers without reviews are
// absent from the result.
func (r *ReviewRepository) StatsFor(ctx context.Context, providerIDs []int64) (map[int64]domain.RatingStats, error) {
	out := make(map[int64]domain.RatingStats, len(providerIDs))
	if len(providerIDs) == 0 {
		return out, nil
	}

	var rows []struct {
		ProviderID int64
		AvgRating  float64
		Cnt        int64
	}
	err := r.db.WithContext(ctx).
		Model(&reviewModel{}).
		Select("provider_id, AVG(rating) AS avg_rating, COUNT(*) AS cnt").
		Where("provider_id IN ?", providerIDs).
		Group("provider_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	for _, row := range rows {
		avg := row.AvgRating
		out[row.ProviderID] = domain.RatingStats{
			ProviderID: row.ProviderID,
			Average:    &avg,
			Count:      row.Cnt,
		}
	}
	return out, nil
}

func (r *ReviewRepository) ListForProvider(ctx context.Context, providerID int64, limit int) ([]domain.Review, error) {
	return r.list(r.db.WithContext(ctx).Where("provider_id = ?", providerID), limit)
}

func (r *ReviewRepository) Recent(ctx context.Context, limit int) ([]domain.Review, error) {
	return r.list(r.db.WithContext(ctx), limit)
}

func (r *ReviewRepository) list(q *gorm.DB, limit int) ([]domain.Review, error) {
	var rows []reviewModel
	q = q.Order("created_at DESC, id DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&rows).Error; err != nil {
		return nil, err
	}

	out := make([]domain.Review, 0, len(rows))
	for _, m := range rows {
		out = append(out, toDomainReview(m))
	}
	return out, nil
}
