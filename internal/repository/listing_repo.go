package repository

import (
	"context"

	"servicehub/internal/domain"

	"gorm.io/gorm"
)

type ListingRepository struct {
	db *gorm.DB
}

func NewListingRepository(db *gorm.DB) *ListingRepository {
	return &ListingRepository{db: db}
}

func toDomainListing(m listingModel) *domain.Listing {
	return &domain.Listing{
		ID:          m.ID,
		Name:        m.Name,
		Category:    m.Category,
		Description: deref(m.Description),
		IsActive:    m.IsActive,
		CreatedAt:   m.CreatedAt,
	}
}

func (r *ListingRepository) Create(ctx context.Context, l *domain.Listing) error {
	m := listingModel{
		Name:        l.Name,
		Category:    l.Category,
		Description: optional(l.Description),
		IsActive:    l.IsActive,
	}
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return translateWrite(err)
	}
	*l = *toDomainListing(m)
	return nil
}

func (r *ListingRepository) GetByID(ctx context.Context, id int64) (*domain.Listing, error) {
	var m listingModel
	if err := r.db.WithContext(ctx).First(&m, id).Error; err != nil {
		return nil, notFound(err, "service")
	}
	return toDomainListing(m), nil
}

func (r *ListingRepository) GetByName(ctx context.Context, name string) (*domain.Listing, error) {
	var m listingModel
	if err := r.db.WithContext(ctx).Where("name = ?", name).First(&m).Error; err != nil {
		return nil, notFound(err, "service")
	}
	return toDomainListing(m), nil
}

// ToggleActive flips is_active in a single statement so concurrent toggles
// never read a stale flag.
func (r *ListingRepository) ToggleActive(ctx context.Context, id int64) (*domain.Listing, error) {
	tx := r.db.WithContext(ctx).
		Model(&listingModel{}).
		Where("id = ?", id).
		Update("is_active", gorm.Expr("NOT is_active"))
	if tx.Error != nil {
		return nil, tx.Error
	}
	if tx.RowsAffected == 0 {
		return nil, notFound(gorm.ErrRecordNotFound, "service")
	}
	return r.GetByID(ctx, id)
}

// List returns listings ordered by category then name.
func (r *ListingRepository) List(ctx context.Context, activeOnly bool) ([]domain.Listing, error) {
	q := r.db.WithContext(ctx).Order("category ASC, name ASC")
	if activeOnly {
		q = q.Where("is_active = ?", true)
	}

	var rows []listingModel
	if err := q.Find(&rows).Error; err != nil {
		return nil, err
	}

	out := make([]domain.Listing, 0, len(rows))
	for _, m := range rows {
		out = append(out, *toDomainListing(m))
	}
	return out, nil
}
