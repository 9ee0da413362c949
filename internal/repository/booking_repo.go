package repository

import (
	"context"
	"time"

	"servicehub/internal/domain"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type BookingRepository struct {
	db *gorm.DB
}

func NewBookingRepository(db *gorm.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

// BookingFilter narrows booking queries. Zero values mean "any".
type BookingFilter struct {
	CustomerID  int64
	ProviderID  int64
	Status      domain.BookingStatus
	CreatedFrom time.Time
	CreatedTo   time.Time
	Limit       int
}

func toDomainBooking(m bookingModel) *domain.Booking {
	return &domain.Booking{
		ID:            m.ID,
		CustomerID:    m.UserID,
		ProviderID:    m.ProviderID,
		ServiceName:   m.ServiceName,
		BookingDate:   m.BookingDate,
		BookingTime:   m.BookingTime,
		DurationHours: m.DurationHours,
		TotalAmount:   m.TotalAmount,
		Status:        domain.BookingStatus(m.Status),
		Address:       m.UserAddress,
		Instructions:  deref(m.Instructions),
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}

func toBookingModel(b *domain.Booking) bookingModel {
	return bookingModel{
		ID:            b.ID,
		UserID:        b.CustomerID,
		ProviderID:    b.ProviderID,
		ServiceName:   b.ServiceName,
		BookingDate:   b.BookingDate,
		BookingTime:   b.BookingTime,
		DurationHours: b.DurationHours,
		TotalAmount:   b.TotalAmount,
		Status:        string(b.Status),
		UserAddress:   b.Address,
		Instructions:  optional(b.Instructions),
		CreatedAt:     b.CreatedAt,
		UpdatedAt:     b.UpdatedAt,
	}
}

// CreateForProvider reads the provider and inserts the booking inside one
// transaction. prepare sees the provider row as of that transaction and may
// fill derived fields (price, service snapshot) or reject the booking.
func (r *BookingRepository) CreateForProvider(
	ctx context.Context,
	providerID int64,
	b *domain.Booking,
	prepare func(p *domain.Provider) error,
) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var pm providerModel
		if err := tx.First(&pm, providerID).Error; err != nil {
			return notFound(err, "provider")
		}

		b.ProviderID = pm.ID
		if err := prepare(toDomainProvider(pm)); err != nil {
			return err
		}

		m := toBookingModel(b)
		if err := tx.Create(&m).Error; err != nil {
			return err
		}
		*b = *toDomainBooking(m)
		return nil
	})
}

func (r *BookingRepository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	var m bookingModel
	if err := r.db.WithContext(ctx).First(&m, id).Error; err != nil {
		return nil, notFound(err, "booking")
	}
	return toDomainBooking(m), nil
}

// UpdateStatusIf moves the booking from one status to another only if it is
// still in the expected status. It reports whether the row was updated.
func (r *BookingRepository) UpdateStatusIf(ctx context.Context, id int64, from, to domain.BookingStatus) (bool, error) {
	tx := r.db.WithContext(ctx).
		Model(&bookingModel{}).
		Where("id = ? AND status = ?", id, string(from)).
		Updates(map[string]any{
			"status":     string(to),
			"updated_at": time.Now(),
		})
	if tx.Error != nil {
		return false, tx.Error
	}
	return tx.RowsAffected == 1, nil
}

func (r *BookingRepository) scope(ctx context.Context, f BookingFilter) *gorm.DB {
	q := r.db.WithContext(ctx).Model(&bookingModel{})
	if f.CustomerID != 0 {
		q = q.Where("user_id = ?", f.CustomerID)
	}
	if f.ProviderID != 0 {
		q = q.Where("provider_id = ?", f.ProviderID)
	}
	if f.Status != "" {
		q = q.Where("status = ?", string(f.Status))
	}
	if !f.CreatedFrom.IsZero() {
		q = q.Where("created_at >= ?", f.CreatedFrom)
	}
	if !f.CreatedTo.IsZero() {
		q = q.Where("created_at < ?", f.CreatedTo)
	}
	return q
}

// List returns bookings newest first.
func (r *BookingRepository) List(ctx context.Context, f BookingFilter) ([]domain.Booking, error) {
	q := r.scope(ctx, f).Order("created_at DESC, id DESC")
	if f.Limit > 0 {
		q = q.Limit(f.Limit)
	}

	var rows []bookingModel
	if err := q.Find(&rows).Error; err != nil {
		return nil, err
	}

	out := make([]domain.Booking, 0, len(rows))
	for _, m := range rows {
		out = append(out, *toDomainBooking(m))
	}
	return out, nil
}

func (r *BookingRepository) Count(ctx context.Context, f BookingFilter) (int64, error) {
	var cnt int64
	err := r.scope(ctx, f).Count(&cnt).Error
	return cnt, err
}

// SumAmount totals total_amount over the filtered bookings.
func (r *BookingRepository) SumAmount(ctx context.Context, f BookingFilter) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.scope(ctx, f).
		Select("COALESCE(SUM(total_amount), 0)").
		Row().
		Scan(&total)
	if err != nil {
		return decimal.Zero, err
	}
	return total, nil
}

func (r *BookingRepository) CountByStatus(ctx context.Context, f BookingFilter) (map[domain.BookingStatus]int64, error) {
	var rows []struct {
		Status string
		Cnt    int64
	}
	err := r.scope(ctx, f).
		Select("status, COUNT(*) AS cnt").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	out := make(map[domain.BookingStatus]int64, len(rows))
	for _, row := range rows {
		out[domain.BookingStatus(row.Status)] = row.Cnt
	}
	return out, nil
}
