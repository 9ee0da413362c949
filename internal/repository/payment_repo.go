package repository

import (
	"context"
	"errors"
	"time"

	"servicehub/internal/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrActivePaymentExists is returned when a booking already has a pending or
// completed payment.
var ErrActivePaymentExists = errors.New("booking already has an active payment")

type PaymentRepository struct {
	db *gorm.DB
}

func NewPaymentRepository(db *gorm.DB) *PaymentRepository {
	return &PaymentRepository{db: db}
}

func toDomainPayment(m paymentModel) *domain.Payment {
	return &domain.Payment{
		ID:               m.ID,
		BookingID:        m.BookingID,
		CustomerID:       m.UserID,
		ProviderID:       m.ProviderID,
		Amount:           m.Amount,
		Status:           domain.PaymentStatus(m.Status),
		Method:           deref(m.Method),
		GatewayOrderID:   deref(m.GatewayOrderID),
		GatewayPaymentID: deref(m.GatewayPaymentID),
		CreatedAt:        m.CreatedAt,
		UpdatedAt:        m.UpdatedAt,
	}
}

// CreateIfNoActive inserts p unless the booking already has a pending or
// completed payment. On row-locking dialects the booking row is locked for
// the duration of the check.
func (r *PaymentRepository) CreateIfNoActive(ctx context.Context, p *domain.Payment) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		lock := tx
		if tx.Dialector.Name() != "sqlite" {
			lock = tx.Clauses(clause.Locking{Strength: "UPDATE"})
		}
		var b bookingModel
		if err := lock.Select("id").First(&b, p.BookingID).Error; err != nil {
			return notFound(err, "booking")
		}

		var active int64
		err := tx.Model(&paymentModel{}).
			Where("booking_id = ? AND status IN ?", p.BookingID, []string{
				string(domain.PaymentPending),
				string(domain.PaymentCompleted),
			}).
			Count(&active).Error
		if err != nil {
			return err
		}
		if active > 0 {
			return ErrActivePaymentExists
		}

		m := paymentModel{
			ID:             p.ID,
			BookingID:      p.BookingID,
			UserID:         p.CustomerID,
			ProviderID:     p.ProviderID,
			Amount:         p.Amount,
			Status:         string(p.Status),
			Method:         optional(p.Method),
			GatewayOrderID: optional(p.GatewayOrderID),
		}
		if err := tx.Create(&m).Error; err != nil {
			return translateWrite(err)
		}
		*p = *toDomainPayment(m)
		return nil
	})
}

func (r *PaymentRepository) GetByID(ctx context.Context, id string) (*domain.Payment, error) {
	var m paymentModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		return nil, notFound(err, "payment")
	}
	return toDomainPayment(m), nil
}

func (r *PaymentRepository) ListForBooking(ctx context.Context, bookingID int64) ([]domain.Payment, error) {
	var rows []paymentModel
	err := r.db.WithContext(ctx).
		Where("booking_id = ?", bookingID).
		Order("created_at ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	out := make([]domain.Payment, 0, len(rows))
	for _, m := range rows {
		out = append(out, *toDomainPayment(m))
	}
	return out, nil
}

// SettleIfPending records the gateway outcome of a pending payment. It
// reports false when the payment was not pending anymore.
func (r *PaymentRepository) SettleIfPending(ctx context.Context, id string, outcome domain.PaymentStatus, gatewayPaymentID string) (bool, error) {
	updates := map[string]any{
		"status":     string(outcome),
		"updated_at": time.Now(),
	}
	if gatewayPaymentID != "" {
		updates["gateway_payment_id"] = gatewayPaymentID
	}

	res := r.db.WithContext(ctx).
		Model(&paymentModel{}).
		Where("id = ? AND status = ?", id, string(domain.PaymentPending)).
		Updates(updates)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}
