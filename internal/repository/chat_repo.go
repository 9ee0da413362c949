package repository

import (
	"context"

	"servicehub/internal/domain"

	"gorm.io/gorm"
)

type ChatRepository struct {
	db *gorm.DB
}

func NewChatRepository(db *gorm.DB) *ChatRepository {
	return &ChatRepository{db: db}
}

func toDomainMessage(m messageModel) domain.Message {
	return domain.Message{
		ID:         m.ID,
		BookingID:  m.BookingID,
		SenderKind: domain.PrincipalKind(m.SenderType),
		SenderID:   m.SenderID,
		Text:       m.Text,
		CreatedAt:  m.CreatedAt,
	}
}

func (r *ChatRepository) CreateMessage(ctx context.Context, msg *domain.Message) error {
	m := messageModel{
		BookingID:  msg.BookingID,
		SenderType: string(msg.SenderKind),
		SenderID:   msg.SenderID,
		Text:       msg.Text,
	}
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return err
	}
	*msg = toDomainMessage(m)
	return nil
}

// GetMessages returns up to limit messages of a booking in chronological
// order. beforeID > 0 pages backwards from that message.
func (r *ChatRepository) GetMessages(ctx context.Context, bookingID int64, limit int, beforeID int64) ([]domain.Message, error) {
	query := r.db.WithContext(ctx).Where("booking_id = ?", bookingID)
	if beforeID > 0 {
		query = query.Where("id < ?", beforeID)
	}

	var rows []messageModel
	err := query.
		Order("created_at DESC, id DESC").
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	// newest were fetched first for LIMIT; flip back to chronological
	out := make([]domain.Message, len(rows))
	for i, m := range rows {
		out[len(rows)-1-i] = toDomainMessage(m)
	}
	return out, nil
}
