package domain

import "time"

type Message struct {
	ID         int64         `json:"id"`
	BookingID  int64         `json:"booking_id"`
	SenderKind PrincipalKind `json:"sender_type"`
	SenderID   int64         `json:"sender_id"`
	Text       string        `json:"message_text"`
	CreatedAt  time.Time     `json:"created_at"`
}
