package chat

import "servicehub/internal/domain"

const (
	EventMessageCreated = "message.created"
	EventError          = "error"
	EventPong           = "pong"
)

type PostMessageRequest struct {
	Text string `json:"message_text" binding:"required"`
}

// Event is the envelope pushed to websocket clients.
type Event struct {
	Type    string          `json:"type"`
	Message *domain.Message `json:"message,omitempty"`
	Code    string          `json:"code,omitempty"`
	Error   string          `json:"error,omitempty"`
}

// ClientFrame is what a connected client may send over the socket.
type ClientFrame struct {
	Type      string `json:"type"`
	BookingID int64  `json:"booking_id"`
	Text      string `json:"message_text"`
}
