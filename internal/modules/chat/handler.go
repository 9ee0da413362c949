package chat

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strconv"

	"servicehub/internal/domain"
	"servicehub/internal/middleware"
	"servicehub/internal/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

type Handler struct {
	service  *Service
	hub      *Hub
	upgrader websocket.Upgrader
}

// NewHandler builds the chat handler. allowedOrigins limits websocket
// upgrades by Origin header; an empty list accepts any origin.
func NewHandler(service *Service, hub *Hub, allowedOrigins []string) *Handler {
	allowed := make(map[string]bool, len(allowedOrigins))
	for _, o := range allowedOrigins {
		allowed[o] = true
	}
	return &Handler{
		service: service,
		hub:     hub,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				return len(allowed) == 0 || origin == "" || allowed[origin]
			},
		},
	}
}

// RegisterRoutes registers chat routes under the protected group (JWT required).
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/bookings/:id/messages", h.List)
	rg.POST("/bookings/:id/messages", h.Post)
	rg.GET("/ws", h.Connect)
}

// List returns a page of booking messages
//
// @Summary Booking messages
// @Tags Chat
// @Produce json
// @Security BearerAuth
// @Param id path int64 true "Booking ID"
// @Param limit query int false "Page size" default(50)
// @Param before_id query int64 false "Return messages older than this id"
// @Router /bookings/{id}/messages [get]
func (h *Handler) List(c *gin.Context) {
	actor, ok := middleware.MustActor(c)
	if !ok {
		return
	}
	bookingID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid booking ID")
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	beforeID, _ := strconv.ParseInt(c.DefaultQuery("before_id", "0"), 10, 64)

	msgs, err := h.service.List(c.Request.Context(), actor, bookingID, limit, beforeID)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"messages": msgs})
}

// Post sends a message on a booking thread
//
// @Summary Send booking message
// @Tags Chat
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int64 true "Booking ID"
// @Param request body PostMessageRequest true "Message"
// @Router /bookings/{id}/messages [post]
func (h *Handler) Post(c *gin.Context) {
	actor, ok := middleware.MustActor(c)
	if !ok {
		return
	}
	bookingID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid booking ID")
		return
	}

	var req PostMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "message_text is required")
		return
	}

	msg, err := h.service.Post(c.Request.Context(), actor, bookingID, req.Text)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"message": msg})
}

// Connect upgrades to a websocket. Browsers cannot set headers on the
// handshake, so the token may come as ?access_token=.
//
// @Summary Live events
// @Tags Chat
// @Param access_token query string false "JWT"
// @Router /ws [get]
func (h *Handler) Connect(c *gin.Context) {
	actor, ok := middleware.MustActor(c)
	if !ok {
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("level=warn msg=ws upgrade failed kind=%s id=%d err=%v", actor.Kind, actor.ID, err)
		return
	}

	log.Printf("level=info msg=ws connected kind=%s id=%d", actor.Kind, actor.ID)
	ctx := c.Request.Context()
	h.hub.Serve(conn, actor.Kind, actor.ID, func(raw []byte) {
		h.handleFrame(ctx, actor, raw)
	})
	log.Printf("level=info msg=ws disconnected kind=%s id=%d", actor.Kind, actor.ID)
}

func (h *Handler) handleFrame(ctx context.Context, actor domain.Actor, raw []byte) {
	var frame ClientFrame
	if err := json.Unmarshal(raw, &frame); err != nil {
		h.hub.SendTo(actor.Kind, actor.ID, Event{Type: EventError, Code: "INVALID_JSON", Error: "Failed to parse frame"})
		return
	}

	switch frame.Type {
	case "ping":
		h.hub.SendTo(actor.Kind, actor.ID, Event{Type: EventPong})
	case "message":
		msg, err := h.service.Post(ctx, actor, frame.BookingID, frame.Text)
		if err != nil {
			h.hub.SendTo(actor.Kind, actor.ID, Event{Type: EventError, Code: "SEND_FAILED", Error: err.Error()})
			return
		}
		h.hub.SendTo(actor.Kind, actor.ID, Event{Type: EventMessageCreated, Message: msg})
	default:
		h.hub.SendTo(actor.Kind, actor.ID, Event{Type: EventError, Code: "UNKNOWN_TYPE", Error: "Unknown frame type: " + frame.Type})
	}
}
