package chat

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"servicehub/internal/domain"
	"servicehub/internal/middleware"
	"servicehub/internal/pkg/jwt"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type wsEnv struct {
	server  *httptest.Server
	hub     *Hub
	tokens  *jwt.Service
	booking *domain.Booking
}

func newWSEnv(t *testing.T) *wsEnv {
	t.Helper()
	hub := NewHub()
	svc, b := setupService(t, hub)
	tokens := jwt.New("ws-secret", time.Hour)

	r := gin.New()
	api := r.Group("/api/v1", middleware.JWTAuth(tokens))
	NewHandler(svc, hub, nil).RegisterRoutes(api)

	srv := httptest.NewServer(r)
	t.Cleanup(func() {
		hub.Close()
		srv.Close()
	})
	return &wsEnv{server: srv, hub: hub, tokens: tokens, booking: b}
}

func (e *wsEnv) token(t *testing.T, kind domain.PrincipalKind, id int64) string {
	t.Helper()
	tok, err := e.tokens.GenerateToken(jwt.Subject{UserID: id, Kind: string(kind), Role: string(kind)})
	require.NoError(t, err)
	return tok
}

func (e *wsEnv) dial(t *testing.T, kind domain.PrincipalKind, id int64) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(e.server.URL, "http") + "/api/v1/ws?access_token=" + e.token(t, kind, id)
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	require.Eventually(t, func() bool { return e.hub.IsOnline(kind, id) }, 2*time.Second, 10*time.Millisecond)
	return conn
}

func readEvent(t *testing.T, conn *websocket.Conn) map[string]any {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var out map[string]any
	require.NoError(t, conn.ReadJSON(&out))
	return out
}

func TestHub_RejectsMissingToken(t *testing.T) {
	e := newWSEnv(t)
	url := "ws" + strings.TrimPrefix(e.server.URL, "http") + "/api/v1/ws"
	_, resp, err := websocket.DefaultDialer.Dial(url, nil)
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestHub_PublishReachesOnlyThatPrincipal(t *testing.T) {
	e := newWSEnv(t)
	customer := e.dial(t, domain.KindCustomer, 1)
	provider := e.dial(t, domain.KindProvider, 1)

	e.hub.Publish(domain.KindProvider, 1, map[string]string{"type": "booking.created"})
	got := readEvent(t, provider)
	assert.Equal(t, "booking.created", got["type"])

	// same numeric id, other kind: nothing queued
	require.NoError(t, customer.SetReadDeadline(time.Now().Add(100*time.Millisecond)))
	_, _, err := customer.ReadMessage()
	assert.Error(t, err)

	assert.False(t, e.hub.SendTo(domain.KindProvider, 42, "nobody"))
}

func TestHub_PingFrame(t *testing.T) {
	e := newWSEnv(t)
	conn := e.dial(t, domain.KindCustomer, 1)

	require.NoError(t, conn.WriteJSON(ClientFrame{Type: "ping"}))
	assert.Equal(t, EventPong, readEvent(t, conn)["type"])

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte("{")))
	assert.Equal(t, "INVALID_JSON", readEvent(t, conn)["code"])
}

func TestHub_HTTPPostPushesToConnectedProvider(t *testing.T) {
	e := newWSEnv(t)
	provider := e.dial(t, domain.KindProvider, e.booking.ProviderID)

	body := strings.NewReader(`{"message_text":"running late"}`)
	req, err := http.NewRequestWithContext(context.Background(), http.MethodPost,
		e.server.URL+"/api/v1/bookings/"+strconv.FormatInt(e.booking.ID, 10)+"/messages", body)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+e.token(t, domain.KindCustomer, 1))
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	got := readEvent(t, provider)
	assert.Equal(t, EventMessageCreated, got["type"])
	raw, _ := json.Marshal(got["message"])
	assert.Contains(t, string(raw), "running late")
}

func TestHub_SocketFrameSendsMessage(t *testing.T) {
	e := newWSEnv(t)
	customer := e.dial(t, domain.KindCustomer, 1)
	provider := e.dial(t, domain.KindProvider, e.booking.ProviderID)

	require.NoError(t, customer.WriteJSON(ClientFrame{Type: "message", BookingID: e.booking.ID, Text: "hello"}))

	assert.Equal(t, EventMessageCreated, readEvent(t, provider)["type"])
	assert.Equal(t, EventMessageCreated, readEvent(t, customer)["type"])
}

func TestHub_NewConnectionReplacesOld(t *testing.T) {
	e := newWSEnv(t)
	first := e.dial(t, domain.KindCustomer, 1)
	second := e.dial(t, domain.KindCustomer, 1)

	require.NoError(t, first.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, _, err := first.ReadMessage()
	assert.Error(t, err)

	assert.Equal(t, 1, e.hub.OnlineCount())
	assert.True(t, e.hub.SendTo(domain.KindCustomer, 1, Event{Type: EventPong}))
	assert.Equal(t, EventPong, readEvent(t, second)["type"])
}
