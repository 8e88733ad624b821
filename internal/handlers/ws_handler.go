package handlers

import (
	"net/http"
	"strconv"

	"github.com/gorilla/websocket"
	"github.com/justcodeon231/Eduvos-Hackathon-2025/internal/realtime"
	"github.com/labstack/echo/v4"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// WSHandler owns the two push-channel endpoints. Each accepted socket
// lives in the registry from upgrade until disconnect.
type WSHandler struct {
	registry *realtime.Registry
}

// NewWSHandler creates a new WSHandler
func NewWSHandler(registry *realtime.Registry) *WSHandler {
	return &WSHandler{registry: registry}
}

// RegisterWSRoutes registers the websocket endpoints
func (h *WSHandler) RegisterWSRoutes(e *echo.Echo) {
	e.GET("/ws/chat/:user_id", h.ChatSocket)
	e.GET("/ws/notifications/:user_id", h.NotificationSocket)
}

// ChatSocket accepts a chat push connection for a user
func (h *WSHandler) ChatSocket(c echo.Context) error {
	return h.serve(c, realtime.ChannelChat)
}

// NotificationSocket accepts a notification push connection for a user
func (h *WSHandler) NotificationSocket(c echo.Context) error {
	return h.serve(c, realtime.ChannelNotifications)
}

func (h *WSHandler) serve(c echo.Context, channel realtime.Channel) error {
	userID, err := strconv.ParseUint(c.Param("user_id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid user ID")
	}

	ws, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		return err
	}

	conn := realtime.NewConn(0)
	h.registry.Register(uint(userID), channel, conn)
	defer func() {
		h.registry.Unregister(uint(userID), channel, conn)
		conn.Close()
		ws.Close()
	}()

	// Writer goroutine drains the outbox; fanout never touches the
	// socket directly.
	go func() {
		for payload := range conn.Outbox() {
			if err := ws.WriteMessage(websocket.TextMessage, payload); err != nil {
				return
			}
		}
	}()

	// The read loop is how liveness is detected: any read error means
	// the peer is gone and the connection must leave the registry.
	for {
		if _, _, err := ws.ReadMessage(); err != nil {
			break
		}
	}

	return nil
}
