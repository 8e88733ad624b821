package handlers

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/justcodeon231/Eduvos-Hackathon-2025/internal/realtime"
	"github.com/labstack/echo/v4"
)

func newWSTestServer(t *testing.T) (*httptest.Server, *realtime.Registry, *realtime.Fanout) {
	t.Helper()

	registry := realtime.NewRegistry()
	e := echo.New()
	NewWSHandler(registry).RegisterWSRoutes(e)

	srv := httptest.NewServer(e)
	t.Cleanup(srv.Close)
	return srv, registry, realtime.NewFanout(registry)
}

func dialWS(t *testing.T, srv *httptest.Server, path string) *websocket.Conn {
	t.Helper()

	url := strings.Replace(srv.URL, "http://", "ws://", 1) + path
	ws, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial %s: %v", path, err)
	}
	t.Cleanup(func() { ws.Close() })
	return ws
}

// waitForConns polls the registry until the user has the expected number
// of connections. Registration happens on the server goroutine after the
// upgrade handshake, so the client can win the race briefly.
func waitForConns(t *testing.T, registry *realtime.Registry, userID uint, channel realtime.Channel, want int) {
	t.Helper()

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if len(registry.ConnectionsFor(userID, channel)) == want {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("user %d never reached %d connections on %s", userID, want, channel)
}

func TestNotificationSocketReceivesFanout(t *testing.T) {
	srv, registry, fanout := newWSTestServer(t)

	ws := dialWS(t, srv, "/ws/notifications/7")
	waitForConns(t, registry, 7, realtime.ChannelNotifications, 1)

	d := fanout.Deliver(7, realtime.ChannelNotifications, realtime.NotificationEvent{
		Event:            realtime.EventNewNotification,
		NotificationType: "like",
		Message:          "Thabo liked your post",
		ActorID:          3,
		NotifID:          41,
		Timestamp:        time.Now().UTC().Format(time.RFC3339),
	})
	if d.Outcome != realtime.DeliverySent {
		t.Fatalf("delivery = %+v", d)
	}

	ws.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, data, err := ws.ReadMessage()
	if err != nil {
		t.Fatalf("read message: %v", err)
	}

	var event realtime.NotificationEvent
	if err := json.Unmarshal(data, &event); err != nil {
		t.Fatalf("unmarshal %s: %v", data, err)
	}
	if event.Event != realtime.EventNewNotification || event.NotifID != 41 || event.ActorID != 3 {
		t.Fatalf("event = %+v", event)
	}
}

func TestChatSocketMultipleTabs(t *testing.T) {
	srv, registry, fanout := newWSTestServer(t)

	first := dialWS(t, srv, "/ws/chat/4")
	second := dialWS(t, srv, "/ws/chat/4")
	waitForConns(t, registry, 4, realtime.ChannelChat, 2)

	fanout.Deliver(4, realtime.ChannelChat, realtime.MessageEvent{
		Event:     realtime.EventNewMessage,
		SenderID:  9,
		Content:   "see you at the lab",
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
	})

	for _, ws := range []*websocket.Conn{first, second} {
		ws.SetReadDeadline(time.Now().Add(2 * time.Second))
		_, data, err := ws.ReadMessage()
		if err != nil {
			t.Fatalf("read message: %v", err)
		}
		var event realtime.MessageEvent
		if err := json.Unmarshal(data, &event); err != nil {
			t.Fatalf("unmarshal %s: %v", data, err)
		}
		if event.Event != realtime.EventNewMessage || event.SenderID != 9 {
			t.Fatalf("event = %+v", event)
		}
	}
}

func TestSocketDisconnectLeavesRegistry(t *testing.T) {
	srv, registry, _ := newWSTestServer(t)

	ws := dialWS(t, srv, "/ws/notifications/12")
	waitForConns(t, registry, 12, realtime.ChannelNotifications, 1)

	ws.Close()
	waitForConns(t, registry, 12, realtime.ChannelNotifications, 0)
}

func TestSocketRejectsInvalidUserID(t *testing.T) {
	srv, _, _ := newWSTestServer(t)

	url := strings.Replace(srv.URL, "http://", "ws://", 1) + "/ws/chat/not-a-number"
	_, resp, err := websocket.DefaultDialer.Dial(url, nil)
	if err == nil {
		t.Fatal("dial with invalid user id should fail")
	}
	if resp == nil || resp.StatusCode != 400 {
		t.Fatalf("response = %+v, want 400", resp)
	}
}

func TestChannelsAreIndependentPerUser(t *testing.T) {
	srv, registry, fanout := newWSTestServer(t)

	chat := dialWS(t, srv, "/ws/chat/5")
	dialWS(t, srv, "/ws/notifications/5")
	waitForConns(t, registry, 5, realtime.ChannelChat, 1)
	waitForConns(t, registry, 5, realtime.ChannelNotifications, 1)

	// Deliver on notifications only; the chat socket must stay silent.
	fanout.Deliver(5, realtime.ChannelNotifications, realtime.NotificationEvent{
		Event: realtime.EventNewNotification,
	})

	chat.SetReadDeadline(time.Now().Add(200 * time.Millisecond))
	if _, _, err := chat.ReadMessage(); err == nil {
		t.Fatal("chat socket received a notifications-channel event")
	}
}
