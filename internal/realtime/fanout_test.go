package realtime

import (
	"encoding/json"
	"testing"
	"time"
)

// receivePayload pops the next queued payload from a connection's outbox
// without blocking the test forever.
func receivePayload(t *testing.T, conn *Conn) []byte {
	t.Helper()
	select {
	case data := <-conn.Outbox():
		return data
	case <-time.After(time.Second):
		t.Fatal("no payload on outbox")
		return nil
	}
}

func TestFanout_NoConnectionsIsNoOp(t *testing.T) {
	f := NewFanout(NewRegistry())

	d := f.Deliver(42, ChannelNotifications, map[string]string{"event": "new_notification"})
	if d.Outcome != DeliveryNoConnections {
		t.Fatalf("outcome = %q, want %q", d.Outcome, DeliveryNoConnections)
	}
	if d.Sent != 0 || d.Failed != 0 {
		t.Fatalf("counts = %d sent / %d failed, want zero", d.Sent, d.Failed)
	}
}

func TestFanout_DeliversToEveryConnection(t *testing.T) {
	r := NewRegistry()
	f := NewFanout(r)

	first, second := NewConn(1), NewConn(1)
	r.Register(9, ChannelNotifications, first)
	r.Register(9, ChannelNotifications, second)

	d := f.Deliver(9, ChannelNotifications, NotificationEvent{
		Event:            EventNewNotification,
		NotificationType: "like",
		Message:          "somebody liked your post",
		ActorID:          3,
		NotifID:          12,
	})
	if d.Outcome != DeliverySent || d.Sent != 2 || d.Failed != 0 {
		t.Fatalf("delivery = %+v, want 2 sent", d)
	}

	for _, conn := range []*Conn{first, second} {
		var got NotificationEvent
		if err := json.Unmarshal(receivePayload(t, conn), &got); err != nil {
			t.Fatalf("unmarshal payload: %v", err)
		}
		if got.Event != EventNewNotification || got.NotifID != 12 || got.ActorID != 3 {
			t.Fatalf("payload = %+v", got)
		}
	}
}

func TestFanout_FaultyConnectionDoesNotAbortTheRest(t *testing.T) {
	r := NewRegistry()
	f := NewFanout(r)

	dead := NewConn(1)
	dead.Close()
	live := NewConn(1)
	r.Register(4, ChannelChat, dead)
	r.Register(4, ChannelChat, live)

	d := f.Deliver(4, ChannelChat, map[string]string{"event": "new_message"})
	if d.Outcome != DeliverySent {
		t.Fatalf("outcome = %q, want %q", d.Outcome, DeliverySent)
	}
	if d.Sent != 1 || d.Failed != 1 {
		t.Fatalf("counts = %d sent / %d failed, want 1/1", d.Sent, d.Failed)
	}
	receivePayload(t, live)
}

func TestFanout_AllConnectionsFaulty(t *testing.T) {
	r := NewRegistry()
	f := NewFanout(r)

	dead := NewConn(1)
	dead.Close()
	r.Register(4, ChannelChat, dead)

	d := f.Deliver(4, ChannelChat, map[string]string{"event": "new_message"})
	if d.Outcome != DeliveryFailed || d.Failed != 1 {
		t.Fatalf("delivery = %+v, want failed", d)
	}
}

func TestFanout_MarshalsEventEnvelope(t *testing.T) {
	r := NewRegistry()
	f := NewFanout(r)

	conn := NewConn(1)
	r.Register(8, ChannelChat, conn)

	f.Deliver(8, ChannelChat, MessageEvent{
		Event:     EventNewMessage,
		SenderID:  2,
		Content:   "hey",
		CreatedAt: "2025-08-29T10:00:00Z",
	})

	var got map[string]any
	if err := json.Unmarshal(receivePayload(t, conn), &got); err != nil {
		t.Fatalf("unmarshal payload: %v", err)
	}
	if got["event"] != "new_message" || got["content"] != "hey" {
		t.Fatalf("payload = %v", got)
	}
	if _, present := got["post_id"]; present {
		t.Fatal("post_id should be omitted for plain messages")
	}
}

func TestConn_SendAfterClose(t *testing.T) {
	c := NewConn(1)
	c.Close()
	c.Close() // safe twice

	if err := c.Send([]byte("x")); err != ErrConnClosed {
		t.Fatalf("err = %v, want ErrConnClosed", err)
	}
}

func TestConn_FullBufferDoesNotBlock(t *testing.T) {
	c := NewConn(1)
	if err := c.Send([]byte("first")); err != nil {
		t.Fatalf("first send: %v", err)
	}
	if err := c.Send([]byte("second")); err != ErrSendBufferFull {
		t.Fatalf("err = %v, want ErrSendBufferFull", err)
	}
}
