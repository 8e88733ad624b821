package realtime

import (
	"sync"
	"testing"
)

func TestRegistry_RegisterUnregisterRoundTrip(t *testing.T) {
	r := NewRegistry()
	conn := NewConn(1)

	r.Register(1, ChannelNotifications, conn)
	if got := len(r.ConnectionsFor(1, ChannelNotifications)); got != 1 {
		t.Fatalf("got %d connections, want 1", got)
	}

	r.Unregister(1, ChannelNotifications, conn)
	if got := len(r.ConnectionsFor(1, ChannelNotifications)); got != 0 {
		t.Fatalf("got %d connections after unregister, want 0", got)
	}
}

func TestRegistry_SnapshotSize(t *testing.T) {
	r := NewRegistry()
	conns := []*Conn{NewConn(1), NewConn(1), NewConn(1)}
	for _, c := range conns {
		r.Register(2, ChannelChat, c)
	}

	if got := len(r.ConnectionsFor(2, ChannelChat)); got != len(conns) {
		t.Fatalf("got %d connections, want %d", got, len(conns))
	}

	r.Unregister(2, ChannelChat, conns[1])
	if got := len(r.ConnectionsFor(2, ChannelChat)); got != len(conns)-1 {
		t.Fatalf("got %d connections after removing one, want %d", got, len(conns)-1)
	}
}

func TestRegistry_RegisterTwiceIsIdempotent(t *testing.T) {
	r := NewRegistry()
	conn := NewConn(1)

	r.Register(1, ChannelChat, conn)
	r.Register(1, ChannelChat, conn)

	if got := len(r.ConnectionsFor(1, ChannelChat)); got != 1 {
		t.Fatalf("got %d connections, want 1 distinct", got)
	}
}

func TestRegistry_UnregisterMissingIsNoOp(t *testing.T) {
	r := NewRegistry()
	r.Unregister(5, ChannelNotifications, NewConn(1))

	other := NewConn(1)
	r.Register(5, ChannelNotifications, other)
	r.Unregister(5, ChannelNotifications, NewConn(1)) // never registered
	if got := len(r.ConnectionsFor(5, ChannelNotifications)); got != 1 {
		t.Fatalf("got %d connections, want 1", got)
	}
}

func TestRegistry_EmptyKeyRemoved(t *testing.T) {
	r := NewRegistry()
	conn := NewConn(1)

	r.Register(3, ChannelChat, conn)
	r.Unregister(3, ChannelChat, conn)

	r.mu.RLock()
	_, present := r.conns[registryKey{userID: 3, channel: ChannelChat}]
	r.mu.RUnlock()
	if present {
		t.Fatal("empty connection set should remove the registry key")
	}
}

func TestRegistry_ChannelsAreIsolated(t *testing.T) {
	r := NewRegistry()
	chat := NewConn(1)
	notif := NewConn(1)

	r.Register(7, ChannelChat, chat)
	r.Register(7, ChannelNotifications, notif)

	if got := r.ConnectionsFor(7, ChannelChat); len(got) != 1 || got[0] != chat {
		t.Fatalf("chat channel returned %v", got)
	}
	if got := r.ConnectionsFor(7, ChannelNotifications); len(got) != 1 || got[0] != notif {
		t.Fatalf("notifications channel returned %v", got)
	}
}

func TestRegistry_SnapshotIsACopy(t *testing.T) {
	r := NewRegistry()
	conn := NewConn(1)
	r.Register(1, ChannelChat, conn)

	snapshot := r.ConnectionsFor(1, ChannelChat)
	r.Unregister(1, ChannelChat, conn)

	if len(snapshot) != 1 {
		t.Fatal("snapshot should not observe later mutations")
	}
}

func TestRegistry_ConcurrentAccess(t *testing.T) {
	r := NewRegistry()
	var wg sync.WaitGroup

	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(userID uint) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				conn := NewConn(1)
				r.Register(userID, ChannelNotifications, conn)
				r.ConnectionsFor(userID, ChannelNotifications)
				r.Unregister(userID, ChannelNotifications, conn)
			}
		}(uint(i % 4))
	}
	wg.Wait()

	for userID := uint(0); userID < 4; userID++ {
		if got := len(r.ConnectionsFor(userID, ChannelNotifications)); got != 0 {
			t.Fatalf("user %d still has %d connections", userID, got)
		}
	}
}
