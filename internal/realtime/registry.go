package realtime

import "sync"

// Channel is a named push category a connection subscribes to.
type Channel string

const (
	ChannelChat          Channel = "chat"
	ChannelNotifications Channel = "notifications"
)

type registryKey struct {
	userID  uint
	channel Channel
}

// Registry tracks the live push connections per (user, channel) pair.
// It is the only mutable state shared between request handlers and the
// websocket lifecycle goroutines; every operation takes the lock.
//
// One instance is built in the router at startup and handed to the
// fanout and the websocket handler.
type Registry struct {
	mu    sync.RWMutex
	conns map[registryKey]map[*Conn]struct{}
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{conns: make(map[registryKey]map[*Conn]struct{})}
}

// Register adds conn to the set for (userID, channel), creating the set
// if absent. Registering the same conn twice is a no-op.
func (r *Registry) Register(userID uint, channel Channel, conn *Conn) {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := registryKey{userID: userID, channel: channel}
	if r.conns[key] == nil {
		r.conns[key] = make(map[*Conn]struct{})
	}
	r.conns[key][conn] = struct{}{}
}

// Unregister removes conn from the set for (userID, channel). Removing a
// conn that was never registered is a no-op; disconnects may race with
// duplicate removal attempts. When the set empties the key is dropped so
// lookups for an offline user return nothing rather than an empty entry.
func (r *Registry) Unregister(userID uint, channel Channel, conn *Conn) {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := registryKey{userID: userID, channel: channel}
	set, ok := r.conns[key]
	if !ok {
		return
	}
	delete(set, conn)
	if len(set) == 0 {
		delete(r.conns, key)
	}
}

// ConnectionsFor returns a snapshot of the current connections for
// (userID, channel). Callers iterate the snapshot while other goroutines
// keep mutating the registry, so a live view is never handed out.
func (r *Registry) ConnectionsFor(userID uint, channel Channel) []*Conn {
	r.mu.RLock()
	defer r.mu.RUnlock()

	set, ok := r.conns[registryKey{userID: userID, channel: channel}]
	if !ok {
		return nil
	}
	snapshot := make([]*Conn, 0, len(set))
	for conn := range set {
		snapshot = append(snapshot, conn)
	}
	return snapshot
}
