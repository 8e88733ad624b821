package realtime

import (
	"errors"
	"sync"
)

var (
	// ErrConnClosed is returned by Send after Close.
	ErrConnClosed = errors.New("realtime: connection closed")
	// ErrSendBufferFull is returned by Send when the outbox is full,
	// which means the writer goroutine is not draining it.
	ErrSendBufferFull = errors.New("realtime: send buffer full")
)

const defaultSendBuffer = 16

// Conn is one live push connection. Outbound payloads are buffered and
// drained by the transport's writer goroutine, so Deliver never blocks a
// request handler on a slow socket.
type Conn struct {
	mu     sync.Mutex
	out    chan []byte
	closed bool
}

// NewConn creates a connection with the given outbox capacity.
// A non-positive buffer falls back to the default.
func NewConn(buffer int) *Conn {
	if buffer <= 0 {
		buffer = defaultSendBuffer
	}
	return &Conn{out: make(chan []byte, buffer)}
}

// Send enqueues payload for the writer goroutine. It never blocks; a
// closed connection or a full outbox returns an error instead.
func (c *Conn) Send(payload []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return ErrConnClosed
	}
	select {
	case c.out <- payload:
		return nil
	default:
		return ErrSendBufferFull
	}
}

// Outbox is the channel the transport drains. It is closed by Close.
func (c *Conn) Outbox() <-chan []byte {
	return c.out
}

// Close marks the connection closed and closes the outbox. Safe to call
// more than once.
func (c *Conn) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return
	}
	c.closed = true
	close(c.out)
}
