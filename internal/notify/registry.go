// Package notify tracks the live WebSocket connection of each signed-in
// user and delivers best-effort plain-text notifications to them.
package notify

import (
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Conn abstracts a WebSocket connection for testability.
type Conn interface {
	ReadMessage() (messageType int, p []byte, err error)
	WriteMessage(messageType int, data []byte) error
	Close() error
}

const sendBufferSize = 16

// Client represents one registered connection. The connection handle is
// owned by the request that accepted the handshake; the registry holds a
// non-owning reference.
type Client struct {
	UserID uuid.UUID
	Send   chan []byte

	conn   Conn
	mu     sync.Mutex
	closed bool
}

func NewClient(userID uuid.UUID, conn Conn) *Client {
	return &Client{
		UserID: userID,
		Send:   make(chan []byte, sendBufferSize),
		conn:   conn,
	}
}

// trySend pushes onto the send channel unless the client is already closed
// or the buffer is full. The closed flag and the close itself share the
// client mutex, so a push can never race the channel close.
func (c *Client) trySend(msg []byte) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return false
	}
	select {
	case c.Send <- msg:
		return true
	default:
		return false
	}
}

func (c *Client) closeSend() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	close(c.Send)
}

// Registry is the process-wide table of connected users. At most one
// connection is tracked per user id.
type Registry struct {
	mu      sync.RWMutex
	clients map[uuid.UUID]*Client
	log     *zap.Logger
}

func NewRegistry(log *zap.Logger) *Registry {
	return &Registry{
		clients: make(map[uuid.UUID]*Client),
		log:     log,
	}
}

// Register tracks a client, displacing any prior connection for the same
// user. The displaced client's send channel is closed so its write loop
// terminates.
func (r *Registry) Register(c *Client) {
	r.mu.Lock()
	prev := r.clients[c.UserID]
	r.clients[c.UserID] = c
	r.mu.Unlock()

	if prev != nil && prev != c {
		prev.closeSend()
		r.log.Debug("displaced previous connection", zap.String("user_id", c.UserID.String()))
	}
}

// Unregister removes the client and closes its send channel. Entries are
// removed on disconnect or error so stale handles never linger and silently
// swallow sends. A client displaced by a newer connection is a no-op here.
func (r *Registry) Unregister(c *Client) {
	r.mu.Lock()
	if r.clients[c.UserID] == c {
		delete(r.clients, c.UserID)
	}
	r.mu.Unlock()

	c.closeSend()
}

// Send pushes a text message to the user's connection. Delivery is
// best-effort: a missing entry is not an error, a concurrent disconnect
// loses the message, and a full client buffer drops it rather than
// blocking the caller.
func (r *Registry) Send(userID uuid.UUID, message string) bool {
	r.mu.RLock()
	c, ok := r.clients[userID]
	r.mu.RUnlock()

	if !ok {
		return false
	}

	if !c.trySend([]byte(message)) {
		r.log.Warn("notification dropped, client gone or buffer full", zap.String("user_id", userID.String()))
		return false
	}
	return true
}

// ClientCount returns the number of currently tracked connections.
func (r *Registry) ClientCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.clients)
}
