package ws

import (
	"bytes"
	"compress/gzip"
	"encoding/json"
	"io"
	"log"
	"sync"
	"time"

	"github.com/collabroomhq/collabroom-backend/internal/models"
	"github.com/gofiber/websocket/v2"
)

// gzipThreshold is the minimum payload size worth compressing.
const gzipThreshold = 512

// Conn is the transport surface the hub needs from a WebSocket connection.
// *websocket.Conn satisfies it; tests substitute a recording fake.
type Conn interface {
	WriteMessage(messageType int, data []byte) error
	WriteControl(messageType int, data []byte, deadline time.Time) error
	Close() error
}

// Client is one authenticated WebSocket connection. Identity is bound at
// handshake time and never changes. The joined-group set is guarded by the
// hub mutex so disconnect teardown is a bounded iteration over it.
type Client struct {
	conn         Conn
	UserID       uint
	Email        string
	Role         string
	supportsGzip bool

	groups     map[string]struct{}
	lastPong   time.Time
	pingTicker *time.Ticker
	closeChan  chan struct{}
	closeOnce  sync.Once

	writeMu sync.Mutex
}

func NewClient(conn Conn, userID uint, email, role string, supportsGzip bool) *Client {
	return &Client{
		conn:         conn,
		UserID:       userID,
		Email:        email,
		Role:         role,
		supportsGzip: supportsGzip,
		groups:       make(map[string]struct{}),
		lastPong:     time.Now(),
		closeChan:    make(chan struct{}),
	}
}

func (c *Client) close() {
	c.closeOnce.Do(func() {
		close(c.closeChan)
		_ = c.conn.Close()
	})
}

// send writes a single frame, compressing large payloads when the client
// negotiated gzip. Serialized with a per-client mutex because dispatch and
// the ping routine write concurrently.
func (c *Client) send(data []byte) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()

	frameType := websocket.TextMessage
	if c.supportsGzip && len(data) > gzipThreshold {
		if compressed, err := compressPayload(data); err == nil && len(compressed) < len(data) {
			data = compressed
			frameType = websocket.BinaryMessage
		}
	}
	return c.conn.WriteMessage(frameType, data)
}

// Hub tracks connected clients and the broadcast groups they joined. The
// group table is the only shared mutable state in the real-time layer; one
// RWMutex guards it. Membership checks happen outside this lock.
type Hub struct {
	clients map[*Client]struct{}
	groups  map[string]map[*Client]struct{}
	mu      sync.RWMutex

	pingInterval time.Duration
	pongTimeout  time.Duration
}

// NewHub creates a hub and starts its connection health checker.
func NewHub() *Hub {
	hub := &Hub{
		clients:      make(map[*Client]struct{}),
		groups:       make(map[string]map[*Client]struct{}),
		pingInterval: 25 * time.Second,
		pongTimeout:  6 * time.Second,
	}

	go hub.connectionHealthChecker()

	return hub
}

// PongWindow is how long a connection may go without a pong before it is
// treated as dead. Used by the handler to set read deadlines.
func (h *Hub) PongWindow() time.Duration {
	return h.pingInterval + h.pongTimeout
}

// Register adds an authenticated client and starts its ping routine.
func (h *Hub) Register(c *Client) {
	h.mu.Lock()
	h.clients[c] = struct{}{}
	c.lastPong = time.Now()
	c.pingTicker = time.NewTicker(h.pingInterval)
	total := len(h.clients)
	h.mu.Unlock()

	go h.pingRoutine(c)

	log.Printf("User %d connected to hub (total: %d, gzip: %v)", c.UserID, total, c.supportsGzip)
}

// Unregister removes a client from every group it joined and closes the
// transport. Idempotent; safe to call from dispatch failure paths and from
// the read-loop teardown at the same time.
func (h *Hub) Unregister(c *Client) {
	h.mu.Lock()
	if _, exists := h.clients[c]; !exists {
		h.mu.Unlock()
		return
	}
	delete(h.clients, c)
	for name := range c.groups {
		h.removeFromGroupLocked(c, name)
	}
	if c.pingTicker != nil {
		c.pingTicker.Stop()
	}
	total := len(h.clients)
	h.mu.Unlock()

	c.close()
	log.Printf("User %d disconnected from hub (total: %d)", c.UserID, total)
}

// JoinGroup registers the client under a group name. Duplicate joins are
// no-ops; a client that already disconnected is not re-added.
func (h *Hub) JoinGroup(c *Client, name string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, exists := h.clients[c]; !exists {
		return
	}
	group, ok := h.groups[name]
	if !ok {
		group = make(map[*Client]struct{})
		h.groups[name] = group
	}
	group[c] = struct{}{}
	c.groups[name] = struct{}{}
}

// LeaveGroup removes the client from a group. Leaving a group the client
// never joined is a no-op.
func (h *Hub) LeaveGroup(c *Client, name string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.removeFromGroupLocked(c, name)
}

func (h *Hub) removeFromGroupLocked(c *Client, name string) {
	if group, ok := h.groups[name]; ok {
		delete(group, c)
		if len(group) == 0 {
			delete(h.groups, name)
		}
	}
	delete(c.groups, name)
}

// InGroup reports whether the client is currently registered under the group.
func (h *Hub) InGroup(c *Client, name string) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	group, ok := h.groups[name]
	if !ok {
		return false
	}
	_, ok = group[c]
	return ok
}

// GroupCount returns the number of clients in a group.
func (h *Hub) GroupCount(name string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.groups[name])
}

// Count returns the number of connected clients.
func (h *Hub) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// NewMessagePayload is a created message augmented with its routing keys,
// emitted to clients as the newMessage event.
type NewMessagePayload struct {
	Message   models.ChannelMessageResponse `json:"message"`
	ChannelID uint                          `json:"channelId,omitempty"`
	RoomID    uint                          `json:"roomId,omitempty"`
	UserID    uint                          `json:"userId,omitempty"`
}

// Dispatch fans a newly created message out to the channel group and to the
// acting user's per-room group. Each currently joined client receives the
// event at most once per group; a failed write is isolated to that client.
// Invoked synchronously by the message write path after the durable write.
func (h *Hub) Dispatch(msg models.ChannelMessageResponse, channelID, roomID, actingUserID uint) {
	channelData, err := marshalEvent(EventNewMessage, NewMessagePayload{
		Message:   msg,
		ChannelID: channelID,
	})
	if err != nil {
		log.Printf("Error marshaling channel dispatch payload: %v", err)
		return
	}
	roomData, err := marshalEvent(EventNewMessage, NewMessagePayload{
		Message: msg,
		RoomID:  roomID,
		UserID:  actingUserID,
	})
	if err != nil {
		log.Printf("Error marshaling room dispatch payload: %v", err)
		return
	}

	h.emit(ChannelGroupName(channelID), channelData)
	h.emit(RoomGroupName(roomID, actingUserID), roomData)
}

// emit writes data to every client in the group. The member set is
// snapshotted under the read lock; writes happen outside it so a slow
// client cannot block joins and leaves.
func (h *Hub) emit(groupName string, data []byte) {
	h.mu.RLock()
	group := h.groups[groupName]
	targets := make([]*Client, 0, len(group))
	for c := range group {
		targets = append(targets, c)
	}
	h.mu.RUnlock()

	for _, c := range targets {
		if err := c.send(data); err != nil {
			log.Printf("Error delivering to user %d in %s: %v", c.UserID, groupName, err)
			h.Unregister(c)
		}
	}
}

func marshalEvent(eventType string, payload interface{}) ([]byte, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return json.Marshal(SerializedMessage{Type: eventType, Payload: raw})
}

// MarkPong records a pong from the client's transport.
func (h *Hub) MarkPong(c *Client) {
	h.mu.Lock()
	c.lastPong = time.Now()
	h.mu.Unlock()
}

// pingRoutine sends periodic pings to keep the connection alive.
func (h *Hub) pingRoutine(c *Client) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("Ping routine recovered from panic for user %d: %v", c.UserID, r)
		}
	}()

	for {
		select {
		case <-c.closeChan:
			return
		case <-c.pingTicker.C:
			if err := c.conn.WriteControl(websocket.PingMessage, []byte{}, time.Now().Add(h.pongTimeout)); err != nil {
				log.Printf("Ping failed for user %d: %v", c.UserID, err)
				h.Unregister(c)
				return
			}
		}
	}
}

// connectionHealthChecker removes connections whose pongs stopped arriving.
// A missed heartbeat is treated exactly like an explicit disconnect.
func (h *Hub) connectionHealthChecker() {
	ticker := time.NewTicker(h.pingInterval)
	defer ticker.Stop()

	for range ticker.C {
		deadline := h.PongWindow()

		h.mu.RLock()
		dead := make([]*Client, 0)
		now := time.Now()
		for c := range h.clients {
			if now.Sub(c.lastPong) > deadline {
				dead = append(dead, c)
			}
		}
		h.mu.RUnlock()

		for _, c := range dead {
			log.Printf("Removing dead connection for user %d (no pong received)", c.UserID)
			h.Unregister(c)
		}
	}
}

func compressPayload(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	w := gzip.NewWriter(&buf)
	if _, err := w.Write(data); err != nil {
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// DecompressMessage inflates a gzip-compressed inbound frame.
func DecompressMessage(data []byte) ([]byte, error) {
	r, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	defer r.Close()
	return io.ReadAll(r)
}
