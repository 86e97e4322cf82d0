package signaling

import (
	"log"
	"sync"
	"time"
)

// Connection tracks a live websocket connection and its current room.
type Connection struct {
	ID          string
	RoomID      string
	ConnectedAt time.Time

	client *Client
}

// ConnectionRegistry owns the mapping from connection id to connection
// state. It is the single source of truth for "which room is this
// connection in" and for resolving a connection id to a deliverable client.
type ConnectionRegistry struct {
	mu          sync.RWMutex
	connections map[string]*Connection
}

func NewConnectionRegistry() *ConnectionRegistry {
	return &ConnectionRegistry{
		connections: make(map[string]*Connection),
	}
}

// Register adds a connection with no current room. Registering the same
// id twice is a programming error: ids are freshly generated per socket.
func (r *ConnectionRegistry) Register(client *Client) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.connections[client.ID]; exists {
		log.Panicf("[Connections] Duplicate registration for %s", shortID(client.ID))
	}
	r.connections[client.ID] = &Connection{
		ID:          client.ID,
		ConnectedAt: time.Now(),
		client:      client,
	}
}

// Unregister removes the connection and returns the room it was in, if
// any, so the caller can run room cleanup. No-op for unknown ids.
func (r *ConnectionRegistry) Unregister(id string) (string, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	conn, ok := r.connections[id]
	if !ok {
		return "", false
	}
	delete(r.connections, id)
	return conn.RoomID, true
}

// RoomOf returns the connection's current room id, which is empty when
// the connection is not in a room.
func (r *ConnectionRegistry) RoomOf(id string) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	conn, ok := r.connections[id]
	if !ok {
		return "", false
	}
	return conn.RoomID, true
}

// SetRoom updates the connection's current room pointer. An empty room id
// clears it.
func (r *ConnectionRegistry) SetRoom(id, roomID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if conn, ok := r.connections[id]; ok {
		conn.RoomID = roomID
	}
}

// ClientOf resolves a connection id to its live client for delivery.
func (r *ConnectionRegistry) ClientOf(id string) (*Client, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	conn, ok := r.connections[id]
	if !ok {
		return nil, false
	}
	return conn.client, true
}

// Count returns the number of live connections.
func (r *ConnectionRegistry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.connections)
}
