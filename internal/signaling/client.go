package signaling

import (
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer. 64 KB covers WebRTC SDP bodies.
	maxMessageSize = 64 * 1024

	// Outbound buffer per client. Delivery is best-effort: a full buffer
	// means the message is dropped, never that the sender blocks.
	sendBufferSize = 256
)

// Client wraps a single websocket connection. All outbound traffic goes
// through Send and is written by WritePump; all inbound traffic is read by
// ReadPump and handed to the Service.
type Client struct {
	ID   string
	Conn *websocket.Conn
	Send chan []byte

	done      chan struct{}
	closeOnce sync.Once
}

// NewClient creates a client with a fresh connection id.
func NewClient(conn *websocket.Conn) *Client {
	return &Client{
		ID:   uuid.New().String(),
		Conn: conn,
		Send: make(chan []byte, sendBufferSize),
		done: make(chan struct{}),
	}
}

// Close signals both pumps to stop. Safe to call more than once.
func (c *Client) Close() {
	c.closeOnce.Do(func() {
		close(c.done)
	})
}

// Enqueue hands data to the client's write pump without blocking. It
// returns false when the client is shutting down or its buffer is full;
// callers treat either as a best-effort drop.
func (c *Client) Enqueue(data []byte) bool {
	if data == nil {
		return false
	}
	select {
	case <-c.done:
		return false
	default:
	}
	select {
	case c.Send <- data:
		return true
	case <-c.done:
		return false
	default:
		return false
	}
}

// ReadPump pumps messages from the websocket connection to the service.
//
// ReadPump runs in a per-connection goroutine and is the only reader on
// the connection. When it exits the connection is unregistered and the
// room cleanup path runs, identical to an explicit leave.
func (c *Client) ReadPump(svc *Service) {
	defer func() {
		svc.Disconnect(c)
		c.Conn.Close()
	}()

	c.Conn.SetReadLimit(maxMessageSize)
	c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	c.Conn.SetPongHandler(func(string) error {
		c.Conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, message, err := c.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("[Signaling] Read error for client %s: %v", shortID(c.ID), err)
			}
			break
		}
		svc.HandleMessage(c, message)
	}
}

// WritePump pumps messages from the Send channel to the websocket
// connection. It is the only writer on the connection.
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.Conn.Close()
	}()

	for {
		select {
		case message := <-c.Send:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}
		case <-c.done:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
			return
		case <-ticker.C:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// shortID truncates a connection id for log lines.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
