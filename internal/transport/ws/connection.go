package ws

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4096
	sendBuffer     = 64
)

var errSendBufferFull = errors.New("ws: send buffer full")

// Connection wraps the WebSocket connection with an outgoing queue.
type Connection struct {
	ws     *websocket.Conn
	send   chan []byte
	logger *log.Logger
}

// NewConnection creates a new connection wrapper.
func NewConnection(conn *websocket.Conn, logger *log.Logger) *Connection {
	return &Connection{
		ws:     conn,
		send:   make(chan []byte, sendBuffer),
		logger: logger,
	}
}

// MessageHandler handles one raw client message.
type MessageHandler interface {
	HandleMessage(c *Connection, message []byte)
}

// ReadPump reads messages until the peer goes away, handing each to h in order.
// It closes the send queue on exit, which stops WritePump.
func (c *Connection) ReadPump(h MessageHandler) {
	defer func() {
		close(c.send)
	}()

	c.ws.SetReadLimit(maxMessageSize)
	c.ws.SetReadDeadline(time.Now().Add(pongWait))
	c.ws.SetPongHandler(func(string) error {
		return c.ws.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, message, err := c.ws.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.logger.Warn("read failed", "error", err)
			}
			return
		}

		h.HandleMessage(c, message)
	}
}

// WritePump writes queued messages and keeps the connection alive with pings.
func (c *Connection) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.ws.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.ws.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// Queue closed, say goodbye
				c.ws.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.ws.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}

		case <-ticker.C:
			c.ws.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.ws.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// Close sends a going-away close frame and closes the underlying connection.
// It is safe to call while the pumps are running.
func (c *Connection) Close(reason string) error {
	msg := websocket.FormatCloseMessage(websocket.CloseGoingAway, reason)
	c.ws.WriteControl(websocket.CloseMessage, msg, time.Now().Add(writeWait))
	return c.ws.Close()
}

// SendMessage queues a JSON message for the client.
func (c *Connection) SendMessage(msg any) error {
	data, err := json.Marshal(msg)
	if err != nil {
		return err
	}

	select {
	case c.send <- data:
		return nil
	default:
		return errSendBufferFull
	}
}
