package notify

import (
	"time"

	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
	sendBufferSize = 16
)

// Client is one websocket session of an authenticated user.
type Client struct {
	hub    *Hub
	userId string
	conn   *websocket.Conn
	send   chan []byte
}

// Serve registers the connection under the user's id and pumps events to it
// until the peer goes away. It blocks until the connection is closed.
func (h *Hub) Serve(userId string, conn *websocket.Conn) {
	c := &Client{
		hub:    h,
		userId: userId,
		conn:   conn,
		send:   make(chan []byte, sendBufferSize),
	}
	h.add(userId, c)

	go c.writePump()
	c.readPump()
}

// readPump discards inbound frames; the channel is server-to-client only.
// It exists to run the pong handler and to notice the peer closing.
func (c *Client) readPump() {
	defer func() {
		c.hub.remove(c.userId, c)
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case data, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
