package inspect

import (
	"context"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	// time allowed to write a message to the client
	writeWait = 10 * time.Second
	// time allowed to read the next pong message from the client
	pongWait = 60 * time.Second
	// send pings with this period, must be less than pongWait
	pingPeriod = pongWait * 9 / 10
	// commands are short words, anything longer is a misbehaving client
	maxMessageSize = 64
)

type client struct {
	server *Server
	conn   *websocket.Conn
	send   chan []byte

	mu   sync.RWMutex
	info ClientInfo
}

// snapshot returns a copy of the client's info.
func (c *client) snapshot() ClientInfo {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.info
}

// readPump relays commands from the client to the controller. The
// response is broadcast, so every client sees who paused the machine.
func (c *client) readPump() {
	// deferred function to handle unregistering client
	// and closing connection
	defer func() {
		select {
		case c.server.unregister <- c:
		case <-c.server.quit:
		}
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		kind, message, err := c.conn.ReadMessage()
		if err != nil {
			return // connection closed
		}
		if kind != websocket.TextMessage {
			continue
		}

		ctx, cancel := context.WithTimeout(context.Background(), writeWait)
		resp := c.server.command(ctx, string(message))
		cancel()

		b, err := c.server.encode(resp)
		if err != nil {
			continue
		}
		select {
		case c.server.broadcast <- b:
		case <-c.server.quit:
			return
		}
	}
}

// writePump writes queued messages to the connection, keeping it
// alive with pings and sampling its round trip time.
func (c *client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			// the hub closed the channel
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			// try to write message to client
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}

			// update average latency
			if rtt, err := roundTrip(c.conn.UnderlyingConn()); err == nil {
				c.mu.Lock()
				c.info.Latency = (c.info.Latency*9 + rtt) / 10
				c.mu.Unlock()
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
