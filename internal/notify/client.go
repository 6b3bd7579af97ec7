package notify

import (
	"github.com/gorilla/websocket"
)

// WritePump drains the send channel onto the connection. It runs in its own
// goroutine per connection and is the only writer, so notification pushes
// and echo replies never interleave mid-frame. The connection is closed when
// the send channel is closed.
func (c *Client) WritePump() {
	defer c.conn.Close()
	for msg := range c.Send {
		if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			return
		}
	}
}

// ReadPump echoes every received text frame back to the sender (diagnostic
// loopback). It returns on the first read error, i.e. when the peer
// disconnects. The echo goes through trySend so it cannot race a
// displacement closing the channel mid-loop.
func (c *Client) ReadPump() {
	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			return
		}
		// Echo is as best-effort as notifications.
		c.trySend(data)
	}
}
