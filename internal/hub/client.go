package hub

import (
	"encoding/json"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"github.com/soar/stickprofile/internal/router"
)

// KeySink receives navigation keys pressed in a client.
type KeySink interface {
	Set(k router.Key, pressed bool)
}

// Client represents a connected WebSocket client.
type Client struct {
	hub  *Hub
	conn *websocket.Conn
	send chan []byte
}

// NewClient creates a new Client attached to the hub.
func NewClient(hub *Hub, conn *websocket.Conn) *Client {
	return &Client{
		hub:  hub,
		conn: conn,
		send: make(chan []byte, 256),
	}
}

// WritePump sends messages from the send channel to the WebSocket connection.
func (c *Client) WritePump() {
	defer func() {
		c.conn.Close()
	}()

	for msg := range c.send {
		err := c.conn.WriteMessage(websocket.TextMessage, msg)
		if err != nil {
			break
		}
	}
}

// ReadPumpWithHandler reads messages from the WebSocket and forwards key
// presses to keys.
func (c *Client) ReadPumpWithHandler(keys KeySink) {
	defer func() {
		c.hub.Unregister(c)
		c.conn.Close()
	}()

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			break
		}
		handleClientMessage(message, keys)
	}
}

func handleClientMessage(message []byte, keys KeySink) {
	var clientMsg ClientMessage
	if err := json.Unmarshal(message, &clientMsg); err != nil {
		logrus.WithError(err).Debug("error parsing client message")
		return
	}

	switch clientMsg.Type {
	case "key":
		k, ok := router.ParseKey(clientMsg.Key)
		if !ok {
			logrus.Debugf("unknown key %q from client", clientMsg.Key)
			return
		}
		keys.Set(k, clientMsg.Pressed)
	}
}
