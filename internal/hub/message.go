package hub

import (
	"time"

	"github.com/soar/stickprofile/internal/screen"
)

// WSMessage represents a WebSocket message sent from server to client.
type WSMessage struct {
	Type      string       `json:"type"`           // "view" or "exit"
	Seq       int64        `json:"seq"`            // Sequence number for ordering
	Timestamp int64        `json:"timestamp"`      // Unix timestamp in milliseconds
	View      *screen.View `json:"view,omitempty"` // Screen state for type "view"
}

// NewViewMessage creates a "view" message carrying one rendered frame.
func NewViewMessage(seq int64, v *screen.View) *WSMessage {
	return &WSMessage{
		Type:      "view",
		Seq:       seq,
		Timestamp: time.Now().UnixMilli(),
		View:      v,
	}
}

// NewExitMessage tells clients the calibration screen was closed.
func NewExitMessage(seq int64) *WSMessage {
	return &WSMessage{
		Type:      "exit",
		Seq:       seq,
		Timestamp: time.Now().UnixMilli(),
	}
}

// ClientMessage represents a message sent from the client to the server.
type ClientMessage struct {
	Type    string `json:"type"` // "key"
	Key     string `json:"key,omitempty"`
	Pressed bool   `json:"pressed,omitempty"`
}
