package server

import (
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"github.com/soar/stickprofile/internal/hub"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins for local use
	},
}

func handleWebSocket(h *hub.Hub, b *hub.Broadcaster, keys hub.KeySink) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			logrus.WithError(err).Warn("websocket upgrade failed")
			return
		}

		logrus.WithFields(logrus.Fields{
			"remote":  r.RemoteAddr,
			"viewers": h.Len(),
		}).Debug("live view requested")

		client := hub.NewClient(h, conn)
		h.Register(client)

		// Send the current view to the new client
		b.SendInitialState(client)

		go client.WritePump()
		go client.ReadPumpWithHandler(keys)
	}
}
