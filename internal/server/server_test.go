package server

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"testing/fstest"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soar/stickprofile/internal/hub"
	"github.com/soar/stickprofile/internal/router"
	"github.com/soar/stickprofile/internal/screen"
)

const page = `<!DOCTYPE html>
<html>
  <head>
    <title>  Stick profile  </title>
  </head>
  <body>
    <canvas id="graph"></canvas>
  </body>
</html>
`

func newTestServer(t *testing.T) (*httptest.Server, *hub.Hub, *router.Latch) {
	t.Helper()
	h := hub.NewHub()
	go h.Run()

	views := make(chan screen.View)
	t.Cleanup(func() { close(views) })
	b := hub.NewBroadcaster(h, views)
	go b.Run()

	latch := &router.Latch{}
	fsys := fstest.MapFS{"index.html": {Data: []byte(page)}}
	srv := httptest.NewServer(New(h, b, latch, fsys, "").Handler())
	t.Cleanup(srv.Close)
	return srv, h, latch
}

func TestServesMinifiedFrontend(t *testing.T) {
	srv, _, _ := newTestServer(t)

	resp, err := http.Get(srv.URL + "/")
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), `<canvas id=graph>`)
	assert.Less(t, len(body), len(page))
}

func TestWebSocketForwardsKeys(t *testing.T) {
	srv, h, latch := newTestServer(t)

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	require.Eventually(t, func() bool { return h.Len() == 1 }, 2*time.Second, 5*time.Millisecond)

	msg, err := json.Marshal(hub.ClientMessage{Type: "key", Key: "back", Pressed: true})
	require.NoError(t, err)
	require.NoError(t, conn.WriteMessage(websocket.TextMessage, msg))

	assert.Eventually(t, func() bool {
		return latch.Snapshot()[router.Back]
	}, 2*time.Second, 5*time.Millisecond)
}
