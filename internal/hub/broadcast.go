package hub

import (
	"encoding/json"
	"math"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/soar/stickprofile/internal/screen"
)

const (
	fullSyncInterval = 5 * time.Second
	analogThreshold  = 0.001
)

// Broadcaster listens for rendered views and broadcasts the ones that differ
// from the last sent view to the hub.
type Broadcaster struct {
	hub      *Hub
	views    <-chan screen.View
	lastView screen.View
	hasView  bool
	seq      int64

	mu     sync.Mutex
	latest []byte // last encoded view, for clients joining late
}

func NewBroadcaster(h *Hub, views <-chan screen.View) *Broadcaster {
	return &Broadcaster{
		hub:   h,
		views: views,
	}
}

// Run starts the broadcaster loop. Should be run in a goroutine. It returns
// once the view channel is closed, after telling clients the screen exited.
func (b *Broadcaster) Run() {
	ticker := time.NewTicker(fullSyncInterval)
	defer ticker.Stop()

	for {
		select {
		case v, ok := <-b.views:
			if !ok {
				b.seq++
				b.send(NewExitMessage(b.seq))
				return
			}
			if b.hasView && !viewChanged(b.lastView, v) {
				continue
			}
			b.lastView = v
			b.hasView = true
			b.seq++
			if data := b.send(NewViewMessage(b.seq, &v)); data != nil {
				b.mu.Lock()
				b.latest = data
				b.mu.Unlock()
			}

		case <-ticker.C:
			if b.hasView {
				b.seq++
				b.send(NewViewMessage(b.seq, &b.lastView))
			}
		}
	}
}

// SendInitialState sends the last view to a newly connected client.
func (b *Broadcaster) SendInitialState(c *Client) {
	b.mu.Lock()
	data := b.latest
	b.mu.Unlock()
	if data == nil {
		return
	}
	select {
	case c.send <- data:
	default:
	}
}

func (b *Broadcaster) send(msg *WSMessage) []byte {
	data, err := json.Marshal(msg)
	if err != nil {
		logrus.WithError(err).Errorf("error marshaling %s message", msg.Type)
		return nil
	}
	b.hub.Broadcast(data)
	return data
}

func floatEqual(a, b float64) bool {
	return math.Abs(a-b) < analogThreshold
}

// viewChanged ignores live-point jitter below analogThreshold.
func viewChanged(old, new_ screen.View) bool {
	if old.Mode != new_.Mode ||
		old.Axis != new_.Axis ||
		old.AxisCount != new_.AxisCount ||
		old.Type != new_.Type ||
		old.Field != new_.Field ||
		old.Working != new_.Working ||
		old.Message != new_.Message ||
		old.Origin != new_.Origin ||
		old.Size != new_.Size ||
		len(old.Curve) != len(new_.Curve) {
		return true
	}
	if (old.Live == nil) != (new_.Live == nil) {
		return true
	}
	if old.Live != nil && !floatEqual(old.Live.Raw, new_.Live.Raw) {
		return true
	}
	for i := range old.Curve {
		if old.Curve[i] != new_.Curve[i] {
			return true
		}
	}
	return false
}
