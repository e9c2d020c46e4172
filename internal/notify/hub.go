package notify

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"sync"

	"github.com/coder/websocket"
)

// Hub tracks the active WebSocket subscribers and fans events out to them.
type Hub struct {
	mu    sync.RWMutex
	conns map[*hubConn]struct{}
}

type hubConn struct {
	ws     *websocket.Conn
	cancel context.CancelFunc
}

func NewHub() *Hub {
	return &Hub{conns: make(map[*hubConn]struct{})}
}

// Handle upgrades the request to a WebSocket subscription. The read loop
// exists only to notice disconnects; clients send nothing of substance.
func (h *Hub) Handle(w http.ResponseWriter, r *http.Request) {
	ws, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		InsecureSkipVerify: true,
	})
	if err != nil {
		log.Printf("websocket accept failed: %v", err)
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	c := &hubConn{ws: ws, cancel: cancel}

	h.mu.Lock()
	h.conns[c] = struct{}{}
	h.mu.Unlock()

	go func() {
		defer func() {
			h.remove(c)
			_ = ws.Close(websocket.StatusNormalClosure, "")
		}()
		for {
			if _, _, err := ws.Read(ctx); err != nil {
				return
			}
		}
	}()
}

// Broadcast sends the event to every subscriber. Events with no tasks are
// dropped; the wire contract promises non-empty payloads.
func (h *Hub) Broadcast(ctx context.Context, e Event) {
	if len(e.Tasks) == 0 {
		return
	}

	data, err := json.Marshal(e)
	if err != nil {
		log.Printf("reminder marshal failed: %v", err)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	for c := range h.conns {
		if err := c.ws.Write(ctx, websocket.MessageText, data); err != nil {
			go h.remove(c)
		}
	}
}

// SubscriberCount returns the number of connected clients.
func (h *Hub) SubscriberCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.conns)
}

func (h *Hub) remove(c *hubConn) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.conns[c]; ok {
		c.cancel()
		delete(h.conns, c)
	}
}
