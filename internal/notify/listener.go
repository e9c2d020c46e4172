package notify

import (
	"context"
	"encoding/json"
	"log"
	"sync"

	"github.com/coder/websocket"
)

// Handler receives one decoded reminder event. It is called from the
// listener's read goroutine; events arrive in connection order.
type Handler func(Event)

// Listener is a subscribe-only client for the reminder channel. A listener
// is connected for its whole lifetime: Listen dials and starts the read
// loop, Close tears it down. A closed listener cannot be restarted, which
// rules out double subscriptions across component restarts.
type Listener struct {
	ws        *websocket.Conn
	cancel    context.CancelFunc
	done      chan struct{}
	closeOnce sync.Once
}

// Listen connects to the reminder endpoint and delivers decoded events to
// handler until Close is called or the connection drops.
func Listen(ctx context.Context, url string, handler Handler) (*Listener, error) {
	ws, _, err := websocket.Dial(ctx, url, nil)
	if err != nil {
		return nil, err
	}

	runCtx, cancel := context.WithCancel(context.Background())
	l := &Listener{
		ws:     ws,
		cancel: cancel,
		done:   make(chan struct{}),
	}

	go l.readLoop(runCtx, handler)
	return l, nil
}

func (l *Listener) readLoop(ctx context.Context, handler Handler) {
	defer close(l.done)

	for {
		_, data, err := l.ws.Read(ctx)
		if err != nil {
			return
		}

		var e Event
		if err := json.Unmarshal(data, &e); err != nil {
			log.Printf("reminder decode failed: %v", err)
			continue
		}
		if e.Type != EventUpcoming && e.Type != EventOverdue {
			continue
		}

		handler(e)
	}
}

// Close disconnects and waits for the read loop to drain. Safe to call more
// than once.
func (l *Listener) Close() {
	l.closeOnce.Do(func() {
		l.cancel()
		_ = l.ws.Close(websocket.StatusNormalClosure, "")
		<-l.done
	})
}
