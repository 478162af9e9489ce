package broadcast

import (
	"context"
	"net/http"
	"sync"

	"github.com/Navi0405/Binance-Futures-LiveTrade/internal/logger"

	"github.com/gorilla/websocket"
)

// Hub accepts websocket connections and binds each one to the fixed account
// roster: two timers per account (balance, positions), torn down when the
// connection goes away.
type Hub struct {
	sched    *Scheduler
	accounts []Source
	upgrader websocket.Upgrader

	mu   sync.Mutex
	subs map[string]*Subscriber
}

func NewHub(sched *Scheduler, accounts []Source) *Hub {
	return &Hub{
		sched:    sched,
		accounts: accounts,
		upgrader: websocket.Upgrader{
			// Dashboard clients connect from arbitrary origins.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		subs: make(map[string]*Subscriber),
	}
}

// HandleConnection upgrades the request, starts the per-account timers and
// blocks reading the connection until it closes.
func (h *Hub) HandleConnection(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Warnf("websocket upgrade failed: %v", err)
		return
	}
	sub := NewSubscriber(conn)
	h.register(sub)
	logger.Infof("websocket client connected (%s)", sub.ID())

	// Timers live as long as the subscriber, not the upgrade request.
	ctx := context.Background()
	for _, src := range h.accounts {
		sub.Track(h.sched.Schedule(ctx, src, KindBalance, sub.Send))
		sub.Track(h.sched.Schedule(ctx, src, KindPositions, sub.Send))
	}

	defer func() {
		sub.Close()
		h.unregister(sub)
		logger.Infof("websocket client disconnected (%s)", sub.ID())
	}()
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

// SubscriberCount returns the number of live subscribers.
func (h *Hub) SubscriberCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs)
}

// Shutdown closes every live subscriber.
func (h *Hub) Shutdown() {
	h.mu.Lock()
	subs := make([]*Subscriber, 0, len(h.subs))
	for _, s := range h.subs {
		subs = append(subs, s)
	}
	h.mu.Unlock()
	for _, s := range subs {
		s.Close()
	}
}

func (h *Hub) register(s *Subscriber) {
	h.mu.Lock()
	h.subs[s.ID()] = s
	h.mu.Unlock()
}

func (h *Hub) unregister(s *Subscriber) {
	h.mu.Lock()
	delete(h.subs, s.ID())
	h.mu.Unlock()
}
