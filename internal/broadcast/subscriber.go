package broadcast

import (
	"encoding/json"
	"sync"

	"github.com/Navi0405/Binance-Futures-LiveTrade/internal/logger"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

type subscriberState int

const (
	stateOpen subscriberState = iota
	stateClosing
	stateClosed
)

// Conn is the live connection behind a subscriber.
type Conn interface {
	WriteMessage(messageType int, data []byte) error
	Close() error
}

// Subscriber is one live delivery target. It owns the timer handles started
// on its behalf and cancels every one of them exactly once on Close. Sends
// after Close are dropped silently.
type Subscriber struct {
	id   string
	conn Conn

	mu      sync.Mutex
	state   subscriberState
	handles []*Handle
}

func NewSubscriber(conn Conn) *Subscriber {
	return &Subscriber{
		id:    uuid.NewString(),
		conn:  conn,
		state: stateOpen,
	}
}

func (s *Subscriber) ID() string {
	return s.id
}

// Track records a timer handle for cancellation on Close.
func (s *Subscriber) Track(h *Handle) {
	if h == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != stateOpen {
		// Closed while scheduling was still in progress.
		h.Cancel()
		return
	}
	s.handles = append(s.handles, h)
}

// Send serializes v and writes it to the connection if still open. Delivery
// failures are swallowed; the next tick supplies a fresher value.
func (s *Subscriber) Send(v any) {
	data, err := json.Marshal(v)
	if err != nil {
		logger.Errorf("subscriber %s: marshal failed: %v", s.id, err)
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != stateOpen {
		return
	}
	if err := s.conn.WriteMessage(websocket.TextMessage, data); err != nil {
		logger.Debugf("subscriber %s: dropped message: %v", s.id, err)
	}
}

// Open reports whether the subscriber still accepts sends.
func (s *Subscriber) Open() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state == stateOpen
}

// Close cancels every tracked handle and closes the connection. Terminal;
// subsequent calls are no-ops.
func (s *Subscriber) Close() {
	s.mu.Lock()
	if s.state != stateOpen {
		s.mu.Unlock()
		return
	}
	s.state = stateClosing
	handles := s.handles
	s.handles = nil
	s.mu.Unlock()

	for _, h := range handles {
		h.Cancel()
	}

	s.mu.Lock()
	s.state = stateClosed
	s.mu.Unlock()
	if err := s.conn.Close(); err != nil {
		logger.Debugf("subscriber %s: close: %v", s.id, err)
	}
}
