package broadcast

import (
	"context"
	"sync"
	"time"

	"github.com/Navi0405/Binance-Futures-LiveTrade/internal/account"
	"github.com/Navi0405/Binance-Futures-LiveTrade/internal/logger"
)

// Kind selects which fetch a timer drives.
type Kind string

const (
	KindBalance   Kind = "balance"
	KindPositions Kind = "positions"
)

// Source is one pollable account.
type Source interface {
	Name() string
	FetchBalance(ctx context.Context) (account.BalanceSnapshot, error)
	FetchPositions(ctx context.Context) ([]account.PositionRecord, error)
}

// DeliverFunc receives the outcome of one tick: a data frame on success, an
// error frame on failure, never both.
type DeliverFunc func(v any)

// Handle cancels one scheduled timer. Cancel is idempotent; it stops future
// ticks and causes any in-flight tick to be discarded instead of delivered.
type Handle struct {
	ctx    context.Context
	cancel context.CancelFunc
	once   sync.Once
}

func (h *Handle) Cancel() {
	h.once.Do(h.cancel)
}

// Cancelled reports whether Cancel has taken effect.
func (h *Handle) Cancelled() bool {
	return h.ctx.Err() != nil
}

// Scheduler runs one fixed-period timer per scheduled (account, kind) pair.
// Timers are independent: a slow or failed fetch on one never delays another.
type Scheduler struct {
	interval time.Duration
}

func NewScheduler(interval time.Duration) *Scheduler {
	if interval <= 0 {
		interval = 5 * time.Second
	}
	return &Scheduler{interval: interval}
}

func (s *Scheduler) Interval() time.Duration {
	return s.interval
}

// Schedule starts a periodic timer fetching kind from src and forwarding each
// outcome to deliver. The timer stops when the returned Handle is cancelled
// or ctx ends.
func (s *Scheduler) Schedule(ctx context.Context, src Source, kind Kind, deliver DeliverFunc) *Handle {
	tctx, cancel := context.WithCancel(ctx)
	h := &Handle{ctx: tctx, cancel: cancel}
	go s.run(tctx, src, kind, deliver)
	return h
}

func (s *Scheduler) run(ctx context.Context, src Source, kind Kind, deliver DeliverFunc) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			// Ticks may overlap a slow fetch; each runs on its own.
			go s.tick(ctx, src, kind, deliver)
		}
	}
}

func (s *Scheduler) tick(ctx context.Context, src Source, kind Kind, deliver DeliverFunc) {
	var msg any
	switch kind {
	case KindBalance:
		snap, err := src.FetchBalance(ctx)
		if err != nil {
			logger.Warnf("balance fetch failed for %s: %v", src.Name(), err)
			msg = errorMessage{Account: src.Name(), Error: err.Error()}
		} else {
			msg = balanceMessage{Account: src.Name(), BalanceSnapshot: snap}
		}
	case KindPositions:
		positions, err := src.FetchPositions(ctx)
		if err != nil {
			logger.Warnf("position fetch failed for %s: %v", src.Name(), err)
			msg = errorMessage{Account: src.Name(), Error: err.Error()}
		} else {
			msg = positionsMessage{Account: src.Name(), Type: messageTypePositions, Positions: positions}
		}
	default:
		logger.Errorf("unknown poll kind %q for %s", kind, src.Name())
		return
	}
	// A fetch that resolves after cancellation is dropped, not delivered.
	if ctx.Err() != nil {
		return
	}
	deliver(msg)
}
