package broadcast

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/Navi0405/Binance-Futures-LiveTrade/internal/account"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSource struct {
	name       string
	balanceFn  func(ctx context.Context) (account.BalanceSnapshot, error)
	positionFn func(ctx context.Context) ([]account.PositionRecord, error)
}

func (f *fakeSource) Name() string { return f.name }

func (f *fakeSource) FetchBalance(ctx context.Context) (account.BalanceSnapshot, error) {
	if f.balanceFn == nil {
		return account.BalanceSnapshot{}, nil
	}
	return f.balanceFn(ctx)
}

func (f *fakeSource) FetchPositions(ctx context.Context) ([]account.PositionRecord, error) {
	if f.positionFn == nil {
		return []account.PositionRecord{}, nil
	}
	return f.positionFn(ctx)
}

type collector struct {
	mu   sync.Mutex
	msgs []any
	ch   chan any
}

func newCollector() *collector {
	return &collector{ch: make(chan any, 128)}
}

func (c *collector) deliver(v any) {
	c.mu.Lock()
	c.msgs = append(c.msgs, v)
	c.mu.Unlock()
	c.ch <- v
}

func (c *collector) snapshot() []any {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]any(nil), c.msgs...)
}

func (c *collector) wait(t *testing.T) any {
	t.Helper()
	select {
	case v := <-c.ch:
		return v
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for delivery")
		return nil
	}
}

func TestSchedulerDeliversBalanceFrames(t *testing.T) {
	src := &fakeSource{
		name: "acct1",
		balanceFn: func(context.Context) (account.BalanceSnapshot, error) {
			return account.BalanceSnapshot{Available: "10.00", ReturnValue: "0.00"}, nil
		},
	}
	sched := NewScheduler(10 * time.Millisecond)
	c := newCollector()
	h := sched.Schedule(context.Background(), src, KindBalance, c.deliver)
	defer h.Cancel()

	msg, ok := c.wait(t).(balanceMessage)
	require.True(t, ok, "expected a balance frame")
	assert.Equal(t, "acct1", msg.Account)
	assert.Equal(t, "10.00", msg.Available)
}

func TestSchedulerDeliversErrorFrameOnFailure(t *testing.T) {
	src := &fakeSource{
		name: "acct1",
		positionFn: func(context.Context) ([]account.PositionRecord, error) {
			return nil, errors.New("provider unreachable")
		},
	}
	sched := NewScheduler(10 * time.Millisecond)
	c := newCollector()
	h := sched.Schedule(context.Background(), src, KindPositions, c.deliver)
	defer h.Cancel()

	msg, ok := c.wait(t).(errorMessage)
	require.True(t, ok, "expected an error frame")
	assert.Equal(t, "acct1", msg.Account)
	assert.Equal(t, "provider unreachable", msg.Error)
}

func TestSchedulerCancelIsIdempotent(t *testing.T) {
	sched := NewScheduler(10 * time.Millisecond)
	h := sched.Schedule(context.Background(), &fakeSource{name: "acct1"}, KindBalance, func(any) {})

	h.Cancel()
	h.Cancel()
	assert.True(t, h.Cancelled())
}

func TestSchedulerDiscardsInFlightResultAfterCancel(t *testing.T) {
	started := make(chan struct{}, 1)
	gate := make(chan struct{})
	src := &fakeSource{
		name: "acct1",
		balanceFn: func(context.Context) (account.BalanceSnapshot, error) {
			select {
			case started <- struct{}{}:
			default:
			}
			<-gate
			return account.BalanceSnapshot{Available: "1.00"}, nil
		},
	}
	sched := NewScheduler(10 * time.Millisecond)
	c := newCollector()
	h := sched.Schedule(context.Background(), src, KindBalance, c.deliver)

	select {
	case <-started:
	case <-time.After(2 * time.Second):
		t.Fatal("first tick never started")
	}
	h.Cancel()
	close(gate)

	select {
	case v := <-c.ch:
		t.Fatalf("post-cancel delivery leaked: %#v", v)
	case <-time.After(100 * time.Millisecond):
	}
}

func TestSchedulerTimersAreIndependent(t *testing.T) {
	block := make(chan struct{})
	defer close(block)
	stuck := &fakeSource{
		name: "acct1",
		balanceFn: func(context.Context) (account.BalanceSnapshot, error) {
			<-block
			return account.BalanceSnapshot{}, errors.New("never")
		},
	}
	healthy := &fakeSource{
		name: "acct2",
		positionFn: func(context.Context) ([]account.PositionRecord, error) {
			return []account.PositionRecord{}, nil
		},
	}
	sched := NewScheduler(10 * time.Millisecond)
	stuckC := newCollector()
	healthyC := newCollector()
	h1 := sched.Schedule(context.Background(), stuck, KindBalance, stuckC.deliver)
	defer h1.Cancel()
	h2 := sched.Schedule(context.Background(), healthy, KindPositions, healthyC.deliver)
	defer h2.Cancel()

	// acct2 keeps ticking while acct1 is stuck in its fetch.
	first := healthyC.wait(t).(positionsMessage)
	second := healthyC.wait(t).(positionsMessage)
	assert.Equal(t, "acct2", first.Account)
	assert.Equal(t, "acct2", second.Account)
	assert.Empty(t, stuckC.snapshot())
}

func TestSchedulerZeroIntervalFallsBackToDefault(t *testing.T) {
	sched := NewScheduler(0)
	assert.Equal(t, 5*time.Second, sched.Interval())
}
