package game

import (
	"sync"
	"testing"
	"time"
)

// fakeClock hands out tickers that only fire when the test calls Tick.
type fakeClock struct {
	mu      sync.Mutex
	tickers []*fakeTicker
}

func (c *fakeClock) NewTicker(time.Duration) Ticker {
	t := &fakeTicker{c: make(chan time.Time), stopped: make(chan struct{})}
	c.mu.Lock()
	c.tickers = append(c.tickers, t)
	c.mu.Unlock()
	return t
}

func (c *fakeClock) last(t *testing.T) *fakeTicker {
	t.Helper()
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.tickers) == 0 {
		t.Fatal("no ticker created")
	}
	return c.tickers[len(c.tickers)-1]
}

func (c *fakeClock) count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.tickers)
}

type fakeTicker struct {
	c        chan time.Time
	stopOnce sync.Once
	stopped  chan struct{}
}

func (t *fakeTicker) C() <-chan time.Time { return t.c }
func (t *fakeTicker) Stop()               { t.stopOnce.Do(func() { close(t.stopped) }) }

// Tick delivers one tick. It reports false if the ticker was stopped before
// the countdown goroutine took the tick.
func (t *fakeTicker) Tick() bool {
	select {
	case t.c <- time.Time{}:
		return true
	case <-t.stopped:
		return false
	}
}

func (t *fakeTicker) isStopped() bool {
	select {
	case <-t.stopped:
		return true
	default:
		return false
	}
}

// recorder collects listener events for assertions.
type recorder struct {
	events chan Event
}

func newRecorder() *recorder { return &recorder{events: make(chan Event, 64)} }

func (r *recorder) listen(ev Event) { r.events <- ev }

func (r *recorder) next(t *testing.T) Event {
	t.Helper()
	select {
	case ev := <-r.events:
		return ev
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for round event")
		return Event{}
	}
}

// nextKind skips events until one of the given kind arrives.
func (r *recorder) nextKind(t *testing.T, kind EventKind) Event {
	t.Helper()
	for {
		if ev := r.next(t); ev.Kind == kind {
			return ev
		}
	}
}
