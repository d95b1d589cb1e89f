package mocks

import (
	"sync"
	"time"

	"github.com/mattjh/dicebank/internal/dependencies/clock"
)

// MockClock is a mock implementation of Clock for testing
type MockClock struct {
	mu          sync.Mutex
	currentTime time.Time
	tickers     []*MockTicker
}

// Ensure MockClock implements Clock
var _ clock.Clock = (*MockClock)(nil)

// NewMockClock creates a MockClock set to the given time
func NewMockClock(t time.Time) *MockClock {
	return &MockClock{currentTime: t}
}

// Now returns the mocked current time
func (c *MockClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.currentTime
}

// Advance moves the clock forward by the given duration
func (c *MockClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.currentTime = c.currentTime.Add(d)
}

// Set sets the clock to the given time
func (c *MockClock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.currentTime = t
}

// NewTicker returns a manually driven ticker
func (c *MockClock) NewTicker(d time.Duration) clock.Ticker {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := &MockTicker{interval: d, ch: make(chan time.Time, 64)}
	c.tickers = append(c.tickers, t)
	return t
}

// Tick advances the clock by each live ticker's interval and delivers one
// tick to it. Stopped tickers are skipped.
func (c *MockClock) Tick() {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, t := range c.tickers {
		if t.isStopped() {
			continue
		}
		c.currentTime = c.currentTime.Add(t.interval)
		t.ch <- c.currentTime
	}
}

// TickerCount returns how many tickers have been created, live or stopped
func (c *MockClock) TickerCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.tickers)
}

// LiveTickerCount returns how many created tickers have not been stopped
func (c *MockClock) LiveTickerCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	live := 0
	for _, t := range c.tickers {
		if !t.isStopped() {
			live++
		}
	}
	return live
}

// MockTicker is a ticker driven by MockClock.Tick
type MockTicker struct {
	mu       sync.Mutex
	interval time.Duration
	ch       chan time.Time
	stopped  bool
}

// C returns the tick channel
func (t *MockTicker) C() <-chan time.Time {
	return t.ch
}

// Stop marks the ticker stopped; further Tick calls skip it
func (t *MockTicker) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.stopped = true
}

func (t *MockTicker) isStopped() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.stopped
}
