package game

import (
	"sync"
	"time"

	"github.com/mattjh/dicebank/internal/dependencies/clock"
)

// TurnTimer counts down a single turn, one tick per second. It notifies the
// remaining time on start and after every tick, and fires onExpire when the
// countdown reaches zero. A session holds at most one live TurnTimer.
type TurnTimer struct {
	clock    clock.Clock
	seconds  int
	stop     chan struct{}
	stopOnce sync.Once
}

// NewTurnTimer creates a timer for a turn of the given length in seconds.
// The countdown does not begin until Start is called.
func NewTurnTimer(clk clock.Clock, seconds int) *TurnTimer {
	return &TurnTimer{
		clock:   clk,
		seconds: seconds,
		stop:    make(chan struct{}),
	}
}

// Start begins the countdown. onTick receives the full remaining time
// immediately and again after each elapsed second; onExpire fires once when
// the countdown reaches zero. Both run on the timer's goroutine.
func (t *TurnTimer) Start(onTick func(timeLeft int), onExpire func()) {
	// Ticker is created before the goroutine launches so callers observe it
	// as soon as Start returns.
	ticker := t.clock.NewTicker(time.Second)
	go t.run(ticker, onTick, onExpire)
}

func (t *TurnTimer) run(ticker clock.Ticker, onTick func(timeLeft int), onExpire func()) {
	defer ticker.Stop()

	remaining := t.seconds
	onTick(remaining)

	for {
		select {
		case <-ticker.C():
			remaining--
			onTick(remaining)
			if remaining <= 0 {
				onExpire()
				return
			}
		case <-t.stop:
			return
		}
	}
}

// Cancel stops the countdown. It is idempotent and never blocks; a callback
// already in flight may still run, so owners must check the timer identity
// before acting on expiry.
func (t *TurnTimer) Cancel() {
	t.stopOnce.Do(func() {
		close(t.stop)
	})
}
