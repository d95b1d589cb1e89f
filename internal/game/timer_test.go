package game

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/mattjh/dicebank/internal/dependencies/mocks"
)

type tickRecorder struct {
	mu      sync.Mutex
	ticks   []int
	expired int
}

func (r *tickRecorder) onTick(timeLeft int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ticks = append(r.ticks, timeLeft)
}

func (r *tickRecorder) onExpire() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.expired++
}

func (r *tickRecorder) tickValues() []int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]int(nil), r.ticks...)
}

func (r *tickRecorder) expiredCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.expired
}

func TestTurnTimerEmitsFullTimeImmediately(t *testing.T) {
	clk := mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	rec := &tickRecorder{}

	timer := NewTurnTimer(clk, 30)
	timer.Start(rec.onTick, rec.onExpire)
	defer timer.Cancel()

	require.Eventually(t, func() bool {
		ticks := rec.tickValues()
		return len(ticks) == 1 && ticks[0] == 30
	}, time.Second, 5*time.Millisecond)
}

func TestTurnTimerCountsDownAndExpires(t *testing.T) {
	clk := mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	rec := &tickRecorder{}

	timer := NewTurnTimer(clk, 2)
	timer.Start(rec.onTick, rec.onExpire)

	require.Eventually(t, func() bool {
		return len(rec.tickValues()) == 1
	}, time.Second, 5*time.Millisecond)

	clk.Tick()
	require.Eventually(t, func() bool {
		return len(rec.tickValues()) == 2
	}, time.Second, 5*time.Millisecond)

	clk.Tick()
	require.Eventually(t, func() bool {
		return rec.expiredCount() == 1
	}, time.Second, 5*time.Millisecond)

	require.Equal(t, []int{2, 1, 0}, rec.tickValues())

	// The goroutine has exited; its ticker must be stopped
	require.Eventually(t, func() bool {
		return clk.LiveTickerCount() == 0
	}, time.Second, 5*time.Millisecond)
}

func TestTurnTimerCancelStopsCountdown(t *testing.T) {
	clk := mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	rec := &tickRecorder{}

	timer := NewTurnTimer(clk, 5)
	timer.Start(rec.onTick, rec.onExpire)

	require.Eventually(t, func() bool {
		return len(rec.tickValues()) == 1
	}, time.Second, 5*time.Millisecond)

	timer.Cancel()

	require.Eventually(t, func() bool {
		return clk.LiveTickerCount() == 0
	}, time.Second, 5*time.Millisecond)

	clk.Tick()
	time.Sleep(20 * time.Millisecond)
	require.Equal(t, []int{5}, rec.tickValues())
	require.Zero(t, rec.expiredCount())
}

func TestTurnTimerCancelIsIdempotent(t *testing.T) {
	clk := mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))

	timer := NewTurnTimer(clk, 5)
	timer.Start(func(int) {}, func() {})

	timer.Cancel()
	timer.Cancel()
}
