package registry

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mattjh/dicebank/internal/dependencies/mocks"
	"github.com/mattjh/dicebank/internal/dependencies/random"
	"github.com/mattjh/dicebank/internal/game"
	"github.com/mattjh/dicebank/internal/model"
	"github.com/mattjh/dicebank/internal/testutil"
)

type nopSink struct{}

func (nopSink) Broadcast(code model.GameCode, event model.Event) {}

func newTestRegistry(rnd random.Random) *Registry {
	clk := mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	factory := func(code model.GameCode) *game.Session {
		return game.NewSession(code, game.DefaultConfig(), clk, rnd, nopSink{}, testutil.NopLogger())
	}
	return New(factory, rnd, testutil.NopLogger())
}

func TestCreateGeneratesCodeFromAlphabet(t *testing.T) {
	reg := newTestRegistry(random.New())

	session := reg.Create()
	code := string(session.Code())

	require.Len(t, code, CodeLength)
	for _, c := range code {
		assert.Contains(t, CodeAlphabet, string(c))
	}
	assert.Equal(t, 1, reg.Len())
}

func TestCreateRetriesOnCodeCollision(t *testing.T) {
	rnd := mocks.NewMockRandom()
	rnd.QueueString("ABC234", "ABC234", "XYZ789")
	reg := newTestRegistry(rnd)

	first := reg.Create()
	second := reg.Create()

	assert.Equal(t, model.GameCode("ABC234"), first.Code())
	assert.Equal(t, model.GameCode("XYZ789"), second.Code())
	assert.Equal(t, 2, reg.Len())
}

func TestGetReturnsRegisteredSession(t *testing.T) {
	reg := newTestRegistry(random.New())
	created := reg.Create()

	got, err := reg.Get(created.Code())
	require.NoError(t, err)
	assert.Same(t, created, got)
}

func TestGetUnknownCode(t *testing.T) {
	reg := newTestRegistry(random.New())

	_, err := reg.Get("NOSUCH")
	assert.ErrorIs(t, err, model.ErrSessionNotFound)
}

func TestRemoveDropsSession(t *testing.T) {
	reg := newTestRegistry(random.New())
	session := reg.Create()
	session.Close()

	reg.Remove(session.Code())

	assert.Equal(t, 0, reg.Len())
	_, err := reg.Get(session.Code())
	assert.ErrorIs(t, err, model.ErrSessionNotFound)
}

func TestRemoveUnknownCodeIsNoop(t *testing.T) {
	reg := newTestRegistry(random.New())
	reg.Create()

	reg.Remove("NOSUCH")
	assert.Equal(t, 1, reg.Len())
}

func TestConcurrentCreatesYieldUniqueCodes(t *testing.T) {
	reg := newTestRegistry(random.New())

	const n = 20
	codes := make(chan model.GameCode, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			codes <- reg.Create().Code()
		}()
	}
	wg.Wait()
	close(codes)

	seen := make(map[model.GameCode]bool)
	for code := range codes {
		assert.False(t, seen[code], "duplicate code %s", code)
		seen[code] = true
	}
	assert.Equal(t, n, reg.Len())
}

func TestCloseAllEmptiesRegistryAndClosesSessions(t *testing.T) {
	reg := newTestRegistry(random.New())
	first := reg.Create()
	second := reg.Create()

	reg.CloseAll()

	assert.Equal(t, 0, reg.Len())
	assert.ErrorIs(t, first.AddPlayer("alice", "id-1"), model.ErrSessionClosed)
	assert.ErrorIs(t, second.AddPlayer("bob", "id-2"), model.ErrSessionClosed)
}
