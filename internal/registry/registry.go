// Package registry maps game codes to live sessions.
package registry

import (
	"log/slog"
	"sync"

	"github.com/mattjh/dicebank/internal/dependencies/random"
	"github.com/mattjh/dicebank/internal/game"
	"github.com/mattjh/dicebank/internal/model"
)

const (
	// CodeLength is the length of generated game codes
	CodeLength = 6
	// CodeAlphabet is the characters used in game codes (avoid confusing chars)
	CodeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"
)

// SessionFactory constructs a session for a freshly generated code
type SessionFactory func(code model.GameCode) *game.Session

// Registry owns the mapping from game code to session. It is an injected
// instance rather than process-global state, so tests can run isolated
// registries side by side.
type Registry struct {
	mu       sync.Mutex
	sessions map[model.GameCode]*game.Session
	factory  SessionFactory
	random   random.Random
	logger   *slog.Logger
}

// New creates an empty registry
func New(factory SessionFactory, rnd random.Random, logger *slog.Logger) *Registry {
	return &Registry{
		sessions: make(map[model.GameCode]*game.Session),
		factory:  factory,
		random:   rnd,
		logger:   logger.With(slog.String("component", "registry")),
	}
}

// Create generates a unique code, constructs a session for it, and registers
// it. Code generation retries on collision; the lock is held across the
// whole operation so concurrent creates can never register the same code.
func (r *Registry) Create() *game.Session {
	r.mu.Lock()
	defer r.mu.Unlock()

	var code model.GameCode
	for {
		code = model.GameCode(r.random.String(CodeLength, CodeAlphabet))
		if _, exists := r.sessions[code]; !exists {
			break
		}
	}

	session := r.factory(code)
	r.sessions[code] = session

	r.logger.Info("game created",
		slog.String("code", string(code)),
		slog.Int("live_sessions", len(r.sessions)),
	)
	return session
}

// Get returns the session for a code, or ErrSessionNotFound
func (r *Registry) Get(code model.GameCode) (*game.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	session, ok := r.sessions[code]
	if !ok {
		return nil, model.ErrSessionNotFound
	}
	return session, nil
}

// Remove drops a session from the registry. The session must already have
// been closed so no timer outlives it.
func (r *Registry) Remove(code model.GameCode) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.sessions[code]; !ok {
		return
	}
	delete(r.sessions, code)
	r.logger.Info("game removed",
		slog.String("code", string(code)),
		slog.Int("live_sessions", len(r.sessions)),
	)
}

// Len returns the number of live sessions
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

// CloseAll closes every live session and empties the registry. Used during
// process shutdown so no timers leak.
func (r *Registry) CloseAll() {
	r.mu.Lock()
	defer r.mu.Unlock()
	for code, session := range r.sessions {
		session.Close()
		delete(r.sessions, code)
	}
}
