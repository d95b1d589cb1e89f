package game

import (
	"log/slog"
	"sync"

	"github.com/mattjh/dicebank/internal/dependencies/clock"
	"github.com/mattjh/dicebank/internal/dependencies/random"
	"github.com/mattjh/dicebank/internal/model"
	"github.com/mattjh/dicebank/internal/scoring"
)

// Sink receives events produced by a session for fan-out to its members.
// Implementations must not block; broadcasts happen while the session holds
// its own lock so that every event reflects a complete operation.
type Sink interface {
	Broadcast(code model.GameCode, event model.Event)
}

// Config holds the fixed rules for a session
type Config struct {
	TargetScore   int // banked score needed to win
	TurnTimeLimit int // seconds per turn
	DiceCount     int // dice rolled per throw
}

// DefaultConfig returns the standard game rules
func DefaultConfig() Config {
	return Config{
		TargetScore:   10000,
		TurnTimeLimit: 30,
		DiceCount:     6,
	}
}

// Session is the authoritative state machine for one game room. All state
// mutations happen through its methods under a single mutex, so no two
// operations on the same session ever run concurrently, timer callbacks
// included.
type Session struct {
	code   model.GameCode
	config Config

	mu        sync.Mutex
	players   []*model.Player
	hostID    model.PlayerID
	status    model.Status
	round     int
	turnIdx   int
	turnScore int
	dice      []int
	timer     *TurnTimer
	closed    bool

	clock  clock.Clock
	random random.Random
	sink   Sink
	logger *slog.Logger
}

// NewSession creates a session in the waiting state
func NewSession(
	code model.GameCode,
	config Config,
	clk clock.Clock,
	rnd random.Random,
	sink Sink,
	logger *slog.Logger,
) *Session {
	return &Session{
		code:   code,
		config: config,
		status: model.StatusWaiting,
		clock:  clk,
		random: rnd,
		sink:   sink,
		logger: logger.With(slog.String("game", string(code))),
	}
}

// Code returns the session's immutable game code
func (s *Session) Code() model.GameCode {
	return s.code
}

// AddPlayer appends a player to the turn order. The first player to join
// becomes host. Joins are accepted in any status; gameplay only reads the
// player list at turn boundaries.
func (s *Session) AddPlayer(name string, id model.PlayerID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return model.ErrSessionClosed
	}
	if name == "" {
		return model.ErrEmptyName
	}
	for _, p := range s.players {
		if p.ID == id {
			return model.ErrAlreadyInSession
		}
	}

	s.players = append(s.players, &model.Player{ID: id, Name: name})
	if len(s.players) == 1 {
		s.hostID = id
	}

	s.logger.Info("player joined",
		slog.String("player", name),
		slog.Int("player_count", len(s.players)),
	)

	s.broadcastPlayersLocked()
	return nil
}

// RemovePlayer drops a player from the session, keeping the turn pointer on
// a consistent relative player and reassigning the host if needed. Any
// running timer is cancelled; if play continues a fresh timer starts for the
// current player. Callers should check Empty afterwards and dispose of the
// session when the last player has left.
func (s *Session) RemovePlayer(id model.PlayerID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	pos := -1
	for i, p := range s.players {
		if p.ID == id {
			pos = i
			break
		}
	}
	if pos < 0 {
		return model.ErrNotInSession
	}

	name := s.players[pos].Name
	s.players = append(s.players[:pos], s.players[pos+1:]...)

	if pos <= s.turnIdx {
		s.turnIdx--
	}
	if s.turnIdx < 0 || s.turnIdx >= len(s.players) {
		s.turnIdx = 0
	}

	if s.hostID == id {
		if len(s.players) > 0 {
			s.hostID = s.players[0].ID
		} else {
			s.hostID = ""
		}
	}

	s.cancelTimerLocked()

	s.logger.Info("player left",
		slog.String("player", name),
		slog.Int("player_count", len(s.players)),
	)

	if len(s.players) == 0 {
		return nil
	}

	s.broadcastPlayersLocked()
	if s.status == model.StatusPlaying {
		s.broadcastStateLocked()
		s.startTurnTimerLocked()
	}
	return nil
}

// StartGame begins play. Only the host may start, and only from the waiting
// state. All scores reset, round 1 begins with the first joiner, and the
// turn timer starts.
func (s *Session) StartGame(requesterID model.PlayerID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return model.ErrSessionClosed
	}
	if requesterID != s.hostID {
		return model.ErrNotHost
	}
	if s.status != model.StatusWaiting {
		return model.ErrWrongStatus
	}
	if len(s.players) == 0 {
		return model.ErrInsufficientPlayers
	}

	for _, p := range s.players {
		p.Score = 0
		p.BankedScore = 0
	}
	s.round = 1
	s.turnIdx = 0
	s.turnScore = 0
	s.dice = nil
	s.status = model.StatusPlaying

	s.logger.Info("game started",
		slog.Int("player_count", len(s.players)),
		slog.Int("target_score", s.config.TargetScore),
	)

	s.broadcastStateLocked()
	s.startTurnTimerLocked()
	return nil
}

// Roll throws the dice for the current player. A scoring roll accumulates
// into the turn score and the player keeps the turn; a zero-scoring roll is
// a bust, forfeiting everything accumulated this turn and passing play on.
func (s *Session) Roll(requesterID model.PlayerID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkTurnLocked(requesterID); err != nil {
		return err
	}

	dice := make([]int, s.config.DiceCount)
	for i := range dice {
		dice[i] = s.random.Intn(6) + 1
	}
	s.dice = dice
	score := scoring.Score(dice)
	player := s.players[s.turnIdx]

	if score == 0 {
		player.Score = 0
		s.turnScore = 0

		s.logger.Info("bust",
			slog.String("player", player.Name),
			slog.Any("dice", dice),
		)

		s.sink.Broadcast(s.code, model.Event{
			Type: model.EventBust,
			Data: model.BustPayload{Player: player.Name, Dice: dice},
		})
		s.advanceTurnLocked()
		s.broadcastStateLocked()
		s.startTurnTimerLocked()
		return nil
	}

	s.turnScore += score
	player.Score += score

	s.sink.Broadcast(s.code, model.Event{
		Type: model.EventDiceRolled,
		Data: model.DiceRolledPayload{
			Player:    player.Name,
			Dice:      dice,
			Score:     score,
			TurnScore: s.turnScore,
		},
	})
	s.broadcastStateLocked()
	return nil
}

// Bank commits the current player's accumulated score. Reaching the target
// ends the game in their favor; otherwise play passes to the next player.
func (s *Session) Bank(requesterID model.PlayerID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkTurnLocked(requesterID); err != nil {
		return err
	}

	player := s.players[s.turnIdx]
	player.BankedScore += player.Score
	player.Score = 0
	s.turnScore = 0

	if player.BankedScore >= s.config.TargetScore {
		s.status = model.StatusGameOver
		s.cancelTimerLocked()

		s.logger.Info("game over",
			slog.String("winner", player.Name),
			slog.Int("banked_score", player.BankedScore),
		)

		s.sink.Broadcast(s.code, model.Event{
			Type: model.EventGameOver,
			Data: model.GameOverPayload{Winner: player.Name},
		})
		s.broadcastStateLocked()
		return nil
	}

	s.logger.Info("score banked",
		slog.String("player", player.Name),
		slog.Int("banked_score", player.BankedScore),
	)

	s.sink.Broadcast(s.code, model.Event{
		Type: model.EventScoreBanked,
		Data: model.ScoreBankedPayload{Player: player.Name, BankedScore: player.BankedScore},
	})
	s.advanceTurnLocked()
	s.broadcastStateLocked()
	s.startTurnTimerLocked()
	return nil
}

// EndTurn passes play to the next player, abandoning the current turn score.
// The player's own unbanked accumulator is deliberately left intact; it
// carries over and is committed on their next bank.
func (s *Session) EndTurn(requesterID model.PlayerID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkTurnLocked(requesterID); err != nil {
		return err
	}

	s.advanceTurnLocked()
	s.broadcastStateLocked()
	s.startTurnTimerLocked()
	return nil
}

// Close cancels any running timer and marks the session dead. Further
// operations fail with ErrSessionClosed.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	s.cancelTimerLocked()
}

// Empty reports whether the player list is empty
func (s *Session) Empty() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.players) == 0
}

// Status returns the session's current lifecycle status
func (s *Session) Status() model.Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

// Round returns the current round counter
func (s *Session) Round() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.round
}

// CurrentTurnScore returns the score accumulated so far this turn
func (s *Session) CurrentTurnScore() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.turnScore
}

// HostID returns the identity token of the current host
func (s *Session) HostID() model.PlayerID {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hostID
}

// CurrentPlayerID returns the identity token of the player whose turn it is,
// or the empty token if the session has no players
func (s *Session) CurrentPlayerID() model.PlayerID {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.players) == 0 {
		return ""
	}
	return s.players[s.turnIdx].ID
}

// Player returns a copy of the identified player's state
func (s *Session) Player(id model.PlayerID) (model.Player, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.players {
		if p.ID == id {
			return *p, nil
		}
	}
	return model.Player{}, model.ErrNotInSession
}

// PlayerNames returns the display names of all players in join order
func (s *Session) PlayerNames() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.playerNamesLocked()
}

// Snapshot returns the public state broadcast to session members
func (s *Session) Snapshot() model.GameSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// TimerActive reports whether a turn timer is currently running
func (s *Session) TimerActive() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.timer != nil
}

// checkTurnLocked validates that the requester is the current player and the
// session is in play
func (s *Session) checkTurnLocked(requesterID model.PlayerID) error {
	if s.closed {
		return model.ErrSessionClosed
	}
	if s.status != model.StatusPlaying {
		return model.ErrWrongStatus
	}
	if len(s.players) == 0 || s.players[s.turnIdx].ID != requesterID {
		return model.ErrNotPlayerTurn
	}
	return nil
}

// advanceTurnLocked moves the turn pointer to the next player, resetting the
// per-turn accumulators. Wrapping back to the first player increments the
// round counter.
func (s *Session) advanceTurnLocked() {
	s.turnIdx = (s.turnIdx + 1) % len(s.players)
	s.turnScore = 0
	s.dice = nil
	if s.turnIdx == 0 {
		s.round++
	}
}

// startTurnTimerLocked replaces any running timer with a fresh countdown for
// the current player. At most one timer is ever live.
func (s *Session) startTurnTimerLocked() {
	s.cancelTimerLocked()

	t := NewTurnTimer(s.clock, s.config.TurnTimeLimit)
	s.timer = t
	t.Start(
		func(timeLeft int) {
			s.sink.Broadcast(s.code, model.Event{
				Type: model.EventTurnTimer,
				Data: model.TurnTimerPayload{TimeLeft: timeLeft},
			})
		},
		func() {
			s.expireTimer(t)
		},
	)
}

func (s *Session) cancelTimerLocked() {
	if s.timer != nil {
		s.timer.Cancel()
		s.timer = nil
	}
}

// expireTimer handles a turn timeout: an implicit bust for the current
// player followed by a forced advance. The timer identity check discards
// expiries from timers that were cancelled after firing.
func (s *Session) expireTimer(t *TurnTimer) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.timer != t || s.closed || s.status != model.StatusPlaying {
		return
	}
	s.timer = nil

	player := s.players[s.turnIdx]
	player.Score = 0
	s.turnScore = 0

	s.logger.Info("turn timed out", slog.String("player", player.Name))

	s.advanceTurnLocked()
	s.broadcastStateLocked()
	s.startTurnTimerLocked()
}

func (s *Session) playerNamesLocked() []string {
	names := make([]string, len(s.players))
	for i, p := range s.players {
		names[i] = p.Name
	}
	return names
}

func (s *Session) snapshotLocked() model.GameSnapshot {
	players := make([]model.PlayerSnapshot, len(s.players))
	for i, p := range s.players {
		players[i] = model.PlayerSnapshot{
			ID:          p.ID,
			Name:        p.Name,
			Score:       p.Score,
			BankedScore: p.BankedScore,
			TotalScore:  p.TotalScore(),
		}
	}

	currentPlayer := ""
	if s.status == model.StatusPlaying && len(s.players) > 0 {
		currentPlayer = s.players[s.turnIdx].Name
	}

	return model.GameSnapshot{
		Players:          players,
		CurrentPlayer:    currentPlayer,
		Round:            s.round,
		Status:           s.status,
		CurrentTurnScore: s.turnScore,
		CurrentDice:      s.dice,
		TargetScore:      s.config.TargetScore,
	}
}

func (s *Session) broadcastStateLocked() {
	s.sink.Broadcast(s.code, model.Event{
		Type: model.EventGameStateUpdate,
		Data: s.snapshotLocked(),
	})
}

func (s *Session) broadcastPlayersLocked() {
	s.sink.Broadcast(s.code, model.Event{
		Type: model.EventPlayerJoined,
		Data: model.PlayerJoinedPayload{
			Players:   s.playerNamesLocked(),
			Code:      s.code,
			GameState: s.snapshotLocked(),
		},
	})
}
