package ws

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/mattjh/dicebank/internal/game"
	"github.com/mattjh/dicebank/internal/model"
	"github.com/mattjh/dicebank/internal/registry"
)

// Dispatcher routes inbound player actions to session operations and owns
// the lifecycle of connections. Invalid actions are dropped without a reply;
// the only explicit failure surfaced to a client is joinFailed for an
// unknown code.
type Dispatcher struct {
	registry *registry.Registry
	hubs     *HubManager
	logger   *slog.Logger
	upgrader websocket.Upgrader
}

// NewDispatcher creates a dispatcher backed by the given registry and hubs
func NewDispatcher(reg *registry.Registry, hubs *HubManager, logger *slog.Logger) *Dispatcher {
	return &Dispatcher{
		registry: reg,
		hubs:     hubs,
		logger:   logger.With(slog.String("component", "dispatcher")),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// The game has no cross-origin credentials to protect
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// ServeHTTP upgrades the connection and runs its pumps. Each connection is
// handed a fresh opaque identity token.
func (d *Dispatcher) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := d.upgrader.Upgrade(w, r, nil)
	if err != nil {
		d.logger.Warn("websocket upgrade failed", slog.Any("error", err))
		return
	}

	client := newClient(model.PlayerID(uuid.NewString()), conn, d, d.logger)
	d.logger.Info("connection opened", slog.String("player_id", string(client.PlayerID)))

	go client.writePump()
	client.readPump()
}

// handleAction dispatches one inbound action from a client's read pump
func (d *Dispatcher) handleAction(c *Client, action model.Action) {
	switch action.Type {
	case model.ActionCreateGame:
		d.handleCreate(c)
	case model.ActionJoinGame:
		d.handleJoin(c, action.Data)
	case model.ActionStartGame:
		d.withSession(c, func(s *game.Session) error {
			return s.StartGame(c.PlayerID)
		})
	case model.ActionRollDice:
		d.withSession(c, func(s *game.Session) error {
			return s.Roll(c.PlayerID)
		})
	case model.ActionBankScore:
		d.withSession(c, func(s *game.Session) error {
			return s.Bank(c.PlayerID)
		})
	case model.ActionEndTurn:
		d.withSession(c, func(s *game.Session) error {
			return s.EndTurn(c.PlayerID)
		})
	default:
		d.logger.Warn("unknown action",
			slog.String("action", string(action.Type)),
			slog.String("player_id", string(c.PlayerID)))
	}
}

func (d *Dispatcher) handleCreate(c *Client) {
	session := d.registry.Create()
	c.Send(model.Event{
		Type: model.EventGameCreated,
		Data: model.GameCreatedPayload{Code: session.Code()},
	})
}

func (d *Dispatcher) handleJoin(c *Client, data json.RawMessage) {
	var req model.JoinGameRequest
	if err := json.Unmarshal(data, &req); err != nil {
		d.logger.Warn("invalid join payload", slog.Any("error", err))
		c.Send(model.Event{Type: model.EventJoinFailed})
		return
	}

	session, err := d.registry.Get(req.Code)
	if err != nil {
		d.logger.Info("join failed",
			slog.String("code", string(req.Code)),
			slog.String("player_id", string(c.PlayerID)))
		c.Send(model.Event{Type: model.EventJoinFailed})
		return
	}

	hub := d.hubs.GetOrCreateHub(req.Code)
	hub.Register(c)
	c.Code = req.Code
	c.Name = req.Name

	// AddPlayer broadcasts the updated member list itself
	if err := session.AddPlayer(req.Name, c.PlayerID); err != nil {
		d.logger.Debug("join ignored",
			slog.String("code", string(req.Code)),
			slog.Any("error", err))
	}
}

// withSession runs an operation against the client's joined session.
// Operation errors are the session declining an invalid action; they are
// logged and otherwise swallowed.
func (d *Dispatcher) withSession(c *Client, op func(*game.Session) error) {
	if c.Code == "" {
		return
	}
	session, err := d.registry.Get(c.Code)
	if err != nil {
		return
	}
	if err := op(session); err != nil {
		d.logger.Debug("action ignored",
			slog.String("code", string(c.Code)),
			slog.String("player_id", string(c.PlayerID)),
			slog.Any("error", err))
	}
}

// handleDisconnect removes the player from their session and tears the
// session down when the last player leaves
func (d *Dispatcher) handleDisconnect(c *Client) {
	d.logger.Info("connection closed", slog.String("player_id", string(c.PlayerID)))

	if c.Code == "" {
		return
	}
	if hub := d.hubs.GetHub(c.Code); hub != nil {
		hub.Unregister(c)
	}

	session, err := d.registry.Get(c.Code)
	if err != nil {
		return
	}
	if err := session.RemovePlayer(c.PlayerID); err != nil {
		return
	}

	if session.Empty() {
		session.Close()
		d.registry.Remove(c.Code)
		d.hubs.RemoveHub(c.Code)
	}
}
