package ws

import (
	"encoding/json"
	"log/slog"
	"time"

	"github.com/gorilla/websocket"

	"github.com/mattjh/dicebank/internal/model"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10

	// sendBufferSize bounds the per-connection outbound queue; slow
	// consumers drop messages rather than stall broadcasts
	sendBufferSize = 64

	maxMessageSize = 4096
)

// Client is one websocket connection. Each connection gets an opaque
// identity token at upgrade time; that token, not the socket, is the
// player's key inside the core.
type Client struct {
	PlayerID model.PlayerID

	// Name and Code are set when the connection joins a game; they are
	// only touched from the client's read pump.
	Name string
	Code model.GameCode

	conn        *websocket.Conn
	send        chan []byte
	dispatcher  *Dispatcher
	logger      *slog.Logger
	connectedAt time.Time
}

func newClient(id model.PlayerID, conn *websocket.Conn, dispatcher *Dispatcher, logger *slog.Logger) *Client {
	return &Client{
		PlayerID:    id,
		conn:        conn,
		send:        make(chan []byte, sendBufferSize),
		dispatcher:  dispatcher,
		logger:      logger.With(slog.String("player_id", string(id))),
		connectedAt: time.Now(),
	}
}

// enqueue queues a message for the write pump, reporting false on overflow
func (c *Client) enqueue(message []byte) bool {
	select {
	case c.send <- message:
		return true
	default:
		return false
	}
}

// Send marshals an event and queues it for this connection only
func (c *Client) Send(event model.Event) {
	payload, err := json.Marshal(event)
	if err != nil {
		c.logger.Error("failed to marshal event",
			slog.String("type", string(event.Type)),
			slog.Any("error", err))
		return
	}
	if !c.enqueue(payload) {
		c.logger.Warn("message dropped - client buffer full",
			slog.String("type", string(event.Type)))
	}
}

// readPump pumps inbound actions from the connection to the dispatcher.
// Exactly one readPump runs per connection; it owns all reads.
func (c *Client) readPump() {
	defer func() {
		c.dispatcher.handleDisconnect(c)
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, payload, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.logger.Warn("unexpected close", slog.Any("error", err))
			}
			return
		}

		var action model.Action
		if err := json.Unmarshal(payload, &action); err != nil {
			c.logger.Warn("invalid action payload", slog.Any("error", err))
			continue
		}
		c.dispatcher.handleAction(c, action)
	}
}

// writePump pumps queued messages out to the connection and keeps it alive
// with pings. Exactly one writePump runs per connection; it owns all writes.
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
