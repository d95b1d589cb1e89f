package cli

import (
	"bufio"
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"strings"

	"github.com/gorilla/websocket"
	"github.com/spf13/cobra"

	"github.com/mattjh/dicebank/internal/model"
)

func newPlayCmd() *cobra.Command {
	var (
		name   string
		code   string
		create bool
	)

	cmd := &cobra.Command{
		Use:   "play",
		Short: "Play a game interactively",
		Long: `Connects to the server, creates or joins a game, and plays it from
the terminal. Available commands at the prompt: start, roll, bank, end, quit.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if name == "" {
				return fmt.Errorf("--name is required")
			}
			if !create && code == "" {
				return fmt.Errorf("either --create or --code is required")
			}

			wsURL, err := websocketURL(serverURL)
			if err != nil {
				return err
			}

			conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
			if err != nil {
				return fmt.Errorf("connect to %s: %w", wsURL, err)
			}
			defer conn.Close()

			return runGame(conn, name, model.GameCode(code), create)
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Display name to play as")
	cmd.Flags().StringVar(&code, "code", "", "Game code to join")
	cmd.Flags().BoolVar(&create, "create", false, "Create a new game instead of joining")

	return cmd
}

// websocketURL rewrites an http(s) server URL to its ws(s) endpoint
func websocketURL(server string) (string, error) {
	u, err := url.Parse(server)
	if err != nil {
		return "", fmt.Errorf("invalid server URL: %w", err)
	}
	switch u.Scheme {
	case "http":
		u.Scheme = "ws"
	case "https":
		u.Scheme = "wss"
	case "ws", "wss":
	default:
		return "", fmt.Errorf("unsupported scheme %q", u.Scheme)
	}
	u.Path = "/ws"
	return u.String(), nil
}

// inboundEvent mirrors the server's event envelope with the payload left raw
type inboundEvent struct {
	Type model.EventType `json:"type"`
	Data json.RawMessage `json:"data"`
}

func runGame(conn *websocket.Conn, name string, code model.GameCode, create bool) error {
	created := make(chan model.GameCode, 1)
	done := make(chan error, 1)

	go func() {
		done <- readEvents(conn, created)
	}()

	if create {
		if err := sendAction(conn, model.ActionCreateGame, nil); err != nil {
			return err
		}
		select {
		case code = <-created:
			fmt.Printf("game created, code: %s\n", code)
		case err := <-done:
			return err
		}
	}

	if err := sendAction(conn, model.ActionJoinGame, model.JoinGameRequest{Name: name, Code: code}); err != nil {
		return err
	}

	go func() {
		scanner := bufio.NewScanner(os.Stdin)
		for scanner.Scan() {
			switch strings.TrimSpace(scanner.Text()) {
			case "start":
				_ = sendAction(conn, model.ActionStartGame, nil)
			case "roll":
				_ = sendAction(conn, model.ActionRollDice, nil)
			case "bank":
				_ = sendAction(conn, model.ActionBankScore, nil)
			case "end":
				_ = sendAction(conn, model.ActionEndTurn, nil)
			case "quit":
				_ = conn.Close()
				return
			case "":
			default:
				fmt.Println("commands: start, roll, bank, end, quit")
			}
		}
	}()

	return <-done
}

func sendAction(conn *websocket.Conn, action model.ActionType, data any) error {
	var raw json.RawMessage
	if data != nil {
		b, err := json.Marshal(data)
		if err != nil {
			return err
		}
		raw = b
	}
	return conn.WriteJSON(model.Action{Type: action, Data: raw})
}

// readEvents prints server-pushed events until the connection closes
func readEvents(conn *websocket.Conn, created chan<- model.GameCode) error {
	for {
		_, payload, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				return nil
			}
			return fmt.Errorf("connection lost: %w", err)
		}

		var event inboundEvent
		if err := json.Unmarshal(payload, &event); err != nil {
			continue
		}
		printEvent(event, created)
	}
}

func printEvent(event inboundEvent, created chan<- model.GameCode) {
	switch event.Type {
	case model.EventGameCreated:
		var p model.GameCreatedPayload
		if json.Unmarshal(event.Data, &p) == nil {
			created <- p.Code
		}

	case model.EventJoinFailed:
		fmt.Println("join failed: unknown game code")

	case model.EventPlayerJoined:
		var p model.PlayerJoinedPayload
		if json.Unmarshal(event.Data, &p) == nil {
			fmt.Printf("players: %s\n", strings.Join(p.Players, ", "))
		}

	case model.EventGameStateUpdate:
		var p model.GameSnapshot
		if json.Unmarshal(event.Data, &p) == nil {
			fmt.Printf("[round %d] %s to play, turn score %d, status %s\n",
				p.Round, p.CurrentPlayer, p.CurrentTurnScore, p.Status)
			for _, pl := range p.Players {
				fmt.Printf("  %-16s banked %5d, carrying %d\n", pl.Name, pl.BankedScore, pl.Score)
			}
		}

	case model.EventTurnTimer:
		var p model.TurnTimerPayload
		if json.Unmarshal(event.Data, &p) == nil && p.TimeLeft%10 == 0 {
			fmt.Printf("  %ds left\n", p.TimeLeft)
		}

	case model.EventDiceRolled:
		var p model.DiceRolledPayload
		if json.Unmarshal(event.Data, &p) == nil {
			fmt.Printf("%s rolled %v: +%d (turn total %d)\n", p.Player, p.Dice, p.Score, p.TurnScore)
		}

	case model.EventBust:
		var p model.BustPayload
		if json.Unmarshal(event.Data, &p) == nil {
			fmt.Printf("%s busted with %v\n", p.Player, p.Dice)
		}

	case model.EventScoreBanked:
		var p model.ScoreBankedPayload
		if json.Unmarshal(event.Data, &p) == nil {
			fmt.Printf("%s banked, total %d\n", p.Player, p.BankedScore)
		}

	case model.EventGameOver:
		var p model.GameOverPayload
		if json.Unmarshal(event.Data, &p) == nil {
			fmt.Printf("game over! winner: %s\n", p.Winner)
		}
	}
}
