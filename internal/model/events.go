package model

import "encoding/json"

// ActionType identifies an inbound player action
type ActionType string

const (
	ActionCreateGame ActionType = "createGame"
	ActionJoinGame   ActionType = "joinGame"
	ActionStartGame  ActionType = "startGame"
	ActionRollDice   ActionType = "rollDice"
	ActionBankScore  ActionType = "bankScore"
	ActionEndTurn    ActionType = "endTurn"
)

// Action is the inbound message envelope received from clients
type Action struct {
	Type ActionType      `json:"action"`
	Data json.RawMessage `json:"data,omitempty"`
}

// JoinGameRequest is the payload of a joinGame action
type JoinGameRequest struct {
	Name string   `json:"name"`
	Code GameCode `json:"code"`
}

// EventType identifies an outbound server-pushed event
type EventType string

const (
	EventGameCreated     EventType = "gameCreated"
	EventJoinFailed      EventType = "joinFailed"
	EventPlayerJoined    EventType = "playerJoined"
	EventGameStateUpdate EventType = "gameStateUpdate"
	EventTurnTimer       EventType = "turnTimer"
	EventDiceRolled      EventType = "diceRolled"
	EventBust            EventType = "bust"
	EventScoreBanked     EventType = "scoreBanked"
	EventGameOver        EventType = "gameOver"
)

// Event is the outbound message envelope pushed to clients
type Event struct {
	Type EventType `json:"type"`
	Data any       `json:"data,omitempty"`
}

// GameCreatedPayload is sent only to the creating connection
type GameCreatedPayload struct {
	Code GameCode `json:"code"`
}

// PlayerJoinedPayload is broadcast when the member list changes
type PlayerJoinedPayload struct {
	Players   []string     `json:"players"`
	Code      GameCode     `json:"code"`
	GameState GameSnapshot `json:"gameState"`
}

// TurnTimerPayload carries the countdown for the current turn
type TurnTimerPayload struct {
	TimeLeft int `json:"timeLeft"`
}

// DiceRolledPayload is broadcast after a scoring roll
type DiceRolledPayload struct {
	Player    string `json:"player"`
	Dice      []int  `json:"dice"`
	Score     int    `json:"score"`
	TurnScore int    `json:"turnScore"`
}

// BustPayload is broadcast after a zero-scoring roll
type BustPayload struct {
	Player string `json:"player"`
	Dice   []int  `json:"dice"`
}

// ScoreBankedPayload is broadcast when a player banks below the target
type ScoreBankedPayload struct {
	Player      string `json:"player"`
	BankedScore int    `json:"bankedScore"`
}

// GameOverPayload is broadcast when a player reaches the target score
type GameOverPayload struct {
	Winner string `json:"winner"`
}
