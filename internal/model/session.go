package model

// GameCode is a human-readable identifier for joining game sessions
type GameCode string

// Status represents the lifecycle phase of a game session
type Status string

const (
	StatusWaiting  Status = "waiting"   // Accepting joins, no active play
	StatusPlaying  Status = "playing"   // Turns in progress
	StatusGameOver Status = "game-over" // Terminal; a player reached the target
)

// PlayerSnapshot is the public view of a player included in broadcasts
type PlayerSnapshot struct {
	ID          PlayerID `json:"id"`
	Name        string   `json:"name"`
	Score       int      `json:"score"`
	BankedScore int      `json:"bankedScore"`
	TotalScore  int      `json:"totalScore"`
}

// GameSnapshot is the full public state of a session, broadcast to every
// member after each mutating operation
type GameSnapshot struct {
	Players          []PlayerSnapshot `json:"players"`
	CurrentPlayer    string           `json:"currentPlayer"`
	Round            int              `json:"round"`
	Status           Status           `json:"status"`
	CurrentTurnScore int              `json:"currentTurnScore"`
	CurrentDice      []int            `json:"currentDice"`
	TargetScore      int              `json:"targetScore"`
}
