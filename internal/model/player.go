package model

// PlayerID is an opaque session-scoped identity token for a player.
// The transport layer maps connections to tokens; the core never sees
// connection primitives.
type PlayerID string

// Player represents a participant in a game session
type Player struct {
	ID   PlayerID
	Name string

	// Score is the player's unbanked accumulator. It grows with each
	// scoring roll and is zeroed on bust or bank.
	Score int

	// BankedScore is the player's committed total. Reaching the session's
	// target score here wins the game.
	BankedScore int
}

// TotalScore returns the player's combined banked and unbanked score
func (p *Player) TotalScore() int {
	return p.Score + p.BankedScore
}
