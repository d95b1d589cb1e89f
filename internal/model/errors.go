package model

import "errors"

// Common errors used across the application
var (
	// Registry errors
	ErrSessionNotFound = errors.New("session not found")

	// Session errors
	ErrSessionClosed       = errors.New("session is closed")
	ErrAlreadyInSession    = errors.New("player is already in session")
	ErrNotInSession        = errors.New("player is not in session")
	ErrNotHost             = errors.New("player is not the host")
	ErrNotPlayerTurn       = errors.New("not this player's turn")
	ErrWrongStatus         = errors.New("operation not allowed in current status")
	ErrInsufficientPlayers = errors.New("insufficient players to start game")
	ErrEmptyName           = errors.New("player name must not be empty")
)
