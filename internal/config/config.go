// Package config loads server settings from the environment.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config holds all server settings
type Config struct {
	Host     string `env:"DICEBANK_HOST" envDefault:""`
	Port     int    `env:"DICEBANK_PORT" envDefault:"8080"`
	LogLevel string `env:"DICEBANK_LOG_LEVEL" envDefault:"info"`

	// Game rules
	TargetScore   int `env:"DICEBANK_TARGET_SCORE" envDefault:"10000"`
	TurnTimeLimit int `env:"DICEBANK_TURN_TIME_LIMIT" envDefault:"30"`
	DiceCount     int `env:"DICEBANK_DICE_COUNT" envDefault:"6"`
}

// Load parses configuration from environment variables
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if cfg.TargetScore <= 0 {
		return Config{}, fmt.Errorf("target score must be positive, got %d", cfg.TargetScore)
	}
	if cfg.TurnTimeLimit <= 0 {
		return Config{}, fmt.Errorf("turn time limit must be positive, got %d", cfg.TurnTimeLimit)
	}
	if cfg.DiceCount <= 0 {
		return Config{}, fmt.Errorf("dice count must be positive, got %d", cfg.DiceCount)
	}
	return cfg, nil
}
