package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "", cfg.Host)
	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 10000, cfg.TargetScore)
	assert.Equal(t, 30, cfg.TurnTimeLimit)
	assert.Equal(t, 6, cfg.DiceCount)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("DICEBANK_PORT", "9090")
	t.Setenv("DICEBANK_LOG_LEVEL", "debug")
	t.Setenv("DICEBANK_TARGET_SCORE", "5000")
	t.Setenv("DICEBANK_TURN_TIME_LIMIT", "15")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 5000, cfg.TargetScore)
	assert.Equal(t, 15, cfg.TurnTimeLimit)
}

func TestLoadRejectsNonPositiveRules(t *testing.T) {
	t.Setenv("DICEBANK_TARGET_SCORE", "0")
	_, err := Load()
	assert.ErrorContains(t, err, "target score")
}

func TestLoadRejectsNonPositiveTurnTime(t *testing.T) {
	t.Setenv("DICEBANK_TURN_TIME_LIMIT", "-1")
	_, err := Load()
	assert.ErrorContains(t, err, "turn time limit")
}
