// Package factory wires the application's components together.
package factory

import (
	"io"
	"log/slog"

	"github.com/mattjh/dicebank/internal/config"
	"github.com/mattjh/dicebank/internal/dependencies/clock"
	"github.com/mattjh/dicebank/internal/dependencies/random"
	"github.com/mattjh/dicebank/internal/game"
	"github.com/mattjh/dicebank/internal/model"
	"github.com/mattjh/dicebank/internal/registry"
	"github.com/mattjh/dicebank/internal/ws"
)

// App contains all wired application components
type App struct {
	Clock      clock.Clock
	Random     random.Random
	HubManager *ws.HubManager
	Registry   *registry.Registry
	Dispatcher *ws.Dispatcher
}

// New creates a new application with all dependencies wired from config
func New(cfg config.Config, logger *slog.Logger) *App {
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	clk := clock.New()
	rnd := random.New()

	gameConfig := game.Config{
		TargetScore:   cfg.TargetScore,
		TurnTimeLimit: cfg.TurnTimeLimit,
		DiceCount:     cfg.DiceCount,
	}

	return newWithDependencies(gameConfig, clk, rnd, logger)
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(gameConfig game.Config, clk clock.Clock, rnd random.Random, logger *slog.Logger) *App {
	hubManager := ws.NewHubManager(logger)

	reg := registry.New(func(code model.GameCode) *game.Session {
		return game.NewSession(code, gameConfig, clk, rnd, hubManager, logger)
	}, rnd, logger)

	dispatcher := ws.NewDispatcher(reg, hubManager, logger)

	return &App{
		Clock:      clk,
		Random:     rnd,
		HubManager: hubManager,
		Registry:   reg,
		Dispatcher: dispatcher,
	}
}
