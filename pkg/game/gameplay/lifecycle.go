package gameplay

import (
	"fmt"
	"math/rand"
	"time"

	"mazerunner/pkg/engine/carver"
	"mazerunner/pkg/engine/logger"
	"mazerunner/pkg/engine/topology"
	"mazerunner/pkg/game/config"
	"mazerunner/pkg/game/state"
	"mazerunner/pkg/game/stats"
)

// BuildGame creates a new game from cfg and starts carving the first maze
func BuildGame(cfg *config.Config) (*state.Game, error) {
	topo, err := topology.New(cfg.Params())
	if err != nil {
		return nil, fmt.Errorf("gameplay: %w", err)
	}
	factory, err := carver.NewFactory(cfg.Maze.Carver, cfg.CarverOptions())
	if err != nil {
		return nil, fmt.Errorf("gameplay: %w", err)
	}

	// Store seed so a run can be reproduced from the log
	seed := cfg.Maze.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	logger.Info("Building game", "topology", topo.Name(), "carver", cfg.Maze.Carver, "seed", seed)

	g := state.NewGame(topo, factory, rand.New(rand.NewSource(seed)), stats.New(cfg.TimeLimit()))
	g.Seed = seed
	g.CarverName = cfg.Maze.Carver
	if g.CarverName == "" {
		g.CarverName = carver.NameDFS
	}
	g.ShowSolution = cfg.Display.ShowSolution
	g.SkipGeneration = cfg.Display.SkipGeneration
	g.ViewRadius = max(1, cfg.Display.ViewRadius)

	g.ClearMessages()
	logMessage(g, "Welcome to the maze!")
	logMessage(g, "Topology: ROOM{%s}", topo.Name())
	return g, nil
}

// Tick advances the game by one frame: a fade frame, one carving step, or a
// check of the time limit
func Tick(g *state.Game) {
	if g.IsTransitioning() {
		tickTransition(g)
		return
	}

	if g.IsCarving() {
		if g.SkipGeneration {
			g.Maze.Carve()
		} else {
			g.Maze.CarveStep()
		}
		if !g.IsCarving() {
			finishCarving(g)
		}
		return
	}

	if !g.Maze.HasPath() {
		finishCarving(g)
		return
	}

	if g.Stats.Expired() {
		g.Stats.Fail()
		logger.Info("Maze abandoned at time limit", "generation", g.Generation, "limit", g.Stats.Limit())
		logMessage(g, "DENIED{Out of time}")
		StartTransition(g)
	}
}

// tickTransition advances the fade. The maze is swapped at the midpoint so
// the change happens while the screen is dark.
func tickTransition(g *state.Game) {
	if g.Transition == state.TransitionFrames/2 {
		g.Regenerate()
		logger.Debug("Regenerated maze", "generation", g.Generation, "cells", len(g.Maze.Cells()))
		if g.SkipGeneration {
			g.Maze.Carve()
			finishCarving(g)
		}
	}
	g.Transition++
	if g.Transition > state.TransitionFrames {
		g.Transition = -1
	}
}

// StartTransition begins fading to a new maze. It does nothing while a fade
// is already running.
func StartTransition(g *state.Game) {
	if g.IsTransitioning() {
		return
	}
	g.Transition = 0
}

// finishCarving places the player on the start and starts the clock
func finishCarving(g *state.Game) {
	g.Maze.CalculatePath()
	if !g.Maze.HasPath() {
		return
	}
	g.CurrentCell = g.Maze.Start()
	g.Moves = 0
	g.Stats.Start()
	logger.Debug("Carving finished",
		"generation", g.Generation,
		"passages", g.Maze.EdgeCount(),
		"solution", g.Maze.SolutionLength(g.Maze.End()))
	logMessage(g, "Find the EXIT{exit}!")
}

// CycleTopology switches to the next registered topology and fades to a
// maze built from it. Sizes come from the active config.
func CycleTopology(g *state.Game) {
	names := topology.Names()
	next := names[0]
	for i, n := range names {
		if n == g.Topology.Name() {
			next = names[(i+1)%len(names)]
			break
		}
	}
	params := config.Current().Params()
	params.Name = next
	topo, err := topology.New(params)
	if err != nil {
		logger.Warning("Cannot switch topology", "topology", next, "error", err)
		logMessage(g, "DENIED{Cannot build %s}", next)
		return
	}
	g.Topology = topo
	logMessage(g, "Topology: ROOM{%s}", topo.Name())
	StartTransition(g)
}

// CycleCarver switches to the next registered carver for the following maze
func CycleCarver(g *state.Game) {
	names := carver.Names()
	next := names[0]
	for i, n := range names {
		if n == g.CarverName {
			next = names[(i+1)%len(names)]
			break
		}
	}
	factory, err := carver.NewFactory(next, config.Current().CarverOptions())
	if err != nil {
		logger.Warning("Cannot switch carver", "carver", next, "error", err)
		return
	}
	g.Factory = factory
	g.CarverName = next
	logMessage(g, "Carver: ROOM{%s}", next)
	StartTransition(g)
}
