package state

import (
	"math/rand"
	"slices"

	"mazerunner/pkg/engine/carver"
	"mazerunner/pkg/engine/maze"
	"mazerunner/pkg/engine/topology"
	"mazerunner/pkg/engine/world"
	"mazerunner/pkg/game/stats"
)

// TransitionFrames is the length of the fade between two mazes. The new
// maze is swapped in at the midpoint, while the screen is fully faded.
const TransitionFrames = 60

// Game represents the game state for one play session
type Game struct {
	Topology   topology.Topology
	Factory    carver.Factory
	CarverName string
	Rand       *rand.Rand

	// Seed the random source was created from, 0 if unknown
	Seed int64

	// Maze is replaced, never reset, on regeneration
	Maze        *maze.Maze
	CurrentCell *world.Cell

	ShowSolution   bool
	SkipGeneration bool
	ViewRadius     int

	Stats *stats.Tracker

	Messages []string

	// Moves counts successful runs on the current maze
	Moves int

	// Generation counts the mazes built so far
	Generation int

	// Transition is the current fade frame, -1 when no fade is running
	Transition int

	Quit bool
}

// NewGame creates a session and builds the first maze
func NewGame(topo topology.Topology, factory carver.Factory, rng *rand.Rand, tracker *stats.Tracker) *Game {
	if rng == nil {
		rng = rand.New(rand.NewSource(rand.Int63()))
	}
	if tracker == nil {
		tracker = stats.New(0)
	}
	g := &Game{
		Topology:   topo,
		Factory:    factory,
		Rand:       rng,
		ViewRadius: 4,
		Stats:      tracker,
		Messages:   make([]string, 0),
		Transition: -1,
	}
	g.Regenerate()
	return g
}

// Regenerate discards the current maze and starts carving a new one from
// the current topology and carver. The player is parked on the first cell
// until carving finishes.
func (g *Game) Regenerate() {
	g.Maze = maze.New(g.Topology, g.Factory, g.Rand)
	g.CurrentCell = nil
	if cells := g.Maze.Cells(); len(cells) > 0 {
		g.CurrentCell = cells[0]
	}
	g.Moves = 0
	g.Generation++
}

// IsCarving reports whether the current maze is still being carved
func (g *Game) IsCarving() bool {
	return g.Maze != nil && !g.Maze.IsFinishedCarving()
}

// IsTransitioning reports whether a fade is running
func (g *Game) IsTransitioning() bool {
	return g.Transition >= 0
}

// TransitionAlpha returns how opaque the fade overlay is, from 0 to 1
func (g *Game) TransitionAlpha() float64 {
	if !g.IsTransitioning() {
		return 0
	}
	half := float64(TransitionFrames) / 2
	d := float64(g.Transition) - half
	if d < 0 {
		d = -d
	}
	return 1 - d/half
}

// Solution returns the cells from the player to the goal, or nil while no
// path is known
func (g *Game) Solution() []*world.Cell {
	if g.Maze == nil || !g.Maze.HasPath() {
		return nil
	}
	return slices.Collect(g.Maze.PathToEnd(g.CurrentCell))
}

// Goal returns the cell the player must reach, nil while carving
func (g *Game) Goal() *world.Cell {
	if g.Maze == nil {
		return nil
	}
	return g.Maze.End()
}

// Focus returns the cell the view should center on: the carving cursor
// while carving, otherwise the player
func (g *Game) Focus() *world.Cell {
	if g.Maze != nil && g.IsCarving() {
		if c := g.Maze.LastChangedCell(); c != nil {
			return c
		}
	}
	return g.CurrentCell
}

// AddMessage adds a message to the game's message log
func (g *Game) AddMessage(msg string) {
	const maxMessages = 5
	g.Messages = append(g.Messages, msg)

	if len(g.Messages) > maxMessages {
		g.Messages = g.Messages[len(g.Messages)-maxMessages:]
	}
}

// ClearMessages clears all messages
func (g *Game) ClearMessages() {
	g.Messages = make([]string, 0)
}
