// Package gameplay provides core game logic for player movement and the
// carve/solve/play/regenerate cycle.
package gameplay

import (
	"fmt"

	"mazerunner/pkg/engine/logger"
	"mazerunner/pkg/engine/world"
	"mazerunner/pkg/game/state"
	"mazerunner/pkg/game/stats"
)

// Advance runs from cur along the first of dirs that has an open passage.
// The run continues down the corridor and stops at a dead end or at the
// first cell offering a turn. moved is false if none of dirs is open.
// A slot outside the cell's arity is a programming error.
func Advance(cur *world.Cell, dirs world.Directions) (next *world.Cell, moved bool, err error) {
	if cur == nil {
		return nil, false, nil
	}
	if err := dirs.Validate(cur.Arity()); err != nil {
		return cur, false, err
	}
	for _, d := range dirs {
		if !cur.IsConnectedIn(d) {
			continue
		}
		return run(cur, d), true, nil
	}
	return cur, false, nil
}

// run steps along d, which must be open from cur
func run(cur *world.Cell, d world.Direction) *world.Cell {
	next := cur.Neighbor(d)
	for next.IsConnectedIn(d) && !IsBranch(next, d) {
		next = next.Neighbor(d)
	}
	return next
}

// IsBranch reports whether c has an open passage other than straight along
// d or back the way it came
func IsBranch(c *world.Cell, d world.Direction) bool {
	back := d.Opposite()
	for s := range c.Arity() {
		slot := world.Direction(s)
		if slot == d || slot == back {
			continue
		}
		if c.IsConnectedIn(slot) {
			return true
		}
	}
	return false
}

// MovePlayer runs the player along the slots bound to key. It returns true
// if the player moved. Reaching the goal finishes the maze.
func MovePlayer(g *state.Game, key string) bool {
	if g.CurrentCell == nil || g.IsTransitioning() || g.IsCarving() || !g.Maze.HasPath() {
		return false
	}
	dirs := g.Maze.Topology().DirectionForKey(key)
	if len(dirs) == 0 {
		return false
	}

	next, moved, err := Advance(g.CurrentCell, dirs)
	if err != nil {
		logger.Error("Movement rejected", "key", key, "error", err)
		return false
	}
	if !moved {
		return false
	}

	g.CurrentCell = next
	g.Moves++
	if next == g.Goal() {
		solved(g)
	}
	return true
}

// solved records the solve time and starts the fade to the next maze
func solved(g *state.Game) {
	elapsed := g.Stats.Finish()
	avg, _ := g.Stats.Average()
	logger.Info("Maze solved",
		"generation", g.Generation,
		"topology", g.Maze.Topology().Name(),
		"moves", g.Moves,
		"time", stats.FormatDuration(elapsed),
		"average", stats.FormatDuration(avg))
	logMessage(g, "Solved in ACTION{%s} (average %s)", stats.FormatDuration(elapsed), stats.FormatDuration(avg))
	StartTransition(g)
}

// logMessage adds a formatted message to the game's message log. Markup is
// left in place for the renderer to style.
func logMessage(g *state.Game, msg string, a ...any) {
	g.AddMessage(fmt.Sprintf(msg, a...))
}
