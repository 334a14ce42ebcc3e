// Package carver turns a fully walled grid into a perfect maze, one passage
// at a time.
package carver

import (
	"errors"
	"fmt"
	"math/rand"
	"strings"

	"mazerunner/pkg/engine/world"
)

// ErrUnknownCarver indicates a carving strategy name that is not registered.
var ErrUnknownCarver = errors.New("carver: unknown carver")

// Carver is a carving state machine. Step opens at most one passage per call
// and is a no-op once IsFinished reports true, so callers can drive it once
// per frame.
type Carver interface {
	Step()
	IsFinished() bool
	// LastChanged returns the cell most recently reached, or nil when finished
	LastChanged() *world.Cell
}

// Factory creates a carver for a freshly generated cell set
type Factory func(cells []*world.Cell, rng *rand.Rand) Carver

// Options tune the carving strategies
type Options struct {
	// VerticalBias is the probability of discarding a vertical (layer-changing)
	// candidate while a planar one is available. 0 disables the bias.
	VerticalBias float64
}

// Available carver names
const (
	NameDFS     = "dfs"
	NameKruskal = "kruskal"
)

// Names returns every registered carver name
func Names() []string {
	return []string{NameDFS, NameKruskal}
}

// NewFactory returns the factory for the named strategy
func NewFactory(name string, opts Options) (Factory, error) {
	switch strings.ToLower(name) {
	case NameDFS, "", "backtracker":
		return func(cells []*world.Cell, rng *rand.Rand) Carver {
			return NewDFS(cells, rng, opts)
		}, nil
	case NameKruskal:
		return func(cells []*world.Cell, rng *rand.Rand) Carver {
			return NewKruskal(cells, rng)
		}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownCarver, name)
	}
}

// Carve runs c to completion and returns the number of Step calls it took
func Carve(c Carver) int {
	steps := 0
	for !c.IsFinished() {
		c.Step()
		steps++
	}
	return steps
}

// mustConnect opens a passage the carver already knows to be valid. Failure
// means the topology wired cells inconsistently.
func mustConnect(a, b *world.Cell) {
	if err := a.ConnectTo(b); err != nil {
		panic(err)
	}
}
