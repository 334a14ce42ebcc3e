package gameplay

import (
	engineinput "mazerunner/pkg/engine/input"
	"mazerunner/pkg/engine/logger"
	"mazerunner/pkg/game/config"
	"mazerunner/pkg/game/state"
)

// MaxViewRadius bounds zooming out
const MaxViewRadius = 64

// ProcessIntent handles a high-level input intent from the tiered input system.
func ProcessIntent(g *state.Game, intent engineinput.Intent) {
	switch intent.Action {
	case engineinput.ActionNone:
		return

	case engineinput.ActionMove:
		MovePlayer(g, intent.Key)

	case engineinput.ActionToggleSolution:
		g.ShowSolution = !g.ShowSolution

	case engineinput.ActionToggleSkipGeneration:
		g.SkipGeneration = !g.SkipGeneration
		if g.SkipGeneration {
			logMessage(g, "Skipping generation")
		} else {
			logMessage(g, "Animating generation")
		}

	case engineinput.ActionRegenerate:
		StartTransition(g)

	case engineinput.ActionCycleTopology:
		CycleTopology(g)

	case engineinput.ActionCycleCarver:
		CycleCarver(g)

	case engineinput.ActionZoomIn:
		setViewRadius(g, g.ViewRadius-1)

	case engineinput.ActionZoomOut:
		setViewRadius(g, g.ViewRadius+1)

	case engineinput.ActionQuit:
		logger.Info("Quit requested", "generation", g.Generation)
		g.Quit = true
	}
}

// setViewRadius clamps and applies radius, then saves it as a preference
func setViewRadius(g *state.Game, radius int) {
	radius = max(1, min(MaxViewRadius, radius))
	if radius == g.ViewRadius {
		return
	}
	g.ViewRadius = radius
	if err := config.Current().SetViewRadius(radius); err != nil {
		// Not critical, the session keeps the new radius
		logger.Warning("Could not save preferences", "error", err)
	}
}
