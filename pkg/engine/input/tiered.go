package input

import (
	"sort"
	"time"
)

// Device represents a physical input source.
type Device int

const (
	DeviceUnknown Device = iota
	DeviceKeyboard
	DeviceTerminal
)

// Action represents a high‑level intent in the game.
type Action int

const (
	ActionNone Action = iota

	// ActionMove carries the movement key in Intent.Key; the topology decides
	// which slots that key walks along
	ActionMove

	ActionToggleSolution
	ActionToggleSkipGeneration
	ActionRegenerate
	ActionCycleTopology
	ActionCycleCarver
	ActionZoomIn
	ActionZoomOut
	ActionQuit
)

// Intent is the 4th‑layer, high‑level description of what the player wants to do.
type Intent struct {
	Action Action
	// Key is the topology key name for ActionMove ("w", "a", " ", ...)
	Key string
}

// IsNone reports whether the intent carries no action
func (i Intent) IsNone() bool {
	return i.Action == ActionNone
}

// RawInput is the 1st‑layer event emitted directly from an input device.
// Code is a device‑specific identifier (e.g. "w", "arrow_up", "space").
type RawInput struct {
	Device    Device
	Code      string
	Timestamp time.Time
}

// DebouncedInput is the 2nd‑layer representation after debouncing.
// Ebiten's just-pressed tracking and terminal raw mode already deliver one
// event per key press, so this stays a thin copy.
type DebouncedInput struct {
	Device Device
	Code   string
}

// NewDebouncedInput converts a raw event to a debounced event.
func NewDebouncedInput(raw RawInput) DebouncedInput {
	return DebouncedInput{
		Device: raw.Device,
		Code:   raw.Code,
	}
}

// moveKeys are the movement key names the topologies understand
var moveKeys = []string{"w", "a", "s", "d", "x", "z", "e", " "}

// bindings maps raw codes to intents (3rd-layer bindings).
// Multiple codes may point to the same intent.
var bindings = map[string]Intent{
	// Arrows stand in for the square layout's WASD
	"arrow_up":    {Action: ActionMove, Key: "w"},
	"arrow_down":  {Action: ActionMove, Key: "s"},
	"arrow_left":  {Action: ActionMove, Key: "a"},
	"arrow_right": {Action: ActionMove, Key: "d"},
	"space":       {Action: ActionMove, Key: " "},

	"/": {Action: ActionToggleSolution},
	"g": {Action: ActionToggleSkipGeneration},
	"r": {Action: ActionRegenerate},
	"t": {Action: ActionCycleTopology},
	"c": {Action: ActionCycleCarver},

	"=":               {Action: ActionZoomIn},
	"+":               {Action: ActionZoomIn},
	"numpad_add":      {Action: ActionZoomIn},
	"-":               {Action: ActionZoomOut},
	"numpad_subtract": {Action: ActionZoomOut},

	"q":      {Action: ActionQuit},
	"quit":   {Action: ActionQuit},
	"escape": {Action: ActionQuit},
	"ctrl_c": {Action: ActionQuit},
}

func init() {
	for _, k := range moveKeys {
		if k == " " {
			continue
		}
		bindings[k] = Intent{Action: ActionMove, Key: k}
	}
}

// MapToIntent is the 3rd+4th layer: it applies the current bindings to a
// debounced input and returns a high‑level Intent.
func MapToIntent(ev DebouncedInput) Intent {
	if intent, ok := bindings[ev.Code]; ok {
		return intent
	}
	return Intent{Action: ActionNone}
}

// ActionName returns a human-friendly name for an action.
func ActionName(a Action) string {
	switch a {
	case ActionMove:
		return "Move"
	case ActionToggleSolution:
		return "Toggle Solution"
	case ActionToggleSkipGeneration:
		return "Toggle Skip Generation"
	case ActionRegenerate:
		return "New Maze"
	case ActionCycleTopology:
		return "Next Topology"
	case ActionCycleCarver:
		return "Next Carver"
	case ActionZoomIn:
		return "Zoom In"
	case ActionZoomOut:
		return "Zoom Out"
	case ActionQuit:
		return "Quit"
	default:
		return "None"
	}
}

// GetBindingsByAction returns the current bindings grouped by action.
func GetBindingsByAction() map[Action][]string {
	result := make(map[Action][]string)
	for code, intent := range bindings {
		result[intent.Action] = append(result[intent.Action], code)
	}
	// Stable ordering so help text doesn't flicker.
	for act, codes := range result {
		sort.Strings(codes)
		result[act] = codes
	}
	return result
}
