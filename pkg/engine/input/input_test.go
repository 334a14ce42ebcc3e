package input

import (
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapToIntent(t *testing.T) {
	tests := []struct {
		code string
		want Intent
	}{
		{"w", Intent{Action: ActionMove, Key: "w"}},
		{"x", Intent{Action: ActionMove, Key: "x"}},
		{"e", Intent{Action: ActionMove, Key: "e"}},
		{"arrow_up", Intent{Action: ActionMove, Key: "w"}},
		{"arrow_left", Intent{Action: ActionMove, Key: "a"}},
		{"space", Intent{Action: ActionMove, Key: " "}},
		{"/", Intent{Action: ActionToggleSolution}},
		{"g", Intent{Action: ActionToggleSkipGeneration}},
		{"r", Intent{Action: ActionRegenerate}},
		{"+", Intent{Action: ActionZoomIn}},
		{"-", Intent{Action: ActionZoomOut}},
		{"q", Intent{Action: ActionQuit}},
		{"ctrl_c", Intent{Action: ActionQuit}},
		{"k", Intent{Action: ActionNone}},
		{"", Intent{Action: ActionNone}},
	}
	for _, tt := range tests {
		got := MapToIntent(NewDebouncedInput(RawInput{Device: DeviceKeyboard, Code: tt.code}))
		if got != tt.want {
			t.Errorf("MapToIntent(%q) = %+v, want %+v", tt.code, got, tt.want)
		}
	}
}

func TestGetBindingsByAction(t *testing.T) {
	byAction := GetBindingsByAction()
	assert.Equal(t, []string{"/"}, byAction[ActionToggleSolution])
	assert.Contains(t, byAction[ActionMove], "arrow_down")
	assert.Contains(t, byAction[ActionQuit], "q")
	assert.IsIncreasing(t, byAction[ActionQuit])
}

func TestActionName(t *testing.T) {
	assert.Equal(t, "Toggle Solution", ActionName(ActionToggleSolution))
	assert.Equal(t, "None", ActionName(Action(99)))
}

func TestKeyReader_Decodes(t *testing.T) {
	r := newKeyReaderFrom(strings.NewReader("W \x1b[A\x1bOD/\x03\x1bq"))
	want := []string{"w", "space", "arrow_up", "arrow_left", "/", "ctrl_c", "escape", "q"}
	for _, code := range want {
		raw, err := r.ReadRaw()
		require.NoError(t, err)
		assert.Equal(t, code, raw.Code)
		assert.Equal(t, DeviceTerminal, raw.Device)
	}
	_, err := r.ReadRaw()
	assert.ErrorIs(t, err, io.EOF)
}

func TestKeyReader_ReadIntent(t *testing.T) {
	r := newKeyReaderFrom(strings.NewReader("\x1b[C"))
	intent, err := r.ReadIntent()
	require.NoError(t, err)
	assert.Equal(t, Intent{Action: ActionMove, Key: "d"}, intent)
}

func TestKeyReader_EnterRawOnPipeIsNoop(t *testing.T) {
	r := newKeyReaderFrom(strings.NewReader("t"))
	restore, err := r.EnterRaw()
	require.NoError(t, err)
	require.NotNil(t, restore)
	defer restore()

	intent, err := r.ReadIntent()
	require.NoError(t, err)
	assert.Equal(t, ActionCycleTopology, intent.Action)
}

func TestKeyReader_LoneEscapeDoesNotWaitForNextKey(t *testing.T) {
	pr, pw := io.Pipe()
	defer pw.Close()
	r := newKeyReaderFrom(pr)

	go pw.Write([]byte{0x1b})
	start := time.Now()
	raw, err := r.ReadRaw()
	require.NoError(t, err)
	assert.Equal(t, "escape", raw.Code)
	assert.Less(t, time.Since(start), time.Second)

	go pw.Write([]byte("w"))
	raw, err = r.ReadRaw()
	require.NoError(t, err)
	assert.Equal(t, "w", raw.Code)
}

func TestKeyReader_EscapeKeepsFollowingKey(t *testing.T) {
	r := newKeyReaderFrom(strings.NewReader("\x1bd\x1b"))
	for _, code := range []string{"escape", "d", "escape"} {
		raw, err := r.ReadRaw()
		require.NoError(t, err)
		assert.Equal(t, code, raw.Code)
	}
	_, err := r.ReadRaw()
	assert.ErrorIs(t, err, io.EOF)
}
