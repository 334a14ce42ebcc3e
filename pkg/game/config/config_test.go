package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mazerunner/pkg/engine/topology"
)

func TestLoadConfig_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, topology.NameSquare, cfg.Maze.Topology)
	assert.Equal(t, 10, cfg.Maze.Rows)
	assert.Equal(t, RendererTUI, cfg.Display.Renderer)
	assert.Equal(t, 4, cfg.Display.ViewRadius)
	assert.Equal(t, 300*time.Second, cfg.TimeLimit())
	assert.Equal(t, "INFO", cfg.Logging.Level)
}

func TestLoadConfig_FromYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "maze.yaml")
	content := `maze:
  topology: hexagonal
  size: 5
  carver: kruskal
display:
  renderer: ebiten
  view_radius: 7
logging:
  level: DEBUG
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, topology.Params{Name: "hexagonal", Rows: 10, Cols: 10, Layers: 3, Size: 5}, cfg.Params())
	assert.Equal(t, "kruskal", cfg.Maze.Carver)
	assert.Equal(t, RendererEbiten, cfg.Display.Renderer)
	assert.Equal(t, 7, cfg.Display.ViewRadius)
	assert.Equal(t, DefaultTileSize, cfg.Display.TileSize)
	assert.Equal(t, "DEBUG", cfg.Logging.Level)
	assert.Equal(t, path, cfg.Path())
}

func TestLoadConfig_InvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "maze.yaml")
	require.NoError(t, os.WriteFile(path, []byte("maze: [not, a, map"), 0o644))

	cfg, err := LoadConfig(path)
	assert.Error(t, err)
	require.NotNil(t, cfg)
	assert.Equal(t, topology.NameSquare, cfg.Maze.Topology)
}

func TestLoadConfig_RejectsUnknownTopology(t *testing.T) {
	path := filepath.Join(t.TempDir(), "maze.yaml")
	require.NoError(t, os.WriteFile(path, []byte("maze:\n  topology: penrose\n"), 0o644))

	_, err := LoadConfig(path)
	assert.ErrorIs(t, err, topology.ErrUnknownTopology)
}

func TestApplyEnv(t *testing.T) {
	t.Setenv("MAZE_TOPOLOGY", "cubical")
	t.Setenv("MAZE_ROWS", "4")
	t.Setenv("MAZE_LAYERS", "2")
	t.Setenv("MAZE_SEED", "99")
	t.Setenv("MAZE_LOG_LEVEL", "ERROR")

	cfg := DefaultConfig()
	require.NoError(t, cfg.ApplyEnv())
	assert.Equal(t, "cubical", cfg.Maze.Topology)
	assert.Equal(t, 4, cfg.Maze.Rows)
	assert.Equal(t, 2, cfg.Maze.Layers)
	assert.Equal(t, int64(99), cfg.Maze.Seed)
	assert.Equal(t, "ERROR", cfg.Logging.Level)
}

func TestApplyEnv_BadInteger(t *testing.T) {
	t.Setenv("MAZE_COLS", "wide")
	cfg := DefaultConfig()
	assert.Error(t, cfg.ApplyEnv())
	assert.Equal(t, 10, cfg.Maze.Cols)
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	envFile := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("MAZE_CARVER=kruskal\n"), 0o644))
	t.Setenv("MAZE_CARVER", "")
	os.Unsetenv("MAZE_CARVER")

	require.NoError(t, LoadDotEnv(envFile, filepath.Join(dir, "missing.env")))
	assert.Equal(t, "kruskal", os.Getenv("MAZE_CARVER"))
}

func TestValidate(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())

	cfg.Maze.VerticalBias = 1.5
	assert.Error(t, cfg.Validate())

	cfg = DefaultConfig()
	cfg.Display.Renderer = "sdl"
	assert.Error(t, cfg.Validate())

	cfg = DefaultConfig()
	cfg.Maze.Rows = 0
	assert.ErrorIs(t, cfg.Validate(), topology.ErrInvalidDimensions)
}

func TestSetTileSize_ClampsAndSaves(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs", "maze.yaml")
	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	require.NoError(t, cfg.SetTileSize(1000))
	assert.Equal(t, MaxTileSize, cfg.Display.TileSize)
	require.NoError(t, cfg.SetViewRadius(0))
	assert.Equal(t, 1, cfg.Display.ViewRadius)

	reloaded, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, MaxTileSize, reloaded.Display.TileSize)
	assert.Equal(t, 1, reloaded.Display.ViewRadius)
}

func TestCurrent(t *testing.T) {
	prev := Current()
	defer SetCurrent(prev)

	cfg := DefaultConfig()
	cfg.Maze.Rows = 3
	SetCurrent(cfg)
	assert.Same(t, cfg, Current())
}
