// Package config loads game settings from a YAML file, an optional .env file
// and MAZE_* environment variables, in that order of precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"mazerunner/pkg/engine/carver"
	"mazerunner/pkg/engine/logger"
	"mazerunner/pkg/engine/topology"
)

// DefaultPath is where preferences are read from and saved to when no path is given
const DefaultPath = "mazerunner.yaml"

// Renderer names
const (
	RendererTUI    = "tui"
	RendererEbiten = "ebiten"
)

// Config is the complete game configuration
type Config struct {
	Maze    MazeConfig    `yaml:"maze"`
	Display DisplayConfig `yaml:"display"`
	Play    PlayConfig    `yaml:"play"`
	Logging logger.Config `yaml:"logging"`

	path string
	mu   sync.Mutex
}

// MazeConfig selects the topology and carving strategy
type MazeConfig struct {
	Topology string `yaml:"topology"`
	Rows     int    `yaml:"rows"`
	Cols     int    `yaml:"cols"`
	Layers   int    `yaml:"layers"`
	Size     int    `yaml:"size"`
	Carver   string `yaml:"carver"`

	// VerticalBias is the chance of skipping a layer change while carving a
	// cubical maze when a flat move is available
	VerticalBias float64 `yaml:"vertical_bias"`

	// Seed fixes the random source. 0 picks a seed from the clock.
	Seed int64 `yaml:"seed"`
}

// DisplayConfig holds renderer preferences
type DisplayConfig struct {
	Renderer       string `yaml:"renderer"`
	TileSize       int    `yaml:"tile_size"`
	ViewRadius     int    `yaml:"view_radius"`
	ShowSolution   bool   `yaml:"show_solution"`
	SkipGeneration bool   `yaml:"skip_generation"`
	Language       string `yaml:"language"`
	LocalesDir     string `yaml:"locales_dir"`
}

// PlayConfig holds play statistics settings
type PlayConfig struct {
	// TimeLimitSeconds is how long a maze may take before it counts as failed
	TimeLimitSeconds int `yaml:"time_limit_seconds"`
}

// Tile size limits for the graphical renderer
const (
	MinTileSize     = 8
	MaxTileSize     = 96
	DefaultTileSize = 32
)

// DefaultConfig returns a 10×10 square maze drawn in the terminal
func DefaultConfig() *Config {
	return &Config{
		Maze: MazeConfig{
			Topology: topology.NameSquare,
			Rows:     10,
			Cols:     10,
			Layers:   3,
			Size:     6,
			Carver:   carver.NameDFS,
		},
		Display: DisplayConfig{
			Renderer:   RendererTUI,
			TileSize:   DefaultTileSize,
			ViewRadius: 4,
			Language:   "en_GB",
			LocalesDir: "locales",
		},
		Play: PlayConfig{
			TimeLimitSeconds: 300,
		},
		Logging: logger.DefaultConfig(),
	}
}

// LoadConfig reads path on top of the defaults. A missing file is not an
// error. Environment overrides are applied afterwards.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		path = DefaultPath
	}
	cfg.path = path

	data, err := os.ReadFile(path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return cfg, fmt.Errorf("config: reading %s: %w", path, err)
	}
	if err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			def := DefaultConfig()
			def.path = path
			return def, fmt.Errorf("config: parsing %s: %w", path, err)
		}
	}

	if err := cfg.ApplyEnv(); err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}

// LoadDotEnv loads KEY=value pairs from the given files into the process
// environment without overriding variables that are already set. Missing
// files are ignored.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if _, err := os.Stat(f); err != nil {
			continue
		}
		if err := godotenv.Load(f); err != nil {
			return fmt.Errorf("config: loading %s: %w", f, err)
		}
	}
	return nil
}

// ApplyEnv overrides settings from MAZE_* environment variables
func (c *Config) ApplyEnv() error {
	envString("MAZE_TOPOLOGY", &c.Maze.Topology)
	envString("MAZE_CARVER", &c.Maze.Carver)
	envString("MAZE_RENDERER", &c.Display.Renderer)
	envString("MAZE_LOG_LEVEL", &c.Logging.Level)

	return errors.Join(
		envInt("MAZE_ROWS", &c.Maze.Rows),
		envInt("MAZE_COLS", &c.Maze.Cols),
		envInt("MAZE_LAYERS", &c.Maze.Layers),
		envInt("MAZE_SIZE", &c.Maze.Size),
		envInt64("MAZE_SEED", &c.Maze.Seed),
	)
}

func envString(key string, dst *string) {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		*dst = v
	}
}

func envInt(key string, dst *int) error {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fmt.Errorf("config: %s must be an integer: %w", key, err)
	}
	*dst = n
	return nil
}

func envInt64(key string, dst *int64) error {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return nil
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return fmt.Errorf("config: %s must be an integer: %w", key, err)
	}
	*dst = n
	return nil
}

// Validate checks that the maze section names a buildable topology and carver
func (c *Config) Validate() error {
	if _, err := topology.New(c.Params()); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if _, err := carver.NewFactory(c.Maze.Carver, c.CarverOptions()); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if c.Maze.VerticalBias < 0 || c.Maze.VerticalBias > 1 {
		return fmt.Errorf("config: vertical_bias %v is outside [0, 1]", c.Maze.VerticalBias)
	}
	switch c.Display.Renderer {
	case RendererTUI, RendererEbiten:
	default:
		return fmt.Errorf("config: unknown renderer %q", c.Display.Renderer)
	}
	return nil
}

// Params returns the topology parameters
func (c *Config) Params() topology.Params {
	return topology.Params{
		Name:   c.Maze.Topology,
		Rows:   c.Maze.Rows,
		Cols:   c.Maze.Cols,
		Layers: c.Maze.Layers,
		Size:   c.Maze.Size,
	}
}

// CarverOptions returns the carving options
func (c *Config) CarverOptions() carver.Options {
	return carver.Options{VerticalBias: c.Maze.VerticalBias}
}

// TimeLimit returns the per-maze time limit, 0 for none
func (c *Config) TimeLimit() time.Duration {
	return time.Duration(c.Play.TimeLimitSeconds) * time.Second
}

// Path returns the file the config was loaded from
func (c *Config) Path() string {
	return c.path
}

// Save writes the config back to its file
func (c *Config) Save() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.saveUnlocked()
}

func (c *Config) saveUnlocked() error {
	path := c.path
	if path == "" {
		path = DefaultPath
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("config: encoding: %w", err)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("config: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("config: writing %s: %w", path, err)
	}
	return nil
}

// SetTileSize clamps and stores the graphical tile size, then saves
func (c *Config) SetTileSize(size int) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Display.TileSize = max(MinTileSize, min(MaxTileSize, size))
	return c.saveUnlocked()
}

// SetViewRadius stores the view radius (at least 1), then saves
func (c *Config) SetViewRadius(radius int) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Display.ViewRadius = max(1, radius)
	return c.saveUnlocked()
}

var (
	current   = DefaultConfig()
	currentMu sync.RWMutex
)

// Current returns the active configuration
func Current() *Config {
	currentMu.RLock()
	defer currentMu.RUnlock()
	return current
}

// SetCurrent replaces the active configuration
func SetCurrent(c *Config) {
	currentMu.Lock()
	defer currentMu.Unlock()
	current = c
}
