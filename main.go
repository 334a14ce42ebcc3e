package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/leonelquinteros/gotext"

	"mazerunner/pkg/engine/logger"
	"mazerunner/pkg/game/config"
	"mazerunner/pkg/game/export"
	"mazerunner/pkg/game/gameplay"
	"mazerunner/pkg/game/renderer"
	"mazerunner/pkg/game/renderer/ebiten"
	"mazerunner/pkg/game/renderer/tui"
	"mazerunner/pkg/game/state"
)

func main() {
	configPath := flag.String("config", config.DefaultPath, "path to the YAML config file")
	topologyName := flag.String("topology", "", "maze topology: square, cubical, hexagonal or triangular")
	carverName := flag.String("carver", "", "carving strategy: dfs or kruskal")
	rendererName := flag.String("renderer", "", "display backend: tui or ebiten")
	seed := flag.Int64("seed", 0, "random seed (0 picks one from the clock)")
	skip := flag.Bool("skip", false, "skip the carving animation")
	exportYAML := flag.String("export-yaml", "", "carve one maze, write it as YAML to this file and exit")
	exportPNG := flag.String("export-png", "", "carve one maze, write it as PNG to this file and exit")
	flag.Parse()

	if err := config.LoadDotEnv(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}
	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// Flags win over the file and the environment
	if *topologyName != "" {
		cfg.Maze.Topology = *topologyName
	}
	if *carverName != "" {
		cfg.Maze.Carver = *carverName
	}
	if *rendererName != "" {
		cfg.Display.Renderer = *rendererName
	}
	if *seed != 0 {
		cfg.Maze.Seed = *seed
	}
	if *skip {
		cfg.Display.SkipGeneration = true
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	config.SetCurrent(cfg)

	// The terminal is the display, so logs go to the file only
	if cfg.Display.Renderer == config.RendererTUI {
		cfg.Logging.ConsoleEnabled = false
	}
	if err := logger.Initialize(cfg.Logging); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Close()

	gotext.Configure(cfg.Display.LocalesDir, cfg.Display.Language, "default")

	g, err := gameplay.BuildGame(cfg)
	if err != nil {
		logger.Error("Could not build game", "error", err)
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if *exportYAML != "" || *exportPNG != "" {
		if err := exportMaze(g, *exportYAML, *exportPNG); err != nil {
			logger.Error("Export failed", "error", err)
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if err := run(cfg, g); err != nil {
		logger.Error("Renderer stopped", "error", err)
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(gotext.Get("GOODBYE"))
}

// run picks the renderer and plays until the player quits or a signal arrives
func run(cfg *config.Config, g *state.Game) error {
	var r renderer.Renderer
	switch cfg.Display.Renderer {
	case config.RendererEbiten:
		r = ebiten.New()
	default:
		r = tui.New()
	}
	renderer.SetRenderer(r)
	if err := r.Init(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("Starting", "renderer", cfg.Display.Renderer, "topology", g.Maze.Topology().Name(), "seed", g.Seed)
	err := r.Run(ctx, g)
	if ctx.Err() != nil {
		// Interrupted, not failed
		return nil
	}
	return err
}

// exportMaze carves the first maze to completion and writes the requested files
func exportMaze(g *state.Game, yamlPath, pngPath string) error {
	g.Maze.Carve()
	g.Maze.CalculatePath()
	info := export.Info{Carver: g.CarverName, Seed: g.Seed}

	if yamlPath != "" {
		if err := export.WriteYAMLFile(yamlPath, g.Maze, info); err != nil {
			return err
		}
		logger.Info("Exported maze", "format", "yaml", "path", yamlPath)
		fmt.Printf("Wrote %s\n", yamlPath)
	}
	if pngPath != "" {
		opts := export.ImageOptions{CellSize: export.DefaultCellSize, ShowSolution: g.ShowSolution}
		if err := export.WritePNGFile(pngPath, g.Maze, opts); err != nil {
			return err
		}
		logger.Info("Exported maze", "format", "png", "path", pngPath)
		fmt.Printf("Wrote %s\n", pngPath)
	}
	return nil
}
