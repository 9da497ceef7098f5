package main

import (
	"flag"
	"fmt"
	"image"
	"os"
	"runtime"

	"blockworld/internal/config"
	"blockworld/internal/game"
	"blockworld/internal/graphics/atlas"
	"blockworld/internal/graphics/renderables/chunks"
	"blockworld/internal/graphics/renderables/crosshair"
	"blockworld/internal/graphics/renderables/wireframe"
	"blockworld/internal/graphics/renderer"
	"blockworld/internal/input"
	"blockworld/internal/logging"
	"blockworld/internal/metrics"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/xlab/closer"
)

func init() {
	// GLFW event handling must run on the main OS thread
	runtime.LockOSThread()
}

func main() {
	configPath := flag.String("config", "", "path to a YAML config file")
	flag.Parse()
	defer closer.Close()

	if err := run(*configPath); err != nil {
		closer.Fatalln(err)
	}
}

func run(configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	level, err := logging.ParseLevel(cfg.Log.Level)
	log := logging.New(os.Stderr, level)
	logging.SetDefault(log)
	if err != nil {
		log.Warnf("%v", err)
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m := metrics.New(reg)
	if cfg.Metrics.Addr != "" {
		srv := metrics.StartHTTP(cfg.Metrics.Addr, reg, log.With("metrics"))
		closer.Bind(func() {
			if err := srv.Close(); err != nil {
				log.Warnf("metrics shutdown: %v", err)
			}
		})
	}

	g, err := game.NewContext(cfg, log.With("game"), m)
	if err != nil {
		return err
	}

	if err := glfw.Init(); err != nil {
		return fmt.Errorf("failed to initialize glfw: %w", err)
	}
	defer glfw.Terminate()

	window, err := setupWindow(cfg.Render)
	if err != nil {
		return err
	}

	tiles, err := loadAtlas(cfg.Render.AtlasPath, g)
	if err != nil {
		return err
	}

	lines := wireframe.NewWireframe()
	chunkRenderer := chunks.NewChunks(tiles, lines)
	r, err := renderer.NewRenderer(cfg.Render, g.World.Radius(),
		chunkRenderer,
		lines,
		crosshair.NewCrosshair(),
	)
	if err != nil {
		return err
	}
	defer r.Dispose()

	im := input.NewInputManager()
	app := NewApp(window, im, g, r, chunkRenderer, log)
	setupInputHandlers(app)

	log.Infof("world ready: radius %d, seed %d", g.World.Radius(), cfg.Terrain.Seed)
	app.Run()
	return nil
}

func loadAtlas(path string, g *game.Context) (*image.RGBA, error) {
	if path == "" {
		return atlas.Build(g.Registry, atlas.DefaultTileSize), nil
	}
	return atlas.Load(path, atlas.DefaultTileSize)
}
