package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/backdrop/config"
	"github.com/pthm-cable/backdrop/game"
)

// resizeAt is a scheduled headless resize, parsed from "WxH@tick".
type resizeAt struct {
	w, h int
	tick int32
}

func parseResizeAt(s string) (resizeAt, error) {
	var r resizeAt
	if _, err := fmt.Sscanf(s, "%dx%d@%d", &r.w, &r.h, &r.tick); err != nil {
		return r, fmt.Errorf("invalid -resize-at %q (want WxH@tick): %w", s, err)
	}
	if r.w <= 0 || r.h <= 0 {
		return r, fmt.Errorf("invalid -resize-at %q: size must be positive", s)
	}
	return r, nil
}

// exit is replaced in tests.
var exit = os.Exit

// fatal logs err, runs cleanup in order and exits with status 1.
func fatal(msg string, err error, cleanup ...func()) {
	slog.Error(msg, "error", err)
	for _, fn := range cleanup {
		fn()
	}
	exit(1)
}

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	headless := flag.Bool("headless", false, "Run without a window")
	width := flag.Int("width", 0, "Surface width (0 = use config)")
	height := flag.Int("height", 0, "Surface height (0 = use config)")
	themeKey := flag.String("theme", "", "Start theme key (empty = saved or default)")
	statePath := flag.String("state", "", "Theme selection file (empty = use config)")
	logStats := flag.Bool("log-stats", false, "Output stats via slog")
	statsWindow := flag.Float64("stats-window", 0, "Stats window size in seconds (0 = use config)")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs, config and snapshots")
	framesDir := flag.String("frames-dir", "", "Directory for exported PNG frames (headless only)")
	frameEvery := flag.Int("frame-every", 0, "Export a frame every N ticks (0 = use config)")
	snapshotEvery := flag.Int("snapshot-every", 0, "Save a particle snapshot every N ticks (0 = never)")
	resize := flag.String("resize-at", "", "Headless resize as WxH@tick")
	seed := flag.Int64("seed", 0, "RNG seed (0 = time-based)")
	maxTicks := flag.Int("max-ticks", 0, "Stop after N ticks (0 = unlimited)")

	flag.Parse()

	// Initialize config before anything else
	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	rngSeed := *seed
	if rngSeed == 0 {
		rngSeed = time.Now().UnixNano()
	}

	// Set up slog (JSON to stdout for structured logging)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	w, h := cfg.Screen.Width, cfg.Screen.Height
	if *width > 0 {
		w = *width
	}
	if *height > 0 {
		h = *height
	}

	opts := game.Options{
		Seed:           rngSeed,
		LogStats:       *logStats,
		StatsWindowSec: *statsWindow,
		OutputDir:      *outputDir,
		FramesDir:      *framesDir,
		FrameEvery:     *frameEvery,
		SnapshotEvery:  *snapshotEvery,
		Theme:          *themeKey,
		StatePath:      *statePath,
	}

	if *headless {
		var pending *resizeAt
		if *resize != "" {
			r, err := parseResizeAt(*resize)
			if err != nil {
				slog.Error("bad flag", "error", err)
				os.Exit(2)
			}
			pending = &r
		}

		g, err := game.NewHeadless(cfg, opts, w, h)
		if err != nil {
			fatal("failed to start", err)
			return
		}
		defer g.Close()

		slog.Info("starting headless run",
			"seed", rngSeed,
			"width", w,
			"height", h,
			"max_ticks", *maxTicks,
		)

		for {
			g.Step()

			if pending != nil && g.Tick() >= pending.tick {
				g.Resize(pending.w, pending.h)
				pending = nil
			}
			if *maxTicks > 0 && int(g.Tick()) >= *maxTicks {
				slog.Info("max ticks reached", "tick", g.Tick())
				return
			}
		}
	}

	// Graphical mode
	rl.SetConfigFlags(rl.FlagWindowResizable | rl.FlagMsaa4xHint)
	rl.InitWindow(int32(w), int32(h), "Backdrop")
	defer rl.CloseWindow()

	rl.SetTargetFPS(int32(cfg.Screen.TargetFPS))

	g, err := game.NewGame(cfg, opts)
	if err != nil {
		// Exiting skips deferred calls
		fatal("failed to start", err, rl.CloseWindow)
		return
	}
	defer g.Unload()

	for !rl.WindowShouldClose() {
		g.Update()
		g.Draw()

		if *maxTicks > 0 && int(g.Tick()) >= *maxTicks {
			break
		}
	}
}
