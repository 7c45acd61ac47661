// earthshot renders a shaded body and its atmosphere to a PNG without a
// display, using the CPU implementation of the shading models.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"go.uber.org/zap"

	"github.com/Faultbox/orbitshade/internal/assets"
	"github.com/Faultbox/orbitshade/internal/config"
	"github.com/Faultbox/orbitshade/internal/engine/debug"
	"github.com/Faultbox/orbitshade/internal/logger"
	"github.com/Faultbox/orbitshade/internal/preview"
	"github.com/Faultbox/orbitshade/internal/scene"
)

var (
	defaults = preview.DefaultOptions()

	flagOut       = flag.String("out", "earth.png", "Output PNG path")
	flagTick      = flag.Int("tick", 0, "Orbit tick to render")
	flagSize      = flag.Int("size", defaults.Width, "Image width and height in pixels")
	flagBody      = flag.String("body", defaults.Body, "Body to frame")
	flagPhase     = flag.Float64("phase", defaults.Phase, "Camera angle from the star direction, degrees")
	flagElevation = flag.Float64("elevation", defaults.Elevation, "Camera elevation, degrees")
	flagDistance  = flag.Float64("distance", defaults.Distance, "Camera distance in body radii")
	flagFOV       = flag.Float64("fov", defaults.FOV, "Vertical field of view, degrees")
	flagDayTint   = flag.String("day-tint", "", "Override the atmosphere day color (#rrggbb)")
	flagTwilight  = flag.String("twilight-tint", "", "Override the atmosphere twilight color (#rrggbb)")
)

func main() {
	config.ParseFlags()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}
	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		logger.Error("earthshot failed", zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config) error {
	s, err := scene.Build(cfg)
	if err != nil {
		return err
	}
	s.SetPaused(false)
	s.Advance(*flagTick)

	if *flagDayTint != "" || *flagTwilight != "" {
		day, twilight, err := s.Tints(*flagBody)
		if err != nil {
			return err
		}
		dayHex, twilightHex := day.Hex(), twilight.Hex()
		if *flagDayTint != "" {
			dayHex = *flagDayTint
		}
		if *flagTwilight != "" {
			twilightHex = *flagTwilight
		}
		if err := s.SetTints(*flagBody, dayHex, twilightHex); err != nil {
			return err
		}
	}

	mgr := assets.NewManager(cfg.Assets.Dirs...)
	defer mgr.Close()

	opts := preview.Options{
		Width:     *flagSize,
		Height:    *flagSize,
		Body:      *flagBody,
		Phase:     *flagPhase,
		Elevation: *flagElevation,
		Distance:  *flagDistance,
		FOV:       *flagFOV,
	}
	img, err := preview.Render(ctx, s, scene.NewImageSource(mgr, cfg.Assets), opts)
	if err != nil {
		return err
	}

	if err := debug.WritePNG(*flagOut, img); err != nil {
		return fmt.Errorf("writing %s: %w", *flagOut, err)
	}
	logger.Info("preview written", zap.String("path", *flagOut), zap.Int("tick", *flagTick))
	return nil
}
