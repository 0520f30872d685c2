//go:build ebiten

package main

import (
	"errors"
	"flag"
	"log"

	"github.com/louis-kldzj/game-tools/internal/app"
	"github.com/louis-kldzj/game-tools/internal/engine"

	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	cfg := app.NewConfig()
	cfg.Bind(flag.CommandLine)
	flag.Parse()

	logger, closeLog := cfg.OpenLogger()
	defer closeLog()

	opts, err := cfg.Options(logger)
	if err != nil {
		log.Fatalf("options: %v", err)
	}
	eng, err := engine.New(opts, engine.WithSeed(cfg.ResolvedSeed()), engine.WithLogger(logger))
	if err != nil {
		log.Fatalf("engine: %v", err)
	}
	eng.Startup()

	game := app.New(eng, logger)

	ebiten.SetWindowTitle("pixelgen")
	ebiten.SetTPS(cfg.TPS)
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetFullscreen(cfg.Fullscreen)

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Fatal(err)
	}
}
