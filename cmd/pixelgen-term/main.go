package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"os"
	"os/signal"

	"github.com/gdamore/tcell/v2"

	"github.com/louis-kldzj/game-tools/internal/app"
	"github.com/louis-kldzj/game-tools/internal/engine"
	"github.com/louis-kldzj/game-tools/internal/term"
)

func main() {
	cfg := app.NewConfig()
	cfg.Density = 120
	cfg.TPS = 30
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

	screen, err := tcell.NewScreen()
	if err != nil {
		log.Fatalf("terminal: %v", err)
	}
	if err := screen.Init(); err != nil {
		log.Fatalf("terminal: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	err = term.New(screen, eng, cfg.TPS, logger).Run(ctx)
	screen.Fini()
	if err != nil && !errors.Is(err, context.Canceled) {
		log.Fatal(err)
	}
}
