package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/dmitrijs2005/rdplaunch/internal/cli"
	"github.com/dmitrijs2005/rdplaunch/internal/config"
	"github.com/dmitrijs2005/rdplaunch/internal/logging"
)

func main() {
	os.Exit(run())
}

func run() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	args := os.Args[1:]
	cfg, err := config.LoadConfig(args)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		return 2
	}

	log := logging.New(os.Stderr, cfg.EffectiveLogLevel())

	app, err := cli.NewApp(ctx, cfg, log)
	if err != nil {
		log.Error(ctx, "startup failed", "error", err)
		return 1
	}
	defer func() {
		if err := app.Close(); err != nil {
			log.Warn(ctx, "shutdown", "error", err)
		}
	}()

	if err := app.Run(ctx, config.RemainingArgs(args)); err != nil {
		return 1
	}
	return 0
}
