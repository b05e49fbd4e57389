package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	_ "time/tzdata"

	"punchclock/internal/app"
	"punchclock/internal/platform/config"
	"punchclock/internal/platform/logger"
)

func main() {
	cfg := config.FromEnv()
	log := logger.New(cfg.Log.Level, cfg.Log.Format)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := app.Build(ctx, cfg, log)
	if err != nil {
		log.Error("startup failed", "error", err)
		os.Exit(1)
	}
	defer a.Close()

	if err := a.Run(ctx); err != nil {
		log.Error("server stopped", "error", err)
		a.Close()
		os.Exit(1)
	}
}
