package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/hkanpak21/StellarAW/internal/app"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to the daemon config file")
	flag.Parse()

	// 1. System Bootstrapping
	bootstrap := app.NewBootstrap()
	if err := bootstrap.Initialize(*configPath); err != nil {
		slog.Error("❌ Bootstrapping failed", slog.Any("error", err))
		os.Exit(1)
	}

	// 2. Graceful Shutdown Context
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 3. Serve sessions until interrupted
	if err := bootstrap.Serve(ctx); err != nil {
		slog.Error("❌ Session server failed", slog.Any("error", err))
		os.Exit(1)
	}
}
