package app

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/hkanpak21/StellarAW/internal/expert"
	"github.com/hkanpak21/StellarAW/internal/fetch"
	"github.com/hkanpak21/StellarAW/internal/horizon"
	"github.com/hkanpak21/StellarAW/internal/info"
	"github.com/hkanpak21/StellarAW/internal/infra"
	"github.com/hkanpak21/StellarAW/internal/report"
	"github.com/hkanpak21/StellarAW/internal/resolver"
	"github.com/hkanpak21/StellarAW/internal/session"
)

// Bootstrap orchestrates the daemon startup sequence and owns the wired
// component graph.
type Bootstrap struct {
	Config       *infra.Config
	Orchestrator *info.Orchestrator

	server *http.Server
}

// NewBootstrap creates a new Bootstrap instance.
func NewBootstrap() *Bootstrap {
	return &Bootstrap{}
}

// Initialize loads configuration, installs the logger, and wires the
// aggregation pipeline.
func (b *Bootstrap) Initialize(configPath string) error {
	cfg, err := infra.LoadConfig(configPath)
	if err != nil {
		return err
	}
	b.Config = cfg

	logger := infra.NewLogger(cfg)
	slog.SetDefault(logger)

	slog.Info("🚀 Bootstrapping StellarAW daemon...",
		slog.String("version", cfg.App.Version),
		slog.String("network", cfg.Network.Name),
	)

	b.Orchestrator = BuildPipeline(cfg)
	slog.Info("✅ Aggregation pipeline wired")

	return nil
}

// BuildPipeline wires the resolver, the three fetchers and the synthesizer
// into an orchestrator. Split out so the probe binary can reuse the exact
// daemon wiring.
func BuildPipeline(cfg *infra.Config) *info.Orchestrator {
	expertClient := expert.NewClient(cfg)
	horizonClient := horizon.NewClient(cfg.API.HorizonURL)

	res := resolver.New(
		resolver.DefaultUniverse(),
		horizonClient,
		infra.Timeout(cfg.API.ResolveTimeoutMS, 2*time.Second),
	)

	market := fetch.NewMarketFetcher(expertClient, infra.Timeout(cfg.API.MarketTimeoutMS, 3*time.Second))
	flags := fetch.NewFlagFetcher(
		expertClient,
		infra.Timeout(cfg.API.DirectoryTimeoutMS, time.Second),
		infra.Timeout(cfg.API.FlagsTimeoutMS, time.Second),
		infra.Timeout(cfg.API.ScrapeTimeoutMS, time.Second),
	)
	metadata := fetch.NewMetadataFetcher(
		expertClient,
		infra.Timeout(cfg.API.MetadataTimeoutMS, 5*time.Second),
		infra.Timeout(cfg.API.TomlTimeoutMS, 5*time.Second),
	)

	synth := report.NewSynthesizer(cfg.API.ExpertSiteURL)

	return info.NewOrchestrator(res, market, flags, metadata, synth)
}

// Serve runs the WebSocket endpoint until the context is cancelled, then
// shuts the listener down gracefully.
func (b *Bootstrap) Serve(ctx context.Context) error {
	mux := http.NewServeMux()
	mux.Handle(b.Config.Server.Path, session.NewServer(b.Orchestrator))

	b.server = &http.Server{
		Addr:    b.Config.Server.Listen,
		Handler: mux,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("✨ Session endpoint listening",
			slog.String("addr", b.Config.Server.Listen),
			slog.String("path", b.Config.Server.Path),
		)
		errCh <- b.server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
		slog.Info("👋 Shutting down gracefully...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return b.server.Shutdown(shutdownCtx)
	}
}
