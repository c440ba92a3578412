// Package info is the aggregation pipeline's entry point: it resolves a
// query, fans out the three data fetchers, and synthesizes one report.
package info

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/hkanpak21/StellarAW/internal/domain"
	"github.com/hkanpak21/StellarAW/internal/resolver"
)

var (
	// ErrAssetNotFound means resolution failed; user-facing, never retried.
	ErrAssetNotFound = errors.New("ASSET_NOT_FOUND")

	// ErrUnexpected is the boundary conversion of any uncaught fault in the
	// orchestration path.
	ErrUnexpected = errors.New("UNEXPECTED_ERROR")
)

// assetResolver turns a user query into a canonical asset.
type assetResolver interface {
	Resolve(ctx context.Context, query string) (domain.CanonicalAsset, error)
}

// marketFetcher, flagFetcher and metadataFetcher are the three concurrent
// sub-fetches. All are total; each enforces its own timeouts.
type marketFetcher interface {
	FetchMarket(ctx context.Context, asset domain.CanonicalAsset) domain.MarketSnapshot
}

type flagFetcher interface {
	FetchFlags(ctx context.Context, asset domain.CanonicalAsset) domain.RiskFlags
}

type metadataFetcher interface {
	FetchMetadata(ctx context.Context, asset domain.CanonicalAsset) domain.AssetMetadata
}

// synthesizer renders the merged report; pure.
type synthesizer interface {
	Synthesize(asset domain.CanonicalAsset, metadata domain.AssetMetadata, flags domain.RiskFlags, market domain.MarketSnapshot) (string, []string)
}

// Orchestrator wires the pipeline together. It owns no state beyond its
// collaborators; every request's data is created fresh and discarded after
// the response.
type Orchestrator struct {
	resolver assetResolver
	market   marketFetcher
	flags    flagFetcher
	metadata metadataFetcher
	synth    synthesizer
}

// NewOrchestrator creates the pipeline entry point.
func NewOrchestrator(r assetResolver, market marketFetcher, flags flagFetcher, metadata metadataFetcher, synth synthesizer) *Orchestrator {
	return &Orchestrator{
		resolver: r,
		market:   market,
		flags:    flags,
		metadata: metadata,
		synth:    synth,
	}
}

// degradeOnPanic keeps a panicking fetcher goroutine from taking the
// process down: panics do not cross goroutine boundaries, so each fan-out
// arm recovers locally into a degraded value.
func degradeOnPanic(asset domain.CanonicalAsset, degrade func()) {
	if r := recover(); r != nil {
		slog.Error("Fetcher panic recovered", slog.Any("panic", r), slog.String("asset", asset.String()))
		degrade()
	}
}

// GetAssetInfo resolves the query, runs the three fetchers concurrently
// against the same canonical asset, waits for all of them, and synthesizes
// the aggregated report. The orchestrator is the last line of defense:
// any panic in the path is recovered and converted to ErrUnexpected.
func (o *Orchestrator) GetAssetInfo(ctx context.Context, query string) (reply *domain.AggregatedReport, err error) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("Asset info pipeline panic recovered", slog.Any("panic", r), slog.String("query", query))
			reply = nil
			err = ErrUnexpected
		}
	}()

	asset, resolveErr := o.resolver.Resolve(ctx, query)
	if resolveErr != nil {
		if errors.Is(resolveErr, resolver.ErrNotFound) {
			return nil, ErrAssetNotFound
		}
		slog.Error("Asset resolution failed unexpectedly", slog.String("query", query), slog.Any("error", resolveErr))
		return nil, ErrUnexpected
	}

	// Fan out the three independent fetchers and join before synthesis.
	// Each fetcher bounds its own network calls, so no aggregate deadline
	// is imposed here.
	var (
		wg       sync.WaitGroup
		market   domain.MarketSnapshot
		flags    domain.RiskFlags
		metadata domain.AssetMetadata
	)

	wg.Add(3)
	go func() {
		defer wg.Done()
		defer degradeOnPanic(asset, func() { market = domain.MarketSnapshot{Errors: []string{"Failed to retrieve market data"}} })
		market = o.market.FetchMarket(ctx, asset)
	}()
	go func() {
		defer wg.Done()
		defer degradeOnPanic(asset, func() { flags = domain.UnknownRiskFlags("Flag data unavailable - processing error") })
		flags = o.flags.FetchFlags(ctx, asset)
	}()
	go func() {
		defer wg.Done()
		defer degradeOnPanic(asset, func() { metadata = domain.FallbackMetadata(asset.Code) })
		metadata = o.metadata.FetchMetadata(ctx, asset)
	}()
	wg.Wait()

	rendered, sources := o.synth.Synthesize(asset, metadata, flags, market)

	return &domain.AggregatedReport{
		Asset:        asset,
		PriceUSD:     market.PriceUSD,
		PriceXLM:     market.PriceXLM,
		Change24hPct: market.Change24hPct,
		Supply:       market.Supply,
		Flags: domain.RiskFlags{
			Suspicious: flags.Suspicious,
			Details:    flags.Details,
		},
		Report:  rendered,
		Sources: sources,
		Partial: flags.Partial || market.Degraded(),
	}, nil
}
