// Package resolver normalizes free-form asset queries into canonical
// CODE or CODE:ISSUER identifiers.
package resolver

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/hkanpak21/StellarAW/internal/domain"
	"github.com/hkanpak21/StellarAW/internal/horizon"
)

// ErrNotFound means the query could not be resolved to any asset. It is a
// user-facing outcome, not a fault; network errors during resolution also
// collapse into it so resolution can never crash the pipeline.
var ErrNotFound = errors.New("asset not found")

// codeDirectory is the code-to-issuer lookup the resolver falls back to for
// bare non-native codes.
type codeDirectory interface {
	AssetsByCode(ctx context.Context, code string, limit int) ([]horizon.AssetRecord, error)
}

// Universe is an immutable table of well-known symbols, keyed by upper-cased
// code. It is constructed explicitly and handed to the resolver so tests can
// substitute a different asset universe.
type Universe map[string]domain.CanonicalAsset

// DefaultUniverse pins the native asset, a small set of well-known issuers,
// and the known-malicious test identifiers used to exercise the flag path.
func DefaultUniverse() Universe {
	return Universe{
		"XLM":  domain.NativeAsset(),
		"USDC": domain.NewAsset("USDC", "GA5ZSEJYB37JRC5AVCIA5MOP4RHTM335X2KGX3IHOJAPP5RE34K4KZVN"),
		"USD":  domain.NewAsset("USD", "GDUKMGUGDZQK6YHYA5Z6AY2G4XDSZPSZ3SW5UN3ARVMO6QSRDWP5YLEX"),
		"BTC":  domain.NewAsset("BTC", "GAUTUYY2THLF7SGITDFMXJVYH3LHDSMGEAKSBU267M2K7A3W543CKUEF"),
		"ETH":  domain.NewAsset("ETH", "GBVOL67TMUQBGL4TZYNMY3ZQ5WGQYFPFD5VJRWXR72VA33VFNL225PL5"),

		// Known-malicious test asset; resolving it exercises the flag path.
		"DOGET": domain.NewAsset("DOGET", "GDOEVDDBU6OBWKL7VHDAOKD77UP4DKHQYKOKJJT5PR3WRDBTX35HUEUX"),
	}
}

// Resolver turns user queries into canonical assets.
type Resolver struct {
	universe  Universe
	directory codeDirectory
	timeout   time.Duration
}

// New creates a resolver over the given universe and code directory.
func New(universe Universe, directory codeDirectory, timeout time.Duration) *Resolver {
	if timeout <= 0 {
		timeout = 2 * time.Second
	}
	return &Resolver{universe: universe, directory: directory, timeout: timeout}
}

// Resolve normalizes a query, first match wins:
//  1. case-insensitive hit in the universe table (no network),
//  2. canonical grammar with an explicit issuer, accepted verbatim,
//  3. bare non-native code resolved through the code directory,
//  4. otherwise ErrNotFound.
func (r *Resolver) Resolve(ctx context.Context, query string) (domain.CanonicalAsset, error) {
	if asset, ok := r.universe[strings.ToUpper(query)]; ok {
		return asset, nil
	}

	asset, ok := domain.ParseAsset(query)
	if !ok {
		return domain.CanonicalAsset{}, ErrNotFound
	}

	if asset.Issuer != "" {
		return asset, nil
	}

	if asset.Code == domain.NativeCode {
		return domain.NativeAsset(), nil
	}

	return r.resolveByCode(ctx, asset.Code)
}

// resolveByCode asks the code directory for issuers of a bare code. Multiple
// issuers for one code are legal on the network; the first record wins and
// the ambiguity is only logged (documented limitation, not an error).
func (r *Resolver) resolveByCode(ctx context.Context, code string) (domain.CanonicalAsset, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	records, err := r.directory.AssetsByCode(ctx, code, 10)
	if err != nil {
		slog.Warn("Asset code lookup failed", slog.String("code", code), slog.Any("error", err))
		return domain.CanonicalAsset{}, ErrNotFound
	}

	if len(records) == 0 {
		return domain.CanonicalAsset{}, ErrNotFound
	}

	first := records[0]
	if first.AssetCode != code || first.AssetIssuer == "" {
		return domain.CanonicalAsset{}, ErrNotFound
	}

	if len(records) > 1 {
		slog.Warn("Multiple issuers found for code, using the first one",
			slog.String("code", code),
			slog.Int("issuers", len(records)),
		)
	}

	return domain.NewAsset(first.AssetCode, first.AssetIssuer), nil
}
