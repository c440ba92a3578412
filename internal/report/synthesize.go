// Package report renders an aggregated asset report. Everything here is
// pure computation over already-fetched data: no I/O, no failure paths.
package report

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/hkanpak21/StellarAW/internal/domain"
)

// Synthesizer merges fetch results into the two-section textual report and
// the ordered source-citation list.
type Synthesizer struct {
	explorerBase string // e.g. https://stellar.expert/explorer
}

// NewSynthesizer creates a synthesizer; citations always point at the
// public-network explorer under explorerBase.
func NewSynthesizer(explorerBase string) *Synthesizer {
	return &Synthesizer{explorerBase: strings.TrimRight(explorerBase, "/")}
}

// Synthesize renders the report and collects sources in fixed order:
// website, whitepaper, then the canonical explorer link.
func (s *Synthesizer) Synthesize(
	asset domain.CanonicalAsset,
	metadata domain.AssetMetadata,
	flags domain.RiskFlags,
	market domain.MarketSnapshot,
) (string, []string) {
	sources := make([]string, 0, 3)
	if metadata.Website != "" {
		sources = append(sources, metadata.Website)
	}
	if metadata.Whitepaper != "" {
		sources = append(sources, metadata.Whitepaper)
	}
	sources = append(sources, s.ExplorerURL(asset))

	overview := s.buildOverview(asset, metadata, flags, market)
	technical := s.buildTechnical(asset, metadata, flags, market)

	report := overview + "\n\n" + "## Technical Details\n\n" + technical
	return report, sources
}

// ExplorerURL is the citation link for an asset; the native asset links to
// the explorer root.
func (s *Synthesizer) ExplorerURL(asset domain.CanonicalAsset) string {
	if asset.Issuer == "" {
		return s.explorerBase + "/public"
	}
	return fmt.Sprintf("%s/public/asset/%s", s.explorerBase, asset.Param())
}

// buildOverview writes the introductory section: risk banner, identity
// sentence, and price movement phrased in words.
func (s *Synthesizer) buildOverview(
	asset domain.CanonicalAsset,
	metadata domain.AssetMetadata,
	flags domain.RiskFlags,
	market domain.MarketSnapshot,
) string {
	var b strings.Builder

	if flags.Undetermined() {
		b.WriteString("❔ **UNKNOWN: Unable to verify risk status due to network error.** This does not mean the asset is safe.\n\n")
	} else if flags.Suspicious {
		b.WriteString("⚠️ **WARNING: This asset has been flagged as potentially suspicious.** Exercise caution.\n\n")
		if len(flags.Details) > 0 {
			fmt.Fprintf(&b, "Risk indicators: %s\n\n", strings.Join(flags.Details, ", "))
		}
	}

	name := metadata.Name
	if name == "" {
		name = asset.String()
	}
	fmt.Fprintf(&b, "**%s** is a token on the Stellar network.", name)

	if metadata.Description != "" {
		b.WriteString(" " + metadata.Description)
	}

	if market.PriceUSD != nil {
		fmt.Fprintf(&b, "\n\nThe current price is %s USD per token.", FormatPrice(market.PriceUSD, "$"))

		if market.Change24hPct != nil {
			direction := "up"
			change := *market.Change24hPct
			if change < 0 {
				direction = "down"
				change = -change
			}
			fmt.Fprintf(&b, " It has gone %s %.2f%% in the last 24 hours.", direction, change)
		}
	}

	return b.String()
}

// buildTechnical writes the detail section: explicit risk status, issuing
// domain, identity, prices in both quote currencies, supply, and a
// best-effort market cap.
func (s *Synthesizer) buildTechnical(
	asset domain.CanonicalAsset,
	metadata domain.AssetMetadata,
	flags domain.RiskFlags,
	market domain.MarketSnapshot,
) string {
	var b strings.Builder

	switch {
	case flags.Undetermined():
		b.WriteString("❔ **RISK STATUS: UNKNOWN**\n")
		b.WriteString("Unable to verify risk status due to network error. Exercise caution.\n\n")
	case flags.Suspicious:
		b.WriteString("⚠️ **RISK STATUS: SUSPICIOUS**\n")
		if len(flags.Details) > 0 {
			fmt.Fprintf(&b, "Risk indicators: %s\n\n", strings.Join(flags.Details, ", "))
		}
	default:
		b.WriteString("✅ **RISK STATUS: NO KNOWN ISSUES**\n\n")
	}

	if metadata.DomainName != "" {
		verified := "unverified domain"
		if metadata.DomainVerified {
			verified = "verified domain"
		}
		fmt.Fprintf(&b, "Issued by %s (%s)\n\n", metadata.DomainName, verified)
	}

	if asset.Issuer != "" {
		b.WriteString("**Asset Details**\n")
		fmt.Fprintf(&b, "- Asset Code: %s\n", asset.Code)
		fmt.Fprintf(&b, "- Issuer: %s\n\n", asset.Issuer)
	} else {
		b.WriteString("**Native Stellar Asset**\n\n")
	}

	b.WriteString("**Market Information**\n")

	fmt.Fprintf(&b, "- Price (USD): %s", priceOrNA(market.PriceUSD, "$"))
	if market.Change24hPct != nil {
		fmt.Fprintf(&b, " (%s 24h)", FormatChange(market.Change24hPct))
	}
	b.WriteString("\n")

	if market.PriceXLM != nil {
		fmt.Fprintf(&b, "- Price (XLM): %s\n", FormatPrice(market.PriceXLM, ""))
	}

	supply := "N/A"
	if market.Supply != "" {
		supply = FormatAmount(market.Supply)
	}
	fmt.Fprintf(&b, "- Circulating Supply: %s\n", supply)

	if mcap, ok := marketCap(market); ok {
		fmt.Fprintf(&b, "- Market Cap: %s\n", FormatCap(mcap))
	}

	if metadata.Conditions != "" {
		fmt.Fprintf(&b, "\n**Conditions**\n%s\n", metadata.Conditions)
	}

	return b.String()
}

// marketCap computes supply × priceUSD, but only when the price is known
// and the supply parses cleanly as a number. A non-numeric supply yields no
// cap rather than an error.
func marketCap(market domain.MarketSnapshot) (decimal.Decimal, bool) {
	if market.PriceUSD == nil || market.Supply == "" {
		return decimal.Decimal{}, false
	}
	supply, err := decimal.NewFromString(market.Supply)
	if err != nil {
		return decimal.Decimal{}, false
	}
	return supply.Mul(*market.PriceUSD), true
}

func priceOrNA(price *decimal.Decimal, currency string) string {
	if price == nil {
		return "N/A"
	}
	return FormatPrice(price, currency)
}
