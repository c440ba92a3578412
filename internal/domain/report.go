package domain

import "github.com/shopspring/decimal"

// AggregatedReport is the merged result of one asset-info request: the
// canonical identity, the market fields, risk flags, a rendered multi-section
// report, and the ordered source citations. Partial is the logical OR of
// every sub-fetch's own degradation signal.
type AggregatedReport struct {
	Asset        CanonicalAsset   `json:"asset"`
	PriceUSD     *decimal.Decimal `json:"price_usd,omitempty"`
	PriceXLM     *decimal.Decimal `json:"price_xlm,omitempty"`
	Change24hPct *float64         `json:"change_24h_pct,omitempty"`
	Supply       string           `json:"supply,omitempty"`
	Flags        RiskFlags        `json:"flags"`
	Report       string           `json:"report"`
	Sources      []string         `json:"sources"`
	Partial      bool             `json:"partial,omitempty"`
}
