package domain

import "github.com/shopspring/decimal"

// MarketSnapshot holds market data for a single asset. Every field is
// independently optional: a nil pointer or empty string means "unknown",
// never zero. Soft errors collected while fetching live in Errors so the
// synthesizer can surface degraded data instead of relying on log output.
type MarketSnapshot struct {
	PriceUSD     *decimal.Decimal `json:"price_usd,omitempty"`
	PriceXLM     *decimal.Decimal `json:"price_xlm,omitempty"`
	Change24hPct *float64         `json:"change_24h_pct,omitempty"`
	Supply       string           `json:"supply,omitempty"`
	Errors       []string         `json:"errors,omitempty"`
}

// Degraded reports whether any soft error was recorded during the fetch.
func (m MarketSnapshot) Degraded() bool {
	return len(m.Errors) > 0
}

// Dec wraps a decimal for use as an optional snapshot field.
func Dec(d decimal.Decimal) *decimal.Decimal { return &d }

// Pct wraps a percentage for use as an optional snapshot field.
func Pct(f float64) *float64 { return &f }
