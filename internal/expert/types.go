package expert

import "encoding/json"

// AssetResponse is the explorer's per-asset record. Only the fields the
// daemon consumes are mapped; everything else is ignored on decode.
type AssetResponse struct {
	Name           string      `json:"name"`
	Desc           string      `json:"desc"`
	Image          string      `json:"image"`
	Domain         string      `json:"domain"`
	DomainVerified bool        `json:"domain_verified"`
	PriceUSD       json.Number `json:"priceUsd"`
	PriceXLM       json.Number `json:"priceXLM"`
	Supply         json.Number `json:"supply"`
	Tags           []string    `json:"tags"`

	Metadata *struct {
		Tags []string `json:"tags"`
	} `json:"metadata"`

	Flags *AssetFlagSet `json:"flags"`

	TradeStats24h *struct {
		Volume        json.Number `json:"volume"`
		VolumeUSD     json.Number `json:"volumeUsd"`
		Count         int64       `json:"count"`
		ChangePercent float64     `json:"changePercent"`
	} `json:"tradeStats24h"`
}

// AssetFlagSet carries the explorer's explicit boolean risk flags.
type AssetFlagSet struct {
	Scam                bool `json:"scam"`
	Suspicious          bool `json:"suspicious"`
	Spam                bool `json:"spam"`
	AuthRequired        bool `json:"auth_required"`
	AuthRevocable       bool `json:"auth_revocable"`
	AuthClawbackEnabled bool `json:"auth_clawback_enabled"`
}

// AllTags returns the record's tag list, preferring the metadata block over
// the top-level field (the explorer has shipped both shapes).
func (r *AssetResponse) AllTags() []string {
	if r.Metadata != nil && r.Metadata.Tags != nil {
		return r.Metadata.Tags
	}
	return r.Tags
}

// DirectoryResponse is the explorer's account-directory lookup result.
type DirectoryResponse struct {
	Embedded struct {
		Records []DirectoryRecord `json:"records"`
	} `json:"_embedded"`
}

// DirectoryRecord is a single tagged directory entry.
type DirectoryRecord struct {
	Address string   `json:"address"`
	Name    string   `json:"name"`
	Tags    []string `json:"tags"`
}
