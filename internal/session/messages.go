package session

// Inbound request types.
const (
	TypeTrustlineGuidance   = "request_trustline_guidance"
	TypeSwapGuidance        = "request_swap_guidance"
	TypeSmartWalletGuidance = "request_smart_wallet_guidance"
)

// Outbound message types.
const (
	TypeInfo      = "info"
	TypeError     = "error"
	TypeComplete  = "complete"
	TypeAssetCard = "asset-card"
	TypeGuidance  = "guidance"
)

// ClientMessage is an inbound frame. A typed message carries Type (and
// Payload where required); a free-text message carries only Prompt.
type ClientMessage struct {
	Type    string           `json:"type,omitempty"`
	Prompt  string           `json:"prompt,omitempty"`
	ID      string           `json:"id,omitempty"`
	Payload *GuidancePayload `json:"payload,omitempty"`
}

// GuidancePayload carries the arguments of a trustline guidance request.
type GuidancePayload struct {
	AssetCode string `json:"assetCode"`
	Issuer    string `json:"issuer"`
}

// CardFlags is the trimmed flag view embedded in an asset card.
type CardFlags struct {
	Suspicious bool     `json:"suspicious"`
	Details    []string `json:"details,omitempty"`
}

// ServerMessage is an outbound frame. Content is always present; the
// remaining fields are populated per message type.
type ServerMessage struct {
	Type    string `json:"type"`
	Content string `json:"content"`

	Partial bool `json:"partial,omitempty"`

	// asset-card fields
	Asset   string     `json:"asset,omitempty"`
	Price   string     `json:"price,omitempty"`
	Change  string     `json:"change,omitempty"`
	Supply  string     `json:"supply,omitempty"`
	Flags   *CardFlags `json:"flags,omitempty"`
	Sources []string   `json:"sources,omitempty"`
	Report  string     `json:"report,omitempty"`

	// guidance fields
	Title     string `json:"title,omitempty"`
	Text      string `json:"text,omitempty"`
	Risky     bool   `json:"risky,omitempty"`
	AssetCode string `json:"assetCode,omitempty"`
	Issuer    string `json:"issuer,omitempty"`
}
