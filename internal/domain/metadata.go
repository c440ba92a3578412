package domain

// AssetMetadata carries the descriptive fields of an asset. All fields are
// optional; a degraded fetch yields only Name and a generic description.
type AssetMetadata struct {
	Name           string `json:"name,omitempty"`
	Description    string `json:"description,omitempty"`
	Conditions     string `json:"conditions,omitempty"`
	Image          string `json:"image,omitempty"`
	Website        string `json:"website,omitempty"`
	Whitepaper     string `json:"whitepaper,omitempty"`
	DomainName     string `json:"domain_name,omitempty"`
	DomainVerified bool   `json:"domain_verified,omitempty"`
}

// FallbackMetadata is the minimal synthetic profile used when no structured
// source yields a name or description.
func FallbackMetadata(code string) AssetMetadata {
	return AssetMetadata{
		Name:        code,
		Description: code + " token on Stellar",
	}
}
