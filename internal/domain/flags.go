package domain

// RiskFlags is a boolean-plus-evidence judgment on an asset or its issuer.
// The pair (Partial && Unknown) is the sentinel meaning "could not determine
// risk status"; callers must never render it as "confirmed safe".
type RiskFlags struct {
	Suspicious bool     `json:"suspicious"`
	Details    []string `json:"details,omitempty"`
	Partial    bool     `json:"partial,omitempty"`
	Unknown    bool     `json:"unknown,omitempty"`
}

// Undetermined reports whether the risk status could not be established.
func (f RiskFlags) Undetermined() bool {
	return f.Partial && f.Unknown
}

// UnknownRiskFlags builds the sentinel with a diagnostic detail string.
func UnknownRiskFlags(detail string) RiskFlags {
	return RiskFlags{
		Suspicious: false,
		Partial:    true,
		Unknown:    true,
		Details:    []string{detail},
	}
}
