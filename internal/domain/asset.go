package domain

import (
	"fmt"
	"regexp"
)

// NativeCode is the code of the network's base currency. The native asset
// is the only asset identified without an issuer.
const NativeCode = "XLM"

// assetFormat validates the canonical grammar CODE or CODE:ISSUER.
// CODE is 1-12 alphanumerics, ISSUER is exactly 56 alphanumerics.
var assetFormat = regexp.MustCompile(`^([A-Za-z0-9]{1,12})(?::([A-Za-z0-9]{56}))?$`)

// CanonicalAsset uniquely identifies an asset for the remainder of a request.
// Immutable once produced. Issuer is present for every non-native asset and
// empty for the native asset.
type CanonicalAsset struct {
	Code   string `json:"code"`
	Issuer string `json:"issuer,omitempty"`
}

// NativeAsset returns the canonical identifier of the native asset.
func NativeAsset() CanonicalAsset {
	return CanonicalAsset{Code: NativeCode}
}

// NewAsset builds a canonical non-native asset.
func NewAsset(code, issuer string) CanonicalAsset {
	return CanonicalAsset{Code: code, Issuer: issuer}
}

// IsNative reports whether this is the network's base currency.
func (a CanonicalAsset) IsNative() bool {
	return a.Issuer == "" && a.Code == NativeCode
}

// String renders CODE:ISSUER, or just the code for the native asset.
func (a CanonicalAsset) String() string {
	if a.Issuer == "" {
		return a.Code
	}
	return a.Code + ":" + a.Issuer
}

// Param renders CODE-ISSUER, the path form used by explorer endpoints.
func (a CanonicalAsset) Param() string {
	if a.Issuer == "" {
		return a.Code
	}
	return a.Code + "-" + a.Issuer
}

// ParseAsset validates a string against the canonical grammar and splits it
// into code and optional issuer. It does not resolve anything; a bare
// non-native code parses successfully but carries no issuer.
func ParseAsset(s string) (CanonicalAsset, bool) {
	m := assetFormat.FindStringSubmatch(s)
	if m == nil {
		return CanonicalAsset{}, false
	}
	return CanonicalAsset{Code: m[1], Issuer: m[2]}, true
}

// MustParseAsset is a test/fixture helper that panics on invalid input.
func MustParseAsset(s string) CanonicalAsset {
	a, ok := ParseAsset(s)
	if !ok {
		panic(fmt.Sprintf("invalid canonical asset %q", s))
	}
	return a
}
