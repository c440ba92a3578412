package fetch

import (
	"context"
	"testing"
	"time"

	"github.com/hkanpak21/StellarAW/internal/domain"
	"github.com/hkanpak21/StellarAW/internal/expert"
)

func newMetadataFetcher(api *fakeExplorer) *MetadataFetcher {
	return NewMetadataFetcher(api, time.Second, time.Second)
}

func TestFetchMetadataNativePinned(t *testing.T) {
	api := &fakeExplorer{}
	f := newMetadataFetcher(api)

	meta := f.FetchMetadata(context.Background(), domain.NativeAsset())

	if meta.Name != "Stellar Lumens" {
		t.Errorf("Name = %q", meta.Name)
	}
	if !meta.DomainVerified || meta.DomainName != "stellar.org" {
		t.Errorf("domain = %q verified=%v", meta.DomainName, meta.DomainVerified)
	}
	if api.assetCalls != 0 {
		t.Error("native asset must not hit the explorer")
	}
}

func TestFetchMetadataStructuredRecordWins(t *testing.T) {
	api := &fakeExplorer{assetFn: func(string) (*expert.AssetResponse, error) {
		return &expert.AssetResponse{
			Name:           "USD Coin",
			Desc:           "Fully reserved dollar digital currency.",
			Domain:         "centre.io",
			DomainVerified: true,
			Image:          "https://centre.io/usdc.png",
		}, nil
	}}
	f := newMetadataFetcher(api)

	meta := f.FetchMetadata(context.Background(), domain.NewAsset("USDC", marketIssuer))

	if meta.Name != "USD Coin" || meta.Description == "" {
		t.Errorf("meta = %+v", meta)
	}
	if meta.Website != "https://centre.io" {
		t.Errorf("Website = %q", meta.Website)
	}
	if !meta.DomainVerified {
		t.Error("verified domain lost")
	}
}

func TestFetchMetadataNameWithoutDescription(t *testing.T) {
	api := &fakeExplorer{assetFn: func(string) (*expert.AssetResponse, error) {
		return &expert.AssetResponse{Name: "Foo Token"}, nil
	}}
	f := newMetadataFetcher(api)

	meta := f.FetchMetadata(context.Background(), domain.NewAsset("FOO", marketIssuer))

	if meta.Name != "Foo Token" {
		t.Errorf("Name = %q", meta.Name)
	}
	if meta.Description != "FOO token on Stellar" {
		t.Errorf("Description = %q", meta.Description)
	}
}

func TestFetchMetadataFallbacks(t *testing.T) {
	tests := []struct {
		name string
		api  *fakeExplorer
	}{
		{"api failure", &fakeExplorer{}},
		{"empty record without domain", &fakeExplorer{assetFn: func(string) (*expert.AssetResponse, error) {
			return &expert.AssetResponse{}, nil
		}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newMetadataFetcher(tt.api)
			meta := f.FetchMetadata(context.Background(), domain.NewAsset("FOO", marketIssuer))
			want := domain.FallbackMetadata("FOO")
			if meta != want {
				t.Errorf("meta = %+v, want %+v", meta, want)
			}
		})
	}
}

func TestFetchMetadataNoIssuer(t *testing.T) {
	api := &fakeExplorer{}
	f := newMetadataFetcher(api)

	meta := f.FetchMetadata(context.Background(), domain.CanonicalAsset{Code: "FOO"})

	if meta != domain.FallbackMetadata("FOO") {
		t.Errorf("meta = %+v", meta)
	}
	if api.assetCalls != 0 {
		t.Error("issuer-less asset must not hit the explorer")
	}
}

const strictToml = `
[DOCUMENTATION]
ORG_URL = "https://foo.example"
ORG_WHITEPAPER = "https://foo.example/paper.pdf"

[[CURRENCIES]]
code = "BAR"
name = "Bar Token"
desc = "The other token."

[[CURRENCIES]]
code = "FOO"
name = "Foo Token"
desc = "A token for testing."
conditions = "Redeemable on demand."
image = "https://foo.example/foo.png"
`

func TestParseTomlMetadata(t *testing.T) {
	meta, ok := parseTomlMetadata([]byte(strictToml), "foo")
	if !ok {
		t.Fatal("parse failed")
	}
	if meta.Name != "Foo Token" || meta.Description != "A token for testing." {
		t.Errorf("meta = %+v", meta)
	}
	if meta.Conditions != "Redeemable on demand." || meta.Image != "https://foo.example/foo.png" {
		t.Errorf("meta = %+v", meta)
	}
	if meta.Whitepaper != "https://foo.example/paper.pdf" {
		t.Errorf("Whitepaper = %q", meta.Whitepaper)
	}

	if _, ok := parseTomlMetadata([]byte(strictToml), "BAZ"); ok {
		t.Error("unknown code must not match")
	}
}

func TestScanTomlMetadataLenient(t *testing.T) {
	// Broken document: duplicate keys make strict parsing fail, but the
	// line scan still recovers the matching currency block.
	lenient := []byte(`
NETWORK_PASSPHRASE = "Public Global Stellar Network ; September 2015"
NETWORK_PASSPHRASE = "duplicate key on purpose"

[[CURRENCIES]]
code = "FOO"
name = "Foo Token"
desc = "Recovered by the line scanner."

[[CURRENCIES]]
code = "BAR"
name = "Bar Token"
`)

	if _, ok := parseTomlMetadata(lenient, "FOO"); ok {
		t.Fatal("strict parse should reject the duplicate key")
	}

	meta, ok := scanTomlMetadata(lenient, "FOO")
	if !ok {
		t.Fatal("line scan failed")
	}
	if meta.Name != "Foo Token" || meta.Description != "Recovered by the line scanner." {
		t.Errorf("meta = %+v", meta)
	}
}

func TestTomlLineValue(t *testing.T) {
	tests := []struct {
		line string
		want string
	}{
		{`name = "Foo Token"`, "Foo Token"},
		{`name="Foo"`, "Foo"},
		{`no equals here`, ""},
	}
	for _, tt := range tests {
		if got := tomlLineValue(tt.line); got != tt.want {
			t.Errorf("tomlLineValue(%q) = %q, want %q", tt.line, got, tt.want)
		}
	}
}
