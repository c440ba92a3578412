package fetch

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/hkanpak21/StellarAW/internal/domain"
)

// nativeMetadata is the pinned profile for the native asset.
func nativeMetadata() domain.AssetMetadata {
	return domain.AssetMetadata{
		Name:           "Stellar Lumens",
		Description:    "Native cryptocurrency of the Stellar network which serves as a bridge currency.",
		Website:        "https://stellar.org",
		Whitepaper:     "https://www.stellar.org/papers/stellar-consensus-protocol",
		DomainVerified: true,
		DomainName:     "stellar.org",
	}
}

// stellarToml mirrors the slice of a stellar.toml document the fetcher
// reads: the documentation block and the per-currency entries.
type stellarToml struct {
	Documentation struct {
		OrgURL        string `toml:"ORG_URL"`
		OrgWhitepaper string `toml:"ORG_WHITEPAPER"`
	} `toml:"DOCUMENTATION"`

	Currencies []struct {
		Code       string `toml:"code"`
		Name       string `toml:"name"`
		Desc       string `toml:"desc"`
		Conditions string `toml:"conditions"`
		Image      string `toml:"image"`
	} `toml:"CURRENCIES"`
}

// MetadataFetcher retrieves descriptive fields for an asset: structured
// explorer record first, then the issuing domain's well-known stellar.toml,
// then a minimal synthetic profile. There is no error-return path; every
// branch terminates in a usable metadata value.
type MetadataFetcher struct {
	api         assetAPI
	httpClient  *http.Client
	apiTimeout  time.Duration
	tomlTimeout time.Duration
}

// NewMetadataFetcher creates a metadata fetcher.
func NewMetadataFetcher(api assetAPI, apiTimeout, tomlTimeout time.Duration) *MetadataFetcher {
	if apiTimeout <= 0 {
		apiTimeout = 5 * time.Second
	}
	if tomlTimeout <= 0 {
		tomlTimeout = 5 * time.Second
	}
	return &MetadataFetcher{
		api:         api,
		httpClient:  &http.Client{Timeout: tomlTimeout},
		apiTimeout:  apiTimeout,
		tomlTimeout: tomlTimeout,
	}
}

// FetchMetadata never fails.
func (f *MetadataFetcher) FetchMetadata(ctx context.Context, asset domain.CanonicalAsset) domain.AssetMetadata {
	if asset.IsNative() {
		return nativeMetadata()
	}
	if asset.Issuer == "" {
		return domain.FallbackMetadata(asset.Code)
	}

	apiCtx, cancel := context.WithTimeout(ctx, f.apiTimeout)
	record, err := f.api.Asset(apiCtx, asset.Param())
	cancel()
	if err != nil {
		slog.Warn("Metadata lookup failed", slog.String("asset", asset.String()), slog.Any("error", err))
		return domain.FallbackMetadata(asset.Code)
	}

	meta := domain.AssetMetadata{
		Name:        record.Name,
		Description: record.Desc,
		Image:       record.Image,
	}
	if record.Domain != "" {
		meta.DomainName = record.Domain
		meta.DomainVerified = record.DomainVerified
		meta.Website = "https://" + record.Domain
	}

	// A populated description from the structured record is authoritative.
	if meta.Description != "" {
		return meta
	}

	if record.Domain != "" {
		if tomlMeta, ok := f.fetchFromToml(ctx, record.Domain, asset.Code); ok {
			// Keep domain facts learned from the structured record.
			tomlMeta.DomainName = meta.DomainName
			tomlMeta.DomainVerified = meta.DomainVerified
			if tomlMeta.Website == "" {
				tomlMeta.Website = meta.Website
			}
			return tomlMeta
		}
	}

	if meta.Name != "" {
		if meta.Description == "" {
			meta.Description = fmt.Sprintf("%s token on Stellar", asset.Code)
		}
		return meta
	}

	return domain.FallbackMetadata(asset.Code)
}

// fetchFromToml pulls https://<domain>/.well-known/stellar.toml and extracts
// the currency entry matching the code plus the top-level documentation URL.
// It reports ok=false when the document is unreachable or names neither a
// name nor a description for the code.
func (f *MetadataFetcher) fetchFromToml(ctx context.Context, domainName, code string) (domain.AssetMetadata, bool) {
	ctx, cancel := context.WithTimeout(ctx, f.tomlTimeout)
	defer cancel()

	u := fmt.Sprintf("https://%s/.well-known/stellar.toml", domainName)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return domain.AssetMetadata{}, false
	}

	resp, err := f.httpClient.Do(req)
	if err != nil {
		slog.Warn("stellar.toml fetch failed", slog.String("domain", domainName), slog.Any("error", err))
		return domain.AssetMetadata{}, false
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return domain.AssetMetadata{}, false
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return domain.AssetMetadata{}, false
	}

	meta, ok := parseTomlMetadata(body, code)
	if !ok {
		// Anchor-hosted documents are frequently not strict TOML; fall back
		// to a line scan with the same field-extraction contract.
		meta, ok = scanTomlMetadata(body, code)
	}
	return meta, ok
}

// parseTomlMetadata decodes a strict TOML document.
func parseTomlMetadata(body []byte, code string) (domain.AssetMetadata, bool) {
	var doc stellarToml
	if err := toml.Unmarshal(body, &doc); err != nil {
		return domain.AssetMetadata{}, false
	}

	var meta domain.AssetMetadata
	if doc.Documentation.OrgWhitepaper != "" {
		meta.Whitepaper = doc.Documentation.OrgWhitepaper
	} else if doc.Documentation.OrgURL != "" {
		meta.Whitepaper = doc.Documentation.OrgURL
	}

	for _, cur := range doc.Currencies {
		if !strings.EqualFold(cur.Code, code) {
			continue
		}
		meta.Name = cur.Name
		meta.Description = cur.Desc
		meta.Conditions = cur.Conditions
		meta.Image = cur.Image
		break
	}

	return meta, meta.Name != "" || meta.Description != ""
}

// scanTomlMetadata is the lenient fallback: locate the [[CURRENCIES]] block
// whose code matches, and read name/desc/conditions/image key lines inside
// that block, plus a top-level DOCUMENTATION url line.
func scanTomlMetadata(body []byte, code string) (domain.AssetMetadata, bool) {
	var meta domain.AssetMetadata
	inCurrency := false
	isCurrent := false

	scanner := bufio.NewScanner(bytes.NewReader(body))
	for scanner.Scan() {
		line := scanner.Text()
		trimmed := strings.TrimSpace(line)

		if trimmed == "[[CURRENCIES]]" {
			inCurrency = true
			isCurrent = false
			continue
		}

		if inCurrency {
			if strings.Contains(line, fmt.Sprintf(`code="%s"`, code)) ||
				strings.Contains(line, fmt.Sprintf(`code = "%s"`, code)) {
				isCurrent = true
			} else if strings.HasPrefix(trimmed, "[") {
				inCurrency = false
			}

			if isCurrent {
				switch {
				case strings.HasPrefix(trimmed, "name"):
					meta.Name = tomlLineValue(trimmed)
				case strings.HasPrefix(trimmed, "desc"):
					meta.Description = tomlLineValue(trimmed)
				case strings.HasPrefix(trimmed, "conditions"):
					meta.Conditions = tomlLineValue(trimmed)
				case strings.HasPrefix(trimmed, "image"):
					meta.Image = tomlLineValue(trimmed)
				}
			}
		} else if strings.Contains(trimmed, "DOCUMENTATION=") || strings.Contains(trimmed, "ORG_URL") {
			meta.Whitepaper = tomlLineValue(trimmed)
		}
	}

	return meta, meta.Name != "" || meta.Description != ""
}

func tomlLineValue(line string) string {
	_, value, found := strings.Cut(line, "=")
	if !found {
		return ""
	}
	return strings.Trim(strings.TrimSpace(value), `"`)
}
