package fetch

import (
	"bytes"
	"context"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/hkanpak21/StellarAW/internal/domain"
	"github.com/hkanpak21/StellarAW/internal/expert"
	"github.com/hkanpak21/StellarAW/internal/infra"
)

// riskAPI is the slice of the explorer client the flag fetcher consumes.
type riskAPI interface {
	Asset(ctx context.Context, param string) (*expert.AssetResponse, error)
	Directory(ctx context.Context, address string) (*expert.DirectoryResponse, error)
	AssetPage(ctx context.Context, param string) ([]byte, error)
}

// dangerPattern matches tags that mark an issuer or asset as hostile.
var dangerPattern = regexp.MustCompile(`(?i)malicious|scam|blacklist|counterfeit|unsafe`)

// badgeSelector catches the risk badges across old and new explorer UI
// classes.
const badgeSelector = ".badge-danger,.badge-warning,.label-danger,.label-warning"

func hasDanger(tags []string) bool {
	for _, t := range tags {
		if dangerPattern.MatchString(t) {
			return true
		}
	}
	return false
}

// flagOutcome is the typed result of one fallback tier: either a definitive
// flag set, or "inconclusive, fall through to the next tier".
type flagOutcome struct {
	flags      domain.RiskFlags
	conclusive bool
}

func conclusive(flags domain.RiskFlags) flagOutcome {
	return flagOutcome{flags: flags, conclusive: true}
}

var inconclusive = flagOutcome{}

// FlagFetcher determines suspicious/scam/authorization flags through an
// ordered fallback chain: issuer directory, structured asset record, HTML
// badge scrape with one retry, and finally the unknown sentinel. The first
// tier producing any flag data wins.
type FlagFetcher struct {
	api riskAPI

	dirTimeout    time.Duration
	apiTimeout    time.Duration
	scrapeTimeout time.Duration
	scrapeRetries int
}

// NewFlagFetcher creates a flag fetcher with per-tier timeouts.
func NewFlagFetcher(api riskAPI, dirTimeout, apiTimeout, scrapeTimeout time.Duration) *FlagFetcher {
	if dirTimeout <= 0 {
		dirTimeout = time.Second
	}
	if apiTimeout <= 0 {
		apiTimeout = time.Second
	}
	if scrapeTimeout <= 0 {
		scrapeTimeout = time.Second
	}
	return &FlagFetcher{
		api:           api,
		dirTimeout:    dirTimeout,
		apiTimeout:    apiTimeout,
		scrapeTimeout: scrapeTimeout,
		scrapeRetries: 2,
	}
}

// FetchFlags never fails; when no tier can produce flag data it returns the
// partial/unknown sentinel, which callers must render distinctly from
// "confirmed not suspicious".
func (f *FlagFetcher) FetchFlags(ctx context.Context, asset domain.CanonicalAsset) domain.RiskFlags {
	// The native asset is never flagged.
	if asset.IsNative() || asset.Issuer == "" {
		return domain.RiskFlags{Suspicious: false}
	}

	if out := f.checkDirectory(ctx, asset); out.conclusive {
		return out.flags
	}

	if out := f.checkAssetRecord(ctx, asset); out.conclusive {
		return out.flags
	}

	if out := f.scrapeBadges(ctx, asset); out.conclusive {
		return out.flags
	}

	slog.Warn("Flag data unavailable from both API and HTML", slog.String("asset", asset.String()))
	return domain.UnknownRiskFlags("Flag data unavailable - network error")
}

// checkDirectory queries the account directory for the issuer. Only danger
// tags are conclusive here; a clean or failed lookup falls through.
func (f *FlagFetcher) checkDirectory(ctx context.Context, asset domain.CanonicalAsset) flagOutcome {
	ctx, cancel := context.WithTimeout(ctx, f.dirTimeout)
	defer cancel()

	resp, err := f.api.Directory(ctx, asset.Issuer)
	if err != nil {
		slog.Warn("Directory check failed", slog.String("issuer", asset.Issuer), slog.Any("error", err))
		return inconclusive
	}

	for _, record := range resp.Embedded.Records {
		if record.Address != asset.Issuer {
			continue
		}
		if hasDanger(record.Tags) {
			return conclusive(domain.RiskFlags{
				Suspicious: true,
				Details:    record.Tags,
			})
		}
	}

	return inconclusive
}

// checkAssetRecord inspects the structured asset record: tag danger is
// OR-combined with the explicit flag booleans, and the presence of any flags
// object at all is conclusive even when every boolean is false. A record
// with no flag data, like a transport failure, falls through to the scrape
// tier.
func (f *FlagFetcher) checkAssetRecord(ctx context.Context, asset domain.CanonicalAsset) flagOutcome {
	ctx, cancel := context.WithTimeout(ctx, f.apiTimeout)
	defer cancel()

	record, err := f.api.Asset(ctx, asset.Param())
	if err != nil {
		slog.Warn("Asset flag lookup failed", slog.String("asset", asset.String()), slog.Any("error", err))
		return inconclusive
	}

	tags := record.AllTags()
	danger := hasDanger(tags)

	if !danger && record.Flags == nil {
		return inconclusive
	}

	details := append([]string(nil), tags...)
	suspicious := danger

	if fl := record.Flags; fl != nil {
		if fl.Suspicious {
			details = append(details, "Marked as suspicious")
		}
		if fl.Scam {
			details = append(details, "Marked as scam")
		}
		if fl.Spam {
			details = append(details, "Marked as spam")
		}
		if fl.AuthRequired {
			details = append(details, "Authorization required")
		}
		if fl.AuthRevocable {
			details = append(details, "Authorization revocable")
		}
		if fl.AuthClawbackEnabled {
			details = append(details, "Clawback enabled")
		}
		suspicious = danger || fl.Suspicious || fl.Scam || fl.Spam
	}

	if len(details) == 0 {
		details = nil
	}
	return conclusive(domain.RiskFlags{Suspicious: suspicious, Details: details})
}

// scrapeBadges pulls the public HTML asset page and extracts risk badge
// labels, retrying once after a short back-off on transport failure. Any
// non-empty badge list is suspicious; an empty one is a clean conclusive
// answer. Both attempts failing is inconclusive (the caller emits the
// sentinel).
func (f *FlagFetcher) scrapeBadges(ctx context.Context, asset domain.CanonicalAsset) flagOutcome {
	for attempt := 0; attempt < f.scrapeRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return inconclusive
			case <-time.After(infra.CalculateBackoff(attempt - 1)):
			}
		}

		attemptCtx, cancel := context.WithTimeout(ctx, f.scrapeTimeout)
		page, err := f.api.AssetPage(attemptCtx, asset.Param())
		cancel()
		if err != nil {
			slog.Warn("Badge scrape attempt failed",
				slog.String("asset", asset.String()),
				slog.Int("attempt", attempt+1),
				slog.Any("error", err),
			)
			continue
		}

		labels, err := extractBadgeLabels(page)
		if err != nil {
			slog.Warn("Badge extraction failed", slog.String("asset", asset.String()), slog.Any("error", err))
			continue
		}

		if len(labels) > 0 {
			return conclusive(domain.RiskFlags{Suspicious: true, Details: labels})
		}
		return conclusive(domain.RiskFlags{Suspicious: false})
	}

	return inconclusive
}

func extractBadgeLabels(page []byte) ([]string, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(page))
	if err != nil {
		return nil, err
	}

	var labels []string
	doc.Find(badgeSelector).Each(func(_ int, sel *goquery.Selection) {
		if text := strings.TrimSpace(sel.Text()); text != "" {
			labels = append(labels, text)
		}
	})
	return labels, nil
}
