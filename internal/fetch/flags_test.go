package fetch

import (
	"context"
	"testing"
	"time"

	"github.com/hkanpak21/StellarAW/internal/domain"
	"github.com/hkanpak21/StellarAW/internal/expert"
)

const flagsIssuer = "GDOEVDDBU6OBWKL7VHDAOKD77UP4DKHQYKOKJJT5PR3WRDBTX35HUEUX"

func newFlagFetcher(api *fakeExplorer) *FlagFetcher {
	f := NewFlagFetcher(api, time.Second, time.Second, time.Second)
	return f
}

func TestFetchFlagsNativeIsClean(t *testing.T) {
	api := &fakeExplorer{}
	f := newFlagFetcher(api)

	flags := f.FetchFlags(context.Background(), domain.NativeAsset())

	if flags.Suspicious || flags.Partial || flags.Unknown {
		t.Errorf("native flags = %+v", flags)
	}
	if api.assetCalls+api.directoryCalls+api.pageCalls != 0 {
		t.Error("native asset must not trigger any lookup")
	}
}

func TestFetchFlagsDirectoryDangerTag(t *testing.T) {
	api := &fakeExplorer{directoryFn: func(address string) (*expert.DirectoryResponse, error) {
		if address != flagsIssuer {
			t.Errorf("address = %q", address)
		}
		var resp expert.DirectoryResponse
		resp.Embedded.Records = []expert.DirectoryRecord{
			{Address: flagsIssuer, Name: "fake doge", Tags: []string{"malicious", "blacklist"}},
		}
		return &resp, nil
	}}
	f := newFlagFetcher(api)

	flags := f.FetchFlags(context.Background(), domain.NewAsset("DOGET", flagsIssuer))

	if !flags.Suspicious {
		t.Fatal("danger tags must flag the asset")
	}
	if len(flags.Details) != 2 || flags.Details[0] != "malicious" {
		t.Errorf("Details = %v", flags.Details)
	}
	// The directory tier is conclusive; later tiers must not run.
	if api.assetCalls != 0 || api.pageCalls != 0 {
		t.Error("conclusive directory hit must short-circuit the chain")
	}
}

func TestFetchFlagsStructuredRecord(t *testing.T) {
	tests := []struct {
		name           string
		record         *expert.AssetResponse
		wantSuspicious bool
		wantDetail     string
	}{
		{
			name:           "scam flag",
			record:         &expert.AssetResponse{Flags: &expert.AssetFlagSet{Scam: true}},
			wantSuspicious: true,
			wantDetail:     "Marked as scam",
		},
		{
			name:           "auth flags only",
			record:         &expert.AssetResponse{Flags: &expert.AssetFlagSet{AuthRequired: true, AuthRevocable: true}},
			wantSuspicious: false,
			wantDetail:     "Authorization required",
		},
		{
			name:           "clean flag object",
			record:         &expert.AssetResponse{Flags: &expert.AssetFlagSet{}},
			wantSuspicious: false,
		},
		{
			name:           "danger tag without flag object",
			record:         &expert.AssetResponse{Tags: []string{"counterfeit"}},
			wantSuspicious: true,
			wantDetail:     "counterfeit",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := &fakeExplorer{
				directoryFn: func(string) (*expert.DirectoryResponse, error) {
					return &expert.DirectoryResponse{}, nil
				},
				assetFn: func(string) (*expert.AssetResponse, error) {
					return tt.record, nil
				},
			}
			f := newFlagFetcher(api)

			flags := f.FetchFlags(context.Background(), domain.NewAsset("FOO", flagsIssuer))

			if flags.Suspicious != tt.wantSuspicious {
				t.Errorf("Suspicious = %v, want %v", flags.Suspicious, tt.wantSuspicious)
			}
			if flags.Partial || flags.Unknown {
				t.Errorf("structured answer must be definitive, got %+v", flags)
			}
			if tt.wantDetail != "" && !containsDetail(flags.Details, tt.wantDetail) {
				t.Errorf("Details = %v, want %q present", flags.Details, tt.wantDetail)
			}
			if api.pageCalls != 0 {
				t.Error("conclusive record must prevent the HTML scrape")
			}
		})
	}
}

func TestFetchFlagsScrapeFallback(t *testing.T) {
	suspiciousPage := []byte(`<html><body>
		<span class="badge-danger"> Unsafe </span>
		<span class="badge-warning">Unverified issuer</span>
	</body></html>`)
	cleanPage := []byte(`<html><body><span class="badge-success">verified</span></body></html>`)

	t.Run("badges present", func(t *testing.T) {
		api := &fakeExplorer{pageFn: func(string) ([]byte, error) { return suspiciousPage, nil }}
		f := newFlagFetcher(api)

		flags := f.FetchFlags(context.Background(), domain.NewAsset("FOO", flagsIssuer))

		if !flags.Suspicious {
			t.Fatal("risk badges must flag the asset")
		}
		if len(flags.Details) != 2 || flags.Details[0] != "Unsafe" {
			t.Errorf("Details = %v", flags.Details)
		}
	})

	t.Run("no badges", func(t *testing.T) {
		api := &fakeExplorer{pageFn: func(string) ([]byte, error) { return cleanPage, nil }}
		f := newFlagFetcher(api)

		flags := f.FetchFlags(context.Background(), domain.NewAsset("FOO", flagsIssuer))

		if flags.Suspicious || flags.Partial || flags.Unknown {
			t.Errorf("badge-free page must be a clean definitive answer, got %+v", flags)
		}
	})
}

func TestFetchFlagsTotalFailure(t *testing.T) {
	api := &fakeExplorer{}
	f := newFlagFetcher(api)

	flags := f.FetchFlags(context.Background(), domain.NewAsset("FOO", flagsIssuer))

	if flags.Suspicious {
		t.Error("unknown must not be reported as suspicious")
	}
	if !flags.Undetermined() {
		t.Errorf("total failure must return the unknown sentinel, got %+v", flags)
	}
	if !containsDetail(flags.Details, "Flag data unavailable - network error") {
		t.Errorf("Details = %v", flags.Details)
	}
	if api.pageCalls != 2 {
		t.Errorf("scrape attempts = %d, want 2", api.pageCalls)
	}
}

func containsDetail(details []string, want string) bool {
	for _, d := range details {
		if d == want {
			return true
		}
	}
	return false
}
