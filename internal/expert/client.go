package expert

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/hkanpak21/StellarAW/internal/infra"
)

// Client talks to the stellar.expert explorer: the structured asset and
// directory APIs plus the public HTML asset page used by the scrape
// fallback. Per-call deadlines are the caller's job (each fetcher sets its
// own context timeout); the client only enforces a hard upper bound.
type Client struct {
	httpClient *http.Client
	apiURL     string // e.g. https://api.stellar.expert/explorer
	siteURL    string // e.g. https://stellar.expert/explorer
	network    string // "public" or "testnet"
}

// NewClient creates an explorer client for the given network segment.
func NewClient(cfg *infra.Config) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		apiURL:     cfg.API.ExpertAPIURL,
		siteURL:    cfg.API.ExpertSiteURL,
		network:    cfg.Network.Name,
	}
}

// Asset fetches the structured record for one asset. param is the
// CODE-ISSUER path form.
func (c *Client) Asset(ctx context.Context, param string) (*AssetResponse, error) {
	u := fmt.Sprintf("%s/%s/asset/%s", c.apiURL, c.network, url.PathEscape(param))

	var resp AssetResponse
	if err := c.getJSON(ctx, u, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Directory looks up the account directory by issuer address.
func (c *Client) Directory(ctx context.Context, address string) (*DirectoryResponse, error) {
	u := fmt.Sprintf("%s/directory?address[]=%s", c.apiURL, url.QueryEscape(address))

	var resp DirectoryResponse
	if err := c.getJSON(ctx, u, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// AssetPage fetches the raw HTML of the public asset page. The body is
// returned whole; callers feed it to a selector-based extractor.
func (c *Client) AssetPage(ctx context.Context, param string) ([]byte, error) {
	u := c.AssetPageURL(param)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "text/html")
	req.Header.Set("User-Agent", infra.GetPlatformUserAgent())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	return io.ReadAll(resp.Body)
}

// AssetPageURL returns the public HTML page for an asset on the configured
// network.
func (c *Client) AssetPageURL(param string) string {
	return fmt.Sprintf("%s/%s/asset/%s", c.siteURL, c.network, url.PathEscape(param))
}

// PublicAssetURL returns the citation link for an asset: always the public
// network explorer, the root page for the native asset.
func (c *Client) PublicAssetURL(param string) string {
	if param == "" {
		return c.siteURL + "/public"
	}
	return fmt.Sprintf("%s/public/asset/%s", c.siteURL, url.PathEscape(param))
}

func (c *Client) getJSON(ctx context.Context, u string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	return json.Unmarshal(body, out)
}
