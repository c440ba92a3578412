// Package horizon holds the minimal Horizon API surface the daemon
// consumes: the assets-by-code directory used to resolve a bare asset code
// to its issuer.
package horizon

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// AssetRecord is one entry of the Horizon /assets collection.
type AssetRecord struct {
	AssetType   string `json:"asset_type"`
	AssetCode   string `json:"asset_code"`
	AssetIssuer string `json:"asset_issuer"`
}

type assetsResponse struct {
	Embedded struct {
		Records []AssetRecord `json:"records"`
	} `json:"_embedded"`
}

// Client queries a Horizon instance.
type Client struct {
	httpClient *http.Client
	baseURL    string
}

// NewClient creates a Horizon client for the given base URL.
func NewClient(baseURL string) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		baseURL:    baseURL,
	}
}

// AssetsByCode lists assets issued under the given code, up to limit
// records. Horizon orders the collection deterministically, so "the first
// record" is stable across calls.
func (c *Client) AssetsByCode(ctx context.Context, code string, limit int) ([]AssetRecord, error) {
	u := fmt.Sprintf("%s/assets?asset_code=%s&limit=%d", c.baseURL, url.QueryEscape(code), limit)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	var parsed assetsResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, err
	}

	return parsed.Embedded.Records, nil
}
