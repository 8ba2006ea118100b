package lookup

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"
)

// ZipCodeLength is the number of digits a Japanese postal code carries; the
// lookup only fires on complete codes.
const ZipCodeLength = 7

// Client resolves a 7-digit postal code to a prefecture+city+town string via
// the zipcloud API. Every failure mode (transport error, bad payload, no
// match) degrades to "no address found"; nothing here is fatal.
type Client struct {
	baseURL string
	http    *http.Client
	logger  *zap.Logger
}

func NewClient(baseURL string, logger *zap.Logger) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 5 * time.Second},
		logger:  logger,
	}
}

type zipcloudResponse struct {
	Results []struct {
		Address1 string `json:"address1"`
		Address2 string `json:"address2"`
		Address3 string `json:"address3"`
	} `json:"results"`
}

// Resolve returns the joined address for the code, or "" when nothing was
// found. The returned error is informational; callers treat it the same as
// an empty result.
func (c *Client) Resolve(ctx context.Context, zipCode string) (string, error) {
	reqURL := fmt.Sprintf("%s?zipcode=%s", c.baseURL, url.QueryEscape(zipCode))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return "", fmt.Errorf("failed to build zipcloud request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Debug("zipcode lookup failed", zap.String("zip", zipCode), zap.Error(err))
		return "", fmt.Errorf("zipcloud request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("zipcloud returned status %d", resp.StatusCode)
	}

	var payload zipcloudResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", fmt.Errorf("failed to decode zipcloud response: %w", err)
	}

	if len(payload.Results) == 0 {
		return "", nil
	}

	r := payload.Results[0]
	return r.Address1 + r.Address2 + r.Address3, nil
}
