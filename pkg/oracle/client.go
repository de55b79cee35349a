package oracle

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/openhooks/dispatch-ledger-go/pkg/ledger"
)

// Client queries a host oracle service. It implements
// ledger.ActivityOracle and ledger.ReferenceBalanceOracle.
type Client struct {
	baseURL    string
	httpClient *http.Client
	apiKey     string
	headers    map[string]string
}

// NewClient creates a new Client.
func NewClient(config Config) (*Client, error) {
	baseURL := strings.TrimRight(strings.TrimSpace(config.BaseURL), "/")
	if baseURL == "" {
		return nil, fmt.Errorf("oracle base URL is required")
	}
	parsedBaseURL, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid oracle base URL: %w", err)
	}
	if parsedBaseURL.Scheme != "http" && parsedBaseURL.Scheme != "https" {
		return nil, fmt.Errorf("invalid oracle base URL: scheme must be http or https")
	}
	if strings.TrimSpace(parsedBaseURL.Host) == "" {
		return nil, fmt.Errorf("invalid oracle base URL: host is required")
	}

	httpClient := config.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}

	headers := map[string]string{}
	for key, value := range config.Headers {
		headers[key] = value
	}

	return &Client{
		baseURL:    strings.TrimRight(parsedBaseURL.String(), "/"),
		httpClient: httpClient,
		apiKey:     strings.TrimSpace(config.APIKey),
		headers:    headers,
	}, nil
}

// BaseURL returns the configured base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// ActivityCounter implements ledger.ActivityOracle.
func (c *Client) ActivityCounter(ctx context.Context, account ledger.AccountID) (uint64, error) {
	normalized, err := ledger.NormalizeAccountID(account)
	if err != nil {
		return 0, err
	}

	var response activityResponse
	path := fmt.Sprintf("/api/v1/accounts/%s/activity", normalized)
	if err := c.getJSON(ctx, path, &response); err != nil {
		return 0, err
	}
	return response.Counter, nil
}

// ReferenceBalance implements ledger.ReferenceBalanceOracle.
func (c *Client) ReferenceBalance(ctx context.Context, account ledger.AccountID) (uint64, error) {
	normalized, err := ledger.NormalizeAccountID(account)
	if err != nil {
		return 0, err
	}

	var response referenceBalanceResponse
	path := fmt.Sprintf("/api/v1/accounts/%s/reference-balance", normalized)
	if err := c.getJSON(ctx, path, &response); err != nil {
		return 0, err
	}
	return response.Balance, nil
}

func (c *Client) getJSON(ctx context.Context, path string, target any) error {
	request, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	request.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		request.Header.Set("Authorization", fmt.Sprintf("Bearer %s", c.apiKey))
	}
	for key, value := range c.headers {
		request.Header.Set(key, value)
	}

	response, err := c.httpClient.Do(request)
	if err != nil {
		return fmt.Errorf("oracle request failed: %w", err)
	}
	defer response.Body.Close()

	body, err := io.ReadAll(response.Body)
	if err != nil {
		return fmt.Errorf("failed to read oracle response: %w", err)
	}

	if response.StatusCode < 200 || response.StatusCode >= 300 {
		return fmt.Errorf(
			"oracle request failed with status %d: %s",
			response.StatusCode,
			strings.TrimSpace(string(body)),
		)
	}

	if err := json.Unmarshal(body, target); err != nil {
		return fmt.Errorf("failed to decode oracle response: %w", err)
	}

	return nil
}
