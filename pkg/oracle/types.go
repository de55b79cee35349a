package oracle

import "net/http"

// Config configures the oracle client. BaseURL is required.
type Config struct {
	BaseURL    string
	HTTPClient *http.Client
	APIKey     string
	Headers    map[string]string
}

type activityResponse struct {
	Account string `json:"account"`
	Counter uint64 `json:"counter"`
}

type referenceBalanceResponse struct {
	Account string `json:"account"`
	Balance uint64 `json:"balance"`
}
