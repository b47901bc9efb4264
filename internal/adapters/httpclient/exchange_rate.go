package httpclient

import (
	"context"
	"encoding/json"
	"fmt"
	"fxconvert/internal/domain"
	"net/http"
	"net/url"
	"strings"

	"github.com/shopspring/decimal"
)

// ExchangeRateClient reads the "latest" endpoint of an exchangerate-api compatible provider.
type ExchangeRateClient struct {
	http    *http.Client
	baseURL string
	apiKey  string
}

type latestResponse struct {
	Result          string                     `json:"result"`
	ErrorType       string                     `json:"error-type"`
	BaseCode        string                     `json:"base_code"`
	ConversionRates map[string]decimal.Decimal `json:"conversion_rates"`
}

func (c *ExchangeRateClient) LatestRates(ctx context.Context, base string) (map[string]decimal.Decimal, error) {
	base = domain.NormalizeCode(base)
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse base URL: %w", err)
	}
	u.Path = strings.TrimSuffix(u.Path, "/") + "/" + url.PathEscape(c.apiKey) + "/latest/" + base

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request for currency %q: %w", base, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request for currency %q: %w", base, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("unexpected status code %d for currency %q", resp.StatusCode, base)
	}

	var body latestResponse
	if err = json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("failed to decode response for currency %q: %w", base, err)
	}
	if body.Result != "success" {
		return nil, fmt.Errorf("provider returned %q for currency %q: %s", body.Result, base, body.ErrorType)
	}
	if got := domain.NormalizeCode(body.BaseCode); got != base {
		return nil, fmt.Errorf("provider answered for %q instead of %q", got, base)
	}

	rates := make(map[string]decimal.Decimal, len(body.ConversionRates))
	for code, value := range body.ConversionRates {
		rates[domain.NormalizeCode(code)] = value
	}
	return rates, nil
}

func NewExchangeRateClient(httpClient *http.Client, baseURL string, apiKey string) *ExchangeRateClient {
	return &ExchangeRateClient{http: httpClient, baseURL: baseURL, apiKey: apiKey}
}
