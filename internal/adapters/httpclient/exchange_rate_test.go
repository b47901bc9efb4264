package httpclient

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func serve(t *testing.T, status int, body string, gotPath *string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if gotPath != nil {
			*gotPath = r.URL.Path
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestExchangeRateClient_Success(t *testing.T) {
	var gotPath string
	srv := serve(t, http.StatusOK, `{
		"result": "success",
		"base_code": "USD",
		"conversion_rates": {"EUR": 0.92, "jpy": 149.50, "USD": 1}
	}`, &gotPath)

	c := NewExchangeRateClient(srv.Client(), srv.URL+"/v6/", "k3y")

	rates, err := c.LatestRates(context.Background(), "usd")
	require.NoError(t, err)
	require.Equal(t, "/v6/k3y/latest/USD", gotPath)
	require.Len(t, rates, 3)
	require.True(t, decimal.RequireFromString("0.92").Equal(rates["EUR"]))
	require.True(t, decimal.RequireFromString("149.5").Equal(rates["JPY"]))
}

func TestExchangeRateClient_StatusCodeError(t *testing.T) {
	srv := serve(t, http.StatusServiceUnavailable, `nope`, nil)
	c := NewExchangeRateClient(srv.Client(), srv.URL, "k")

	_, err := c.LatestRates(context.Background(), "USD")
	require.Error(t, err)
	require.Contains(t, err.Error(), "unexpected status code 503")
	require.Contains(t, err.Error(), "USD")
}

func TestExchangeRateClient_JSONDecodeError(t *testing.T) {
	srv := serve(t, http.StatusOK, `{`, nil)
	c := NewExchangeRateClient(srv.Client(), srv.URL, "k")

	_, err := c.LatestRates(context.Background(), "USD")
	require.ErrorContains(t, err, "failed to decode response for currency \"USD\"")
}

func TestExchangeRateClient_NonSuccessResult(t *testing.T) {
	srv := serve(t, http.StatusOK, `{"result": "error", "error-type": "invalid-key"}`, nil)
	c := NewExchangeRateClient(srv.Client(), srv.URL, "k")

	_, err := c.LatestRates(context.Background(), "USD")
	require.ErrorContains(t, err, "invalid-key")
}

func TestExchangeRateClient_BaseMismatch(t *testing.T) {
	srv := serve(t, http.StatusOK, `{"result": "success", "base_code": "EUR", "conversion_rates": {"USD": 1.09}}`, nil)
	c := NewExchangeRateClient(srv.Client(), srv.URL, "k")

	_, err := c.LatestRates(context.Background(), "USD")
	require.ErrorContains(t, err, "instead of")
}

func TestExchangeRateClient_BaseURLParseError(t *testing.T) {
	c := NewExchangeRateClient(&http.Client{}, "http://::1]", "k")
	_, err := c.LatestRates(context.Background(), "USD")
	require.ErrorContains(t, err, "failed to parse base URL")
}
