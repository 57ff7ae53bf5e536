package rates

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/shopspring/decimal"

	"github.com/ozgun/fincore/internal/domain"
)

// HTTPProvider fetches the reference table from a remote endpoint that
// returns a JSON object of currency code to TRY value, for example
// {"USD":"34.25","EUR":"36.90"}. Transient failures are retried with
// exponential backoff.
type HTTPProvider struct {
	url    string
	client *http.Client
}

// NewHTTPProvider creates an HTTPProvider for the given endpoint.
func NewHTTPProvider(url string, timeout time.Duration) *HTTPProvider {
	if timeout == 0 {
		timeout = 10 * time.Second
	}

	return &HTTPProvider{
		url:    url,
		client: &http.Client{Timeout: timeout},
	}
}

// Rates fetches the reference table. The anchor currency is always present
// in the result with value 1, whether or not the endpoint lists it.
func (p *HTTPProvider) Rates(ctx context.Context) (domain.RateTable, error) {
	var table domain.RateTable

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 100 * time.Millisecond
	b.MaxElapsedTime = 5 * time.Second

	err := backoff.Retry(func() error {
		fetched, err := p.fetch(ctx)
		if err != nil {
			return err
		}

		table = fetched
		return nil
	}, backoff.WithContext(b, ctx))
	if err != nil {
		return nil, err
	}

	return table, nil
}

func (p *HTTPProvider) fetch(ctx context.Context) (domain.RateTable, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.url, nil)
	if err != nil {
		return nil, backoff.Permanent(err)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 500 {
		return nil, fmt.Errorf("rates endpoint returned %d", resp.StatusCode)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, backoff.Permanent(fmt.Errorf("rates endpoint returned %d", resp.StatusCode))
	}

	var raw map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, backoff.Permanent(fmt.Errorf("failed to decode rates: %w", err))
	}

	table := make(domain.RateTable, len(raw)+1)
	for code, value := range raw {
		rate, err := decimal.NewFromString(value)
		if err != nil {
			return nil, backoff.Permanent(fmt.Errorf("invalid rate for %s: %w", code, err))
		}

		table[code] = rate
	}

	table[domain.AnchorCurrency] = decimal.NewFromInt(1)

	return table, nil
}
