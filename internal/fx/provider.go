package fx

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// Provider fetches a fresh rate table from the upstream rate service.
type Provider interface {
	Fetch(ctx context.Context) (Table, error)
}

// HTTPProvider reads rates from a JSON endpoint shaped as
// {"rates":{"USD":41.8,"EUR":45.2}}. The remote service owns retry and
// sourcing concerns; this client only speaks the contract.
type HTTPProvider struct {
	endpoint   string
	base       string
	httpClient *http.Client
}

// NewHTTPProvider constructs a provider for the given endpoint and base
// currency.
func NewHTTPProvider(endpoint, base string) *HTTPProvider {
	return &HTTPProvider{
		endpoint: endpoint,
		base:     base,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

type ratesResponse struct {
	Rates map[string]float64 `json:"rates"`
}

// Fetch retrieves and validates the current rate table.
func (p *HTTPProvider) Fetch(ctx context.Context) (Table, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.endpoint, nil)
	if err != nil {
		return Table{}, fmt.Errorf("fx: build rates request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return Table{}, fmt.Errorf("fx: fetch rates: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	if resp.StatusCode >= 400 {
		return Table{}, fmt.Errorf("fx: rate service returned status %d", resp.StatusCode)
	}

	var payload ratesResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return Table{}, fmt.Errorf("fx: decode rates: %w", err)
	}
	table, err := NewTable(p.base, payload.Rates, time.Now())
	if err != nil {
		return Table{}, err
	}
	return table, nil
}
