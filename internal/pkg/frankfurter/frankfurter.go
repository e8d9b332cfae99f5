// Copyright 2026 Peter Edge
//
// All rights reserved.

// Package frankfurter provides a client for fetching exchange rates from frankfurter.dev.
//
// The frankfurter.dev API is free and does not require an API key or authentication.
// See https://frankfurter.dev for usage details and rate limits.
package frankfurter

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// DefaultBaseURL is the frankfurter.dev API base URL.
const DefaultBaseURL = "https://api.frankfurter.dev/v1"

// Rate is the latest published exchange rate for a currency pair.
type Rate struct {
	// Base is the base currency code.
	Base string
	// Quote is the quote currency code.
	Quote string
	// Date is the publication date of the rate.
	Date time.Time
	// Value is the number of quote currency units per 1 base currency unit.
	Value float64
}

// StatusError is returned when the API responds with a non-200 status.
type StatusError struct {
	StatusCode int
	Body       string
}

// Error implements error.
func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status %d: %s", e.StatusCode, e.Body)
}

// Temporary returns whether the request may succeed if retried.
func (e *StatusError) Temporary() bool {
	return e.StatusCode == http.StatusTooManyRequests || e.StatusCode >= http.StatusInternalServerError
}

// Client is the interface for fetching exchange rates.
type Client interface {
	// GetLatestRate fetches the latest rate for the currency pair.
	GetLatestRate(ctx context.Context, baseCurrency string, quoteCurrency string) (Rate, error)
}

// NewClient creates a new exchange rate client.
func NewClient(options ...ClientOption) Client {
	client := &client{
		httpClient: http.DefaultClient,
		baseURL:    DefaultBaseURL,
	}
	for _, option := range options {
		option(client)
	}
	return client
}

// ClientOption is an option for a new Client.
type ClientOption func(*client)

// WithHTTPClient returns a new ClientOption that sets the HTTP client.
func WithHTTPClient(httpClient *http.Client) ClientOption {
	return func(client *client) {
		client.httpClient = httpClient
	}
}

// WithBaseURL returns a new ClientOption that sets the API base URL.
func WithBaseURL(baseURL string) ClientOption {
	return func(client *client) {
		client.baseURL = strings.TrimSuffix(baseURL, "/")
	}
}

// *** PRIVATE ***

type client struct {
	httpClient *http.Client
	baseURL    string
}

func (c *client) GetLatestRate(ctx context.Context, baseCurrency string, quoteCurrency string) (Rate, error) {
	baseCurrency = strings.ToUpper(baseCurrency)
	quoteCurrency = strings.ToUpper(quoteCurrency)
	query := url.Values{}
	query.Set("base", baseCurrency)
	query.Set("symbols", quoteCurrency)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/latest?"+query.Encode(), nil)
	if err != nil {
		return Rate{}, err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Rate{}, err
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return Rate{}, err
	}
	if resp.StatusCode != http.StatusOK {
		return Rate{}, &StatusError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}
	var latestResponse latestResponse
	if err := json.Unmarshal(body, &latestResponse); err != nil {
		return Rate{}, fmt.Errorf("parsing response: %w", err)
	}
	value, ok := latestResponse.Rates[quoteCurrency]
	if !ok || value <= 0 {
		return Rate{}, fmt.Errorf("no %s rate for base %s in response", quoteCurrency, baseCurrency)
	}
	date, err := time.Parse("2006-01-02", latestResponse.Date)
	if err != nil {
		return Rate{}, fmt.Errorf("parsing response date %q: %w", latestResponse.Date, err)
	}
	return Rate{
		Base:  baseCurrency,
		Quote: quoteCurrency,
		Date:  date,
		Value: value,
	}, nil
}

// latestResponse is the JSON response from the frankfurter.dev API for the latest rates.
type latestResponse struct {
	Base  string             `json:"base"`
	Date  string             `json:"date"`
	Rates map[string]float64 `json:"rates"`
}
