// Copyright 2026 Peter Edge
//
// All rights reserved.

package frankfurter

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestGetLatestRate(t *testing.T) {
	t.Parallel()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v1/latest", r.URL.Path)
		require.Equal(t, "USD", r.URL.Query().Get("base"))
		require.Equal(t, "BRL", r.URL.Query().Get("symbols"))
		_, _ = w.Write([]byte(`{"amount":1.0,"base":"USD","date":"2026-10-16","rates":{"BRL":5.4321}}`))
	}))
	t.Cleanup(server.Close)
	client := NewClient(WithHTTPClient(server.Client()), WithBaseURL(server.URL+"/v1/"))
	rate, err := client.GetLatestRate(context.Background(), "usd", "brl")
	require.NoError(t, err)
	require.Equal(t, Rate{
		Base:  "USD",
		Quote: "BRL",
		Date:  time.Date(2026, time.October, 16, 0, 0, 0, 0, time.UTC),
		Value: 5.4321,
	}, rate)
}

func TestGetLatestRateErrors(t *testing.T) {
	t.Parallel()
	testCases := []struct {
		name          string
		status        int
		body          string
		wantTemporary bool
		wantErr       string
	}{
		{name: "server_error", status: http.StatusBadGateway, body: "bad gateway", wantTemporary: true},
		{name: "rate_limited", status: http.StatusTooManyRequests, body: "slow down", wantTemporary: true},
		{name: "not_found", status: http.StatusNotFound, body: `{"message":"not found"}`},
		{name: "missing_quote", status: http.StatusOK, body: `{"base":"USD","date":"2026-10-16","rates":{}}`, wantErr: "no BRL rate"},
		{name: "bad_json", status: http.StatusOK, body: `{`, wantErr: "parsing response"},
	}
	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(testCase.status)
				_, _ = w.Write([]byte(testCase.body))
			}))
			t.Cleanup(server.Close)
			client := NewClient(WithHTTPClient(server.Client()), WithBaseURL(server.URL))
			_, err := client.GetLatestRate(context.Background(), "USD", "BRL")
			require.Error(t, err)
			var statusError *StatusError
			if testCase.status != http.StatusOK {
				require.True(t, errors.As(err, &statusError))
				require.Equal(t, testCase.status, statusError.StatusCode)
				require.Equal(t, testCase.wantTemporary, statusError.Temporary())
				return
			}
			require.False(t, errors.As(err, &statusError))
			require.ErrorContains(t, err, testCase.wantErr)
		})
	}
}
