// Copyright 2026 Peter Edge
//
// All rights reserved.

package invctlcmd

import (
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/bufdev/invctl/internal/invctl/invctlconfig"
	"github.com/bufdev/invctl/internal/invctl/invctlholdings"
	"github.com/bufdev/invctl/internal/invctl/invctlledger"
	"github.com/bufdev/invctl/internal/invctl/invctlpath"
	"github.com/bufdev/invctl/internal/invctl/invctlstore"
	"github.com/stretchr/testify/require"
)

func TestResolveFXRate(t *testing.T) {
	t.Parallel()
	logger := slog.New(slog.DiscardHandler)
	usdHoldings := []invctlholdings.Holding{{Ticker: "AAPL", Currency: "USD"}}

	t.Run("local_usd", func(t *testing.T) {
		t.Parallel()
		rate, err := resolveFXRate(logger, newConfig(t, t.TempDir(), "USD", 0), usdHoldings)
		require.NoError(t, err)
		require.Equal(t, 1.0, rate)
	})
	t.Run("cached_rate_wins", func(t *testing.T) {
		t.Parallel()
		dirPath := t.TempDir()
		require.NoError(t, invctlstore.WriteFXRate(
			invctlpath.CacheFXFilePath(dirPath, "USD", "BRL"),
			invctlstore.FXRate{
				Base:  "USD",
				Quote: "BRL",
				Rate:  5.5,
				Date:  time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC),
			},
		))
		rate, err := resolveFXRate(logger, newConfig(t, dirPath, "BRL", 4), usdHoldings)
		require.NoError(t, err)
		require.Equal(t, 5.5, rate)
	})
	t.Run("configured_fallback", func(t *testing.T) {
		t.Parallel()
		rate, err := resolveFXRate(logger, newConfig(t, t.TempDir(), "BRL", 4), usdHoldings)
		require.NoError(t, err)
		require.Equal(t, 4.0, rate)
	})
	t.Run("missing_without_usd_holdings", func(t *testing.T) {
		t.Parallel()
		rate, err := resolveFXRate(
			logger,
			newConfig(t, t.TempDir(), "BRL", 0),
			[]invctlholdings.Holding{{Ticker: "PETR4", Currency: "BRL"}},
		)
		require.NoError(t, err)
		require.Equal(t, 1.0, rate)
	})
	t.Run("missing_with_usd_holdings", func(t *testing.T) {
		t.Parallel()
		_, err := resolveFXRate(logger, newConfig(t, t.TempDir(), "BRL", 0), usdHoldings)
		require.ErrorContains(t, err, "invctl fx fetch")
	})
}

func TestLoadTransactions(t *testing.T) {
	t.Parallel()
	dirPath := t.TempDir()
	first := invctlledger.Transaction{
		ID:        "a",
		Ticker:    "petr4",
		Kind:      invctlledger.KindBuy,
		Quantity:  10,
		UnitPrice: 30,
		Date:      time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
	}
	second := invctlledger.Transaction{
		ID:        "b",
		Ticker:    "PETR4",
		Kind:      invctlledger.KindSell,
		Quantity:  4,
		UnitPrice: 35,
		Date:      time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC),
	}
	require.NoError(t, invctlstore.WriteLedger(invctlpath.LedgerFilePath(dirPath), []invctlledger.Transaction{first}))
	require.NoError(t, invctlstore.WriteLedger(
		filepath.Join(invctlpath.LedgersDirPath(dirPath), "2026", "broker.yaml"),
		[]invctlledger.Transaction{second, first},
	))
	transactions, err := LoadTransactions(slog.New(slog.DiscardHandler), dirPath)
	require.NoError(t, err)
	require.Len(t, transactions, 2)
	require.Equal(t, "b", transactions[0].ID)
	require.Equal(t, "a", transactions[1].ID)
}

func newConfig(t *testing.T, dirPath string, localCurrency string, fxRate float64) *invctlconfig.Config {
	t.Helper()
	config, err := invctlconfig.NewConfig(dirPath, invctlconfig.ExternalConfig{
		Version:       "v1",
		LocalCurrency: localCurrency,
		FXRate:        fxRate,
	})
	require.NoError(t, err)
	return config
}
