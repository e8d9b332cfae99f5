// Copyright 2026 Peter Edge
//
// All rights reserved.

package invctlpath

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPaths(t *testing.T) {
	t.Parallel()
	dir := filepath.Join("home", "invctl")
	require.Equal(t, filepath.Join(dir, "invctl.yaml"), ConfigFilePath(dir))
	require.Equal(t, filepath.Join(dir, "ledger.yaml"), LedgerFilePath(dir))
	require.Equal(t, filepath.Join(dir, "ledgers"), LedgersDirPath(dir))
	require.Equal(t, filepath.Join(dir, "quotes.yaml"), QuotesFilePath(dir))
	require.Equal(t, filepath.Join(dir, "cache", "fx", "USD.BRL.yaml"), CacheFXFilePath(dir, "usd", "brl"))
}
