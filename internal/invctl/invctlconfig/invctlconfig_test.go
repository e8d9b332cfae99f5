// Copyright 2026 Peter Edge
//
// All rights reserved.

package invctlconfig

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/bufdev/invctl/internal/invctl/invctladvisor"
	"github.com/bufdev/invctl/internal/invctl/invctlholdings"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func TestInitConfigTemplateIsValid(t *testing.T) {
	t.Parallel()
	dirPath := filepath.Join(t.TempDir(), "nested")
	filePath, err := InitConfig(dirPath)
	require.NoError(t, err)
	require.Equal(t, filepath.Join(dirPath, "invctl.yaml"), filePath)
	config, err := ReadConfig(dirPath)
	require.NoError(t, err)
	require.Equal(t, "BRL", config.LocalCurrency)
	require.Equal(t, 0.0, config.FXRate)
	require.Empty(t, config.SymbolOverrides)
	require.Equal(t, invctladvisor.DefaultThresholds(), config.Thresholds)
	_, err = InitConfig(dirPath)
	require.ErrorContains(t, err, "already exists")
}

func TestReadConfig(t *testing.T) {
	t.Parallel()
	dirPath := writeConfig(t, `version: v1
local_currency: usd
fx_rate: 1.5
symbols:
  - name: " petr4 "
    display_name: Petrobras
    asset_type: Equity
    sector: Energy
    country: BR
    monthly_dividend: 42.5
advisor:
  concentration_percent: 60
  low_yield_count: 5
`)
	config, err := ReadConfig(dirPath)
	require.NoError(t, err)
	require.Equal(t, dirPath, config.DirPath)
	require.Equal(t, "USD", config.LocalCurrency)
	require.Equal(t, 1.5, config.FXRate)
	wantOverrides := map[string]invctlholdings.Override{
		"PETR4": {
			Name:            "Petrobras",
			AssetType:       "Equity",
			Sector:          "Energy",
			Country:         "BR",
			MonthlyDividend: 42.5,
		},
	}
	if diff := cmp.Diff(wantOverrides, config.SymbolOverrides); diff != "" {
		t.Errorf("overrides mismatch (-want +got):\n%s", diff)
	}
	wantThresholds := invctladvisor.DefaultThresholds()
	wantThresholds.ConcentrationPercent = 60
	wantThresholds.LowYieldCount = 5
	require.Equal(t, wantThresholds, config.Thresholds)
}

func TestReadConfigMissing(t *testing.T) {
	t.Parallel()
	_, err := ReadConfig(t.TempDir())
	require.ErrorContains(t, err, "invctl config init")
}

func TestReadConfigErrors(t *testing.T) {
	t.Parallel()
	testCases := []struct {
		name    string
		content string
		wantErr string
	}{
		{
			name:    "bad_version",
			content: "version: v2\nlocal_currency: BRL\n",
			wantErr: "unsupported config version",
		},
		{
			name:    "missing_currency",
			content: "version: v1\n",
			wantErr: "local_currency is required",
		},
		{
			name:    "unknown_currency",
			content: "version: v1\nlocal_currency: XXQ\n",
			wantErr: "not a known ISO 4217",
		},
		{
			name:    "negative_fx_rate",
			content: "version: v1\nlocal_currency: BRL\nfx_rate: -1\n",
			wantErr: "fx_rate",
		},
		{
			name:    "unknown_field",
			content: "version: v1\nlocal_currency: BRL\nunknown: true\n",
			wantErr: "could not unmarshal as YAML",
		},
		{
			name:    "duplicate_symbol",
			content: "version: v1\nlocal_currency: BRL\nsymbols:\n  - name: abc\n  - name: ABC\n",
			wantErr: "duplicate symbol",
		},
		{
			name:    "empty_symbol",
			content: "version: v1\nlocal_currency: BRL\nsymbols:\n  - sector: Energy\n",
			wantErr: "symbol name is required",
		},
		{
			name:    "negative_dividend",
			content: "version: v1\nlocal_currency: BRL\nsymbols:\n  - name: ABC\n    monthly_dividend: -1\n",
			wantErr: "monthly_dividend",
		},
		{
			name:    "inverted_performance",
			content: "version: v1\nlocal_currency: BRL\nadvisor:\n  weak_performance_percent: 20\n",
			wantErr: "must not exceed",
		},
		{
			name:    "zero_min_sectors",
			content: "version: v1\nlocal_currency: BRL\nadvisor:\n  min_sectors: 0\n",
			wantErr: "min_sectors",
		},
	}
	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()
			err := ValidateConfig(writeConfig(t, testCase.content))
			require.ErrorContains(t, err, testCase.wantErr)
		})
	}
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	dirPath := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dirPath, "invctl.yaml"), []byte(content), 0o644))
	return dirPath
}
