// Copyright 2026 Peter Edge
//
// All rights reserved.

// Package invctlconfig provides configuration parsing and validation for invctl.
//
// The configuration file is invctl.yaml within the invctl base directory.
package invctlconfig

import (
	"bytes"
	"errors"
	"fmt"
	"math"
	"os"
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/bufdev/invctl/internal/invctl/invctladvisor"
	"github.com/bufdev/invctl/internal/invctl/invctlholdings"
	"github.com/bufdev/invctl/internal/invctl/invctlledger"
	"github.com/bufdev/invctl/internal/invctl/invctlpath"
	"gopkg.in/yaml.v3"
)

// configTemplate is the default configuration file template with comments.
// yaml.v3 does not preserve comments, so we hardcode the template string.
const configTemplate = `# The configuration file version.
#
# Required. The only current valid version is v1.
version: v1
# The ISO 4217 code of the currency all values are reported in.
#
# Required. Holdings in USD are converted to this currency using the
# cached rate from "invctl fx fetch", or fx_rate below if no rate is cached.
local_currency: BRL
# The fallback number of local currency units per 1 USD.
#
# Optional. Must be positive if set.
# fx_rate: 5.0
# Symbol overrides.
#
# Optional. Overrides metadata copied from the first transaction of a ticker
# and sets the expected monthly dividend in the local currency.
# symbols:
#   - name: PETR4
#     display_name: Petrobras PN
#     asset_type: Equity
#     sector: Energy
#     country: BR
#     monthly_dividend: 42.5
# Recommendation thresholds.
#
# Optional. Unset values use the defaults shown.
# advisor:
#   concentration_percent: 70
#   strong_performance_percent: 10
#   weak_performance_percent: -5
#   low_yield_count: 3
#   low_yield_percent: 0
#   min_sectors: 3
`

// ExternalConfig is the YAML-serializable configuration file structure.
type ExternalConfig struct {
	// Version is the configuration file version (must be "v1").
	Version string `yaml:"version"`
	// LocalCurrency is the ISO 4217 reporting currency.
	LocalCurrency string `yaml:"local_currency"`
	// FXRate is the fallback number of local currency units per 1 USD.
	FXRate float64 `yaml:"fx_rate"`
	// Symbols is the optional list of symbol overrides.
	Symbols []ExternalSymbolConfig `yaml:"symbols"`
	// Advisor holds optional recommendation threshold overrides.
	Advisor ExternalAdvisorConfig `yaml:"advisor"`
}

// ExternalSymbolConfig holds override metadata for a symbol.
type ExternalSymbolConfig struct {
	// Name is the ticker symbol.
	Name string `yaml:"name"`
	// DisplayName is the human-readable instrument name.
	DisplayName string `yaml:"display_name"`
	// AssetType is the asset type (e.g., "Equity", "Fund", "Crypto").
	AssetType string `yaml:"asset_type"`
	// Sector is the sector classification (e.g., "Energy").
	Sector string `yaml:"sector"`
	// Country is the country of listing.
	Country string `yaml:"country"`
	// MonthlyDividend is the expected monthly dividend in the local currency.
	MonthlyDividend float64 `yaml:"monthly_dividend"`
}

// ExternalAdvisorConfig holds optional recommendation thresholds.
//
// Pointers distinguish unset values from explicit zeros.
type ExternalAdvisorConfig struct {
	ConcentrationPercent     *float64 `yaml:"concentration_percent"`
	StrongPerformancePercent *float64 `yaml:"strong_performance_percent"`
	WeakPerformancePercent   *float64 `yaml:"weak_performance_percent"`
	LowYieldCount            *int     `yaml:"low_yield_count"`
	LowYieldPercent          *float64 `yaml:"low_yield_percent"`
	MinSectors               *int     `yaml:"min_sectors"`
}

// Config is the validated runtime configuration derived from the config file.
type Config struct {
	// DirPath is the base directory containing invctl.yaml.
	DirPath string
	// LocalCurrency is the upper-cased ISO 4217 reporting currency.
	LocalCurrency string
	// FXRate is the fallback USD rate, or 0 if unset.
	FXRate float64
	// SymbolOverrides maps normalized tickers to their overrides.
	SymbolOverrides map[string]invctlholdings.Override
	// Thresholds are the recommendation thresholds with overrides applied.
	Thresholds invctladvisor.Thresholds
}

// NewConfig validates an ExternalConfig and returns a runtime Config.
func NewConfig(dirPath string, externalConfig ExternalConfig) (*Config, error) {
	if externalConfig.Version != "v1" {
		return nil, fmt.Errorf("unsupported config version %q, must be v1", externalConfig.Version)
	}
	localCurrency := strings.ToUpper(strings.TrimSpace(externalConfig.LocalCurrency))
	if localCurrency == "" {
		return nil, errors.New("local_currency is required")
	}
	if money.GetCurrency(localCurrency) == nil {
		return nil, fmt.Errorf("local_currency %q is not a known ISO 4217 currency code", externalConfig.LocalCurrency)
	}
	if math.IsNaN(externalConfig.FXRate) || math.IsInf(externalConfig.FXRate, 0) || externalConfig.FXRate < 0 {
		return nil, fmt.Errorf("fx_rate must not be negative, got %v", externalConfig.FXRate)
	}
	// Build symbol overrides, checking for duplicates.
	symbolOverrides := make(map[string]invctlholdings.Override, len(externalConfig.Symbols))
	for _, s := range externalConfig.Symbols {
		name := invctlledger.NormalizeTicker(s.Name)
		if name == "" {
			return nil, errors.New("symbol name is required")
		}
		if _, ok := symbolOverrides[name]; ok {
			return nil, fmt.Errorf("duplicate symbol name %q", s.Name)
		}
		if math.IsNaN(s.MonthlyDividend) || math.IsInf(s.MonthlyDividend, 0) || s.MonthlyDividend < 0 {
			return nil, fmt.Errorf("symbol %q: monthly_dividend must not be negative", s.Name)
		}
		symbolOverrides[name] = invctlholdings.Override{
			Name:            strings.TrimSpace(s.DisplayName),
			AssetType:       strings.TrimSpace(s.AssetType),
			Sector:          strings.TrimSpace(s.Sector),
			Country:         strings.TrimSpace(s.Country),
			MonthlyDividend: s.MonthlyDividend,
		}
	}
	thresholds, err := newThresholds(externalConfig.Advisor)
	if err != nil {
		return nil, err
	}
	return &Config{
		DirPath:         dirPath,
		LocalCurrency:   localCurrency,
		FXRate:          externalConfig.FXRate,
		SymbolOverrides: symbolOverrides,
		Thresholds:      thresholds,
	}, nil
}

// ReadConfig reads and validates the configuration file from the given base directory.
// Returns a clear error message directing users to run "invctl config init" if the file is missing.
func ReadConfig(dirPath string) (*Config, error) {
	filePath := invctlpath.ConfigFilePath(dirPath)
	data, err := os.ReadFile(filePath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("configuration file not found at %s, run \"invctl config init\" to create one", filePath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	var externalConfig ExternalConfig
	if err := unmarshalYAMLStrict(data, &externalConfig); err != nil {
		return nil, fmt.Errorf("parsing config file %s: %w", filePath, err)
	}
	config, err := NewConfig(dirPath, externalConfig)
	if err != nil {
		return nil, fmt.Errorf("validating config file %s: %w", filePath, err)
	}
	return config, nil
}

// InitConfig creates a new configuration file with a documented template.
// Creates the base directory if it does not exist.
// Returns the path to the created file, or an error if the file already exists.
func InitConfig(dirPath string) (string, error) {
	filePath := invctlpath.ConfigFilePath(dirPath)
	if _, err := os.Stat(filePath); err == nil {
		return "", fmt.Errorf("configuration file already exists: %s", filePath)
	}
	if err := os.MkdirAll(dirPath, 0o755); err != nil {
		return "", fmt.Errorf("creating base directory: %w", err)
	}
	if err := os.WriteFile(filePath, []byte(configTemplate), 0o644); err != nil {
		return "", err
	}
	return filePath, nil
}

// ValidateConfig reads and validates the configuration file from the given base directory.
func ValidateConfig(dirPath string) error {
	_, err := ReadConfig(dirPath)
	return err
}

// *** PRIVATE ***

func newThresholds(externalAdvisorConfig ExternalAdvisorConfig) (invctladvisor.Thresholds, error) {
	thresholds := invctladvisor.DefaultThresholds()
	if v := externalAdvisorConfig.ConcentrationPercent; v != nil {
		if *v <= 0 || *v > 100 {
			return invctladvisor.Thresholds{}, fmt.Errorf("advisor.concentration_percent must be in (0, 100], got %v", *v)
		}
		thresholds.ConcentrationPercent = *v
	}
	if v := externalAdvisorConfig.StrongPerformancePercent; v != nil {
		thresholds.StrongPerformancePercent = *v
	}
	if v := externalAdvisorConfig.WeakPerformancePercent; v != nil {
		thresholds.WeakPerformancePercent = *v
	}
	if thresholds.WeakPerformancePercent > thresholds.StrongPerformancePercent {
		return invctladvisor.Thresholds{}, fmt.Errorf(
			"advisor.weak_performance_percent (%v) must not exceed advisor.strong_performance_percent (%v)",
			thresholds.WeakPerformancePercent,
			thresholds.StrongPerformancePercent,
		)
	}
	if v := externalAdvisorConfig.LowYieldCount; v != nil {
		if *v < 1 {
			return invctladvisor.Thresholds{}, fmt.Errorf("advisor.low_yield_count must be at least 1, got %d", *v)
		}
		thresholds.LowYieldCount = *v
	}
	if v := externalAdvisorConfig.LowYieldPercent; v != nil {
		thresholds.LowYieldPercent = *v
	}
	if v := externalAdvisorConfig.MinSectors; v != nil {
		if *v < 1 {
			return invctladvisor.Thresholds{}, fmt.Errorf("advisor.min_sectors must be at least 1, got %d", *v)
		}
		thresholds.MinSectors = *v
	}
	return thresholds, nil
}

// unmarshalYAMLStrict unmarshals the data as YAML with strict field checking.
// If the data length is 0, this is a no-op.
func unmarshalYAMLStrict(data []byte, v any) error {
	if len(data) == 0 {
		return nil
	}
	yamlDecoder := yaml.NewDecoder(bytes.NewReader(data))
	// Reject unknown fields.
	yamlDecoder.KnownFields(true)
	if err := yamlDecoder.Decode(v); err != nil {
		return fmt.Errorf("could not unmarshal as YAML: %w", err)
	}
	return nil
}
