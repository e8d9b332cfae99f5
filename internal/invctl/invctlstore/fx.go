// Copyright 2026 Peter Edge
//
// All rights reserved.

package invctlstore

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/bufdev/invctl/internal/standard/xos"
)

// FXRate is a cached exchange rate.
type FXRate struct {
	// Base is the base currency code, for example USD.
	Base string
	// Quote is the quote currency code, for example BRL.
	Quote string
	// Rate is the number of quote currency units per 1 base currency unit.
	Rate float64
	// Date is the date the rate applies to.
	Date time.Time
	// FetchedAt is when the rate was fetched.
	FetchedAt time.Time
}

// ReadFXRate reads a cached FX rate file.
//
// Returns nil without error if the file does not exist.
func ReadFXRate(filePath string) (*FXRate, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading fx rate file: %w", err)
	}
	var externalFXRate externalFXRate
	if err := unmarshalYAMLStrict(data, &externalFXRate); err != nil {
		return nil, fmt.Errorf("parsing fx rate file %s: %w", filePath, err)
	}
	rate, err := ParseDecimal(externalFXRate.Rate)
	if err != nil {
		return nil, fmt.Errorf("fx rate file %s: invalid rate %q: %w", filePath, externalFXRate.Rate, err)
	}
	if rate <= 0 {
		return nil, fmt.Errorf("fx rate file %s: rate must be positive, got %q", filePath, externalFXRate.Rate)
	}
	fxRate := &FXRate{
		Base:  strings.ToUpper(externalFXRate.Base),
		Quote: strings.ToUpper(externalFXRate.Quote),
		Rate:  rate,
	}
	if externalFXRate.Date != "" {
		if fxRate.Date, err = ParseDate(externalFXRate.Date); err != nil {
			return nil, fmt.Errorf("fx rate file %s: invalid date %q: %w", filePath, externalFXRate.Date, err)
		}
	}
	if externalFXRate.FetchedAt != "" {
		if fxRate.FetchedAt, err = time.Parse(time.RFC3339, externalFXRate.FetchedAt); err != nil {
			return nil, fmt.Errorf("fx rate file %s: invalid fetched_at %q: %w", filePath, externalFXRate.FetchedAt, err)
		}
	}
	return fxRate, nil
}

// WriteFXRate writes a cached FX rate file.
func WriteFXRate(filePath string, fxRate FXRate) error {
	if fxRate.Rate <= 0 {
		return fmt.Errorf("fx rate must be positive, got %v", fxRate.Rate)
	}
	externalFXRate := externalFXRate{
		Base:  strings.ToUpper(fxRate.Base),
		Quote: strings.ToUpper(fxRate.Quote),
		Rate:  FormatDecimal(fxRate.Rate),
	}
	if !fxRate.Date.IsZero() {
		externalFXRate.Date = fxRate.Date.Format(dateLayout)
	}
	if !fxRate.FetchedAt.IsZero() {
		externalFXRate.FetchedAt = fxRate.FetchedAt.UTC().Format(time.RFC3339)
	}
	data, err := marshalYAML(externalFXRate)
	if err != nil {
		return err
	}
	return xos.WriteFileAtomic(filePath, data)
}

// *** PRIVATE ***

type externalFXRate struct {
	Base      string `yaml:"base"`
	Quote     string `yaml:"quote"`
	Rate      string `yaml:"rate"`
	Date      string `yaml:"date,omitempty"`
	FetchedAt string `yaml:"fetched_at,omitempty"`
}
