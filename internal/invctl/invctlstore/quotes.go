// Copyright 2026 Peter Edge
//
// All rights reserved.

package invctlstore

import (
	"errors"
	"fmt"
	"os"
	"slices"

	"github.com/bufdev/invctl/internal/invctl/invctlledger"
	"github.com/bufdev/invctl/internal/invctl/invctlvaluation"
	"github.com/bufdev/invctl/internal/standard/xos"
)

// Quotes is the set of quotes read from a quotes file, keyed by normalized ticker.
type Quotes struct {
	// Quotes maps normalized tickers to quotes.
	Quotes map[string]invctlvaluation.Quote
	// ParseWarnings are the values that could not be parsed and were coerced.
	ParseWarnings []ParseWarning
}

// ReadQuotes reads the quotes file. A missing file has no quotes.
//
// Keys are read in sorted order. A key that normalizes to a ticker already
// read is ignored and reported as a ParseWarning.
func ReadQuotes(filePath string) (*Quotes, error) {
	quotes := &Quotes{
		Quotes: make(map[string]invctlvaluation.Quote),
	}
	data, err := os.ReadFile(filePath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return quotes, nil
		}
		return nil, fmt.Errorf("reading quotes file: %w", err)
	}
	var externalQuotes externalQuotes
	if err := unmarshalYAMLStrict(data, &externalQuotes); err != nil {
		return nil, fmt.Errorf("parsing quotes file %s: %w", filePath, err)
	}
	keys := make([]string, 0, len(externalQuotes.Quotes))
	for key := range externalQuotes.Quotes {
		keys = append(keys, key)
	}
	slices.Sort(keys)
	for _, key := range keys {
		externalQuote := externalQuotes.Quotes[key]
		ticker := invctlledger.NormalizeTicker(key)
		if _, ok := quotes.Quotes[ticker]; ok {
			quotes.ParseWarnings = append(quotes.ParseWarnings, ParseWarning{
				FilePath: filePath,
				Key:      ticker,
				Field:    "ticker",
				Value:    key,
				Err:      fmt.Errorf("duplicate of ticker %s, ignored", ticker),
			})
			continue
		}
		var quote invctlvaluation.Quote
		for _, field := range []struct {
			name  string
			value string
			out   *float64
		}{
			{name: "price", value: externalQuote.Price, out: &quote.Price},
			{name: "previous_close", value: externalQuote.PreviousClose, out: &quote.PreviousClose},
			{name: "change", value: externalQuote.Change, out: &quote.Change},
			{name: "change_percent", value: externalQuote.ChangePercent, out: &quote.ChangePercent},
		} {
			value, err := ParseDecimal(field.value)
			if err != nil {
				quotes.ParseWarnings = append(quotes.ParseWarnings, ParseWarning{
					FilePath: filePath,
					Key:      ticker,
					Field:    field.name,
					Value:    field.value,
					Err:      err,
				})
			}
			*field.out = value
		}
		quote.IsMock = externalQuote.Mock
		quotes.Quotes[ticker] = quote
	}
	return quotes, nil
}

// WriteQuotes writes the quotes to the quotes file.
func WriteQuotes(filePath string, quotes map[string]invctlvaluation.Quote) error {
	externalQuotes := externalQuotes{
		Quotes: make(map[string]externalQuote, len(quotes)),
	}
	for ticker, quote := range quotes {
		externalQuotes.Quotes[invctlledger.NormalizeTicker(ticker)] = externalQuote{
			Price:         FormatDecimal(quote.Price),
			PreviousClose: FormatDecimal(quote.PreviousClose),
			Change:        FormatDecimal(quote.Change),
			ChangePercent: FormatDecimal(quote.ChangePercent),
			Mock:          quote.IsMock,
		}
	}
	data, err := marshalYAML(externalQuotes)
	if err != nil {
		return err
	}
	return xos.WriteFileAtomic(filePath, data)
}

// *** PRIVATE ***

type externalQuotes struct {
	Quotes map[string]externalQuote `yaml:"quotes"`
}

type externalQuote struct {
	Price         string `yaml:"price"`
	PreviousClose string `yaml:"previous_close,omitempty"`
	Change        string `yaml:"change,omitempty"`
	ChangePercent string `yaml:"change_percent,omitempty"`
	Mock          bool   `yaml:"mock,omitempty"`
}
