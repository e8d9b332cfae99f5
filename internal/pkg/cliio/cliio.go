// Copyright 2026 Peter Edge
//
// All rights reserved.

// Package cliio provides output formatting for CLI commands (table, CSV, JSON)
// and the value formatters shared by every command.
package cliio

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/Rhymond/go-money"
	"github.com/bufdev/invctl/internal/standard/xmath"
	"github.com/shopspring/decimal"
)

// Format represents the output format for CLI commands.
type Format string

const (
	// FormatTable is the default table output format.
	FormatTable Format = "table"
	// FormatCSV is the CSV output format.
	FormatCSV Format = "csv"
	// FormatJSON is the JSON output format.
	FormatJSON Format = "json"
)

// ParseFormat parses a string into a Format, returning an error for unknown formats.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "table":
		return FormatTable, nil
	case "csv":
		return FormatCSV, nil
	case "json":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("unknown format %q, must be one of: table, csv, json", s)
	}
}

// Table is tabular output with an optional totals row.
type Table struct {
	// Headers are the column names.
	Headers []string
	// Rows are the data rows.
	Rows [][]string
	// Totals is the optional totals row, written after a blank line in table
	// format and omitted from CSV.
	Totals []string
}

// Write writes the table in table or CSV format, or the objects as JSON lines.
func Write[O any](writer io.Writer, format Format, table Table, objects []O) error {
	switch format {
	case FormatTable:
		return WriteTable(writer, table)
	case FormatCSV:
		return WriteCSV(writer, table)
	case FormatJSON:
		return WriteJSON(writer, objects...)
	default:
		return fmt.Errorf("unsupported format: %s", format)
	}
}

// WriteTable writes the table using tabwriter for aligned columns.
//
// The totals row, if any, goes through the same tabwriter as the data so
// columns align between data and totals.
func WriteTable(writer io.Writer, table Table) error {
	tw := tabwriter.NewWriter(writer, 0, 0, 2, ' ', 0)
	lines := make([][]string, 0, len(table.Rows)+3)
	lines = append(lines, table.Headers)
	lines = append(lines, table.Rows...)
	if len(table.Totals) > 0 {
		lines = append(lines, make([]string, len(table.Headers)), table.Totals)
	}
	for _, line := range lines {
		if _, err := fmt.Fprintln(tw, strings.Join(line, "\t")); err != nil {
			return err
		}
	}
	return tw.Flush()
}

// WriteCSV writes the headers and rows as CSV records.
func WriteCSV(writer io.Writer, table Table) error {
	csvWriter := csv.NewWriter(writer)
	if err := csvWriter.Write(table.Headers); err != nil {
		return err
	}
	if err := csvWriter.WriteAll(table.Rows); err != nil {
		return err
	}
	return csvWriter.Error()
}

// WriteJSON writes objects as JSON with newlines between each object.
func WriteJSON[O any](writer io.Writer, objects ...O) error {
	encoder := json.NewEncoder(writer)
	for _, object := range objects {
		if err := encoder.Encode(object); err != nil {
			return err
		}
	}
	return nil
}

// FormatMoney formats an amount in the given ISO 4217 currency, for example
// "$1,234.50" for USD. Unknown currencies format as "1234.50 XYZ".
func FormatMoney(amount float64, currencyCode string) string {
	currencyCode = strings.ToUpper(strings.TrimSpace(currencyCode))
	amountDecimal := decimal.NewFromFloat(xmath.Coerce(amount))
	currency := money.GetCurrency(currencyCode)
	if currency == nil {
		return strings.TrimSpace(amountDecimal.StringFixed(2) + " " + currencyCode)
	}
	minorUnits := amountDecimal.Shift(int32(currency.Fraction)).Round(0).IntPart()
	return money.New(minorUnits, currency.Code).Display()
}

// FormatSignedMoney is FormatMoney with a leading "+" for positive amounts.
func FormatSignedMoney(amount float64, currencyCode string) string {
	if xmath.Coerce(amount) > 0 {
		return "+" + FormatMoney(amount, currencyCode)
	}
	return FormatMoney(amount, currencyCode)
}

// FormatPercent formats a percentage with two decimal places, for example "12.35%".
func FormatPercent(percent float64) string {
	return decimal.NewFromFloat(xmath.Coerce(percent)).StringFixed(2) + "%"
}

// FormatSignedPercent is FormatPercent with a leading "+" for positive values.
func FormatSignedPercent(percent float64) string {
	if xmath.Coerce(percent) > 0 {
		return "+" + FormatPercent(percent)
	}
	return FormatPercent(percent)
}

// FormatQuantity formats a quantity without trailing zeros, for example "0.25".
func FormatQuantity(quantity float64) string {
	return decimal.NewFromFloat(xmath.Coerce(quantity)).String()
}
