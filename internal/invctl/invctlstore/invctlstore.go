// Copyright 2026 Peter Edge
//
// All rights reserved.

// Package invctlstore persists transactions, quotes, and cached FX rates as
// YAML files within the invctl base directory.
//
// Numeric values are stored as decimal strings. Values that cannot be parsed
// are coerced to 0 and reported as ParseWarnings rather than failing the read.
package invctlstore

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/bufdev/invctl/internal/invctl/invctlledger"
	"github.com/bufdev/invctl/internal/standard/xmath"
	"github.com/bufdev/invctl/internal/standard/xos"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// dateLayout is the layout dates are written with.
const dateLayout = "2006-01-02"

// Ledger is the set of transactions read from one or more ledger files.
type Ledger struct {
	// Transactions are the transactions in file order.
	Transactions []invctlledger.Transaction
	// ParseWarnings are the values that could not be parsed and were coerced.
	ParseWarnings []ParseWarning
	// DuplicateIDs are transaction IDs seen more than once while merging.
	// Only the first occurrence is kept.
	DuplicateIDs []string

	// unparsed holds the raw entries that produced ParseWarnings, keyed by
	// transaction ID, so that Write preserves what the user typed.
	unparsed map[string]externalTransaction
}

// Write writes the ledger's transactions to the ledger file, creating parent
// directories as needed.
//
// Transactions that were read with ParseWarnings are written back with their
// original values rather than the coerced ones.
func (l *Ledger) Write(filePath string) error {
	externalLedger := externalLedger{
		Transactions: make([]externalTransaction, 0, len(l.Transactions)),
	}
	for _, transaction := range l.Transactions {
		if raw, ok := l.unparsed[transaction.ID]; ok {
			externalLedger.Transactions = append(externalLedger.Transactions, raw)
			continue
		}
		externalLedger.Transactions = append(externalLedger.Transactions, newExternalTransaction(transaction))
	}
	data, err := marshalYAML(externalLedger)
	if err != nil {
		return err
	}
	return xos.WriteFileAtomic(filePath, data)
}

// ParseWarning describes a stored value that could not be parsed.
type ParseWarning struct {
	// FilePath is the file containing the value.
	FilePath string
	// Key is the transaction ID or ticker the value belongs to.
	Key string
	// Field is the YAML field name.
	Field string
	// Value is the raw value.
	Value string
	// Err is the parse error.
	Err error
}

// String implements fmt.Stringer.
func (w ParseWarning) String() string {
	return fmt.Sprintf("%s: %s: invalid %s %q: %v", w.FilePath, w.Key, w.Field, w.Value, w.Err)
}

// NewTransactionID returns a new random transaction ID.
func NewTransactionID() string {
	return uuid.NewString()
}

// ReadLedger reads a single ledger file.
//
// A missing file is an empty ledger. Transactions without an ID are assigned
// one derived from the file path and the entry's values, so repeated reads of
// an unchanged file yield the same IDs.
func ReadLedger(filePath string) (*Ledger, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &Ledger{}, nil
		}
		return nil, fmt.Errorf("reading ledger file: %w", err)
	}
	var externalLedger externalLedger
	if err := unmarshalYAMLStrict(data, &externalLedger); err != nil {
		return nil, fmt.Errorf("parsing ledger file %s: %w", filePath, err)
	}
	ledger := &Ledger{
		Transactions: make([]invctlledger.Transaction, 0, len(externalLedger.Transactions)),
		unparsed:     make(map[string]externalTransaction),
	}
	occurrences := make(map[string]int)
	for _, externalTransaction := range externalLedger.Transactions {
		if strings.TrimSpace(externalTransaction.ID) == "" {
			key := externalTransaction.contentKey()
			externalTransaction.ID = derivedTransactionID(filePath, key, occurrences[key])
			occurrences[key]++
		}
		transaction, parseWarnings := externalTransaction.toTransaction(filePath)
		ledger.Transactions = append(ledger.Transactions, transaction)
		if len(parseWarnings) > 0 {
			ledger.ParseWarnings = append(ledger.ParseWarnings, parseWarnings...)
			externalTransaction.ID = transaction.ID
			ledger.unparsed[transaction.ID] = externalTransaction
		}
	}
	return ledger, nil
}

// WriteLedger writes the transactions to the ledger file, creating parent
// directories as needed.
func WriteLedger(filePath string, transactions []invctlledger.Transaction) error {
	ledger := &Ledger{
		Transactions: transactions,
	}
	return ledger.Write(filePath)
}

// MergeLedgers reads the primary ledger file plus every file under
// ledgersDirPath matching the doublestar pattern, and merges them.
//
// Files are read in sorted path order with the primary file first.
// Transactions are deduplicated by ID, keeping the first occurrence.
// A missing ledgers directory is not an error.
func MergeLedgers(primaryFilePath string, ledgersDirPath string, pattern string) (*Ledger, error) {
	filePaths := []string{primaryFilePath}
	if _, err := os.Stat(ledgersDirPath); err == nil {
		matches, err := doublestar.FilepathGlob(filepath.Join(ledgersDirPath, filepath.FromSlash(pattern)))
		if err != nil {
			return nil, fmt.Errorf("matching ledger files: %w", err)
		}
		slices.Sort(matches)
		filePaths = append(filePaths, matches...)
	} else if !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}
	merged := &Ledger{}
	seenIDs := make(map[string]struct{})
	for _, filePath := range filePaths {
		ledger, err := ReadLedger(filePath)
		if err != nil {
			return nil, err
		}
		merged.ParseWarnings = append(merged.ParseWarnings, ledger.ParseWarnings...)
		for _, transaction := range ledger.Transactions {
			if _, ok := seenIDs[transaction.ID]; ok {
				merged.DuplicateIDs = append(merged.DuplicateIDs, transaction.ID)
				continue
			}
			seenIDs[transaction.ID] = struct{}{}
			merged.Transactions = append(merged.Transactions, transaction)
		}
	}
	return merged, nil
}

// ParseDecimal parses a decimal string into a float64.
//
// An empty string is 0 without error.
func ParseDecimal(value string) (float64, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, nil
	}
	d, err := decimal.NewFromString(value)
	if err != nil {
		return 0, err
	}
	return d.InexactFloat64(), nil
}

// FormatDecimal formats a float64 as the shortest decimal string that
// round-trips. Non-finite values format as "0".
func FormatDecimal(value float64) string {
	return decimal.NewFromFloat(xmath.Coerce(value)).String()
}

// ParseDate parses a date in YYYY-MM-DD or RFC 3339 format.
func ParseDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if t, err := time.Parse(dateLayout, value); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("must be YYYY-MM-DD or RFC 3339: %w", err)
	}
	return t, nil
}

// *** PRIVATE ***

type externalLedger struct {
	Transactions []externalTransaction `yaml:"transactions"`
}

type externalTransaction struct {
	ID        string `yaml:"id"`
	Ticker    string `yaml:"ticker"`
	Kind      string `yaml:"kind"`
	Quantity  string `yaml:"quantity"`
	UnitPrice string `yaml:"unit_price"`
	Date      string `yaml:"date"`
	Name      string `yaml:"name,omitempty"`
	AssetType string `yaml:"asset_type,omitempty"`
	Sector    string `yaml:"sector,omitempty"`
	Country   string `yaml:"country,omitempty"`
	Currency  string `yaml:"currency,omitempty"`
}

func newExternalTransaction(transaction invctlledger.Transaction) externalTransaction {
	date := transaction.Date.Format(dateLayout)
	if hour, minute, second := transaction.Date.Clock(); hour != 0 || minute != 0 || second != 0 {
		date = transaction.Date.Format(time.RFC3339)
	}
	return externalTransaction{
		ID:        transaction.ID,
		Ticker:    transaction.Ticker,
		Kind:      transaction.Kind.String(),
		Quantity:  FormatDecimal(transaction.Quantity),
		UnitPrice: FormatDecimal(transaction.UnitPrice),
		Date:      date,
		Name:      transaction.Name,
		AssetType: transaction.AssetType,
		Sector:    transaction.Sector,
		Country:   transaction.Country,
		Currency:  transaction.Currency,
	}
}

func (e externalTransaction) toTransaction(filePath string) (invctlledger.Transaction, []ParseWarning) {
	transaction := invctlledger.Transaction{
		ID:        strings.TrimSpace(e.ID),
		Ticker:    e.Ticker,
		Name:      e.Name,
		AssetType: e.AssetType,
		Sector:    e.Sector,
		Country:   e.Country,
		Currency:  e.Currency,
	}
	var parseWarnings []ParseWarning
	warn := func(field string, value string, err error) {
		parseWarnings = append(parseWarnings, ParseWarning{
			FilePath: filePath,
			Key:      transaction.ID,
			Field:    field,
			Value:    value,
			Err:      err,
		})
	}
	kind, err := invctlledger.ParseKind(e.Kind)
	if err != nil {
		warn("kind", e.Kind, err)
	}
	transaction.Kind = kind
	if transaction.Quantity, err = ParseDecimal(e.Quantity); err != nil {
		warn("quantity", e.Quantity, err)
	}
	if transaction.UnitPrice, err = ParseDecimal(e.UnitPrice); err != nil {
		warn("unit_price", e.UnitPrice, err)
	}
	if transaction.Date, err = ParseDate(e.Date); err != nil {
		warn("date", e.Date, err)
	}
	return transaction, parseWarnings
}

// contentKey identifies an entry by its raw values.
func (e externalTransaction) contentKey() string {
	return strings.Join(
		[]string{
			invctlledger.NormalizeTicker(e.Ticker),
			strings.ToLower(strings.TrimSpace(e.Kind)),
			strings.TrimSpace(e.Quantity),
			strings.TrimSpace(e.UnitPrice),
			strings.TrimSpace(e.Date),
			e.Name,
			e.AssetType,
			e.Sector,
			e.Country,
			e.Currency,
		},
		"\x1f",
	)
}

// derivedTransactionID returns a name-based UUID for an entry without an ID.
// Identical entries within a file are told apart by their occurrence number.
func derivedTransactionID(filePath string, contentKey string, occurrence int) string {
	if absFilePath, err := filepath.Abs(filePath); err == nil {
		filePath = absFilePath
	}
	name := "file://" + filepath.ToSlash(filePath) + "#" + contentKey + "\x1f" + strconv.Itoa(occurrence)
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte(name)).String()
}

func marshalYAML(v any) ([]byte, error) {
	var buffer bytes.Buffer
	yamlEncoder := yaml.NewEncoder(&buffer)
	yamlEncoder.SetIndent(2)
	if err := yamlEncoder.Encode(v); err != nil {
		return nil, fmt.Errorf("could not marshal as YAML: %w", err)
	}
	if err := yamlEncoder.Close(); err != nil {
		return nil, err
	}
	return buffer.Bytes(), nil
}

// unmarshalYAMLStrict unmarshals the data as YAML with strict field checking.
// If the data length is 0, this is a no-op.
func unmarshalYAMLStrict(data []byte, v any) error {
	if len(data) == 0 {
		return nil
	}
	yamlDecoder := yaml.NewDecoder(bytes.NewReader(data))
	yamlDecoder.KnownFields(true)
	if err := yamlDecoder.Decode(v); err != nil {
		return fmt.Errorf("could not unmarshal as YAML: %w", err)
	}
	return nil
}
