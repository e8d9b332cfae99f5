// Copyright 2026 Peter Edge
//
// All rights reserved.

// Package invctlledger provides the transaction model, normalization, and
// validation for invctl.
//
// Transactions are immutable input records. Normalize returns a chronologically
// ordered copy with normalized tickers that can be replayed deterministically by
// the holdings projector. Validate is the upstream gate that rejects malformed
// transactions and over-sells before they reach the projector.
package invctlledger

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/bufdev/invctl/internal/standard/xmath"
)

// quantityTolerance is the slack allowed when checking a sell against the held quantity.
const quantityTolerance = 1e-9

// Kind is the direction of a transaction.
type Kind int

const (
	// KindBuy increases a position.
	KindBuy Kind = iota + 1
	// KindSell decreases a position.
	KindSell
)

// String returns the lowercase name of the kind.
func (k Kind) String() string {
	switch k {
	case KindBuy:
		return "buy"
	case KindSell:
		return "sell"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// ParseKind parses a kind name, case-insensitively.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "buy":
		return KindBuy, nil
	case "sell":
		return KindSell, nil
	default:
		return 0, fmt.Errorf("unknown transaction kind %q, must be one of: buy, sell", s)
	}
}

// MarshalText implements encoding.TextMarshaler.
func (k Kind) MarshalText() ([]byte, error) {
	switch k {
	case KindBuy, KindSell:
		return []byte(k.String()), nil
	default:
		return nil, fmt.Errorf("cannot marshal unknown transaction kind %d", int(k))
	}
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *Kind) UnmarshalText(data []byte) error {
	kind, err := ParseKind(string(data))
	if err != nil {
		return err
	}
	*k = kind
	return nil
}

// Well-known asset types. Any other string is accepted and aggregated as-is,
// and an empty asset type is aggregated under OtherBucket.
const (
	AssetTypeEquity       = "Equity"
	AssetTypeFund         = "Fund"
	AssetTypeForeignStock = "ForeignStock"
	AssetTypeForeignFund  = "ForeignFund"
	AssetTypeETF          = "ETF"
	AssetTypeCrypto       = "Crypto"
)

// OtherBucket is the grouping key used for an empty asset type or sector.
const OtherBucket = "Other"

// CurrencyUSD is the currency code whose holdings are converted with the FX rate.
const CurrencyUSD = "USD"

// Transaction is an immutable buy or sell record.
type Transaction struct {
	// ID uniquely identifies the transaction within a ledger.
	ID string `json:"id"`
	// Ticker is the instrument identifier as entered.
	Ticker string `json:"ticker"`
	// Kind is buy or sell.
	Kind Kind `json:"kind"`
	// Quantity is the number of units traded.
	Quantity float64 `json:"quantity"`
	// UnitPrice is the price per unit in the instrument's native currency.
	UnitPrice float64 `json:"unit_price"`
	// Date orders the transaction in the ledger.
	Date time.Time `json:"date"`
	// Name is the instrument display name.
	Name string `json:"name,omitempty"`
	// AssetType is the instrument class (e.g., "Equity", "Crypto").
	AssetType string `json:"asset_type,omitempty"`
	// Sector is the sector classification.
	Sector string `json:"sector,omitempty"`
	// Country is the listing country.
	Country string `json:"country,omitempty"`
	// Currency is the native currency code.
	Currency string `json:"currency,omitempty"`
}

// NormalizeTicker returns the trimmed, upper-cased form of a ticker used as
// the identity of a holding.
func NormalizeTicker(ticker string) string {
	return strings.ToUpper(strings.TrimSpace(ticker))
}

// IsUSD returns whether the currency code denotes US dollars.
func IsUSD(currency string) bool {
	return strings.EqualFold(strings.TrimSpace(currency), CurrencyUSD)
}

// IsCrypto returns whether the asset type is a crypto asset.
func IsCrypto(assetType string) bool {
	return strings.EqualFold(strings.TrimSpace(assetType), AssetTypeCrypto)
}

// IsForeign returns whether the asset type is in the foreign allow-list used
// for USD exposure and daily profit.
func IsForeign(assetType string) bool {
	switch strings.TrimSpace(assetType) {
	case AssetTypeForeignStock, AssetTypeForeignFund, AssetTypeETF:
		return true
	default:
		return false
	}
}

// IsEquity returns whether the asset type is a direct equity holding.
func IsEquity(assetType string) bool {
	switch strings.TrimSpace(assetType) {
	case AssetTypeEquity, AssetTypeForeignStock:
		return true
	default:
		return false
	}
}

// IsFund returns whether the asset type is a pooled fund holding.
func IsFund(assetType string) bool {
	switch strings.TrimSpace(assetType) {
	case AssetTypeFund, AssetTypeForeignFund, AssetTypeETF:
		return true
	default:
		return false
	}
}

// BucketKey returns the aggregation key for an asset type or sector value,
// substituting OtherBucket for empty values.
func BucketKey(value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return OtherBucket
	}
	return value
}

// Normalize returns a copy of the transactions sorted ascending by date with
// normalized tickers and coerced numeric fields.
//
// The sort is stable so transactions sharing a date keep their input order.
// The input slice is never modified and no transaction is dropped.
func Normalize(transactions []Transaction) []Transaction {
	normalized := make([]Transaction, len(transactions))
	for i, transaction := range transactions {
		transaction.Ticker = NormalizeTicker(transaction.Ticker)
		transaction.Quantity = xmath.Coerce(transaction.Quantity)
		transaction.UnitPrice = xmath.Coerce(transaction.UnitPrice)
		normalized[i] = transaction
	}
	slices.SortStableFunc(normalized, func(a Transaction, b Transaction) int {
		return a.Date.Compare(b.Date)
	})
	return normalized
}

// Delete returns a copy of the transactions without the transaction with the given ID.
// Returns false if no transaction has the ID.
func Delete(transactions []Transaction, id string) ([]Transaction, bool) {
	result := make([]Transaction, 0, len(transactions))
	found := false
	for _, transaction := range transactions {
		if transaction.ID == id {
			found = true
			continue
		}
		result = append(result, transaction)
	}
	return result, found
}

// Find returns the transaction with the given ID.
func Find(transactions []Transaction, id string) (Transaction, bool) {
	for _, transaction := range transactions {
		if transaction.ID == id {
			return transaction, true
		}
	}
	return Transaction{}, false
}
