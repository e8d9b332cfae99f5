// Copyright 2026 Peter Edge
//
// All rights reserved.

package invctlledger

import (
	"fmt"
	"math"
)

// InvalidTransactionError is returned by Validate when a transaction has a
// malformed field.
type InvalidTransactionError struct {
	// ID is the ID of the offending transaction.
	ID string
	// Ticker is the normalized ticker of the offending transaction.
	Ticker string
	// Reason describes the malformed field.
	Reason string
}

// Error implements error.
func (e *InvalidTransactionError) Error() string {
	return fmt.Sprintf("invalid transaction %s (%s): %s", e.ID, e.Ticker, e.Reason)
}

// OverSellError is returned by Validate when a sell exceeds the quantity held
// at the time of the sale.
type OverSellError struct {
	// ID is the ID of the offending sell.
	ID string
	// Ticker is the normalized ticker being sold.
	Ticker string
	// Held is the quantity held immediately before the sell.
	Held float64
	// Sold is the quantity the sell attempted to remove.
	Sold float64
}

// Error implements error.
func (e *OverSellError) Error() string {
	return fmt.Sprintf("sell %s of %s exceeds held quantity: sold %g, held %g", e.ID, e.Ticker, e.Sold, e.Held)
}

// ValidateTransaction checks the fields of a single transaction.
func ValidateTransaction(transaction Transaction) error {
	ticker := NormalizeTicker(transaction.Ticker)
	invalid := func(reason string) error {
		return &InvalidTransactionError{ID: transaction.ID, Ticker: ticker, Reason: reason}
	}
	if ticker == "" {
		return invalid("ticker is required")
	}
	if transaction.Kind != KindBuy && transaction.Kind != KindSell {
		return invalid(fmt.Sprintf("unknown kind %s", transaction.Kind))
	}
	if !isPositiveFinite(transaction.Quantity) {
		return invalid(fmt.Sprintf("quantity must be positive, got %g", transaction.Quantity))
	}
	if !isPositiveFinite(transaction.UnitPrice) {
		return invalid(fmt.Sprintf("unit price must be positive, got %g", transaction.UnitPrice))
	}
	if transaction.Date.IsZero() {
		return invalid("date is required")
	}
	return nil
}

// Validate checks every transaction and replays the quantities in
// chronological order, rejecting any sell that exceeds the held quantity.
//
// Returns the first error found, either an *InvalidTransactionError or an
// *OverSellError.
func Validate(transactions []Transaction) error {
	for _, transaction := range transactions {
		if err := ValidateTransaction(transaction); err != nil {
			return err
		}
	}
	held := make(map[string]float64)
	for _, transaction := range Normalize(transactions) {
		switch transaction.Kind {
		case KindBuy:
			held[transaction.Ticker] += transaction.Quantity
		case KindSell:
			quantity := held[transaction.Ticker]
			if transaction.Quantity > quantity+quantityTolerance {
				return &OverSellError{
					ID:     transaction.ID,
					Ticker: transaction.Ticker,
					Held:   quantity,
					Sold:   transaction.Quantity,
				}
			}
			quantity -= transaction.Quantity
			if quantity <= quantityTolerance {
				quantity = 0
			}
			held[transaction.Ticker] = quantity
		}
	}
	return nil
}

// *** PRIVATE ***

func isPositiveFinite(f float64) bool {
	return f > 0 && !math.IsInf(f, 0)
}
