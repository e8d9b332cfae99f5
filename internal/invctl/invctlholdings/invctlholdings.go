// Copyright 2026 Peter Edge
//
// All rights reserved.

// Package invctlholdings projects a transaction ledger into current holdings.
//
// Holdings are computed with weighted-average-cost accounting: buys blend
// into the average cost, and sells remove cost at the average cost in effect
// at the time of the sale rather than at the sale price. Realized profit is
// recorded per sell. Over-sells are clamped and recorded rather than failing,
// since the ledger is expected to have been validated upstream.
package invctlholdings

import (
	"slices"
	"strings"
	"time"

	"github.com/bufdev/invctl/internal/invctl/invctlledger"
	"github.com/bufdev/invctl/internal/standard/xmath"
)

// quantityTolerance absorbs floating-point residue when a position is sold down.
const quantityTolerance = 1e-9

// Holding is the current position in one instrument.
type Holding struct {
	// Ticker is the normalized ticker.
	Ticker string `json:"ticker"`
	// Name is the instrument name from the first transaction seen.
	Name string `json:"name,omitempty"`
	// AssetType is the instrument class from the first transaction seen.
	AssetType string `json:"asset_type,omitempty"`
	// Sector is the sector from the first transaction seen.
	Sector string `json:"sector,omitempty"`
	// Country is the country from the first transaction seen.
	Country string `json:"country,omitempty"`
	// Currency is the native currency from the first transaction seen.
	Currency string `json:"currency,omitempty"`
	// Quantity is the number of units held, never negative.
	Quantity float64 `json:"quantity"`
	// AverageCost is the weighted average cost per unit in the native currency.
	AverageCost float64 `json:"average_cost"`
	// TotalInvested is the remaining cost basis in the native currency.
	TotalInvested float64 `json:"total_invested"`
	// CurrentPrice is the last known native price. It is seeded from the
	// first transaction and replaced by live quotes during valuation.
	CurrentPrice float64 `json:"current_price"`
	// MonthlyDividend is the expected monthly dividend income in the local
	// currency, 0 if unknown.
	MonthlyDividend float64 `json:"monthly_dividend,omitempty"`
}

// IsOpen returns whether the holding has a positive quantity.
func (h Holding) IsOpen() bool {
	return h.Quantity > 0
}

// Sale records the realized result of a single sell transaction.
type Sale struct {
	// TransactionID is the ID of the sell transaction.
	TransactionID string `json:"transaction_id"`
	// Ticker is the normalized ticker sold.
	Ticker string `json:"ticker"`
	// Date is the sell date.
	Date time.Time `json:"date"`
	// Quantity is the quantity sold.
	Quantity float64 `json:"quantity"`
	// UnitPrice is the sale price per unit.
	UnitPrice float64 `json:"unit_price"`
	// AverageCost is the average cost per unit at the time of the sale.
	AverageCost float64 `json:"average_cost"`
	// RealizedProfit is Quantity * (UnitPrice - AverageCost).
	RealizedProfit float64 `json:"realized_profit"`
}

// OverSell records a sell that exceeded the held quantity. The position was
// closed and its cost basis reset.
type OverSell struct {
	// TransactionID is the ID of the sell transaction.
	TransactionID string
	// Ticker is the normalized ticker sold.
	Ticker string
	// Held is the quantity held before the sell.
	Held float64
	// Sold is the quantity the sell attempted to remove.
	Sold float64
}

// Result is the output of a projection.
type Result struct {
	// Holdings maps normalized tickers to holdings, including closed ones.
	Holdings map[string]Holding
	// Sales records the realized profit of every sell, in ledger order.
	Sales []Sale
	// OverSells records sells that exceeded the held quantity.
	OverSells []OverSell
}

// Portfolio returns the open holdings sorted by ticker.
func (r *Result) Portfolio() []Holding {
	return r.filter(Holding.IsOpen)
}

// Closed returns the holdings whose quantity reached 0, sorted by ticker.
func (r *Result) Closed() []Holding {
	return r.filter(func(h Holding) bool { return !h.IsOpen() })
}

// RealizedProfit returns the total realized profit over all sales.
func (r *Result) RealizedProfit() float64 {
	var total float64
	for _, sale := range r.Sales {
		total += sale.RealizedProfit
	}
	return total
}

// SalesBetween returns the sales dated within [start, end). A zero start or
// end leaves that side unbounded.
func (r *Result) SalesBetween(start time.Time, end time.Time) []Sale {
	var sales []Sale
	for _, sale := range r.Sales {
		if !start.IsZero() && sale.Date.Before(start) {
			continue
		}
		if !end.IsZero() && !sale.Date.Before(end) {
			continue
		}
		sales = append(sales, sale)
	}
	return sales
}

// RealizedProfitBetween returns the realized profit of sales dated within
// [start, end). A zero start or end leaves that side unbounded.
func (r *Result) RealizedProfitBetween(start time.Time, end time.Time) float64 {
	var total float64
	for _, sale := range r.SalesBetween(start, end) {
		total += sale.RealizedProfit
	}
	return total
}

// RealizedProfitByTicker returns the total realized profit per ticker.
func (r *Result) RealizedProfitByTicker() map[string]float64 {
	result := make(map[string]float64)
	for _, sale := range r.Sales {
		result[sale.Ticker] += sale.RealizedProfit
	}
	return result
}

// Project folds the transactions into holdings.
//
// The transactions are normalized first, so callers may pass them in any
// order and with unnormalized tickers. Each call returns a fresh Result and
// the input is never modified.
func Project(transactions []invctlledger.Transaction) *Result {
	result := &Result{
		Holdings: make(map[string]Holding),
	}
	for _, transaction := range invctlledger.Normalize(transactions) {
		holding, ok := result.Holdings[transaction.Ticker]
		if !ok {
			holding = newHolding(transaction)
		}
		next, sale, overSell := apply(holding, transaction)
		result.Holdings[transaction.Ticker] = next
		if sale != nil {
			result.Sales = append(result.Sales, *sale)
		}
		if overSell != nil {
			result.OverSells = append(result.OverSells, *overSell)
		}
	}
	return result
}

// Override replaces descriptive metadata on a holding. Empty fields are ignored.
type Override struct {
	Name            string
	AssetType       string
	Sector          string
	Country         string
	MonthlyDividend float64
}

// ApplyOverrides returns a copy of the holdings with the overrides for their
// tickers applied. Override keys are normalized before lookup.
func ApplyOverrides(holdings []Holding, overrides map[string]Override) []Holding {
	normalizedOverrides := make(map[string]Override, len(overrides))
	for ticker, override := range overrides {
		normalizedOverrides[invctlledger.NormalizeTicker(ticker)] = override
	}
	result := make([]Holding, len(holdings))
	for i, holding := range holdings {
		if override, ok := normalizedOverrides[holding.Ticker]; ok {
			holding.Name = firstNonEmpty(override.Name, holding.Name)
			holding.AssetType = firstNonEmpty(override.AssetType, holding.AssetType)
			holding.Sector = firstNonEmpty(override.Sector, holding.Sector)
			holding.Country = firstNonEmpty(override.Country, holding.Country)
			if override.MonthlyDividend != 0 {
				holding.MonthlyDividend = xmath.Coerce(override.MonthlyDividend)
			}
		}
		result[i] = holding
	}
	return result
}

// *** PRIVATE ***

// newHolding seeds a holding from the first transaction seen for its ticker.
func newHolding(transaction invctlledger.Transaction) Holding {
	return Holding{
		Ticker:       transaction.Ticker,
		Name:         transaction.Name,
		AssetType:    transaction.AssetType,
		Sector:       transaction.Sector,
		Country:      transaction.Country,
		Currency:     strings.ToUpper(strings.TrimSpace(transaction.Currency)),
		CurrentPrice: xmath.NonNegative(transaction.UnitPrice),
	}
}

// apply returns the holding after the transaction, plus the sale record for
// sells and the over-sell record if the sell exceeded the held quantity.
func apply(holding Holding, transaction invctlledger.Transaction) (Holding, *Sale, *OverSell) {
	quantity := xmath.NonNegative(transaction.Quantity)
	unitPrice := xmath.NonNegative(transaction.UnitPrice)
	switch transaction.Kind {
	case invctlledger.KindBuy:
		holding.TotalInvested += quantity * unitPrice
		holding.Quantity += quantity
		holding.AverageCost = xmath.Div(holding.TotalInvested, holding.Quantity)
		return holding, nil, nil
	case invctlledger.KindSell:
		averageCost := holding.AverageCost
		sale := &Sale{
			TransactionID:  transaction.ID,
			Ticker:         holding.Ticker,
			Date:           transaction.Date,
			Quantity:       quantity,
			UnitPrice:      unitPrice,
			AverageCost:    averageCost,
			RealizedProfit: quantity * (unitPrice - averageCost),
		}
		var overSell *OverSell
		if quantity > holding.Quantity+quantityTolerance {
			overSell = &OverSell{
				TransactionID: transaction.ID,
				Ticker:        holding.Ticker,
				Held:          holding.Quantity,
				Sold:          quantity,
			}
		}
		holding.TotalInvested = max(0, holding.TotalInvested-quantity*averageCost)
		holding.Quantity -= quantity
		if holding.Quantity <= quantityTolerance {
			holding.Quantity = 0
			holding.AverageCost = 0
			holding.TotalInvested = 0
		}
		return holding, sale, overSell
	default:
		return holding, nil, nil
	}
}

func (r *Result) filter(keep func(Holding) bool) []Holding {
	var holdings []Holding
	for _, holding := range r.Holdings {
		if keep(holding) {
			holdings = append(holdings, holding)
		}
	}
	// Sort by ticker for deterministic output.
	slices.SortFunc(holdings, func(a Holding, b Holding) int {
		return strings.Compare(a.Ticker, b.Ticker)
	})
	return holdings
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if value != "" {
			return value
		}
	}
	return ""
}
