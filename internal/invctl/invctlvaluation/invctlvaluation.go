// Copyright 2026 Peter Edge
//
// All rights reserved.

// Package invctlvaluation combines holdings with market quotes and an FX rate.
//
// Valuation is pure. A missing quote falls back to the holding's stored price,
// and every numeric input is coerced so that NaN or infinite values never
// reach the aggregates computed downstream.
package invctlvaluation

import (
	"github.com/bufdev/invctl/internal/invctl/invctlholdings"
	"github.com/bufdev/invctl/internal/invctl/invctlledger"
	"github.com/bufdev/invctl/internal/standard/xmath"
)

// Quote is a market quote for one ticker in the instrument's native currency.
type Quote struct {
	// Price is the latest price.
	Price float64 `json:"price"`
	// PreviousClose is the previous session's closing price.
	PreviousClose float64 `json:"previous_close"`
	// Change is the absolute price change over the session.
	Change float64 `json:"change"`
	// ChangePercent is the session change as a percentage.
	ChangePercent float64 `json:"change_percent"`
	// IsMock is true if the quote was synthesized rather than fetched.
	IsMock bool `json:"is_mock"`
}

// ValuedHolding is a holding enriched with current market values.
type ValuedHolding struct {
	invctlholdings.Holding

	// CurrentPriceLocal is the current price per unit in the local currency.
	CurrentPriceLocal float64 `json:"current_price_local"`
	// Invested is the remaining cost basis.
	Invested float64 `json:"invested"`
	// Current is the market value in the local currency.
	Current float64 `json:"current"`
	// Profit is Current - Invested.
	Profit float64 `json:"profit"`
	// ProfitPercent is Profit / Invested * 100, or 0 if nothing is invested.
	ProfitPercent float64 `json:"profit_percent"`
	// DailyChangePercent is the session change of the price as a percentage.
	DailyChangePercent float64 `json:"daily_change_percent"`
	// DailyChange is the per-unit session change in the native currency.
	DailyChange float64 `json:"daily_change"`
	// FXRate is the rate applied to the native price, 1 for non-USD holdings.
	FXRate float64 `json:"fx_rate"`
	// HasQuote is true if a quote was available for the holding.
	HasQuote bool `json:"has_quote"`
	// IsMock is true if the quote used was synthesized.
	IsMock bool `json:"is_mock"`
}

// Valuate values a single holding.
//
// The quote may be nil, in which case the holding's stored CurrentPrice is
// used and the daily change is 0. The fxRate is the number of local currency
// units per USD and is only applied to USD holdings.
func Valuate(holding invctlholdings.Holding, quote *Quote, fxRate float64) ValuedHolding {
	holding.Quantity = xmath.NonNegative(holding.Quantity)
	holding.AverageCost = xmath.NonNegative(holding.AverageCost)
	holding.TotalInvested = xmath.NonNegative(holding.TotalInvested)
	holding.CurrentPrice = xmath.Coerce(holding.CurrentPrice)
	holding.MonthlyDividend = xmath.Coerce(holding.MonthlyDividend)
	priceNative := holding.CurrentPrice
	var dailyChange, dailyChangePercent float64
	if quote != nil {
		priceNative = xmath.Coerce(quote.Price)
		dailyChange = xmath.Coerce(quote.Change)
		dailyChangePercent = DailyChangePercent(*quote)
	}
	appliedRate := 1.0
	if invctlledger.IsUSD(holding.Currency) {
		appliedRate = xmath.Coerce(fxRate)
	}
	priceLocal := priceNative * appliedRate
	invested := holding.TotalInvested
	current := xmath.Coerce(holding.Quantity * priceLocal)
	profit := current - invested
	return ValuedHolding{
		Holding:            holding,
		CurrentPriceLocal:  priceLocal,
		Invested:           invested,
		Current:            current,
		Profit:             profit,
		ProfitPercent:      xmath.Percent(profit, invested),
		DailyChangePercent: dailyChangePercent,
		DailyChange:        dailyChange,
		FXRate:             appliedRate,
		HasQuote:           quote != nil,
		IsMock:             quote != nil && quote.IsMock,
	}
}

// ValuateAll values every holding, looking up quotes by normalized ticker.
// Holdings without a quote fall back to their stored price.
func ValuateAll(holdings []invctlholdings.Holding, quotes map[string]Quote, fxRate float64) []ValuedHolding {
	normalizedQuotes := NormalizeQuotes(quotes)
	valued := make([]ValuedHolding, 0, len(holdings))
	for _, holding := range holdings {
		var quote *Quote
		if q, ok := normalizedQuotes[invctlledger.NormalizeTicker(holding.Ticker)]; ok {
			quote = &q
		}
		valued = append(valued, Valuate(holding, quote, fxRate))
	}
	return valued
}

// DailyChangePercent returns the session change of a quote as a percentage.
//
// The change is computed from the previous close when it is positive,
// otherwise the quote's reported ChangePercent is used.
func DailyChangePercent(quote Quote) float64 {
	previousClose := xmath.Coerce(quote.PreviousClose)
	if previousClose > 0 {
		return xmath.Percent(xmath.Coerce(quote.Price)-previousClose, previousClose)
	}
	return xmath.Coerce(quote.ChangePercent)
}

// NormalizeQuotes returns a copy of the quotes keyed by normalized ticker.
func NormalizeQuotes(quotes map[string]Quote) map[string]Quote {
	normalized := make(map[string]Quote, len(quotes))
	for ticker, quote := range quotes {
		normalized[invctlledger.NormalizeTicker(ticker)] = quote
	}
	return normalized
}

// ApplyQuotes returns a copy of the holdings with CurrentPrice refreshed from
// the quotes, so the last known price survives the next projection.
func ApplyQuotes(holdings []invctlholdings.Holding, quotes map[string]Quote) []invctlholdings.Holding {
	normalizedQuotes := NormalizeQuotes(quotes)
	result := make([]invctlholdings.Holding, len(holdings))
	for i, holding := range holdings {
		if quote, ok := normalizedQuotes[invctlledger.NormalizeTicker(holding.Ticker)]; ok {
			if price := xmath.Coerce(quote.Price); price > 0 {
				holding.CurrentPrice = price
			}
		}
		result[i] = holding
	}
	return result
}
