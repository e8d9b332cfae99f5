// Copyright 2026 Peter Edge
//
// All rights reserved.

// Package invctlstats reduces valued holdings into portfolio statistics.
//
// Every percentage is computed against a guarded denominator, so an empty or
// zero-valued portfolio yields zeros rather than NaN. Holdings with an empty
// asset type or sector are grouped under the "Other" bucket.
package invctlstats

import (
	"cmp"
	"slices"
	"strings"

	"github.com/bufdev/invctl/internal/invctl/invctlledger"
	"github.com/bufdev/invctl/internal/invctl/invctlvaluation"
	"github.com/bufdev/invctl/internal/standard/xmath"
	"gonum.org/v1/gonum/floats"
)

// Stats holds the aggregated statistics of a portfolio.
type Stats struct {
	// TotalInvested is the sum of the remaining cost basis.
	TotalInvested float64 `json:"total_invested"`
	// TotalCurrent is the sum of the market values in the local currency.
	TotalCurrent float64 `json:"total_current"`
	// Profit is TotalCurrent - TotalInvested.
	Profit float64 `json:"profit"`
	// ProfitPercent is Profit / TotalInvested * 100, or 0 if nothing is invested.
	ProfitPercent float64 `json:"profit_percent"`
	// DiversificationCount is the number of distinct tickers with a positive quantity.
	DiversificationCount int `json:"diversification_count"`
	// TotalMonthlyDividends is the sum of the expected monthly dividends.
	TotalMonthlyDividends float64 `json:"total_monthly_dividends"`
	// StocksPercent is the share of TotalCurrent held in non-crypto assets.
	StocksPercent float64 `json:"stocks_percent"`
	// CryptoPercent is the share of TotalCurrent held in crypto assets.
	CryptoPercent float64 `json:"crypto_percent"`
	// InvestedUSD is the cost basis of foreign USD holdings.
	InvestedUSD float64 `json:"invested_usd"`
	// DailyProfitLocal is the session profit of foreign USD holdings in the local currency.
	DailyProfitLocal float64 `json:"daily_profit_local"`
	// Categories is the allocation by asset type, sorted by percent descending.
	Categories []Allocation `json:"categories"`
	// Sectors is the allocation by sector, sorted by percent descending.
	Sectors []SectorAllocation `json:"sectors"`
}

// Allocation is the share of the portfolio held in one group.
type Allocation struct {
	// Name is the group key.
	Name string `json:"name"`
	// Current is the summed market value of the group.
	Current float64 `json:"current"`
	// Percent is the share of the portfolio's total current value.
	Percent float64 `json:"percent"`
	// Count is the number of holdings in the group.
	Count int `json:"count"`
}

// SectorAllocation is an Allocation that also lists its member tickers.
type SectorAllocation struct {
	Allocation

	// Tickers is the sorted list of tickers in the sector.
	Tickers []string `json:"tickers"`
}

// Aggregate reduces the valued holdings into portfolio statistics.
func Aggregate(valued []invctlvaluation.ValuedHolding) Stats {
	invested := make([]float64, 0, len(valued))
	current := make([]float64, 0, len(valued))
	dividends := make([]float64, 0, len(valued))
	var cryptoCurrent, investedUSD, dailyProfitLocal float64
	tickers := make(map[string]struct{}, len(valued))
	for _, v := range valued {
		invested = append(invested, xmath.Coerce(v.Invested))
		current = append(current, xmath.Coerce(v.Current))
		dividends = append(dividends, xmath.Coerce(v.MonthlyDividend))
		if v.Quantity > 0 {
			tickers[invctlledger.NormalizeTicker(v.Ticker)] = struct{}{}
		}
		if invctlledger.IsCrypto(v.AssetType) {
			cryptoCurrent += xmath.Coerce(v.Current)
		}
		if invctlledger.IsUSD(v.Currency) && invctlledger.IsForeign(v.AssetType) {
			investedUSD += xmath.Coerce(v.Invested)
			dailyProfitLocal += xmath.Coerce(v.DailyChange * v.Quantity * v.FXRate)
		}
	}
	totalInvested := floats.Sum(invested)
	totalCurrent := floats.Sum(current)
	profit := totalCurrent - totalInvested
	return Stats{
		TotalInvested:         totalInvested,
		TotalCurrent:          totalCurrent,
		Profit:                profit,
		ProfitPercent:         xmath.Percent(profit, totalInvested),
		DiversificationCount:  len(tickers),
		TotalMonthlyDividends: floats.Sum(dividends),
		StocksPercent:         xmath.Percent(totalCurrent-cryptoCurrent, totalCurrent),
		CryptoPercent:         xmath.Percent(cryptoCurrent, totalCurrent),
		InvestedUSD:           investedUSD,
		DailyProfitLocal:      dailyProfitLocal,
		Categories:            CategoryAllocation(valued),
		Sectors:               SectorDistribution(valued),
	}
}

// CategoryAllocation groups the valued holdings by asset type.
func CategoryAllocation(valued []invctlvaluation.ValuedHolding) []Allocation {
	groups := groupBy(valued, func(v invctlvaluation.ValuedHolding) string { return v.AssetType })
	allocations := make([]Allocation, 0, len(groups))
	for _, group := range groups {
		allocations = append(allocations, group.Allocation)
	}
	return allocations
}

// SectorDistribution groups the valued holdings by sector.
func SectorDistribution(valued []invctlvaluation.ValuedHolding) []SectorAllocation {
	return groupBy(valued, func(v invctlvaluation.ValuedHolding) string { return v.Sector })
}

// Filter selects a subset of valued holdings. Empty fields match everything,
// and matching is case-insensitive.
type Filter struct {
	// AssetTypes limits the holdings to these asset types.
	AssetTypes []string
	// Sectors limits the holdings to these sectors.
	Sectors []string
	// Currencies limits the holdings to these native currencies.
	Currencies []string
	// Tickers limits the holdings to these tickers.
	Tickers []string
}

// IsEmpty returns whether the filter matches everything.
func (f Filter) IsEmpty() bool {
	return len(f.AssetTypes) == 0 && len(f.Sectors) == 0 && len(f.Currencies) == 0 && len(f.Tickers) == 0
}

// Matches returns whether the valued holding passes the filter.
func (f Filter) Matches(v invctlvaluation.ValuedHolding) bool {
	return matchesAny(f.AssetTypes, invctlledger.BucketKey(v.AssetType)) &&
		matchesAny(f.Sectors, invctlledger.BucketKey(v.Sector)) &&
		matchesAny(f.Currencies, v.Currency) &&
		matchesAny(f.Tickers, invctlledger.NormalizeTicker(v.Ticker))
}

// Apply returns the valued holdings that pass the filter.
func (f Filter) Apply(valued []invctlvaluation.ValuedHolding) []invctlvaluation.ValuedHolding {
	if f.IsEmpty() {
		return valued
	}
	var result []invctlvaluation.ValuedHolding
	for _, v := range valued {
		if f.Matches(v) {
			result = append(result, v)
		}
	}
	return result
}

// AggregateFiltered aggregates only the valued holdings that pass the filter.
// Percentages are relative to the filtered subset.
func AggregateFiltered(valued []invctlvaluation.ValuedHolding, filter Filter) Stats {
	return Aggregate(filter.Apply(valued))
}

// *** PRIVATE ***

// groupBy groups holdings by the bucketed key, computing each group's share of
// the overall current value. The result is sorted by percent descending, then
// by name for deterministic output.
func groupBy(
	valued []invctlvaluation.ValuedHolding,
	key func(invctlvaluation.ValuedHolding) string,
) []SectorAllocation {
	var totalCurrent float64
	groupMap := make(map[string]*SectorAllocation)
	for _, v := range valued {
		current := xmath.Coerce(v.Current)
		totalCurrent += current
		name := invctlledger.BucketKey(key(v))
		group, ok := groupMap[name]
		if !ok {
			group = &SectorAllocation{Allocation: Allocation{Name: name}}
			groupMap[name] = group
		}
		group.Current += current
		group.Count++
		group.Tickers = append(group.Tickers, invctlledger.NormalizeTicker(v.Ticker))
	}
	groups := make([]SectorAllocation, 0, len(groupMap))
	for _, group := range groupMap {
		group.Percent = xmath.Percent(group.Current, totalCurrent)
		slices.Sort(group.Tickers)
		groups = append(groups, *group)
	}
	slices.SortFunc(groups, func(a SectorAllocation, b SectorAllocation) int {
		if c := cmp.Compare(b.Percent, a.Percent); c != 0 {
			return c
		}
		return strings.Compare(a.Name, b.Name)
	})
	return groups
}

func matchesAny(values []string, candidate string) bool {
	if len(values) == 0 {
		return true
	}
	candidate = strings.TrimSpace(candidate)
	for _, value := range values {
		if strings.EqualFold(strings.TrimSpace(value), candidate) {
			return true
		}
	}
	return false
}
