// Copyright 2026 Peter Edge
//
// All rights reserved.

// Package invctlperformance ranks valued holdings by profit percentage.
package invctlperformance

import (
	"cmp"
	"slices"
	"strings"

	"github.com/bufdev/invctl/internal/invctl/invctlledger"
	"github.com/bufdev/invctl/internal/invctl/invctlvaluation"
	"github.com/bufdev/invctl/internal/standard/xmath"
	"gonum.org/v1/gonum/stat"
)

// RankSize is the number of holdings in each of the top and bottom lists.
const RankSize = 3

// Ranking is the result of ranking valued holdings by profit percentage.
type Ranking struct {
	// Eligible is every holding with a positive cost basis, sorted by profit
	// percentage descending.
	Eligible []invctlvaluation.ValuedHolding `json:"eligible"`
	// Top is the best performers, best first.
	Top []invctlvaluation.ValuedHolding `json:"top"`
	// Bottom is the worst performers, worst first.
	Bottom []invctlvaluation.ValuedHolding `json:"bottom"`
	// Average is the mean profit percentage across eligible holdings.
	Average float64 `json:"average"`
}

// Rank ranks the valued holdings.
//
// Only holdings with a positive invested amount and a positive average cost
// are eligible. Ties are broken by ticker so the ranking is deterministic.
// With fewer than 2*RankSize eligible holdings, Top and Bottom overlap.
func Rank(valued []invctlvaluation.ValuedHolding) Ranking {
	eligible := make([]invctlvaluation.ValuedHolding, 0, len(valued))
	for _, v := range valued {
		if xmath.Coerce(v.Invested) > 0 && xmath.Coerce(v.AverageCost) > 0 {
			eligible = append(eligible, v)
		}
	}
	slices.SortStableFunc(eligible, func(a invctlvaluation.ValuedHolding, b invctlvaluation.ValuedHolding) int {
		if c := cmp.Compare(xmath.Coerce(b.ProfitPercent), xmath.Coerce(a.ProfitPercent)); c != 0 {
			return c
		}
		return strings.Compare(invctlledger.NormalizeTicker(a.Ticker), invctlledger.NormalizeTicker(b.Ticker))
	})
	top := slices.Clone(eligible[:min(RankSize, len(eligible))])
	bottom := slices.Clone(eligible[max(0, len(eligible)-RankSize):])
	slices.Reverse(bottom)
	var average float64
	if len(eligible) > 0 {
		profitPercents := make([]float64, len(eligible))
		for i, v := range eligible {
			profitPercents[i] = xmath.Coerce(v.ProfitPercent)
		}
		average = stat.Mean(profitPercents, nil)
	}
	return Ranking{
		Eligible: eligible,
		Top:      top,
		Bottom:   bottom,
		Average:  average,
	}
}

// Category is the performance of one asset type.
type Category struct {
	// Name is the asset type, or "Other" if unset.
	Name string `json:"name"`
	// Count is the number of holdings in the category.
	Count int `json:"count"`
	// Invested is the summed cost basis.
	Invested float64 `json:"invested"`
	// Current is the summed market value.
	Current float64 `json:"current"`
	// Profit is Current - Invested.
	Profit float64 `json:"profit"`
	// ProfitPercent is Profit / Invested * 100, or 0 if nothing is invested.
	ProfitPercent float64 `json:"profit_percent"`
	// AllocationPercent is the category's share of the portfolio's current value.
	AllocationPercent float64 `json:"allocation_percent"`
}

// CategoryBreakdown returns the performance of each asset type, sorted by
// allocation descending and then by name.
func CategoryBreakdown(valued []invctlvaluation.ValuedHolding) []Category {
	var totalCurrent float64
	categoryMap := make(map[string]*Category)
	for _, v := range valued {
		name := invctlledger.BucketKey(v.AssetType)
		category, ok := categoryMap[name]
		if !ok {
			category = &Category{Name: name}
			categoryMap[name] = category
		}
		current := xmath.Coerce(v.Current)
		category.Count++
		category.Invested += xmath.Coerce(v.Invested)
		category.Current += current
		totalCurrent += current
	}
	categories := make([]Category, 0, len(categoryMap))
	for _, category := range categoryMap {
		category.Profit = category.Current - category.Invested
		category.ProfitPercent = xmath.Percent(category.Profit, category.Invested)
		category.AllocationPercent = xmath.Percent(category.Current, totalCurrent)
		categories = append(categories, *category)
	}
	slices.SortFunc(categories, func(a Category, b Category) int {
		if c := cmp.Compare(b.AllocationPercent, a.AllocationPercent); c != 0 {
			return c
		}
		return strings.Compare(a.Name, b.Name)
	})
	return categories
}
