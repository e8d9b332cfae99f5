// Copyright 2026 Peter Edge
//
// All rights reserved.

package invctlperformance

import (
	"testing"

	"github.com/bufdev/invctl/internal/invctl/invctlholdings"
	"github.com/bufdev/invctl/internal/invctl/invctlledger"
	"github.com/bufdev/invctl/internal/invctl/invctlvaluation"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func TestRank(t *testing.T) {
	t.Parallel()
	ranking := Rank([]invctlvaluation.ValuedHolding{
		valued("A", 10),
		valued("B", -5),
		valued("C", 30),
		valued("D", 0),
		valued("E", 20),
		valued("F", -15),
		valued("G", 5),
	})
	require.Equal(t, []string{"C", "E", "A"}, tickers(ranking.Top))
	require.Equal(t, []string{"F", "B", "D"}, tickers(ranking.Bottom))
	require.Len(t, ranking.Eligible, 7)
	require.InDelta(t, 45.0/7.0, ranking.Average, 1e-9)
}

func TestRankFewHoldingsOverlap(t *testing.T) {
	t.Parallel()
	ranking := Rank([]invctlvaluation.ValuedHolding{
		valued("A", 10),
		valued("B", -10),
	})
	require.Equal(t, []string{"A", "B"}, tickers(ranking.Top))
	require.Equal(t, []string{"B", "A"}, tickers(ranking.Bottom))
	require.Equal(t, 0.0, ranking.Average)
}

func TestRankSkipsIneligible(t *testing.T) {
	t.Parallel()
	noInvested := valued("GIFT", 50)
	noInvested.Invested = 0
	noCost := valued("FREE", 50)
	noCost.AverageCost = 0
	ranking := Rank([]invctlvaluation.ValuedHolding{noInvested, noCost, valued("OK", 1)})
	require.Equal(t, []string{"OK"}, tickers(ranking.Eligible))
	require.InDelta(t, 1.0, ranking.Average, 1e-9)

	empty := Rank(nil)
	require.Empty(t, empty.Top)
	require.Empty(t, empty.Bottom)
	require.Equal(t, 0.0, empty.Average)
}

func TestRankTiesAreBrokenByTicker(t *testing.T) {
	t.Parallel()
	ranking := Rank([]invctlvaluation.ValuedHolding{
		valued("ZZZ", 5),
		valued("AAA", 5),
		valued("MMM", 5),
		valued("BBB", 5),
	})
	require.Equal(t, []string{"AAA", "BBB", "MMM"}, tickers(ranking.Top))
	require.Equal(t, []string{"ZZZ", "MMM", "BBB"}, tickers(ranking.Bottom))
}

func TestCategoryBreakdown(t *testing.T) {
	t.Parallel()
	equity := valued("AAA", 0)
	equity.AssetType = invctlledger.AssetTypeEquity
	equity.Invested = 100
	equity.Current = 300
	fund := valued("BBB", 0)
	fund.AssetType = invctlledger.AssetTypeFund
	fund.Invested = 100
	fund.Current = 50
	unknown := valued("CCC", 0)
	unknown.Invested = 0
	unknown.Current = 50
	want := []Category{
		{Name: invctlledger.AssetTypeEquity, Count: 1, Invested: 100, Current: 300, Profit: 200, ProfitPercent: 200, AllocationPercent: 75},
		{Name: invctlledger.AssetTypeFund, Count: 1, Invested: 100, Current: 50, Profit: -50, ProfitPercent: -50, AllocationPercent: 12.5},
		{Name: invctlledger.OtherBucket, Count: 1, Invested: 0, Current: 50, Profit: 50, ProfitPercent: 0, AllocationPercent: 12.5},
	}
	if diff := cmp.Diff(want, CategoryBreakdown([]invctlvaluation.ValuedHolding{unknown, fund, equity})); diff != "" {
		t.Errorf("breakdown mismatch (-want +got):\n%s", diff)
	}
	require.Empty(t, CategoryBreakdown(nil))
}

func valued(ticker string, profitPercent float64) invctlvaluation.ValuedHolding {
	return invctlvaluation.ValuedHolding{
		Holding: invctlholdings.Holding{
			Ticker:        ticker,
			Quantity:      1,
			AverageCost:   100,
			TotalInvested: 100,
		},
		Invested:      100,
		Current:       100 + profitPercent,
		Profit:        profitPercent,
		ProfitPercent: profitPercent,
	}
}

func tickers(valued []invctlvaluation.ValuedHolding) []string {
	result := make([]string, len(valued))
	for i, v := range valued {
		result[i] = v.Ticker
	}
	return result
}
