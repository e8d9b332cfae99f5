// Copyright 2026 Peter Edge
//
// All rights reserved.

package invctlstats

import (
	"math"
	"testing"

	"github.com/bufdev/invctl/internal/invctl/invctlholdings"
	"github.com/bufdev/invctl/internal/invctl/invctlledger"
	"github.com/bufdev/invctl/internal/invctl/invctlvaluation"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

const tolerance = 1e-9

func TestAggregateSingleLosingHolding(t *testing.T) {
	t.Parallel()
	stats := Aggregate([]invctlvaluation.ValuedHolding{
		valued("ABC", invctlledger.AssetTypeEquity, "Energy", 1000, 800),
	})
	require.Equal(t, 1000.0, stats.TotalInvested)
	require.Equal(t, 800.0, stats.TotalCurrent)
	require.Equal(t, -200.0, stats.Profit)
	require.InDelta(t, -20.0, stats.ProfitPercent, tolerance)
	require.Equal(t, 1, stats.DiversificationCount)
	require.InDelta(t, 100.0, stats.StocksPercent, tolerance)
	require.Equal(t, 0.0, stats.CryptoPercent)
}

func TestAggregateCategoryAllocationWithZeroGroup(t *testing.T) {
	t.Parallel()
	stats := Aggregate([]invctlvaluation.ValuedHolding{
		valued("AAA", invctlledger.AssetTypeEquity, "Energy", 500, 600),
		valued("BBB", invctlledger.AssetTypeEquity, "Banks", 500, 400),
		valued("BTC", invctlledger.AssetTypeCrypto, "", 100, 0),
	})
	want := []Allocation{
		{Name: invctlledger.AssetTypeEquity, Current: 1000, Percent: 100, Count: 2},
		{Name: invctlledger.AssetTypeCrypto, Current: 0, Percent: 0, Count: 1},
	}
	if diff := cmp.Diff(want, stats.Categories); diff != "" {
		t.Errorf("categories mismatch (-want +got):\n%s", diff)
	}
	require.Equal(t, 0.0, stats.CryptoPercent)
	require.Equal(t, 100.0, stats.StocksPercent)
}

func TestAggregateEmptyAndZeroValued(t *testing.T) {
	t.Parallel()
	empty := Aggregate(nil)
	require.Equal(t, Stats{Categories: []Allocation{}, Sectors: []SectorAllocation{}}, empty)

	stats := Aggregate([]invctlvaluation.ValuedHolding{
		valued("AAA", invctlledger.AssetTypeEquity, "Energy", 0, 0),
		valued("BBB", invctlledger.AssetTypeFund, "", 0, 0),
	})
	require.Equal(t, 0.0, stats.ProfitPercent)
	require.Equal(t, 0.0, stats.StocksPercent)
	for _, category := range stats.Categories {
		require.Equal(t, 0.0, category.Percent)
		require.False(t, math.IsNaN(category.Percent))
	}
	for _, sector := range stats.Sectors {
		require.Equal(t, 0.0, sector.Percent)
	}
}

func TestAggregatePercentagesSumTo100(t *testing.T) {
	t.Parallel()
	stats := Aggregate([]invctlvaluation.ValuedHolding{
		valued("AAA", invctlledger.AssetTypeEquity, "Energy", 100, 333.33),
		valued("BBB", invctlledger.AssetTypeFund, "Real Estate", 100, 123.45),
		valued("CCC", invctlledger.AssetTypeETF, "Energy", 100, 77.7),
		valued("ETH", invctlledger.AssetTypeCrypto, "", 100, 12.5),
		valued("ZZZ", "", "Tech", 100, 1),
	})
	var categoryTotal, sectorTotal float64
	for _, category := range stats.Categories {
		categoryTotal += category.Percent
	}
	for _, sector := range stats.Sectors {
		sectorTotal += sector.Percent
	}
	require.InDelta(t, 100.0, categoryTotal, 1e-6)
	require.InDelta(t, 100.0, sectorTotal, 1e-6)
	require.InDelta(t, 100.0, stats.StocksPercent+stats.CryptoPercent, 1e-6)
	// Unknown asset types and sectors fall into the Other bucket.
	names := make(map[string]bool)
	for _, category := range stats.Categories {
		names[category.Name] = true
	}
	require.True(t, names[invctlledger.OtherBucket])
	// Categories are sorted by percent descending.
	for i := 1; i < len(stats.Categories); i++ {
		require.GreaterOrEqual(t, stats.Categories[i-1].Percent, stats.Categories[i].Percent)
	}
}

func TestSectorDistributionTickers(t *testing.T) {
	t.Parallel()
	sectors := SectorDistribution([]invctlvaluation.ValuedHolding{
		valued("ZZZ", invctlledger.AssetTypeEquity, "Energy", 100, 100),
		valued("AAA", invctlledger.AssetTypeEquity, "Energy", 100, 100),
		valued("MMM", invctlledger.AssetTypeEquity, "", 100, 200),
	})
	want := []SectorAllocation{
		{Allocation: Allocation{Name: "Energy", Current: 200, Percent: 50, Count: 2}, Tickers: []string{"AAA", "ZZZ"}},
		{Allocation: Allocation{Name: invctlledger.OtherBucket, Current: 200, Percent: 50, Count: 1}, Tickers: []string{"MMM"}},
	}
	if diff := cmp.Diff(want, sectors); diff != "" {
		t.Errorf("sectors mismatch (-want +got):\n%s", diff)
	}
}

func TestAggregateDividendsAndForeignExposure(t *testing.T) {
	t.Parallel()
	foreign := valued("AAPL", invctlledger.AssetTypeForeignStock, "Tech", 500, 1000)
	foreign.Currency = "USD"
	foreign.Quantity = 4
	foreign.DailyChange = 2
	foreign.FXRate = 5
	foreign.MonthlyDividend = 3
	localUSD := valued("GOLD", invctlledger.AssetTypeEquity, "Mining", 100, 100)
	localUSD.Currency = "USD"
	localUSD.DailyChange = 100
	local := valued("PETR4", invctlledger.AssetTypeEquity, "Energy", 100, 100)
	local.MonthlyDividend = 7
	stats := Aggregate([]invctlvaluation.ValuedHolding{foreign, localUSD, local})
	require.Equal(t, 500.0, stats.InvestedUSD)
	require.Equal(t, 40.0, stats.DailyProfitLocal)
	require.Equal(t, 10.0, stats.TotalMonthlyDividends)
}

func TestAggregateDiversificationCount(t *testing.T) {
	t.Parallel()
	closed := valued("OLD", invctlledger.AssetTypeEquity, "", 0, 0)
	closed.Quantity = 0
	stats := Aggregate([]invctlvaluation.ValuedHolding{
		valued("abc", invctlledger.AssetTypeEquity, "", 1, 1),
		valued("ABC ", invctlledger.AssetTypeEquity, "", 1, 1),
		valued("XYZ", invctlledger.AssetTypeEquity, "", 1, 1),
		closed,
	})
	require.Equal(t, 2, stats.DiversificationCount)
}

func TestAggregateFiltered(t *testing.T) {
	t.Parallel()
	all := []invctlvaluation.ValuedHolding{
		valued("AAA", invctlledger.AssetTypeEquity, "Energy", 100, 150),
		valued("BBB", invctlledger.AssetTypeFund, "Energy", 100, 50),
		valued("BTC", invctlledger.AssetTypeCrypto, "", 100, 300),
	}
	stats := AggregateFiltered(all, Filter{AssetTypes: []string{"equity", "FUND"}})
	require.Equal(t, 200.0, stats.TotalInvested)
	require.Equal(t, 200.0, stats.TotalCurrent)
	require.Equal(t, 2, stats.DiversificationCount)
	require.Equal(t, 0.0, stats.CryptoPercent)

	stats = AggregateFiltered(all, Filter{Sectors: []string{invctlledger.OtherBucket}})
	require.Equal(t, 1, stats.DiversificationCount)
	require.Equal(t, 100.0, stats.CryptoPercent)

	require.Len(t, Filter{}.Apply(all), 3)
	require.Empty(t, Filter{Tickers: []string{"NOPE"}}.Apply(all))
}

func valued(ticker string, assetType string, sector string, invested float64, current float64) invctlvaluation.ValuedHolding {
	return invctlvaluation.ValuedHolding{
		Holding: invctlholdings.Holding{
			Ticker:        ticker,
			AssetType:     assetType,
			Sector:        sector,
			Currency:      "BRL",
			Quantity:      1,
			AverageCost:   invested,
			TotalInvested: invested,
		},
		Invested: invested,
		Current:  current,
		Profit:   current - invested,
		FXRate:   1,
	}
}
