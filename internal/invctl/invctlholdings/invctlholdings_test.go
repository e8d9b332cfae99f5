// Copyright 2026 Peter Edge
//
// All rights reserved.

package invctlholdings

import (
	"math"
	"math/rand/v2"
	"strconv"
	"testing"
	"time"

	"github.com/bufdev/invctl/internal/invctl/invctlledger"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

// invariantTolerance is the tolerance for totalInvested == quantity * averageCost.
const invariantTolerance = 1e-6

func TestProjectWeightedAverageBuys(t *testing.T) {
	t.Parallel()
	result := Project([]invctlledger.Transaction{
		buy("1", "abc", 100, 10, 1),
		buy("2", "ABC", 100, 20, 2),
	})
	holding := result.Holdings["ABC"]
	require.Equal(t, 200.0, holding.Quantity)
	require.InDelta(t, 15.0, holding.AverageCost, invariantTolerance)
	require.InDelta(t, 3000.0, holding.TotalInvested, invariantTolerance)
	require.Empty(t, result.Sales)
}

func TestProjectPartialSell(t *testing.T) {
	t.Parallel()
	result := Project([]invctlledger.Transaction{
		buy("1", "ABC", 100, 10, 1),
		buy("2", "ABC", 100, 20, 2),
		sell("3", "ABC", 50, 30, 3),
	})
	holding := result.Holdings["ABC"]
	require.Equal(t, 150.0, holding.Quantity)
	require.InDelta(t, 2250.0, holding.TotalInvested, invariantTolerance)
	require.InDelta(t, 15.0, holding.AverageCost, invariantTolerance)
	require.Len(t, result.Sales, 1)
	sale := result.Sales[0]
	require.Equal(t, "3", sale.TransactionID)
	require.InDelta(t, 15.0, sale.AverageCost, invariantTolerance)
	require.InDelta(t, 750.0, sale.RealizedProfit, invariantTolerance)
	require.InDelta(t, 750.0, result.RealizedProfit(), invariantTolerance)
	require.Empty(t, result.OverSells)
}

func TestProjectFullSellClosesPosition(t *testing.T) {
	t.Parallel()
	result := Project([]invctlledger.Transaction{
		buy("1", "XYZ", 10, 5, 1),
		sell("2", "xyz", 10, 8, 2),
	})
	holding := result.Holdings["XYZ"]
	require.Equal(t, 0.0, holding.Quantity)
	require.Equal(t, 0.0, holding.AverageCost)
	require.Equal(t, 0.0, holding.TotalInvested)
	require.Empty(t, result.Portfolio())
	require.Len(t, result.Closed(), 1)
	require.InDelta(t, 30.0, result.RealizedProfit(), invariantTolerance)
}

func TestProjectFullSellWithFractionalResidue(t *testing.T) {
	t.Parallel()
	result := Project([]invctlledger.Transaction{
		buy("1", "BTC", 0.1, 100, 1),
		buy("2", "BTC", 0.2, 100, 2),
		sell("3", "BTC", 0.3, 120, 3),
	})
	holding := result.Holdings["BTC"]
	require.Equal(t, 0.0, holding.Quantity)
	require.Equal(t, 0.0, holding.AverageCost)
	require.Equal(t, 0.0, holding.TotalInvested)
	require.Empty(t, result.OverSells)
}

func TestProjectOverSellIsClamped(t *testing.T) {
	t.Parallel()
	result := Project([]invctlledger.Transaction{
		buy("1", "ABC", 5, 10, 1),
		sell("2", "ABC", 8, 12, 2),
	})
	holding := result.Holdings["ABC"]
	require.Equal(t, 0.0, holding.Quantity)
	require.Equal(t, 0.0, holding.AverageCost)
	require.Equal(t, 0.0, holding.TotalInvested)
	require.Equal(t, []OverSell{{TransactionID: "2", Ticker: "ABC", Held: 5, Sold: 8}}, result.OverSells)
	// Re-opening after an over-sell starts from a clean cost basis.
	result = Project([]invctlledger.Transaction{
		buy("1", "ABC", 5, 10, 1),
		sell("2", "ABC", 8, 12, 2),
		buy("3", "ABC", 2, 50, 3),
	})
	holding = result.Holdings["ABC"]
	require.Equal(t, 2.0, holding.Quantity)
	require.InDelta(t, 50.0, holding.AverageCost, invariantTolerance)
	require.InDelta(t, 100.0, holding.TotalInvested, invariantTolerance)
}

func TestProjectSellWithoutHolding(t *testing.T) {
	t.Parallel()
	result := Project([]invctlledger.Transaction{sell("1", "NEW", 3, 10, 1)})
	holding := result.Holdings["NEW"]
	require.Equal(t, 0.0, holding.Quantity)
	require.Equal(t, 0.0, holding.TotalInvested)
	require.Len(t, result.OverSells, 1)
}

func TestProjectMalformedNumbers(t *testing.T) {
	t.Parallel()
	result := Project([]invctlledger.Transaction{
		buy("1", "ABC", math.NaN(), 10, 1),
		buy("2", "ABC", 10, math.Inf(1), 2),
		buy("3", "ABC", -4, 10, 3),
		buy("4", "ABC", 10, 10, 4),
	})
	holding := result.Holdings["ABC"]
	require.Equal(t, 20.0, holding.Quantity)
	require.InDelta(t, 100.0, holding.TotalInvested, invariantTolerance)
	require.InDelta(t, 5.0, holding.AverageCost, invariantTolerance)
	require.False(t, math.IsNaN(holding.CurrentPrice))
}

func TestProjectSeedsMetadataFromFirstTransaction(t *testing.T) {
	t.Parallel()
	first := buy("1", " aapl ", 1, 150, 1)
	first.Name = "Apple"
	first.AssetType = invctlledger.AssetTypeForeignStock
	first.Sector = "Tech"
	first.Country = "US"
	first.Currency = "usd"
	second := buy("2", "AAPL", 1, 170, 2)
	second.Name = "Apple Inc."
	second.Sector = "Other"
	result := Project([]invctlledger.Transaction{second, first})
	want := Holding{
		Ticker:        "AAPL",
		Name:          "Apple",
		AssetType:     invctlledger.AssetTypeForeignStock,
		Sector:        "Tech",
		Country:       "US",
		Currency:      "USD",
		Quantity:      2,
		AverageCost:   160,
		TotalInvested: 320,
		CurrentPrice:  150,
	}
	if diff := cmp.Diff(want, result.Holdings["AAPL"]); diff != "" {
		t.Errorf("holding mismatch (-want +got):\n%s", diff)
	}
}

func TestProjectInvariantAndDeterminism(t *testing.T) {
	t.Parallel()
	random := rand.New(rand.NewPCG(1, 2))
	tickers := []string{"AAA", "bbb", " CCC"}
	var transactions []invctlledger.Transaction
	held := make(map[string]float64)
	for i := range 500 {
		ticker := tickers[random.IntN(len(tickers))]
		key := invctlledger.NormalizeTicker(ticker)
		quantity := float64(random.IntN(100)+1) / 4
		price := float64(random.IntN(10000)+1) / 100
		if held[key] > 0 && random.IntN(3) == 0 {
			quantity = min(quantity, held[key])
			transactions = append(transactions, sell(strconv.Itoa(i), ticker, quantity, price, i))
			held[key] -= quantity
			continue
		}
		transactions = append(transactions, buy(strconv.Itoa(i), ticker, quantity, price, i))
		held[key] += quantity
	}
	first := Project(transactions)
	for _, holding := range first.Holdings {
		require.GreaterOrEqual(t, holding.Quantity, 0.0)
		require.InDelta(t, holding.Quantity*holding.AverageCost, holding.TotalInvested, invariantTolerance, holding.Ticker)
	}
	second := Project(transactions)
	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("projection is not deterministic (-first +second):\n%s", diff)
	}
}

func TestProjectInvariantAfterEveryStep(t *testing.T) {
	t.Parallel()
	transactions := []invctlledger.Transaction{
		buy("1", "ABC", 3, 7.31, 1),
		buy("2", "ABC", 11, 2.17, 2),
		sell("3", "ABC", 5, 9.99, 3),
		buy("4", "ABC", 0.5, 101.01, 4),
		sell("5", "ABC", 2.25, 1, 5),
	}
	for i := range transactions {
		holding := Project(transactions[:i+1]).Holdings["ABC"]
		require.InDelta(t, holding.Quantity*holding.AverageCost, holding.TotalInvested, invariantTolerance)
	}
}

func TestRealizedProfitBetween(t *testing.T) {
	t.Parallel()
	result := Project([]invctlledger.Transaction{
		buy("1", "ABC", 10, 10, 1),
		sell("2", "ABC", 2, 15, 5),
		sell("3", "ABC", 2, 20, 10),
	})
	require.InDelta(t, 10.0, result.RealizedProfitBetween(date(1), date(6)), invariantTolerance)
	require.InDelta(t, 20.0, result.RealizedProfitBetween(date(6), time.Time{}), invariantTolerance)
	require.InDelta(t, 30.0, result.RealizedProfitBetween(time.Time{}, time.Time{}), invariantTolerance)
	require.Equal(t, map[string]float64{"ABC": 30}, result.RealizedProfitByTicker())
	sales := result.SalesBetween(date(6), date(11))
	require.Len(t, sales, 1)
	require.Equal(t, "3", sales[0].TransactionID)
	require.Empty(t, result.SalesBetween(date(11), time.Time{}))
}

func TestApplyOverrides(t *testing.T) {
	t.Parallel()
	holdings := []Holding{
		{Ticker: "ABC", Name: "Abc", AssetType: "Equity", Sector: "Energy"},
		{Ticker: "XYZ", Name: "Xyz"},
	}
	result := ApplyOverrides(holdings, map[string]Override{
		" abc": {Sector: "Utilities", MonthlyDividend: 12.5},
	})
	require.Equal(t, "Utilities", result[0].Sector)
	require.Equal(t, "Equity", result[0].AssetType)
	require.Equal(t, 12.5, result[0].MonthlyDividend)
	require.Equal(t, holdings[1], result[1])
	// The input is not modified.
	require.Equal(t, "Energy", holdings[0].Sector)
}

func buy(id string, ticker string, quantity float64, price float64, d int) invctlledger.Transaction {
	return invctlledger.Transaction{
		ID:        id,
		Ticker:    ticker,
		Kind:      invctlledger.KindBuy,
		Quantity:  quantity,
		UnitPrice: price,
		Date:      date(d),
	}
}

func sell(id string, ticker string, quantity float64, price float64, d int) invctlledger.Transaction {
	transaction := buy(id, ticker, quantity, price, d)
	transaction.Kind = invctlledger.KindSell
	return transaction
}

func date(d int) time.Time {
	return time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, d)
}
