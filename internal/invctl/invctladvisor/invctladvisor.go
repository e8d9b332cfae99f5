// Copyright 2026 Peter Edge
//
// All rights reserved.

// Package invctladvisor evaluates a fixed rule set over portfolio statistics
// and produces qualitative recommendations.
//
// Advise is pure. Recommendations are returned in rule-evaluation order, and
// a single low-priority note is returned if no rule fires.
package invctladvisor

import (
	"fmt"
	"strings"

	"github.com/bufdev/invctl/internal/invctl/invctlledger"
	"github.com/bufdev/invctl/internal/invctl/invctlperformance"
	"github.com/bufdev/invctl/internal/invctl/invctlstats"
)

// Priority is the urgency of a recommendation.
type Priority int

const (
	// PriorityLow is informational.
	PriorityLow Priority = iota + 1
	// PriorityMedium should be looked at.
	PriorityMedium
	// PriorityHigh should be acted on.
	PriorityHigh
)

// String returns the lowercase name of the priority.
func (p Priority) String() string {
	switch p {
	case PriorityLow:
		return "low"
	case PriorityMedium:
		return "medium"
	case PriorityHigh:
		return "high"
	default:
		return fmt.Sprintf("priority(%d)", int(p))
	}
}

// MarshalText implements encoding.TextMarshaler.
func (p Priority) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// Icons attached to recommendations.
const (
	IconWarning      = "warning"
	IconDiversify    = "pie-chart"
	IconTrendingUp   = "trending-up"
	IconTrendingDown = "trending-down"
	IconLowYield     = "alert"
	IconSectors      = "layers"
	IconHealthy      = "check"
)

// minSectorAssets is the number of holdings required before sector spread is checked.
const minSectorAssets = 3

// Recommendation is a single piece of advice.
type Recommendation struct {
	Icon        string   `json:"icon"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Priority    Priority `json:"priority"`
}

// Thresholds parameterize the rules.
type Thresholds struct {
	// ConcentrationPercent is the category allocation above which the
	// portfolio is considered concentrated.
	ConcentrationPercent float64 `json:"concentration_percent"`
	// StrongPerformancePercent is the average profit percentage above which a
	// positive note is emitted.
	StrongPerformancePercent float64 `json:"strong_performance_percent"`
	// WeakPerformancePercent is the average profit percentage below which a
	// warning is emitted.
	WeakPerformancePercent float64 `json:"weak_performance_percent"`
	// LowYieldCount is the number of low-yield holdings that triggers a review.
	LowYieldCount int `json:"low_yield_count"`
	// LowYieldPercent is the profit percentage below which a holding is low-yield.
	LowYieldPercent float64 `json:"low_yield_percent"`
	// MinSectors is the number of sectors below which a portfolio of at least
	// three holdings is considered under-diversified.
	MinSectors int `json:"min_sectors"`
}

// DefaultThresholds returns the default thresholds.
func DefaultThresholds() Thresholds {
	return Thresholds{
		ConcentrationPercent:     70,
		StrongPerformancePercent: 10,
		WeakPerformancePercent:   -5,
		LowYieldCount:            3,
		LowYieldPercent:          0,
		MinSectors:               3,
	}
}

// Advise evaluates the rules over the stats and ranking.
func Advise(stats invctlstats.Stats, ranking invctlperformance.Ranking, thresholds Thresholds) []Recommendation {
	var recommendations []Recommendation
	recommendations = append(recommendations, concentration(stats, thresholds)...)
	recommendations = append(recommendations, coverage(stats)...)
	recommendations = append(recommendations, performance(ranking, thresholds)...)
	recommendations = append(recommendations, lowYield(ranking, thresholds)...)
	recommendations = append(recommendations, sectors(stats, thresholds)...)
	if len(recommendations) == 0 {
		return []Recommendation{
			{
				Icon:        IconHealthy,
				Title:       "Healthy portfolio",
				Description: "No issues found. Keep monitoring your positions regularly.",
				Priority:    PriorityLow,
			},
		}
	}
	return recommendations
}

// *** PRIVATE ***

func concentration(stats invctlstats.Stats, thresholds Thresholds) []Recommendation {
	var recommendations []Recommendation
	for _, category := range stats.Categories {
		if category.Percent > thresholds.ConcentrationPercent {
			recommendations = append(recommendations, Recommendation{
				Icon:  IconDiversify,
				Title: "Diversify your portfolio",
				Description: fmt.Sprintf(
					"%.1f%% of your portfolio is in %s. Consider spreading it across other asset types.",
					category.Percent,
					category.Name,
				),
				Priority: PriorityHigh,
			})
		}
	}
	return recommendations
}

func coverage(stats invctlstats.Stats) []Recommendation {
	var hasEquity, hasFund bool
	for _, category := range stats.Categories {
		if category.Count == 0 {
			continue
		}
		hasEquity = hasEquity || invctlledger.IsEquity(category.Name)
		hasFund = hasFund || invctlledger.IsFund(category.Name)
	}
	switch {
	case hasEquity && !hasFund:
		return []Recommendation{
			{
				Icon:        IconWarning,
				Title:       "Add funds",
				Description: "Your portfolio holds only individual equities. Funds add diversification with a single position.",
				Priority:    PriorityHigh,
			},
		}
	case hasFund && !hasEquity:
		return []Recommendation{
			{
				Icon:        IconWarning,
				Title:       "Add equities",
				Description: "Your portfolio holds only funds. Individual equities can complement fund exposure.",
				Priority:    PriorityHigh,
			},
		}
	default:
		return nil
	}
}

func performance(ranking invctlperformance.Ranking, thresholds Thresholds) []Recommendation {
	if len(ranking.Eligible) == 0 {
		return nil
	}
	switch {
	case ranking.Average > thresholds.StrongPerformancePercent:
		return []Recommendation{
			{
				Icon:        IconTrendingUp,
				Title:       "Strong performance",
				Description: fmt.Sprintf("Your holdings are up %.2f%% on average. Consider taking some profit to rebalance.", ranking.Average),
				Priority:    PriorityLow,
			},
		}
	case ranking.Average < thresholds.WeakPerformancePercent:
		return []Recommendation{
			{
				Icon:        IconTrendingDown,
				Title:       "Weak performance",
				Description: fmt.Sprintf("Your holdings are down %.2f%% on average. Review the positions dragging the portfolio down.", -ranking.Average),
				Priority:    PriorityHigh,
			},
		}
	default:
		return nil
	}
}

func lowYield(ranking invctlperformance.Ranking, thresholds Thresholds) []Recommendation {
	if thresholds.LowYieldCount <= 0 {
		return nil
	}
	var tickers []string
	for _, v := range ranking.Eligible {
		if v.ProfitPercent < thresholds.LowYieldPercent {
			tickers = append(tickers, invctlledger.NormalizeTicker(v.Ticker))
		}
	}
	if len(tickers) < thresholds.LowYieldCount {
		return nil
	}
	return []Recommendation{
		{
			Icon:  IconLowYield,
			Title: "Review low-yield assets",
			Description: fmt.Sprintf(
				"%d holdings are below %.2f%%: %s.",
				len(tickers),
				thresholds.LowYieldPercent,
				strings.Join(tickers, ", "),
			),
			Priority: PriorityMedium,
		},
	}
}

func sectors(stats invctlstats.Stats, thresholds Thresholds) []Recommendation {
	if stats.DiversificationCount < minSectorAssets || len(stats.Sectors) >= thresholds.MinSectors {
		return nil
	}
	return []Recommendation{
		{
			Icon:  IconSectors,
			Title: "Spread across sectors",
			Description: fmt.Sprintf(
				"Your %d holdings span only %d sector(s). Consider adding exposure to other sectors.",
				stats.DiversificationCount,
				len(stats.Sectors),
			),
			Priority: PriorityMedium,
		},
	}
}
