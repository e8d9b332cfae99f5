// Copyright 2026 Peter Edge
//
// All rights reserved.

// Package xmath provides extensions to the standard math package.
//
// All functions in this package map non-finite inputs (NaN, +Inf, -Inf) to 0
// so that malformed values never propagate into totals or percentages.
package xmath

import "math"

// Coerce returns f, or 0 if f is NaN or infinite.
func Coerce(f float64) float64 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}

// NonNegative returns f, or 0 if f is negative or not finite.
func NonNegative(f float64) float64 {
	f = Coerce(f)
	if f < 0 {
		return 0
	}
	return f
}

// Div returns numerator/denominator, or 0 if the denominator is 0 or the
// result is not finite.
func Div(numerator float64, denominator float64) float64 {
	if denominator == 0 {
		return 0
	}
	return Coerce(Coerce(numerator) / denominator)
}

// Percent returns part/whole*100, or 0 if whole is not positive.
func Percent(part float64, whole float64) float64 {
	whole = Coerce(whole)
	if whole <= 0 {
		return 0
	}
	return Coerce(Coerce(part) / whole * 100)
}

// ApproxEqual returns whether a and b differ by no more than tolerance.
func ApproxEqual(a float64, b float64, tolerance float64) bool {
	return math.Abs(a-b) <= tolerance
}
