// Package core holds the dashboard domain model and pure display
// helpers. Money is kept in integer cents; sums stay exact and rounding
// happens only at the formatting step.
package core

import (
	"fmt"
	"math"
	"strconv"
)

// Rand returns the rand value as float64 for display purposes only.
// Use cents for any arithmetic.
func (m Money) Rand() float64 {
	return float64(m.Cents) / 100.0
}

// Add returns the exact sum in cents.
func (m Money) Add(o Money) Money {
	return Money{Cents: m.Cents + o.Cents}
}

// Rands builds a Money from a whole-rand amount.
func Rands(r int64) Money {
	return Money{Cents: r * 100}
}

// FormatRand abbreviates a money amount for board cards:
// R2.3M for millions, R320K for thousands, R999 below that.
// The K tier rounds to a whole number of thousands (R1500 -> "R2K");
// that is the single canonical rule for every call site.
func FormatRand(m Money) string {
	rands := m.Rand()
	neg := rands < 0
	if neg {
		rands = -rands
	}
	var s string
	switch {
	case rands >= 1_000_000:
		s = fmt.Sprintf("R%.1fM", math.Round(rands/100_000)/10)
	case rands >= 1_000:
		s = fmt.Sprintf("R%dK", int64(math.Round(rands/1_000)))
	default:
		s = "R" + strconv.FormatFloat(rands, 'f', -1, 64)
	}
	if neg {
		return "-" + s
	}
	return s
}
