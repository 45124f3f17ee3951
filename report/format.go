// Package report renders analytics results as text tables, CSV and Org-mode.
// Renderers only format; every number comes from the analytics package.
package report

import (
	"strconv"

	"github.com/shopspring/decimal"
)

// fixed2 rounds half away from zero to two places for display.
func fixed2(x float64) string {
	return decimal.NewFromFloat(x).StringFixed(2)
}

// price keeps five places, enough for FX quotes.
func price(x float64) string {
	if x == 0 {
		return "-"
	}
	return decimal.NewFromFloat(x).StringFixed(5)
}

func f(x float64) string {
	return strconv.FormatFloat(x, 'f', 6, 64)
}

// exact writes the shortest decimal that parses back to x. Prices and sizes
// use it so an export re-imports unchanged.
func exact(x float64) string {
	return strconv.FormatFloat(x, 'f', -1, 64)
}
