// Package format renders dashboard magnitudes. Money values are in millions.
package format

import (
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// fixed rounds the exact binary value of v half away from zero, so 1150/1000,
// stored as 1.1499999..., gives "1.1" at one place.
func fixed(v float64, places int32) string {
	return decimal.RequireFromString(strconv.FormatFloat(v, 'f', 80, 64)).StringFixed(places)
}

// Currency renders millions as "$X.YM", switching to billions ("$X.YB") once
// |value| reaches 1000. billionDecimals only applies to the billions form.
// The unit is picked before rounding, so 999.96 renders as "$1000.0M".
func Currency(value float64, billionDecimals int32) string {
	if math.Abs(value) >= 1000 {
		return "$" + fixed(value/1000, billionDecimals) + "B"
	}
	return "$" + fixed(value, 1) + "M"
}

// CurrencyShort is the card and chart variant.
func CurrencyShort(value float64) string {
	return Currency(value, 1)
}

// CurrencyLong is the report variant with two decimals for billions.
func CurrencyLong(value float64) string {
	return Currency(value, 2)
}

// PercentDelta is the change from previous to current relative to |previous|.
// A zero previous value yields 0, so a move away from zero reads as no change.
func PercentDelta(current, previous float64) float64 {
	if previous == 0 {
		return 0
	}
	return (current - previous) / math.Abs(previous) * 100
}

// Growth is the change relative to initial without normalising its sign.
func Growth(current, initial float64) float64 {
	if initial == 0 {
		return 0
	}
	return (current - initial) / initial * 100
}

func Percent(v float64, decimals int32) string {
	return fixed(v, decimals) + "%"
}

func SignedPercent(v float64, decimals int32) string {
	s := Percent(v, decimals)
	if v >= 0 {
		return "+" + s
	}
	return s
}

func Ratio(v float64, decimals int32) string {
	return fixed(v, decimals)
}

// Count renders a headcount with thousands separators and at most three
// fraction digits: 4291.6 -> "4,291.6".
func Count(v float64) string {
	s := decimal.NewFromFloat(v).Round(3).String()

	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}

	intPart, frac, hasFrac := strings.Cut(s, ".")
	var b strings.Builder
	b.WriteString(sign)
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	if hasFrac {
		b.WriteByte('.')
		b.WriteString(frac)
	}
	return b.String()
}

// SignedCount renders a whole-number change with an explicit plus sign.
func SignedCount(v float64) string {
	s := fixed(v, 0)
	if v >= 0 {
		return "+" + s
	}
	return s
}

// FileSize renders a byte count in kilobytes with one decimal.
func FileSize(bytes int64) string {
	return decimal.NewFromInt(bytes).Div(decimal.NewFromInt(1024)).StringFixed(1) + " KB"
}
