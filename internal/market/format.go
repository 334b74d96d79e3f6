package market

import (
	"fmt"
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

type Trend string

const (
	TrendUp   Trend = "up"
	TrendDown Trend = "down"
)

// TrendOf classifies a change for coloring; zero counts as up.
func TrendOf(change float64) Trend {
	if change >= 0 {
		return TrendUp
	}
	return TrendDown
}

// FormatCurrency renders large notional values compactly: $1.23B, $4.56M, $7,890.
func FormatCurrency(v float64) string {
	switch {
	case v > 1_000_000_000:
		return fmt.Sprintf("$%.2fB", v/1_000_000_000)
	case v > 1_000_000:
		return fmt.Sprintf("$%.2fM", v/1_000_000)
	default:
		return printer.Sprintf("$%d", int64(math.Round(v)))
	}
}

// FormatPercent renders a fractional ratio as a signed percentage, 0.015 -> +1.50%.
func FormatPercent(ratio float64) string {
	return fmt.Sprintf("%+.2f%%", ratio*100)
}

// FormatPrice renders a table price with four decimals.
func FormatPrice(v float64) string {
	return fmt.Sprintf("$%.4f", v)
}

// FormatCardPrice renders a headline price with grouping and two decimals.
func FormatCardPrice(v float64) string {
	return printer.Sprintf("$%.2f", v)
}
