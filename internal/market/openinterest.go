package market

import (
	"math/rand/v2"
	"time"

	"bitget-board/internal/provider"

	"github.com/shopspring/decimal"
)

// Day-offset windows for the illustrative extreme dates, inclusive.
const (
	athMinDaysAgo = 60
	athMaxDaysAgo = 200
	atlMinDaysAgo = 300
	atlMaxDaysAgo = 600
)

// OpenInterest is the resolved open-interest context of one symbol.
type OpenInterest struct {
	Value   float64
	ATH     float64
	ATL     float64
	ATHDate time.Time
	ATLDate time.Time
}

// OIResolver values futures open interest and produces the synthetic
// historical extremes shown next to it.
type OIResolver struct {
	now  func() time.Time
	intN func(n int) int
}

func NewOIResolver() *OIResolver {
	return &OIResolver{now: time.Now, intN: rand.IntN}
}

// NewOIResolverWith is NewOIResolver with a fixed clock and random source.
func NewOIResolverWith(now func() time.Time, intN func(n int) int) *OIResolver {
	return &OIResolver{now: now, intN: intN}
}

// Resolve values oi at price for symbol (the base code, e.g. BTC).
// Missing open interest resolves to a zero value.
func (r *OIResolver) Resolve(symbol string, oi *provider.RawOpenInterest, price float64) OpenInterest {
	size := ""
	if oi != nil && oi.Available {
		size = oi.Size
	}
	value := NotionalValue(size, price)
	ath, atl := Extremes(symbol, value)
	athDate, atlDate := r.IllustrativeDates()
	return OpenInterest{
		Value:   value,
		ATH:     ath,
		ATL:     atl,
		ATHDate: athDate,
		ATLDate: atlDate,
	}
}

// IllustrativeDates draws the ATH date 60-200 days back and the ATL date
// 300-600 days back, as calendar dates. These are cosmetic.
func (r *OIResolver) IllustrativeDates() (athDate, atlDate time.Time) {
	today := r.now().UTC()
	today = time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC)

	athDays := athMinDaysAgo + r.intN(athMaxDaysAgo-athMinDaysAgo+1)
	atlDays := atlMinDaysAgo + r.intN(atlMaxDaysAgo-atlMinDaysAgo+1)
	return today.AddDate(0, 0, -athDays), today.AddDate(0, 0, -atlDays)
}

// NotionalValue is size x price; an empty or invalid size is zero.
func NotionalValue(size string, price float64) float64 {
	if size == "" {
		return 0
	}
	d, err := decimal.NewFromString(size)
	if err != nil {
		return 0
	}
	return d.Mul(decimal.NewFromFloat(price)).InexactFloat64()
}

// Extremes scales value by multipliers keyed on the symbol's length only.
func Extremes(symbol string, value float64) (ath, atl float64) {
	athMul, atlMul := ExtremeMultipliers(symbol)
	return value * athMul, value * atlMul
}

// ExtremeMultipliers returns 1.2-1.6 for the ATH and 0.3-0.5 for the ATL.
func ExtremeMultipliers(symbol string) (ath, atl float64) {
	seed := len(symbol)
	return 1.2 + float64(seed%5)/10, 0.3 + float64(seed%3)/10
}
