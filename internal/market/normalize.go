package market

import (
	"strings"

	"bitget-board/internal/domain"
	"bitget-board/internal/provider"

	"github.com/shopspring/decimal"
)

// NormalizeTickers converts raw spot tickers into records, keeping the source order.
// Absent or unparseable numeric fields count as zero. The 1h and 4h changes are
// estimates, see EstimatedChanges.
func NormalizeTickers(raw []provider.RawTicker) []domain.TickerRecord {
	records := make([]domain.TickerRecord, 0, len(raw))
	for _, t := range raw {
		if t.Symbol == "" {
			continue
		}

		last := parseNumber(t.LastPr)
		open := parseNumber(t.Open)
		volume := t.USDTVolume
		if strings.TrimSpace(volume) == "" {
			volume = t.QuoteVolume
		}

		change24h := Change24h(last, open)
		change1h, change4h := EstimatedChanges(t.Symbol, change24h)

		records = append(records, domain.TickerRecord{
			Symbol:         domain.BaseSymbol(t.Symbol),
			FullSymbol:     t.Symbol,
			LastPrice:      last,
			Open24h:        open,
			High24h:        parseNumber(t.High24h),
			Low24h:         parseNumber(t.Low24h),
			QuoteVolume24h: parseNumber(volume),
			Change1h:       change1h,
			Change4h:       change4h,
			Change24h:      change24h,
		})
	}
	return records
}

// Change24h is (last - open) / open, or 0 when open is not positive.
func Change24h(last, open float64) float64 {
	return relativeChange(last, open)
}

func relativeChange(current, reference float64) float64 {
	if reference <= 0 {
		return 0
	}
	return (current - reference) / reference
}

func parseNumber(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0
	}
	return d.InexactFloat64()
}
