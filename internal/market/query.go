package market

import (
	"sort"
	"strings"

	"bitget-board/internal/domain"
)

type SortKey string

const (
	SortVolume    SortKey = "volume"
	SortPrice     SortKey = "price"
	SortChange1h  SortKey = "change_1h"
	SortChange4h  SortKey = "change_4h"
	SortChange24h SortKey = "change_24h"
	SortSymbol    SortKey = "symbol"
)

// SortKeys lists the accepted sort keys.
var SortKeys = []SortKey{SortVolume, SortPrice, SortChange1h, SortChange4h, SortChange24h, SortSymbol}

// ParseSortKey accepts a sort key name; empty means SortVolume.
func ParseSortKey(s string) (SortKey, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return SortVolume, true
	}
	for _, k := range SortKeys {
		if string(k) == s {
			return k, true
		}
	}
	return "", false
}

// Query describes the table view of a snapshot. The zero value lists every
// record by descending quote volume.
type Query struct {
	Search    string
	SortBy    SortKey
	Ascending bool
	Limit     int
}

// Apply filters and orders a copy of records; the input slice is left untouched.
func Apply(records []domain.TickerRecord, q Query) []domain.TickerRecord {
	term := strings.ToUpper(strings.TrimSpace(q.Search))

	out := make([]domain.TickerRecord, 0, len(records))
	for _, r := range records {
		if term != "" && !strings.Contains(r.Symbol, term) {
			continue
		}
		out = append(out, r)
	}

	key := q.SortBy
	if key == "" {
		key = SortVolume
	}
	less := lessFor(key)
	sort.SliceStable(out, func(i, j int) bool {
		if q.Ascending {
			return less(out[i], out[j])
		}
		return less(out[j], out[i])
	})

	if q.Limit > 0 && len(out) > q.Limit {
		out = out[:q.Limit]
	}
	return out
}

func lessFor(key SortKey) func(a, b domain.TickerRecord) bool {
	switch key {
	case SortPrice:
		return func(a, b domain.TickerRecord) bool { return a.LastPrice < b.LastPrice }
	case SortChange1h:
		return func(a, b domain.TickerRecord) bool { return a.Change1h < b.Change1h }
	case SortChange4h:
		return func(a, b domain.TickerRecord) bool { return a.Change4h < b.Change4h }
	case SortChange24h:
		return func(a, b domain.TickerRecord) bool { return a.Change24h < b.Change24h }
	case SortSymbol:
		return func(a, b domain.TickerRecord) bool { return a.Symbol < b.Symbol }
	default:
		return func(a, b domain.TickerRecord) bool { return a.QuoteVolume24h < b.QuoteVolume24h }
	}
}
