package domain

import "strings"

// QuoteCurrency is the only quote asset the board tracks.
const QuoteCurrency = "USDT"

// MajorSymbols lists the base assets shown as detail cards, in display order.
var MajorSymbols = []string{"BTC", "ETH", "SOL"}

// PairFor returns the exchange pair identifier for a base symbol, e.g. BTC -> BTCUSDT.
func PairFor(symbol string) string {
	return strings.ToUpper(strings.TrimSpace(symbol)) + QuoteCurrency
}

// BaseSymbol strips the quote-currency suffix from a pair identifier.
// Pairs quoted in another currency are returned unchanged.
func BaseSymbol(pair string) string {
	return strings.TrimSuffix(pair, QuoteCurrency)
}

func IsMajor(symbol string) bool {
	for _, s := range MajorSymbols {
		if s == symbol {
			return true
		}
	}
	return false
}
