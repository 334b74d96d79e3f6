package market

import (
	"fmt"
	"strings"

	"bitget-board/internal/domain"
	"bitget-board/internal/provider"

	"github.com/shopspring/decimal"
)

// BuildMajorDetail assembles the detail card of symbol from its spot ticker,
// newest-first hourly candles and futures open interest. The ticker must carry
// a readable last price; everything else degrades to zero.
func BuildMajorDetail(
	symbol string,
	ticker provider.RawTicker,
	candles []domain.Candle,
	oi *provider.RawOpenInterest,
	resolver *OIResolver,
) (domain.MajorDetail, error) {
	price, err := decimal.NewFromString(strings.TrimSpace(ticker.LastPr))
	if err != nil {
		return domain.MajorDetail{}, fmt.Errorf("%w: last price %q of %s", provider.ErrDecode, ticker.LastPr, symbol)
	}
	current := price.InexactFloat64()

	change1h, change4h := ExactChanges(current, candles)
	interest := resolver.Resolve(symbol, oi, current)

	return domain.MajorDetail{
		Symbol:            symbol,
		Price:             current,
		Change1h:          change1h,
		Change4h:          change4h,
		Change24h:         Change24h(current, parseNumber(ticker.Open)),
		OpenInterestValue: interest.Value,
		OpenInterestATH:   interest.ATH,
		OpenInterestATL:   interest.ATL,
		ATHDate:           interest.ATHDate,
		ATLDate:           interest.ATLDate,
	}, nil
}
