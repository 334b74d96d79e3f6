package domain

import "time"

// Candle represents a single OHLCV candle for a pair at a given granularity.
type Candle struct {
	OpenTime time.Time `json:"open_time"`
	Open     float64   `json:"open"`
	High     float64   `json:"high"`
	Low      float64   `json:"low"`
	Close    float64   `json:"close"`
	Volume   float64   `json:"volume"`
}

// TickerRecord is one normalized row of the all-tickers snapshot.
// Change fields are fractional ratios: 0.015 means +1.5%.
type TickerRecord struct {
	Symbol         string  `json:"symbol"`
	FullSymbol     string  `json:"full_symbol"`
	LastPrice      float64 `json:"last_price"`
	Open24h        float64 `json:"open_24h"`
	High24h        float64 `json:"high_24h"`
	Low24h         float64 `json:"low_24h"`
	QuoteVolume24h float64 `json:"quote_volume_24h"`
	Change1h       float64 `json:"change_1h"`
	Change4h       float64 `json:"change_4h"`
	Change24h      float64 `json:"change_24h"`
}

// MajorDetail is the candle-backed view of a major symbol with open-interest context.
// OpenInterestATH/ATL and the two dates are illustrative estimates, not history.
type MajorDetail struct {
	Symbol            string    `json:"symbol"`
	Price             float64   `json:"price"`
	Change1h          float64   `json:"change_1h"`
	Change4h          float64   `json:"change_4h"`
	Change24h         float64   `json:"change_24h"`
	OpenInterestValue float64   `json:"open_interest_value"`
	OpenInterestATH   float64   `json:"open_interest_ath"`
	OpenInterestATL   float64   `json:"open_interest_atl"`
	ATHDate           time.Time `json:"ath_date"`
	ATLDate           time.Time `json:"atl_date"`
}
