package provider

// RawTicker holds the exchange's ticker fields as received. Numeric fields are
// kept as their textual form; an absent field is the empty string.
type RawTicker struct {
	Symbol      string
	LastPr      string
	Open        string
	High24h     string
	Low24h      string
	USDTVolume  string
	QuoteVolume string
}

// RawOpenInterest is the first entry of the futures open-interest list.
// Available is false when the exchange returned no list or an empty one.
type RawOpenInterest struct {
	Symbol    string
	Size      string
	Available bool
}
