package market

import (
	"testing"

	"bitget-board/internal/provider"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeTickersBTC(t *testing.T) {
	raw := []provider.RawTicker{{
		Symbol:     "BTCUSDT",
		LastPr:     "65000",
		Open:       "64000",
		High24h:    "66000",
		Low24h:     "63000",
		USDTVolume: "1000000",
	}}

	records := NormalizeTickers(raw)
	require.Len(t, records, 1)

	r := records[0]
	assert.Equal(t, "BTC", r.Symbol)
	assert.Equal(t, "BTCUSDT", r.FullSymbol)
	assert.Equal(t, 65000.0, r.LastPrice)
	assert.Equal(t, 64000.0, r.Open24h)
	assert.Equal(t, 66000.0, r.High24h)
	assert.Equal(t, 63000.0, r.Low24h)
	assert.Equal(t, 1000000.0, r.QuoteVolume24h)
	assert.InDelta(t, 0.015625, r.Change24h, 1e-12)

	c1, c4 := EstimatedChanges("BTCUSDT", r.Change24h)
	assert.Equal(t, c1, r.Change1h)
	assert.Equal(t, c4, r.Change4h)
}

func TestNormalizeTickersZeroOpen(t *testing.T) {
	records := NormalizeTickers([]provider.RawTicker{
		{Symbol: "NEWUSDT", LastPr: "1.5", Open: "0"},
		{Symbol: "ODDUSDT", LastPr: "2"},
	})
	require.Len(t, records, 2)
	for _, r := range records {
		assert.Zero(t, r.Change24h, r.FullSymbol)
	}
}

func TestNormalizeTickersAbsentFieldsAreZero(t *testing.T) {
	records := NormalizeTickers([]provider.RawTicker{
		{Symbol: "XYZUSDT", LastPr: "not-a-number", QuoteVolume: "42"},
	})
	require.Len(t, records, 1)

	r := records[0]
	assert.Zero(t, r.LastPrice)
	assert.Zero(t, r.High24h)
	assert.Zero(t, r.Low24h)
	assert.Equal(t, 42.0, r.QuoteVolume24h, "quoteVolume is the fallback for usdtVolume")
}

func TestNormalizeTickersKeepsOrderAndSkipsUnnamed(t *testing.T) {
	records := NormalizeTickers([]provider.RawTicker{
		{Symbol: "ETHUSDT", LastPr: "1"},
		{Symbol: "", LastPr: "1"},
		{Symbol: "ADAUSDT", LastPr: "1"},
		{Symbol: "BTCUSDC", LastPr: "1"},
	})
	require.Len(t, records, 3)
	assert.Equal(t, []string{"ETH", "ADA", "BTCUSDC"}, []string{records[0].Symbol, records[1].Symbol, records[2].Symbol})
}

func TestNormalizeTickersEmpty(t *testing.T) {
	records := NormalizeTickers(nil)
	assert.NotNil(t, records)
	assert.Empty(t, records)
}

func TestChange24h(t *testing.T) {
	assert.InDelta(t, 0.1, Change24h(110, 100), 1e-12)
	assert.InDelta(t, -0.5, Change24h(50, 100), 1e-12)
	assert.Zero(t, Change24h(50, 0))
	assert.Zero(t, Change24h(50, -1))
}
