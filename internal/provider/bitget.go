package provider

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"time"

	"bitget-board/internal/domain"

	"github.com/tidwall/gjson"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const (
	bitgetBaseURL     = "https://api.bitget.com"
	bitgetSuccessCode = "00000"
	requestTimeout    = 5 * time.Second

	futuresProductType = "USDT-FUTURES"
)

// BitgetProvider reads public spot and futures market data from the Bitget v2 REST API.
// It performs no retries; callers decide what a failure means.
type BitgetProvider struct {
	client  *http.Client
	baseURL string
	tracer  trace.Tracer
	limiter *RateLimiter
}

// NewBitgetProvider creates a provider with a 5 second request timeout.
// Rate limited to a burst of 20 requests, refilled one every 50ms (Bitget's
// public market limit is 20 req/s per IP).
func NewBitgetProvider(tracer trace.Tracer) *BitgetProvider {
	return &BitgetProvider{
		client:  &http.Client{Timeout: requestTimeout},
		baseURL: bitgetBaseURL,
		tracer:  tracer,
		limiter: NewRateLimiter(20, 50*time.Millisecond),
	}
}

// FetchAllTickers returns every spot pair in the order the exchange sent them.
func (p *BitgetProvider) FetchAllTickers(ctx context.Context) ([]RawTicker, error) {
	ctx, span := p.tracer.Start(ctx, "bitget.fetch-all-tickers")
	defer span.End()

	body, err := p.doRequest(ctx, "/api/v2/spot/market/tickers", nil)
	if err != nil {
		return nil, fmt.Errorf("fetch all tickers: %w", err)
	}

	data := body.Get("data")
	if !data.IsArray() {
		return nil, fmt.Errorf("fetch all tickers: %w", decodeErrorf("data is not a list"))
	}

	items := data.Array()
	tickers := make([]RawTicker, 0, len(items))
	for _, item := range items {
		tickers = append(tickers, rawTickerFrom(item))
	}
	span.SetAttributes(attribute.Int("tickers", len(tickers)))
	return tickers, nil
}

// FetchTicker returns the spot ticker of a single pair.
func (p *BitgetProvider) FetchTicker(ctx context.Context, pair string) (*RawTicker, error) {
	ctx, span := p.tracer.Start(ctx, "bitget.fetch-ticker")
	defer span.End()
	span.SetAttributes(attribute.String("pair", pair))

	body, err := p.doRequest(ctx, "/api/v2/spot/market/tickers", url.Values{"symbol": {pair}})
	if err != nil {
		return nil, fmt.Errorf("fetch ticker %s: %w", pair, err)
	}

	data := body.Get("data")
	if !data.IsArray() || len(data.Array()) == 0 {
		return nil, fmt.Errorf("fetch ticker %s: %w", pair, decodeErrorf("no ticker in response"))
	}
	item := data.Array()[0]
	if !item.Get("lastPr").Exists() {
		return nil, fmt.Errorf("fetch ticker %s: %w", pair, decodeErrorf("ticker has no lastPr"))
	}

	ticker := rawTickerFrom(item)
	return &ticker, nil
}

// FetchCandles returns up to limit candles, newest first: index 0 is the
// in-progress candle, index 1 closed one granularity ago, and so on.
func (p *BitgetProvider) FetchCandles(ctx context.Context, pair, granularity string, limit int) ([]domain.Candle, error) {
	ctx, span := p.tracer.Start(ctx, "bitget.fetch-candles")
	defer span.End()
	span.SetAttributes(attribute.String("pair", pair), attribute.String("granularity", granularity))

	query := url.Values{
		"symbol":      {pair},
		"granularity": {granularity},
		"limit":       {strconv.Itoa(limit)},
	}
	body, err := p.doRequest(ctx, "/api/v2/spot/market/candles", query)
	if err != nil {
		return nil, fmt.Errorf("fetch candles %s: %w", pair, err)
	}

	data := body.Get("data")
	if !data.IsArray() {
		return nil, fmt.Errorf("fetch candles %s: %w", pair, decodeErrorf("data is not a list"))
	}

	rows := data.Array()
	candles := make([]domain.Candle, 0, len(rows))
	for i, row := range rows {
		// [ts, open, high, low, close, baseVolume, ...]
		fields := row.Array()
		if len(fields) < 6 {
			return nil, fmt.Errorf("fetch candles %s: %w", pair, decodeErrorf("candle %d has %d fields", i, len(fields)))
		}
		candles = append(candles, domain.Candle{
			OpenTime: time.UnixMilli(fields[0].Int()).UTC(),
			Open:     fields[1].Float(),
			High:     fields[2].Float(),
			Low:      fields[3].Float(),
			Close:    fields[4].Float(),
			Volume:   fields[5].Float(),
		})
	}

	sort.SliceStable(candles, func(i, j int) bool {
		return candles[i].OpenTime.After(candles[j].OpenTime)
	})
	return candles, nil
}

// FetchOpenInterest returns the USDT-margined futures open interest for a pair.
// A response without an open-interest entry is not an error.
func (p *BitgetProvider) FetchOpenInterest(ctx context.Context, pair string) (*RawOpenInterest, error) {
	ctx, span := p.tracer.Start(ctx, "bitget.fetch-open-interest")
	defer span.End()
	span.SetAttributes(attribute.String("pair", pair))

	query := url.Values{
		"symbol":      {pair},
		"productType": {futuresProductType},
	}
	body, err := p.doRequest(ctx, "/api/v2/mix/market/open-interest", query)
	if err != nil {
		return nil, fmt.Errorf("fetch open interest %s: %w", pair, err)
	}

	oi := &RawOpenInterest{Symbol: pair}
	first := body.Get("data.openInterestList.0")
	if !first.Exists() {
		return oi, nil
	}
	oi.Size = first.Get("size").String()
	oi.Available = true
	if s := first.Get("symbol").String(); s != "" {
		oi.Symbol = s
	}
	return oi, nil
}

func (p *BitgetProvider) doRequest(ctx context.Context, path string, query url.Values) (gjson.Result, error) {
	if err := p.limiter.Wait(ctx); err != nil {
		return gjson.Result{}, fmt.Errorf("%w: rate limit wait: %w", ErrTransport, err)
	}
	trace.SpanFromContext(ctx).SetAttributes(attribute.Int("ratelimit.tokens_left", p.limiter.Available()))

	endpoint := p.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return gjson.Result{}, fmt.Errorf("%w: %w", ErrTransport, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return gjson.Result{}, fmt.Errorf("%w: %w", ErrTransport, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return gjson.Result{}, fmt.Errorf("%w: read body: %w", ErrTransport, err)
	}

	if !gjson.ValidBytes(raw) {
		if resp.StatusCode != http.StatusOK {
			return gjson.Result{}, &StatusError{HTTPStatus: resp.StatusCode, Message: string(raw)}
		}
		return gjson.Result{}, decodeErrorf("response is not JSON")
	}

	body := gjson.ParseBytes(raw)
	code := body.Get("code").String()
	if resp.StatusCode != http.StatusOK || code != bitgetSuccessCode {
		return gjson.Result{}, &StatusError{
			HTTPStatus: resp.StatusCode,
			Code:       code,
			Message:    body.Get("msg").String(),
		}
	}
	return body, nil
}

func rawTickerFrom(item gjson.Result) RawTicker {
	return RawTicker{
		Symbol:      item.Get("symbol").String(),
		LastPr:      item.Get("lastPr").String(),
		Open:        item.Get("open").String(),
		High24h:     item.Get("high24h").String(),
		Low24h:      item.Get("low24h").String(),
		USDTVolume:  item.Get("usdtVolume").String(),
		QuoteVolume: item.Get("quoteVolume").String(),
	}
}
