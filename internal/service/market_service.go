package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	"bitget-board/internal/cache"
	"bitget-board/internal/domain"
	"bitget-board/internal/market"
	"bitget-board/internal/provider"

	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	tickersCacheTTL = 10 * time.Second
	detailCacheTTL  = 10 * time.Second

	detailCandleGranularity = "1h"
	detailCandleLimit       = 5
)

// MarketProvider is the read-only exchange client the service aggregates.
type MarketProvider interface {
	FetchAllTickers(ctx context.Context) ([]provider.RawTicker, error)
	FetchTicker(ctx context.Context, pair string) (*provider.RawTicker, error)
	FetchCandles(ctx context.Context, pair, granularity string, limit int) ([]domain.Candle, error)
	FetchOpenInterest(ctx context.Context, pair string) (*provider.RawOpenInterest, error)
}

type RedisClient interface {
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Get(ctx context.Context, key string) *redis.StringCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

// Snapshot is the all-tickers view handed to the presentation layer.
// An empty Tickers slice means the data is unavailable.
type Snapshot struct {
	Tickers   []domain.TickerRecord
	UpdatedAt time.Time
}

func (s Snapshot) Available() bool { return len(s.Tickers) > 0 }

// MajorSlot is one major-symbol card; Detail is nil when the data is unavailable.
type MajorSlot struct {
	Symbol string
	Detail *domain.MajorDetail
}

// MarketService aggregates exchange data into ticker snapshots and major-symbol
// details. The tickers snapshot is memoized for tickersCacheTTL; details are
// cached only when a Redis client is supplied.
type MarketService struct {
	tracer   trace.Tracer
	logger   *zap.Logger
	provider MarketProvider
	redis    RedisClient
	tickers  *cache.TTLCache[[]domain.TickerRecord]
	oi       *market.OIResolver
}

// NewMarketService wires the service. redisClient may be nil; now may be nil for time.Now.
func NewMarketService(
	tracer trace.Tracer,
	logger *zap.Logger,
	marketProvider MarketProvider,
	redisClient RedisClient,
	now func() time.Time,
) *MarketService {
	if now == nil {
		now = time.Now
	}
	return &MarketService{
		tracer:   tracer,
		logger:   logger,
		provider: marketProvider,
		redis:    redisClient,
		tickers:  cache.NewTTLCache[[]domain.TickerRecord](tickersCacheTTL, now),
		oi:       market.NewOIResolverWith(now, rand.IntN),
	}
}

// GetAllTickers returns the normalized snapshot, or an empty slice when any
// upstream call fails. It never returns an error. The empty result of a failed
// fetch is memoized for the same TTL as a good one.
func (s *MarketService) GetAllTickers(ctx context.Context) []domain.TickerRecord {
	return s.GetSnapshot(ctx).Tickers
}

// GetSnapshot is GetAllTickers plus the time the snapshot was fetched.
func (s *MarketService) GetSnapshot(ctx context.Context) Snapshot {
	ctx, span := s.tracer.Start(ctx, "market-service.get-snapshot")
	defer span.End()

	records, at, err := s.tickers.Get(ctx, s.loadTickers)
	if err != nil {
		span.SetAttributes(attribute.Bool("available", false), attribute.String("failure", failureClass(err)))
		return Snapshot{Tickers: []domain.TickerRecord{}}
	}
	span.SetAttributes(attribute.Int("tickers", len(records)))
	return Snapshot{Tickers: records, UpdatedAt: at}
}

func (s *MarketService) loadTickers(ctx context.Context) ([]domain.TickerRecord, error) {
	raw, err := s.provider.FetchAllTickers(ctx)
	if err != nil {
		s.logger.Warn("all-tickers snapshot unavailable",
			zap.Error(err),
			zap.String("failure", failureClass(err)),
			zap.Duration("retry_after", s.tickers.TTL()),
		)
		return nil, err
	}
	return market.NormalizeTickers(raw), nil
}

// GetMajorDetail fetches ticker, candles and open interest for symbol. If any
// of the three fails the whole detail is absent: nil and the cause.
func (s *MarketService) GetMajorDetail(ctx context.Context, symbol string) (*domain.MajorDetail, error) {
	ctx, span := s.tracer.Start(ctx, "market-service.get-major-detail")
	defer span.End()

	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	span.SetAttributes(attribute.String("symbol", symbol))

	if s.redis != nil {
		cached, err := s.getDetailCache(ctx, symbol)
		if err != nil {
			s.logger.Warn("redis detail cache read error", zap.String("symbol", symbol), zap.Error(err))
		}
		if cached != nil {
			return cached, nil
		}
	}

	detail, err := s.fetchMajorDetail(ctx, symbol)
	if err != nil {
		s.logger.Warn("major detail unavailable",
			zap.String("symbol", symbol),
			zap.String("failure", failureClass(err)),
			zap.Error(err),
		)
		return nil, err
	}

	if s.redis != nil {
		if err := s.setDetailCache(ctx, detail); err != nil {
			s.logger.Warn("redis detail cache write error", zap.String("symbol", symbol), zap.Error(err))
		}
	}
	return detail, nil
}

func (s *MarketService) fetchMajorDetail(ctx context.Context, symbol string) (*domain.MajorDetail, error) {
	pair := domain.PairFor(symbol)

	ticker, err := s.provider.FetchTicker(ctx, pair)
	if err != nil {
		return nil, fmt.Errorf("major detail %s: %w", symbol, err)
	}

	var (
		candles []domain.Candle
		oi      *provider.RawOpenInterest
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		candles, err = s.provider.FetchCandles(gctx, pair, detailCandleGranularity, detailCandleLimit)
		return err
	})
	g.Go(func() error {
		var err error
		oi, err = s.provider.FetchOpenInterest(gctx, pair)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("major detail %s: %w", symbol, err)
	}

	detail, err := market.BuildMajorDetail(symbol, *ticker, candles, oi, s.oi)
	if err != nil {
		return nil, fmt.Errorf("major detail %s: %w", symbol, err)
	}
	return &detail, nil
}

// GetMajorDetails fetches every major symbol concurrently, in display order.
func (s *MarketService) GetMajorDetails(ctx context.Context) []MajorSlot {
	ctx, span := s.tracer.Start(ctx, "market-service.get-major-details")
	defer span.End()

	slots := make([]MajorSlot, len(domain.MajorSymbols))
	var g errgroup.Group
	for i, symbol := range domain.MajorSymbols {
		slots[i].Symbol = symbol
		g.Go(func() error {
			detail, err := s.GetMajorDetail(ctx, symbol)
			if err == nil {
				slots[i].Detail = detail
			}
			return nil
		})
	}
	_ = g.Wait()
	return slots
}

// Invalidate forgets the tickers snapshot and any cached details so the next
// read goes to the exchange. Used by the user-facing refresh action.
func (s *MarketService) Invalidate(ctx context.Context) {
	s.tickers.Invalidate()
	if s.redis == nil {
		return
	}
	keys := make([]string, len(domain.MajorSymbols))
	for i, symbol := range domain.MajorSymbols {
		keys[i] = detailCacheKey(symbol)
	}
	if err := s.redis.Del(ctx, keys...).Err(); err != nil {
		s.logger.Warn("redis detail cache invalidate error", zap.Error(err))
	}
}

func detailCacheKey(symbol string) string {
	return "major:" + symbol
}

func (s *MarketService) setDetailCache(ctx context.Context, detail *domain.MajorDetail) error {
	data, err := json.Marshal(detail)
	if err != nil {
		return err
	}
	return s.redis.Set(ctx, detailCacheKey(detail.Symbol), data, detailCacheTTL).Err()
}

func (s *MarketService) getDetailCache(ctx context.Context, symbol string) (*domain.MajorDetail, error) {
	data, err := s.redis.Get(ctx, detailCacheKey(symbol)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var detail domain.MajorDetail
	if err := json.Unmarshal(data, &detail); err != nil {
		return nil, err
	}
	return &detail, nil
}

func failureClass(err error) string {
	switch {
	case errors.Is(err, provider.ErrUpstreamStatus):
		return "upstream_status"
	case errors.Is(err, provider.ErrDecode):
		return "decode"
	case errors.Is(err, provider.ErrTransport):
		return "transport"
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return "canceled"
	default:
		return "unknown"
	}
}
