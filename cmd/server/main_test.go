package main

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"bitget-board/internal/bot"
	"bitget-board/internal/config"
	"bitget-board/internal/domain"
	"bitget-board/internal/handler"
	"bitget-board/internal/provider"
	"bitget-board/internal/service"
	"bitget-board/pkg/tracing"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

func TestMainBootstrap(t *testing.T) {
	gin.SetMode(gin.TestMode)
	restore := stubServerDeps()
	defer restore()

	var served *http.Server
	started := make(chan struct{})
	startHTTPServerFunc = func(srv *http.Server) error {
		served = srv
		close(started)
		return http.ErrServerClosed
	}
	var telegramToken string
	startTelegramBotFunc = func(token string, m bot.MarketReader, l *zap.Logger) (*tele.Bot, error) {
		telegramToken = token
		return nil, nil
	}
	waitForSignalFunc = func(<-chan os.Signal) { <-started }

	done := make(chan struct{})
	go func() {
		main()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("main did not exit")
	}

	if served == nil {
		t.Fatal("expected http server to be started")
	}
	if served.Addr != ":9090" {
		t.Fatalf("expected configured addr, got %s", served.Addr)
	}
	if telegramToken != "tg-token" {
		t.Fatalf("expected telegram token to be passed through, got %q", telegramToken)
	}

	w := httptest.NewRecorder()
	served.Handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/tickers", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("expected routes to be registered, got %d", w.Code)
	}

	preflight := httptest.NewRequest(http.MethodOptions, "/api/refresh", nil)
	preflight.Header.Set("Origin", "http://dash.example")
	preflight.Header.Set("Access-Control-Request-Method", "POST")
	preflight.Header.Set("Access-Control-Request-Headers", "X-API-Key")
	w = httptest.NewRecorder()
	served.Handler.ServeHTTP(w, preflight)
	if w.Header().Get("Access-Control-Allow-Origin") != "*" {
		t.Fatalf("expected CORS preflight to be allowed, got headers %v", w.Header())
	}
}

func TestMainContinuesWithoutRedis(t *testing.T) {
	gin.SetMode(gin.TestMode)
	restore := stubServerDeps()
	defer restore()

	initRedisFunc = func(context.Context, string, *zap.Logger) (*redis.Client, error) {
		return nil, errors.New("connection refused")
	}
	var gotRedis service.RedisClient = &redis.Client{}
	newMarketServiceFunc = func(tr trace.Tracer, l *zap.Logger, p service.MarketProvider, r service.RedisClient, now func() time.Time) *service.MarketService {
		gotRedis = r
		return service.NewMarketService(tr, l, p, r, now)
	}

	done := make(chan struct{})
	go func() {
		main()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("main did not exit")
	}
	if gotRedis != nil {
		t.Fatalf("expected nil redis client, got %v", gotRedis)
	}
}

func stubServerDeps() func() {
	origLoadEnv := loadEnvFunc
	origLoadConfig := loadConfigFunc
	origNewLogger := newLoggerFunc
	origInitRedis := initRedisFunc
	origInitTracer := initTracerFunc
	origNewProvider := newBitgetProviderFunc
	origNewMarketService := newMarketServiceFunc
	origStartTelegram := startTelegramBotFunc
	origNewHandler := newHandlerFunc
	origNewRouter := newRouterFunc
	origSetupSignal := setupSignalNotify
	origWait := waitForSignalFunc
	origStartHTTP := startHTTPServerFunc
	origShutdownHTTP := shutdownHTTPServerFunc

	loadEnvFunc = func(...string) error { return nil }
	loadConfigFunc = func() *config.Config {
		return &config.Config{LogLevel: "info", HTTPPort: 9090, TelegramBotToken: "tg-token", RefreshSecs: 10}
	}
	newLoggerFunc = func(string) (*zap.Logger, error) { return zap.NewNop(), nil }
	initRedisFunc = func(context.Context, string, *zap.Logger) (*redis.Client, error) { return nil, nil }
	initTracerFunc = func(ctx context.Context, opts tracing.Options) (*sdktrace.TracerProvider, trace.Tracer, error) {
		tp := sdktrace.NewTracerProvider()
		return tp, tp.Tracer("test"), nil
	}
	newBitgetProviderFunc = func(trace.Tracer) service.MarketProvider { return stubMarketProvider{} }
	startTelegramBotFunc = func(string, bot.MarketReader, *zap.Logger) (*tele.Bot, error) { return nil, nil }
	newRouterFunc = func(...gin.OptionFunc) *gin.Engine { return gin.New() }
	setupSignalNotify = func(c chan<- os.Signal, sig ...os.Signal) {}
	waitForSignalFunc = func(<-chan os.Signal) {}
	startHTTPServerFunc = func(*http.Server) error { return http.ErrServerClosed }
	shutdownHTTPServerFunc = func(*http.Server, context.Context) error { return nil }

	return func() {
		loadEnvFunc = origLoadEnv
		loadConfigFunc = origLoadConfig
		newLoggerFunc = origNewLogger
		initRedisFunc = origInitRedis
		initTracerFunc = origInitTracer
		newBitgetProviderFunc = origNewProvider
		newMarketServiceFunc = origNewMarketService
		startTelegramBotFunc = origStartTelegram
		newHandlerFunc = origNewHandler
		newRouterFunc = origNewRouter
		setupSignalNotify = origSetupSignal
		waitForSignalFunc = origWait
		startHTTPServerFunc = origStartHTTP
		shutdownHTTPServerFunc = origShutdownHTTP
	}
}

var _ handler.MarketReader = (*service.MarketService)(nil)

type stubMarketProvider struct{}

func (stubMarketProvider) FetchAllTickers(ctx context.Context) ([]provider.RawTicker, error) {
	return []provider.RawTicker{{Symbol: "BTCUSDT", LastPr: "65000", Open: "64000", USDTVolume: "1"}}, nil
}

func (stubMarketProvider) FetchTicker(ctx context.Context, pair string) (*provider.RawTicker, error) {
	return &provider.RawTicker{Symbol: pair, LastPr: "1"}, nil
}

func (stubMarketProvider) FetchCandles(ctx context.Context, pair, granularity string, limit int) ([]domain.Candle, error) {
	return []domain.Candle{}, nil
}

func (stubMarketProvider) FetchOpenInterest(ctx context.Context, pair string) (*provider.RawOpenInterest, error) {
	return &provider.RawOpenInterest{Symbol: pair}, nil
}
