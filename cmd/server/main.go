package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"bitget-board/internal/bot"
	"bitget-board/internal/cache"
	"bitget-board/internal/config"
	"bitget-board/internal/handler"
	"bitget-board/internal/logger"
	"bitget-board/internal/provider"
	"bitget-board/internal/service"
	"bitget-board/pkg/tracing"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	_ "bitget-board/docs"
)

var (
	loadEnvFunc           = godotenv.Load
	loadConfigFunc        = config.Load
	newLoggerFunc         = logger.NewLogger
	initRedisFunc         = cache.InitRedis
	initTracerFunc        = tracing.InitTracer
	newBitgetProviderFunc = func(tracer trace.Tracer) service.MarketProvider {
		return provider.NewBitgetProvider(tracer)
	}
	newMarketServiceFunc   = service.NewMarketService
	startTelegramBotFunc   = bot.StartTelegramBot
	newHandlerFunc         = handler.New
	newRouterFunc          = gin.Default
	setupSignalNotify      = signal.Notify
	waitForSignalFunc      = func(quit <-chan os.Signal) { <-quit }
	startHTTPServerFunc    = func(srv *http.Server) error { return srv.ListenAndServe() }
	shutdownHTTPServerFunc = func(srv *http.Server, ctx context.Context) error { return srv.Shutdown(ctx) }
)

// @title           Bitget Board API
// @version         1.0
// @description     Bitget spot tickers and major-symbol detail cards with OpenTelemetry tracing.

// @host      localhost:8080
// @BasePath  /
func main() {
	_ = loadEnvFunc()

	cfg := loadConfigFunc()

	zl, err := newLoggerFunc(cfg.LogLevel)
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer func() { _ = zl.Sync() }()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Redis is optional; without it major details are not cached.
	var redisClient service.RedisClient
	rdb, err := initRedisFunc(ctx, cfg.RedisURL, zl)
	if err != nil {
		zl.Warn("redis unavailable, continuing without detail cache", zap.Error(err))
	} else if rdb != nil {
		redisClient = rdb
		defer rdb.Close()
	}

	tp, tracer, err := initTracerFunc(ctx, tracing.Options{
		Enabled:   cfg.TracingEnabled,
		Endpoint:  cfg.OTLPEndpoint,
		Component: "http",
	})
	if err != nil {
		zl.Fatal("failed to initialize tracer", zap.Error(err))
	}
	defer func() {
		if err := tp.Shutdown(context.Background()); err != nil {
			zl.Warn("error shutting down tracer provider", zap.Error(err))
		}
	}()

	bitget := newBitgetProviderFunc(tracer)
	marketService := newMarketServiceFunc(tracer, zl, bitget, redisClient, nil)

	tgBot, err := startTelegramBotFunc(cfg.TelegramBotToken, marketService, zl)
	if err != nil {
		zl.Error("telegram bot disabled", zap.Error(err))
	}
	if tgBot != nil {
		defer tgBot.Stop()
	}

	h := newHandlerFunc(tracer, zl, marketService)

	r := newRouterFunc()
	r.Use(otelgin.Middleware(tracing.ServiceName))
	r.Use(cors.New(corsConfig()))

	h.RegisterRoutes(r, cfg.APIKey)
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	srv := &http.Server{
		Addr:    cfg.HTTPAddr(),
		Handler: r,
	}

	go func() {
		zl.Info("http server listening", zap.String("addr", srv.Addr))
		if err := startHTTPServerFunc(srv); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zl.Fatal("listen", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	setupSignalNotify(quit, syscall.SIGINT, syscall.SIGTERM)
	waitForSignalFunc(quit)
	zl.Info("shutting down server")

	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := shutdownHTTPServerFunc(srv, shutdownCtx); err != nil {
		zl.Error("server forced to shutdown", zap.Error(err))
	}

	zl.Info("server exiting")
}

// corsConfig lets browser dashboards on any origin read the API and send the refresh key.
func corsConfig() cors.Config {
	cfg := cors.DefaultConfig()
	cfg.AllowAllOrigins = true
	cfg.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	cfg.AddAllowHeaders("X-API-Key")
	cfg.MaxAge = 12 * time.Hour
	return cfg
}
