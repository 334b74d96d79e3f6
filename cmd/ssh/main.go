package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	ossignal "os/signal"
	"syscall"
	"time"

	"bitget-board/internal/cache"
	"bitget-board/internal/config"
	"bitget-board/internal/logger"
	"bitget-board/internal/provider"
	"bitget-board/internal/service"
	"bitget-board/internal/tui"
	"bitget-board/pkg/tracing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/bubbletea"
	"github.com/charmbracelet/wish/logging"
	"github.com/joho/godotenv"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
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
	newMarketServiceFunc = service.NewMarketService
	newWishServerFunc    = wish.NewServer
	setupSignalNotify    = ossignal.Notify
	waitForSignalFunc    = func(quit <-chan os.Signal) { <-quit }
)

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
		Component: "ssh",
	})
	if err != nil {
		zl.Fatal("failed to initialize tracer", zap.Error(err))
	}
	defer func() {
		if err := tp.Shutdown(context.Background()); err != nil {
			zl.Warn("error shutting down tracer provider", zap.Error(err))
		}
	}()

	// One service for every session so they share the freshness cache.
	bitget := newBitgetProviderFunc(tracer)
	marketService := newMarketServiceFunc(tracer, zl, bitget, redisClient, nil)
	refresh := time.Duration(cfg.RefreshSecs) * time.Second

	addr := fmt.Sprintf("%s:%d", cfg.SSHHost, cfg.SSHPort)

	srv, err := newWishServerFunc(
		wish.WithAddress(addr),
		wish.WithHostKeyPath(cfg.SSHHostKeyPath),
		wish.WithMiddleware(
			bubbletea.Middleware(func(s ssh.Session) (tea.Model, []tea.ProgramOption) {
				zl.Info("ssh session started", zap.String("user", s.User()), zap.String("remote", s.RemoteAddr().String()))

				model := tui.NewModel(s.Context(), marketService, refresh)
				pty, _, _ := s.Pty()
				model.SetSize(pty.Window.Width, pty.Window.Height)

				return model, []tea.ProgramOption{tea.WithAltScreen()}
			}),
			logging.Middleware(),
		),
	)
	if err != nil {
		zl.Fatal("failed to create SSH server", zap.Error(err))
	}

	if srv != nil {
		go func() {
			zl.Info("ssh server listening", zap.String("addr", addr))
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
				zl.Error("ssh server stopped", zap.Error(err))
			}
		}()
	}

	quit := make(chan os.Signal, 1)
	setupSignalNotify(quit, syscall.SIGINT, syscall.SIGTERM)
	waitForSignalFunc(quit)
	zl.Info("shutting down ssh server")

	cancel()

	if srv != nil {
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			zl.Error("ssh server shutdown error", zap.Error(err))
		}
	}

	zl.Info("ssh server exited")
}
