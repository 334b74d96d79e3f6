package handler

import (
	"context"

	"bitget-board/internal/domain"
	"bitget-board/internal/service"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// MarketReader is the part of service.MarketService the API serves from.
type MarketReader interface {
	GetSnapshot(ctx context.Context) service.Snapshot
	GetMajorDetail(ctx context.Context, symbol string) (*domain.MajorDetail, error)
	GetMajorDetails(ctx context.Context) []service.MajorSlot
	Invalidate(ctx context.Context)
}

type Handler struct {
	tracer trace.Tracer
	logger *zap.Logger
	market MarketReader
}

func New(tracer trace.Tracer, logger *zap.Logger, market MarketReader) *Handler {
	return &Handler{
		tracer: tracer,
		logger: logger,
		market: market,
	}
}

// RegisterRoutes mounts the API. apiKey guards the refresh endpoint; empty disables the check.
func (h *Handler) RegisterRoutes(r *gin.Engine, apiKey string) {
	r.GET("/health", h.Health)
	r.GET("/ready", h.Ready)

	api := r.Group("/api")
	api.GET("/tickers", h.GetTickers)
	api.GET("/majors", h.GetMajors)
	api.GET("/majors/:symbol", h.GetMajor)
	api.POST("/refresh", APIKeyAuth(apiKey), h.Refresh)
}
