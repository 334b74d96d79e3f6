package handler

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"bitget-board/internal/domain"
	"bitget-board/internal/market"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

const maxTickersLimit = 1000

type TickersResponse struct {
	Tickers   []domain.TickerRecord `json:"tickers"`
	Count     int                   `json:"count"`
	Available bool                  `json:"available"`
	UpdatedAt *time.Time            `json:"updated_at,omitempty"`
}

type MajorCard struct {
	Symbol    string              `json:"symbol"`
	Available bool                `json:"available"`
	Detail    *domain.MajorDetail `json:"detail,omitempty"`
}

type MajorsResponse struct {
	Majors []MajorCard `json:"majors"`
}

// GetTickers godoc
// @Summary      List spot tickers
// @Description  Returns the cached all-tickers snapshot, filtered by symbol and sorted (default: 24h quote volume, descending)
// @Tags         tickers
// @Produce      json
// @Param        q      query  string  false  "Case-insensitive base symbol substring"
// @Param        sort   query  string  false  "Sort key (volume, price, change_1h, change_4h, change_24h, symbol)"  default(volume)
// @Param        order  query  string  false  "asc or desc"  default(desc)
// @Param        limit  query  int     false  "Maximum rows, 0 to 1000 (0 = all)"
// @Success      200  {object}  TickersResponse
// @Failure      400  {object}  map[string]interface{}
// @Router       /api/tickers [get]
func (h *Handler) GetTickers(c *gin.Context) {
	ctx, span := h.tracer.Start(c.Request.Context(), "handler.get-tickers")
	defer span.End()

	sortKey, ok := market.ParseSortKey(c.Query("sort"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":           "unsupported sort: " + c.Query("sort"),
			"supported_sorts": market.SortKeys,
		})
		return
	}

	order := strings.ToLower(c.DefaultQuery("order", "desc"))
	if order != "asc" && order != "desc" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "order must be asc or desc"})
		return
	}

	limit := 0
	if l := c.Query("limit"); l != "" {
		n, err := strconv.Atoi(l)
		if err != nil || n < 0 || n > maxTickersLimit {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":     "limit must be an integer between 0 and " + strconv.Itoa(maxTickersLimit),
				"max_limit": maxTickersLimit,
			})
			return
		}
		limit = n
	}

	snap := h.market.GetSnapshot(ctx)
	rows := market.Apply(snap.Tickers, market.Query{
		Search:    c.Query("q"),
		SortBy:    sortKey,
		Ascending: order == "asc",
		Limit:     limit,
	})
	span.SetAttributes(attribute.Int("rows", len(rows)), attribute.Bool("available", snap.Available()))

	resp := TickersResponse{
		Tickers:   rows,
		Count:     len(rows),
		Available: snap.Available(),
	}
	if snap.Available() {
		at := snap.UpdatedAt
		resp.UpdatedAt = &at
	}
	c.JSON(http.StatusOK, resp)
}

// GetMajors godoc
// @Summary      Major symbol cards
// @Description  Returns price, 1h/4h/24h change and open-interest context for BTC, ETH and SOL. A card whose data could not be fetched has available=false.
// @Tags         majors
// @Produce      json
// @Success      200  {object}  MajorsResponse
// @Router       /api/majors [get]
func (h *Handler) GetMajors(c *gin.Context) {
	ctx, span := h.tracer.Start(c.Request.Context(), "handler.get-majors")
	defer span.End()

	slots := h.market.GetMajorDetails(ctx)
	cards := make([]MajorCard, len(slots))
	for i, slot := range slots {
		cards[i] = MajorCard{Symbol: slot.Symbol, Available: slot.Detail != nil, Detail: slot.Detail}
	}
	c.JSON(http.StatusOK, MajorsResponse{Majors: cards})
}

// GetMajor godoc
// @Summary      Major symbol detail
// @Description  Returns the detail card of one major symbol
// @Tags         majors
// @Produce      json
// @Param        symbol  path  string  true  "Major symbol (BTC, ETH, SOL)"
// @Success      200  {object}  domain.MajorDetail
// @Failure      400  {object}  map[string]interface{}
// @Failure      503  {object}  map[string]string
// @Router       /api/majors/{symbol} [get]
func (h *Handler) GetMajor(c *gin.Context) {
	ctx, span := h.tracer.Start(c.Request.Context(), "handler.get-major")
	defer span.End()

	symbol := strings.ToUpper(strings.TrimSpace(c.Param("symbol")))
	span.SetAttributes(attribute.String("symbol", symbol))

	if !domain.IsMajor(symbol) {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":             "unsupported symbol: " + symbol,
			"supported_symbols": domain.MajorSymbols,
		})
		return
	}

	detail, err := h.market.GetMajorDetail(ctx, symbol)
	if err != nil || detail == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "data unavailable for " + symbol})
		return
	}
	c.JSON(http.StatusOK, detail)
}

// Refresh godoc
// @Summary      Refresh market data
// @Description  Drops the cached snapshot and details so the next read goes to the exchange
// @Tags         tickers
// @Produce      json
// @Param        X-API-Key  header  string  false  "API key, when one is configured"
// @Success      200  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Router       /api/refresh [post]
func (h *Handler) Refresh(c *gin.Context) {
	ctx, span := h.tracer.Start(c.Request.Context(), "handler.refresh")
	defer span.End()

	h.market.Invalidate(ctx)
	h.logger.Info("market data caches invalidated", zap.String("client_ip", c.ClientIP()))
	c.JSON(http.StatusOK, gin.H{"status": "refreshed"})
}
