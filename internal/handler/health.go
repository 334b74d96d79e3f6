package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Health godoc
// @Summary      Health check
// @Description  Returns the liveness status of the service
// @Tags         health
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /health [get]
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

// Ready godoc
// @Summary      Readiness check
// @Description  Reports ready once the exchange tickers snapshot can be served; reads go through the freshness cache
// @Tags         health
// @Produce      json
// @Success      200  {object}  map[string]string
// @Failure      503  {object}  map[string]string
// @Router       /ready [get]
func (h *Handler) Ready(c *gin.Context) {
	ctx, span := h.tracer.Start(c.Request.Context(), "handler.ready")
	defer span.End()

	if !h.market.GetSnapshot(ctx).Available() {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "upstream unavailable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ready"})
}
