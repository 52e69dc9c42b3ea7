// Package api exposes the aggregated listings over HTTP.
package api

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/amishk599/jobmerge/internal/aggregator"
)

// ListingsAggregator produces one aggregated listing collection per call.
type ListingsAggregator interface {
	Aggregate(ctx context.Context) (*aggregator.Result, error)
}

// ErrorResponse is the failure payload of the listings endpoint.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details"`
}

// ListingsHandler serves the read-only listings query.
type ListingsHandler struct {
	agg    ListingsAggregator
	logger *slog.Logger
}

// NewListingsHandler creates a handler backed by agg.
func NewListingsHandler(agg ListingsAggregator, logger *slog.Logger) *ListingsHandler {
	return &ListingsHandler{agg: agg, logger: logger}
}

// List runs one aggregation and writes the result, or a 500 with the error.
func (h *ListingsHandler) List(c *gin.Context) {
	res, err := h.agg.Aggregate(c.Request.Context())
	if err != nil {
		h.logger.Error("error fetching listings",
			"request_id", RequestIDFrom(c),
			"error", err,
		)
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "Failed to fetch data",
			Details: err.Error(),
		})
		return
	}
	c.Header("Cache-Control", "no-store")
	c.JSON(http.StatusOK, res)
}

// Health reports liveness. It never touches upstream sources.
func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
