package v1

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"profitlogic/internal/model"
	"profitlogic/internal/service/vin"
)

const lookupTimeout = 10 * time.Second

// DecodeVIN decodes a VIN with the configured strategy
// GET /api/vin/:vin
func (h *Handler) DecodeVIN(c *gin.Context) {
	if h.vin == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "vin decoding disabled"})
		return
	}

	decoded, err := h.vin.Decode(c.Request.Context(), c.Param("vin"))
	switch {
	case errors.Is(err, vin.ErrInvalidVIN):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case err != nil:
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusOK, decoded)
	}
}

// Lookup single vehicle appraisal against market comparables
// POST /api/lookup
func (h *Handler) Lookup(c *gin.Context) {
	var req model.LookupRequest
	if !h.bindJSON(c, &req) {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), lookupTimeout)
	defer cancel()

	result, err := h.engine.AppraiseLookup(ctx, req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}
