package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"profitlogic/internal/model"
)

// ConfigResponse session pricing config plus allowed choices
type ConfigResponse struct {
	model.PricingConfig
	MarginTargetOptions []int `json:"marginTargetOptions"`
	ReconCostOptions    []int `json:"reconCostOptions"`
}

func configResponse(cfg model.PricingConfig) ConfigResponse {
	return ConfigResponse{
		PricingConfig:       cfg,
		MarginTargetOptions: model.MarginTargetOptions,
		ReconCostOptions:    model.ReconCostOptions,
	}
}

// GetConfig session pricing config
// GET /api/config
func (h *Handler) GetConfig(c *gin.Context) {
	c.JSON(http.StatusOK, configResponse(h.store.GetPricingConfig()))
}

// UpdateConfig partial update of the session pricing config
// PATCH /api/config
func (h *Handler) UpdateConfig(c *gin.Context) {
	var patch model.PricingConfigPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}

	cfg := patch.Apply(h.store.GetPricingConfig())
	if err := h.validate.Struct(cfg); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	h.store.SetPricingConfig(cfg)
	c.JSON(http.StatusOK, configResponse(cfg))
}
