package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"profitlogic/internal/model"
	"profitlogic/internal/service/store"
	"profitlogic/internal/service/turnrate"
)

// StatusResponse service status
type StatusResponse struct {
	TurnDataSource     model.TurnSource     `json:"turnDataSource"` // source used for models with dealer data
	DealerModelCount   int                  `json:"dealerModelCount"`
	IndustryModelCount int                  `json:"industryModelCount"`
	History            *store.HistoryUpload `json:"history,omitempty"`
	VINStrategy        string               `json:"vinStrategy"`
	CurrentYear        int                  `json:"currentYear"`
}

// GetStatus service status
// GET /api/status
func (h *Handler) GetStatus(c *gin.Context) {
	snap := h.store.Snapshot()

	source := model.SourceIndustryDefault
	if snap.DealerModelCount() > 0 {
		source = model.SourceDealerHistorical
	}

	vinStrategy := ""
	if h.vin != nil {
		vinStrategy = h.vin.Strategy()
	}

	c.JSON(http.StatusOK, StatusResponse{
		TurnDataSource:     source,
		DealerModelCount:   snap.DealerModelCount(),
		IndustryModelCount: turnrate.IndustryDefaults().Len(),
		History:            snap.Upload,
		VINStrategy:        vinStrategy,
		CurrentYear:        h.engine.CurrentYear(),
	})
}
