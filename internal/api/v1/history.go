package v1

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"profitlogic/internal/service/history"
)

// UploadHistory imports a dealer sales log, replacing the dealer turn table
// POST /api/history
func (h *Handler) UploadHistory(c *gin.Context) {
	fh, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing upload field \"file\""})
		return
	}
	f, err := fh.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to open upload"})
		return
	}
	defer f.Close()

	result, err := h.importer.Import(f, fh.Filename)
	if errors.Is(err, history.ErrNoRetailDeals) {
		c.JSON(http.StatusOK, gin.H{
			"warning": "No valid retail deals found after filtering; dealer data unchanged",
			"report":  result.Report,
			"stats":   result.Stats,
		})
		return
	}
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// ClearHistory drops dealer data; lookups use industry averages again
// DELETE /api/history
func (h *Handler) ClearHistory(c *gin.Context) {
	h.store.ClearHistory()
	c.JSON(http.StatusOK, gin.H{"message": "dealer history cleared"})
}

// GetHistorySummary sales performance of the loaded history
// GET /api/history/summary
func (h *Handler) GetHistorySummary(c *gin.Context) {
	summary := h.store.Summary()
	if summary == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "no sales history loaded"})
		return
	}
	c.JSON(http.StatusOK, summary)
}
