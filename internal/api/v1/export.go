package v1

import (
	"bytes"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"profitlogic/internal/service/excel"
)

// ExportResponse one-time download link
type ExportResponse struct {
	Token       string    `json:"token"`
	DownloadURL string    `json:"downloadUrl"`
	Filename    string    `json:"filename"`
	ExpiresAt   time.Time `json:"expiresAt"`
}

// ExportBatch prices rows and stores the export for a one-time download
// POST /api/batch/export?format=csv|xlsx
func (h *Handler) ExportBatch(c *gin.Context) {
	format, err := excel.ParseFormat(c.Query("format"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var req BatchRowsRequest
	if !h.bindJSON(c, &req) {
		return
	}

	report, err := h.engine.AppraiseBatch(c.Request.Context(), req.Rows)
	if err != nil {
		writeError(c, err)
		return
	}

	var buf bytes.Buffer
	if err := h.exporter.Export(&buf, format, report); err != nil {
		log.Printf("[EXPORT] batch %s: %v", report.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "export failed"})
		return
	}

	filename := fmt.Sprintf("batch_results.%s", format)
	token := h.downloads.put(filename, format.ContentType(), buf.Bytes(), exportTTL)
	c.JSON(http.StatusOK, ExportResponse{
		Token:       token,
		DownloadURL: "/api/export/download/" + token,
		Filename:    filename,
		ExpiresAt:   time.Now().Add(exportTTL),
	})
}

// DownloadExport serves an export once
// GET /api/export/download/:token
func (h *Handler) DownloadExport(c *gin.Context) {
	token := c.Param("token")
	if token == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing token"})
		return
	}

	item, ok := h.downloads.take(token)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "download link expired"})
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", item.filename))
	c.Data(http.StatusOK, item.contentType, item.data)
}
