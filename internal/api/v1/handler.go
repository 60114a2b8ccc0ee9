package v1

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"profitlogic/internal/parser"
	"profitlogic/internal/service/calculator"
	"profitlogic/internal/service/excel"
	"profitlogic/internal/service/history"
	"profitlogic/internal/service/store"
	"profitlogic/internal/service/vin"
)

// Handler API handlers
type Handler struct {
	store     *store.SessionStore
	engine    *calculator.Engine
	importer  *history.Importer
	vin       *vin.Service
	exporter  *excel.Exporter
	downloads *exportDownloadStore
	validate  *validator.Validate
}

// NewHandler creates the API handler
func NewHandler(s *store.SessionStore, engine *calculator.Engine, decoder *vin.Service) *Handler {
	return &Handler{
		store:     s,
		engine:    engine,
		importer:  history.NewImporter(s),
		vin:       decoder,
		exporter:  excel.NewExporter(),
		downloads: newExportDownloadStore(),
		validate:  validator.New(),
	}
}

// RegisterRoutes registers the API routes
func (h *Handler) RegisterRoutes(router *gin.RouterGroup) {
	// status
	router.GET("/status", h.GetStatus)

	// session pricing config
	router.GET("/config", h.GetConfig)
	router.PATCH("/config", h.UpdateConfig)

	// dealer sales history
	router.POST("/history", h.UploadHistory)
	router.DELETE("/history", h.ClearHistory)
	router.GET("/history/summary", h.GetHistorySummary)

	// appraisals
	router.GET("/vin/:vin", h.DecodeVIN)
	router.POST("/lookup", h.Lookup)
	router.POST("/batch", h.UploadBatch)
	router.POST("/batch/rows", h.AppraiseRows)
	router.GET("/batch/sample", h.SampleBatch)

	// export
	router.POST("/batch/export", h.ExportBatch)
	router.GET("/export/download/:token", h.DownloadExport)
}

// writeError maps service errors to HTTP responses
func writeError(c *gin.Context, err error) {
	var missing *parser.MissingColumnsError
	switch {
	case errors.As(err, &missing):
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":          err.Error(),
			"missingColumns": missing.Columns,
		})
	case errors.Is(err, excel.ErrUnsupportedFormat), errors.Is(err, excel.ErrEmptyFile):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, calculator.ErrMakeModelRequired), errors.Is(err, vin.ErrInvalidVIN):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

func (h *Handler) bindJSON(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return false
	}
	if err := h.validate.Struct(req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return false
	}
	return true
}
