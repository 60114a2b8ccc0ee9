package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"profitlogic/internal/model"
	"profitlogic/internal/service/calculator"
	"profitlogic/internal/service/excel"
)

// maxBatchRows upper bound on rows per request
const maxBatchRows = 5000

// BatchRowsRequest JSON batch input
type BatchRowsRequest struct {
	Rows []model.BatchRow `json:"rows" validate:"required,min=1,max=5000,dive"`
}

// BatchResponse priced batch plus display summary
type BatchResponse struct {
	*model.BatchReport
	SummaryLines []excel.SummaryLine `json:"summaryLines"`
}

func (h *Handler) appraise(c *gin.Context, rows []model.BatchRow) {
	report, err := h.engine.AppraiseBatch(c.Request.Context(), rows)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, BatchResponse{
		BatchReport:  report,
		SummaryLines: excel.SummaryLines(report.Summary),
	})
}

// UploadBatch prices a batch file (.csv or .xlsx)
// POST /api/batch
func (h *Handler) UploadBatch(c *gin.Context) {
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

	rows, err := calculator.ReadBatchFile(f, fh.Filename)
	if err != nil {
		writeError(c, err)
		return
	}
	if len(rows) > maxBatchRows {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "too many rows"})
		return
	}
	h.appraise(c, rows)
}

// AppraiseRows prices JSON batch rows
// POST /api/batch/rows
func (h *Handler) AppraiseRows(c *gin.Context) {
	var req BatchRowsRequest
	if !h.bindJSON(c, &req) {
		return
	}
	h.appraise(c, req.Rows)
}

// SampleBatch prices the built-in sample vehicles
// GET /api/batch/sample
func (h *Handler) SampleBatch(c *gin.Context) {
	h.appraise(c, model.SampleBatchRows())
}
