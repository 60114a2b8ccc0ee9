package history

import (
	"fmt"
	"io"
	"log"
	"time"

	"profitlogic/internal/metrics"
	"profitlogic/internal/model"
	"profitlogic/internal/parser"
	"profitlogic/internal/service/excel"
	"profitlogic/internal/service/store"
)

// Importer loads dealer sales logs into the session store
type Importer struct {
	store *store.SessionStore
	now   func() time.Time
}

// NewImporter creates an importer writing to s
func NewImporter(s *store.SessionStore) *Importer {
	return &Importer{store: s, now: time.Now}
}

// ImportResult outcome of one sales log upload
type ImportResult struct {
	Upload  store.HistoryUpload `json:"upload"`
	Report  parser.ImportReport `json:"report"`
	Stats   FilterStats         `json:"stats"`
	Summary *model.SalesSummary `json:"summary,omitempty"`
}

// Import parses, aggregates and installs a sales log.
// Schema errors and ErrNoRetailDeals leave the current dealer data untouched.
func (im *Importer) Import(reader io.Reader, filename string) (*ImportResult, error) {
	start := im.now()

	p := excel.NewParser()
	if err := p.LoadFile(reader, filename); err != nil {
		metrics.HistoryUploads.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("load sales log: %w", err)
	}
	table, err := p.Table()
	if err != nil {
		return nil, err
	}

	records, err := ParseRecords(table)
	if err != nil {
		metrics.HistoryUploads.WithLabelValues("rejected").Inc()
		return nil, err
	}

	summary, stats, err := Aggregate(records)
	result := &ImportResult{
		Upload: store.HistoryUpload{
			ID:         p.GetFileID(),
			Filename:   filename,
			UploadedAt: start,
		},
		Report: parser.ImportReport{
			Filename:     filename,
			TotalRows:    len(table.Rows),
			ImportedRows: stats.Kept,
			SkippedRows:  stats.Input - stats.Kept,
			Duration:     im.now().Sub(start),
		},
		Stats: stats,
	}
	if err != nil {
		metrics.HistoryUploads.WithLabelValues("empty").Inc()
		log.Printf("sales log %s: %v (%d rows)", filename, err, len(table.Rows))
		return result, err
	}

	result.Summary = summary
	im.store.ReplaceHistory(summary, result.Upload)
	metrics.HistoryUploads.WithLabelValues("ok").Inc()
	log.Printf("sales log %s: %d retail deals across %d models", filename, summary.TotalSales, len(summary.Breakdown))

	return result, nil
}
