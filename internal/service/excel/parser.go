package excel

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"

	"profitlogic/internal/parser"
)

// ErrUnsupportedFormat upload is neither .csv nor .xlsx
var ErrUnsupportedFormat = errors.New("unsupported file format, expected .csv or .xlsx")

// ErrEmptyFile upload has no header row
var ErrEmptyFile = errors.New("file has no header row")

// Parser tabular upload reader for CSV and Excel files
type Parser struct {
	fileID string
	table  *parser.Table
}

// NewParser creates a parser
func NewParser() *Parser {
	return &Parser{
		fileID: uuid.New().String(),
	}
}

// GetFileID upload id
func (p *Parser) GetFileID() string {
	return p.fileID
}

// LoadFile reads the whole upload; the format is chosen by file extension
func (p *Parser) LoadFile(reader io.Reader, filename string) error {
	var (
		table *parser.Table
		err   error
	)

	switch strings.ToLower(filepath.Ext(filename)) {
	case ".csv":
		table, err = readCSV(reader)
	case ".xlsx", ".xlsm":
		table, err = readWorkbook(reader)
	default:
		return ErrUnsupportedFormat
	}
	if err != nil {
		return err
	}

	p.table = table
	return nil
}

// Table loaded header and rows
func (p *Parser) Table() (*parser.Table, error) {
	if p.table == nil {
		return nil, errors.New("no file loaded")
	}
	return p.table, nil
}

func readCSV(reader io.Reader) (*parser.Table, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read csv: %w", err)
	}
	data = bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))

	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = -1
	r.LazyQuotes = true
	r.TrimLeadingSpace = true

	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse csv: %w", err)
	}
	return toTable(records)
}

func readWorkbook(reader io.Reader) (*parser.Table, error) {
	file, err := excelize.OpenReader(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to open excel: %w", err)
	}
	defer file.Close()

	sheets := file.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrEmptyFile
	}

	rows, err := file.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %s: %w", sheets[0], err)
	}
	return toTable(rows)
}

func toTable(records [][]string) (*parser.Table, error) {
	// skip leading blank rows
	for len(records) > 0 && isBlankRow(records[0]) {
		records = records[1:]
	}
	if len(records) == 0 {
		return nil, ErrEmptyFile
	}

	table := &parser.Table{
		Header: records[0],
		Rows:   make([][]string, 0, len(records)-1),
	}
	for _, row := range records[1:] {
		if isBlankRow(row) {
			continue
		}
		table.Rows = append(table.Rows, row)
	}
	return table, nil
}

func isBlankRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
