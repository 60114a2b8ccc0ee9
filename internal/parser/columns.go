package parser

import "strings"

// ColumnIndex maps normalized header names to column positions
type ColumnIndex struct {
	index     map[string]int
	normalize func(string) string
}

// NewColumnIndex indexes a header row; the first occurrence of a name wins
func NewColumnIndex(header []string, normalize func(string) string) *ColumnIndex {
	if normalize == nil {
		normalize = NormalizeColumnName
	}
	idx := make(map[string]int, len(header))
	for i, col := range header {
		name := normalize(col)
		if _, ok := idx[name]; !ok {
			idx[name] = i
		}
	}
	return &ColumnIndex{index: idx, normalize: normalize}
}

// Has reports whether the column exists
func (c *ColumnIndex) Has(name string) bool {
	_, ok := c.index[c.normalize(name)]
	return ok
}

// Missing required columns absent from the header, in required order
func (c *ColumnIndex) Missing(required []string) []string {
	var missing []string
	for _, name := range required {
		if !c.Has(name) {
			missing = append(missing, name)
		}
	}
	return missing
}

// Require returns a MissingColumnsError when any required column is absent
func (c *ColumnIndex) Require(kind TableKind, required []string) error {
	if missing := c.Missing(required); len(missing) > 0 {
		return &MissingColumnsError{Kind: kind, Columns: missing}
	}
	return nil
}

// Value trimmed cell text for a column; "" when the column or cell is absent
func (c *ColumnIndex) Value(row []string, name string) string {
	i, ok := c.index[c.normalize(name)]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}
