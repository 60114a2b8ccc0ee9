package parser

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

var nonNumericRe = regexp.MustCompile(`[^\d.]`)

// ParseCurrency parses a money cell such as "$1,234.50", "(250.00)" or "-75".
// Parenthesized or leading-minus values are negative; blank, "-" and garbage are 0.
func ParseCurrency(text string) float64 {
	s := strings.TrimSpace(text)
	if s == "" || s == "-" {
		return 0
	}

	negative := false
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		negative = true
		s = s[1 : len(s)-1]
	} else if strings.HasPrefix(s, "-") {
		negative = true
		s = s[1:]
	}

	s = nonNumericRe.ReplaceAllString(s, "")
	if s == "" {
		return 0
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0
	}
	if negative {
		d = d.Neg()
	}
	return d.InexactFloat64()
}

// ParseInt parses an integer-like cell ("45,000", "2021", "45000.0"); garbage is 0
func ParseInt(text string) int {
	s := strings.TrimSpace(strings.ReplaceAll(text, ",", ""))
	if s == "" {
		return 0
	}
	if i, err := strconv.Atoi(s); err == nil {
		return i
	}
	return int(math.Round(ParseCurrency(text)))
}

var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-1-2",
	"2006-1-2 15:04:05",
	"2006-1-2 15:04",
	"2006/01/02",
	"2006/1/2",
	"2006/1/2 15:04:05",
	"2006/1/2 15:04",
	"01/02/2006",
	"1/2/2006",
	"01/02/2006 15:04",
	"1/2/2006 15:04",
	"1/2/2006 3:04:05 PM",
	"01/02/06",
	"1/2/06",
	"01-02-2006",
	"1-2-2006",
	"01-02-06",
	"Jan 2, 2006",
	"January 2, 2006",
	"02-Jan-2006",
	"2-Jan-06",
}

// minExcelSerial 1954-10-03; smaller bare numbers are years or ids, not dates
const minExcelSerial = 20000

// ParseDate parses a date cell in the common spreadsheet layouts or as an Excel serial number
func ParseDate(text string) (time.Time, bool) {
	s := strings.TrimSpace(text)
	if s == "" {
		return time.Time{}, false
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}

	// Excel serial: days since 1899-12-30
	if serial, err := strconv.ParseFloat(s, 64); err == nil && serial >= minExcelSerial && serial < 2958466 {
		t, err := excelize.ExcelDateToTime(serial, false)
		if err == nil {
			return t, true
		}
	}

	return time.Time{}, false
}

// NormalizeColumnName trims a header and collapses inner whitespace
func NormalizeColumnName(name string) string {
	name = strings.ReplaceAll(name, "\n", " ")
	name = strings.ReplaceAll(name, "\r", " ")
	name = strings.ReplaceAll(name, "\t", " ")
	return strings.Join(strings.Fields(name), " ")
}

// NormalizeColumnNameLower NormalizeColumnName plus lowercase
func NormalizeColumnNameLower(name string) string {
	return strings.ToLower(NormalizeColumnName(name))
}
