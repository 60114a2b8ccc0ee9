// Package vin decodes vehicle identification numbers into make and model year.
package vin

import (
	"context"
	"errors"
	"strings"

	"profitlogic/internal/model"
)

// Length characters in a VIN
const Length = 17

// UnknownMake reported when the manufacturer prefix is not recognised
const UnknownMake = "Unknown"

// FallbackAge years subtracted from the current year when the year code is unknown
const FallbackAge = 3

var ErrInvalidVIN = errors.New("VIN must be 17 characters and cannot contain I, O, or Q")

// Decoder resolves a normalized VIN
type Decoder interface {
	Decode(ctx context.Context, vin string) (model.DecodedVIN, error)
}

// Normalize uppercases and validates a VIN
func Normalize(raw string) (string, error) {
	v := strings.ToUpper(strings.TrimSpace(raw))
	if len(v) != Length {
		return "", ErrInvalidVIN
	}
	for _, c := range v {
		switch {
		case c == 'I' || c == 'O' || c == 'Q':
			return "", ErrInvalidVIN
		case c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
		default:
			return "", ErrInvalidVIN
		}
	}
	return v, nil
}

// world manufacturer identifier prefixes; three-character prefixes are checked first
var wmiPrefixes = []struct {
	prefix string
	make   string
}{
	{"KM8", "Hyundai"},
	{"KMH", "Hyundai"},
	{"5NM", "Hyundai"},
	{"KMT", "Genesis"},
	{"1G", "Chevrolet"},
	{"2G", "Chevrolet"},
	{"3G", "Chevrolet"},
	{"1H", "Honda"},
	{"2H", "Honda"},
	{"3H", "Honda"},
	{"JH", "Honda"},
	{"1N", "Nissan"},
	{"3N", "Nissan"},
	{"JN", "Nissan"},
	{"1T", "Toyota"},
	{"2T", "Toyota"},
	{"3T", "Toyota"},
	{"4T", "Toyota"},
	{"5T", "Toyota"},
	{"JT", "Toyota"},
	{"KN", "Kia"},
	{"5X", "Kia"},
	{"1F", "Ford"},
	{"2F", "Ford"},
	{"3F", "Ford"},
	{"4F", "Ford"},
}

// position 10 model year codes
var yearCodes = map[byte]int{
	'J': 2018, 'K': 2019, 'L': 2020, 'M': 2021, 'N': 2022,
	'P': 2023, 'R': 2024, 'S': 2025, 'T': 2026,
}

// StaticDecoder offline decoder backed by the WMI and year code tables
type StaticDecoder struct {
	currentYear func() int
}

// NewStaticDecoder creates an offline decoder
func NewStaticDecoder(currentYear func() int) *StaticDecoder {
	return &StaticDecoder{currentYear: currentYear}
}

// Decode implements Decoder. Model is never known offline.
func (d *StaticDecoder) Decode(_ context.Context, raw string) (model.DecodedVIN, error) {
	v, err := Normalize(raw)
	if err != nil {
		return model.DecodedVIN{}, err
	}

	out := model.DecodedVIN{VIN: v, Make: UnknownMake, ModelYear: d.currentYear() - FallbackAge}
	for _, w := range wmiPrefixes {
		if strings.HasPrefix(v, w.prefix) {
			out.Make = w.make
			break
		}
	}
	if year, ok := yearCodes[v[9]]; ok {
		out.ModelYear = year
	}
	return out, nil
}
