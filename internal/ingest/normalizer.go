package ingest

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/wifi-cdmx/wifi-api/internal/domain"
	"github.com/wifi-cdmx/wifi-api/internal/pkg/utils"
)

// Column layout of the wifi dataset published by datos.cdmx.gob.mx.
const (
	colID = iota
	colProgram
	colLatitude
	colLongitude
	colAlcaldia

	minColumns = colAlcaldia + 1
)

// NormalizeRow converts one raw dataset row into a WifiPoint. rowNum is
// the 1-based position in the file and is only used for error reporting.
func NormalizeRow(row []any, rowNum int) (*domain.WifiPoint, error) {
	if len(row) < minColumns {
		return nil, &RowError{Row: rowNum, Reason: fmt.Sprintf("expected at least %d columns, got %d", minColumns, len(row))}
	}

	id := CellString(row[colID])
	if id == "" {
		return nil, &RowError{Row: rowNum, Reason: "missing id"}
	}

	lat, err := CellFloat(row[colLatitude])
	if err != nil {
		return nil, &RowError{Row: rowNum, Reason: fmt.Sprintf("invalid latitude: %v", err)}
	}
	lon, err := CellFloat(row[colLongitude])
	if err != nil {
		return nil, &RowError{Row: rowNum, Reason: fmt.Sprintf("invalid longitude: %v", err)}
	}
	if !utils.ValidateCoordinates(lat, lon) {
		return nil, &RowError{Row: rowNum, Reason: fmt.Sprintf("coordinates out of range: %f, %f", lat, lon)}
	}

	return &domain.WifiPoint{
		ID:        id,
		Program:   CellString(row[colProgram]),
		Latitude:  lat,
		Longitude: lon,
		Alcaldia:  NormalizeAlcaldia(CellString(row[colAlcaldia])),
	}, nil
}

// CellString coerces a cell of any supported type to its string form.
// Numeric cells are treated as integers, which matches how the dataset
// stores point ids.
func CellString(cell any) string {
	switch v := cell.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(v)
	case float64:
		return strconv.FormatInt(int64(v), 10)
	case bool:
		return strconv.FormatBool(v)
	default:
		return strings.TrimSpace(fmt.Sprintf("%v", v))
	}
}

// CellFloat coerces a cell to a float64, parsing string cells.
func CellFloat(cell any) (float64, error) {
	switch v := cell.(type) {
	case float64:
		return v, nil
	case string:
		trimmed := strings.TrimSpace(v)
		if trimmed == "" {
			return 0, fmt.Errorf("empty cell")
		}
		f, err := strconv.ParseFloat(trimmed, 64)
		if err != nil {
			return 0, fmt.Errorf("not a number: %q", trimmed)
		}
		return f, nil
	case int:
		return float64(v), nil
	default:
		return 0, fmt.Errorf("unsupported cell type %T", cell)
	}
}

// NormalizeAlcaldia canonicalizes a borough name: trimmed, collapsed
// whitespace, each word capitalized. "ÁLVARO  OBREGÓN" and "álvaro
// obregón" both become "Álvaro Obregón", so lookups and grouping agree
// regardless of how a row was captured.
func NormalizeAlcaldia(alcaldia string) string {
	words := strings.Fields(strings.ToLower(strings.TrimSpace(alcaldia)))
	if len(words) == 0 {
		return ""
	}
	for i, word := range words {
		runes := []rune(word)
		runes[0] = unicode.ToUpper(runes[0])
		words[i] = string(runes)
	}
	return strings.Join(words, " ")
}
