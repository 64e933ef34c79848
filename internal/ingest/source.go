package ingest

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Source yields dataset rows one at a time. Next returns io.EOF after the
// last row. A *RowError from Next means the row itself was malformed and
// the source is still usable; any other error is fatal.
type Source interface {
	Next() ([]any, error)
	Close() error
}

// RowError marks a single unusable row. The loader logs it and moves on.
type RowError struct {
	Row    int
	Reason string
}

func (e *RowError) Error() string {
	return fmt.Sprintf("row %d: %s", e.Row, e.Reason)
}

// Open picks a Source implementation based on the file extension.
func Open(path string) (Source, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return OpenCSV(path)
	case ".xlsx":
		return OpenXLSX(path)
	default:
		return nil, fmt.Errorf("unsupported dataset format: %s", filepath.Ext(path))
	}
}
