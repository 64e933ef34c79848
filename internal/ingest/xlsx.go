package ingest

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

type xlsxSource struct {
	file *excelize.File
	rows *excelize.Rows
	row  int
}

// OpenXLSX opens the first sheet of a spreadsheet dataset using the
// streaming row iterator, so the full workbook is never held in memory.
func OpenXLSX(path string) (Source, error) {
	file, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open dataset: %w", err)
	}

	sheet := file.GetSheetName(0)
	if sheet == "" {
		file.Close()
		return nil, fmt.Errorf("dataset %s contains no sheets", path)
	}

	rows, err := file.Rows(sheet)
	if err != nil {
		file.Close()
		return nil, fmt.Errorf("failed to read sheet %s: %w", sheet, err)
	}

	return &xlsxSource{file: file, rows: rows}, nil
}

func (s *xlsxSource) Next() ([]any, error) {
	if !s.rows.Next() {
		if err := s.rows.Error(); err != nil {
			return nil, err
		}
		return nil, io.EOF
	}
	s.row++

	cells, err := s.rows.Columns(excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, &RowError{Row: s.row, Reason: err.Error()}
	}

	out := make([]any, len(cells))
	for i, v := range cells {
		out[i] = v
	}
	return out, nil
}

func (s *xlsxSource) Close() error {
	if err := s.rows.Close(); err != nil {
		s.file.Close()
		return err
	}
	return s.file.Close()
}
