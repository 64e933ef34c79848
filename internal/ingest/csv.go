package ingest

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
)

type csvSource struct {
	file   *os.File
	reader *csv.Reader
	row    int
}

// OpenCSV opens a comma-separated dataset file. Rows with a different
// number of fields than the header are passed through, the normalizer
// decides whether they are usable.
func OpenCSV(path string) (Source, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open dataset: %w", err)
	}

	reader := csv.NewReader(file)
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	return &csvSource{file: file, reader: reader}, nil
}

func (s *csvSource) Next() ([]any, error) {
	record, err := s.reader.Read()
	if err == io.EOF {
		return nil, io.EOF
	}
	s.row++
	if err != nil {
		var parseErr *csv.ParseError
		if errors.As(err, &parseErr) {
			// encoding/csv keeps reading after a parse error, so the
			// bad line is skippable.
			return nil, &RowError{Row: parseErr.Line, Reason: err.Error()}
		}
		return nil, err
	}

	cells := make([]any, len(record))
	for i, v := range record {
		cells[i] = v
	}
	return cells, nil
}

func (s *csvSource) Close() error {
	return s.file.Close()
}
