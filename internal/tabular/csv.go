package tabular

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// CSVSource reads a comma separated export with a header row.
type CSVSource struct {
	path string
}

func NewCSVSource(path string) *CSVSource {
	return &CSVSource{path: path}
}

func (s *CSVSource) ReadAll(ctx context.Context) ([]Row, error) {
	f, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("open csv: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("read csv header: %w", err)
	}
	for i, label := range header {
		header[i] = strings.TrimSpace(label)
	}

	var rows []Row
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv row: %w", err)
		}
		row := Row{}
		empty := true
		for i, cell := range record {
			if i >= len(header) || header[i] == "" {
				continue
			}
			value := strings.TrimSpace(cell)
			if value != "" {
				empty = false
			}
			row[header[i]] = value
		}
		if !empty {
			rows = append(rows, row)
		}
	}
	return rows, nil
}
