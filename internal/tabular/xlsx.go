package tabular

import (
	"context"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

// XLSXSource reads one worksheet of an Excel workbook. Cell values come back
// already evaluated, so templated exports that compute totals with formulas
// behave the same as plain value exports.
type XLSXSource struct {
	path  string
	sheet string
}

func NewXLSXSource(path, sheet string) *XLSXSource {
	return &XLSXSource{path: path, sheet: sheet}
}

func (s *XLSXSource) ReadAll(ctx context.Context) ([]Row, error) {
	f, err := excelize.OpenFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheet := s.sheet
	if sheet == "" {
		sheet = f.GetSheetName(0)
	}

	raw, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheet, err)
	}
	if len(raw) == 0 {
		return nil, nil
	}

	header := make([]string, len(raw[0]))
	for i, label := range raw[0] {
		header[i] = strings.TrimSpace(label)
	}

	rows := make([]Row, 0, len(raw)-1)
	for _, cells := range raw[1:] {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		row := Row{}
		empty := true
		for i, cell := range cells {
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
