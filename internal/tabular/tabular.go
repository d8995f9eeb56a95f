package tabular

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
)

// Row is one parsed source row keyed by column label. Formula cells are
// resolved to their computed value before they reach a Row.
type Row map[string]string

// Get returns the trimmed cell value for the given column label.
func (r Row) Get(label string) string {
	return strings.TrimSpace(r[label])
}

// Source produces the ordered rows of one uploaded export file.
type Source interface {
	ReadAll(ctx context.Context) ([]Row, error)
}

// Open picks a Source implementation from the file extension. The sheet name
// is only meaningful for workbook formats; pass "" for the first sheet.
func Open(path, sheet string) (Source, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		return NewXLSXSource(path, sheet), nil
	case ".csv":
		return NewCSVSource(path), nil
	default:
		return nil, fmt.Errorf("unsupported source file %q", filepath.Base(path))
	}
}
