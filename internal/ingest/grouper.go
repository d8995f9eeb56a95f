package ingest

import (
	"fmt"

	"github.com/adityarao/billsync-backend/internal/tabular"
)

// RowWarning records a source row that was dropped before grouping.
type RowWarning struct {
	RowIndex int
	Reason   string
}

func (w RowWarning) Error() string {
	return fmt.Sprintf("row %d dropped: %s", w.RowIndex, w.Reason)
}

// GroupRows folds source rows into one aggregate per bill number. Aggregates
// come back in order of first appearance. Rows without a bill number or a
// grand total are dropped and reported as warnings; the index in each warning
// is the data row position, counted from 1.
func GroupRows(rows []tabular.Row) ([]*OrderAggregate, []RowWarning) {
	byBill := make(map[string]*OrderAggregate)
	ordered := make([]*OrderAggregate, 0, len(rows))
	var warnings []RowWarning

	for i, row := range rows {
		bill := row.Get(colBillNumber)
		if bill == "" {
			warnings = append(warnings, RowWarning{RowIndex: i + 1, Reason: "missing bill number"})
			continue
		}
		if row.Get(colGrandTotal) == "" {
			warnings = append(warnings, RowWarning{RowIndex: i + 1, Reason: "missing grand total"})
			continue
		}

		agg, ok := byBill[bill]
		if !ok {
			agg = &OrderAggregate{BillNumber: bill}
			byBill[bill] = agg
			ordered = append(ordered, agg)
		}
		agg.absorbRow(row)
	}
	return ordered, warnings
}
