package ingest

import (
	"testing"

	"github.com/adityarao/billsync-backend/internal/tabular"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGroupRowsFoldsByBillNumber(t *testing.T) {
	rows := []tabular.Row{
		{colBillNumber: "INV-1", colGrandTotal: "100", colItemID: "A", colPartyName: "Anita"},
		{colBillNumber: "INV-2", colGrandTotal: "50", colItemID: "C"},
		{colBillNumber: "INV-1", colGrandTotal: "100", colItemID: "B", colEmail: "anita@example.com"},
	}

	aggs, warnings := GroupRows(rows)
	require.Empty(t, warnings)
	require.Len(t, aggs, 2)

	// First appearance order, with non-contiguous rows folded together.
	assert.Equal(t, "INV-1", aggs[0].BillNumber)
	assert.Equal(t, "INV-2", aggs[1].BillNumber)
	require.Len(t, aggs[0].Items, 2)
	assert.Equal(t, "A", aggs[0].Items[0].ExternalItemID)
	assert.Equal(t, "B", aggs[0].Items[1].ExternalItemID)

	// Order-level fields may arrive on any row of the group.
	assert.Equal(t, "Anita", aggs[0].Contact.PartyName)
	assert.Equal(t, "anita@example.com", aggs[0].Contact.Email)
}

func TestGroupRowsFirstValueWins(t *testing.T) {
	rows := []tabular.Row{
		{colBillNumber: "INV-1", colGrandTotal: "100", colPartyName: "Anita"},
		{colBillNumber: "INV-1", colGrandTotal: "100", colPartyName: "A. Sharma"},
	}

	aggs, _ := GroupRows(rows)
	require.Len(t, aggs, 1)
	assert.Equal(t, "Anita", aggs[0].Contact.PartyName)
}

func TestGroupRowsDropsIncompleteRows(t *testing.T) {
	rows := []tabular.Row{
		{colGrandTotal: "100", colItemID: "A"},
		{colBillNumber: "INV-1", colItemID: "B"},
		{colBillNumber: "INV-1", colGrandTotal: "100", colItemID: "C"},
	}

	aggs, warnings := GroupRows(rows)
	require.Len(t, aggs, 1)
	require.Len(t, aggs[0].Items, 1)
	assert.Equal(t, "C", aggs[0].Items[0].ExternalItemID)

	require.Len(t, warnings, 2)
	assert.Equal(t, 1, warnings[0].RowIndex)
	assert.Contains(t, warnings[0].Error(), "missing bill number")
	assert.Equal(t, 2, warnings[1].RowIndex)
	assert.Contains(t, warnings[1].Error(), "missing grand total")
}

func TestGroupRowsEmptyInput(t *testing.T) {
	aggs, warnings := GroupRows(nil)
	assert.Empty(t, aggs)
	assert.Empty(t, warnings)
}
