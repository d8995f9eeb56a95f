package ingest

import "github.com/adityarao/billsync-backend/internal/tabular"

// Column labels as they appear in the sales export header row. The mapping is
// fixed: renamed columns in a source file are treated as absent.
const (
	colBillNumber     = "Invoice Number"
	colOrderNumber    = "Order Number"
	colOrderDate      = "Invoice Date"
	colPaymentMethod  = "Payment Method"
	colTransactionRef = "Transaction ID"
	colDiscount       = "Discount"
	colSubtotal       = "Subtotal"
	colTaxTotal       = "Total Tax"
	colGrandTotal     = "Grand Total"

	colPartyName        = "Customer Name"
	colCompany          = "Company"
	colTaxID            = "GSTIN"
	colAddress          = "Billing Address"
	colPostalCode       = "Pincode"
	colStateName        = "State"
	colCountry          = "Country"
	colPhone            = "Phone"
	colEmail            = "Email"
	colExternalUserID   = "Customer ID"
	colExternalUsername = "Username"

	colItemID      = "Item ID"
	colProductID   = "Product ID"
	colProductName = "Product Name"
	colTaxCode     = "HSN Code"
	colQuantity    = "Quantity"
	colUnitCost    = "Unit Price"
	colTaxRate     = "Tax Rate"
	colTaxAmount   = "Tax Amount"
)

// ContactFields holds the customer-facing columns of an order, accumulated
// across its rows.
type ContactFields struct {
	PartyName        string
	Company          string
	TaxID            string
	Address          string
	PostalCode       string
	StateName        string
	Country          string
	Phone            string
	Email            string
	ExternalUserID   string
	ExternalUsername string
}

// LineItem is one product row of an order, still in raw string form. Numeric
// coercion happens at commit time.
type LineItem struct {
	ExternalItemID    string
	ExternalProductID string
	ProductName       string
	TaxCode           string
	Quantity          string
	UnitCost          string
	TaxRate           string
	TaxAmount         string
}

// OrderAggregate is one logical order assembled from every source row that
// shares its bill number.
type OrderAggregate struct {
	BillNumber     string
	OrderNumber    string
	OrderDate      string
	PaymentMethod  string
	TransactionRef string
	Discount       string
	Subtotal       string
	TaxTotal       string
	GrandTotal     string
	Contact        ContactFields
	Items          []LineItem
}

func lineItemFromRow(row tabular.Row) LineItem {
	return LineItem{
		ExternalItemID:    row.Get(colItemID),
		ExternalProductID: row.Get(colProductID),
		ProductName:       row.Get(colProductName),
		TaxCode:           row.Get(colTaxCode),
		Quantity:          row.Get(colQuantity),
		UnitCost:          row.Get(colUnitCost),
		TaxRate:           row.Get(colTaxRate),
		TaxAmount:         row.Get(colTaxAmount),
	}
}

// fill sets dst to value only when dst is still empty, so the first row that
// carries a field wins for the whole order.
func fill(dst *string, value string) {
	if *dst == "" && value != "" {
		*dst = value
	}
}

func (a *OrderAggregate) absorbRow(row tabular.Row) {
	fill(&a.OrderNumber, row.Get(colOrderNumber))
	fill(&a.OrderDate, row.Get(colOrderDate))
	fill(&a.PaymentMethod, row.Get(colPaymentMethod))
	fill(&a.TransactionRef, row.Get(colTransactionRef))
	fill(&a.Discount, row.Get(colDiscount))
	fill(&a.Subtotal, row.Get(colSubtotal))
	fill(&a.TaxTotal, row.Get(colTaxTotal))
	fill(&a.GrandTotal, row.Get(colGrandTotal))

	fill(&a.Contact.PartyName, row.Get(colPartyName))
	fill(&a.Contact.Company, row.Get(colCompany))
	fill(&a.Contact.TaxID, row.Get(colTaxID))
	fill(&a.Contact.Address, row.Get(colAddress))
	fill(&a.Contact.PostalCode, row.Get(colPostalCode))
	fill(&a.Contact.StateName, row.Get(colStateName))
	fill(&a.Contact.Country, row.Get(colCountry))
	fill(&a.Contact.Phone, row.Get(colPhone))
	fill(&a.Contact.Email, row.Get(colEmail))
	fill(&a.Contact.ExternalUserID, row.Get(colExternalUserID))
	fill(&a.Contact.ExternalUsername, row.Get(colExternalUsername))

	a.Items = append(a.Items, lineItemFromRow(row))
}
