package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Order is one invoice. The bill number is the sole deduplication key; once
// committed an order is never mutated by the ingestion pipeline.
type Order struct {
	ID             int64           `gorm:"column:id;primaryKey;autoIncrement"`
	BillNumber     string          `gorm:"column:bill_number;type:text;not null;uniqueIndex"`
	OrderNumber    string          `gorm:"column:order_number;not null"`
	OrderDate      string          `gorm:"column:order_date;not null"`
	Discount       decimal.Decimal `gorm:"column:discount;type:numeric(14,2);not null"`
	Subtotal       decimal.Decimal `gorm:"column:subtotal;type:numeric(14,2);not null"`
	TaxTotal       decimal.Decimal `gorm:"column:tax_total;type:numeric(14,2);not null"`
	GrandTotal     decimal.Decimal `gorm:"column:grand_total;type:numeric(14,2);not null"`
	PaymentMethod  string          `gorm:"column:payment_method;not null"`
	TransactionRef string          `gorm:"column:transaction_ref;not null"`
	CustomerID     int64           `gorm:"column:customer_id;not null;index"`
	Items          []OrderItem     `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	CreatedAt      time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt      time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}
