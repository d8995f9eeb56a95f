package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderItem captures the snapshot of one line within an order, created in
// bulk alongside its parent and immutable thereafter.
type OrderItem struct {
	ID             int64           `gorm:"column:id;primaryKey;autoIncrement"`
	OrderID        int64           `gorm:"column:order_id;not null;index"`
	ProductID      int64           `gorm:"column:product_id;not null;index"`
	ExternalItemID string          `gorm:"column:external_item_id;not null"`
	Quantity       int             `gorm:"column:quantity;not null"`
	UnitCost       decimal.Decimal `gorm:"column:unit_cost;type:numeric(14,2);not null"`
	TaxRate        decimal.Decimal `gorm:"column:tax_rate;type:numeric(6,3);not null"`
	TaxAmount      decimal.Decimal `gorm:"column:tax_amount;type:numeric(14,2);not null"`
	CreatedAt      time.Time       `gorm:"column:created_at;autoCreateTime"`
}
