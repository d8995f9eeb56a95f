package models

import (
	"time"

	"github.com/adityarao/billsync-backend/pkg/enums"
)

// CustomerContact is the lookup index for one contact channel value. It is
// written in the same transaction as the owning customer's contact lists so a
// later order in the same run can find the merged profile.
type CustomerContact struct {
	ID         int64             `gorm:"column:id;primaryKey;autoIncrement"`
	CustomerID int64             `gorm:"column:customer_id;not null;index"`
	Kind       enums.ContactKind `gorm:"column:kind;type:text;not null;uniqueIndex:idx_customer_contacts_kind_value"`
	Value      string            `gorm:"column:value;not null;uniqueIndex:idx_customer_contacts_kind_value"`
	CreatedAt  time.Time         `gorm:"column:created_at;autoCreateTime"`
}
