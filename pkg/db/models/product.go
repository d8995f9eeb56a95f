package models

import "time"

// Product is a master catalog entry keyed by the upstream external
// identifier. Created once, then read-only for ingestion purposes.
type Product struct {
	ID         int64     `gorm:"column:id;primaryKey;autoIncrement"`
	ExternalID string    `gorm:"column:external_id;type:text;not null;uniqueIndex"`
	Name       string    `gorm:"column:name;not null"`
	TaxCode    string    `gorm:"column:tax_code;not null"`
	CreatedAt  time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt  time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
