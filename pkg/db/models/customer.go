package models

import (
	"time"

	dbtypes "github.com/adityarao/billsync-backend/pkg/db/types"
)

// PlaceholderValue fills descriptive columns whose source cell was empty, so
// required columns stay non-null without inventing data.
const PlaceholderValue = "N/A"

// Customer is the canonical identity profile an order is attributed to.
// Email is the stable lookup key and never changes once the profile exists;
// the Emails/Phones lists only grow as later orders are merged in.
type Customer struct {
	ID               int64             `gorm:"column:id;primaryKey;autoIncrement"`
	Email            string            `gorm:"column:email;type:text;not null;uniqueIndex"`
	Emails           dbtypes.StringSet `gorm:"column:emails;type:text[];not null;default:'{}'"`
	Phones           dbtypes.StringSet `gorm:"column:phones;type:text[];not null;default:'{}'"`
	PartyName        string            `gorm:"column:party_name;not null"`
	Company          string            `gorm:"column:company;not null"`
	TaxID            string            `gorm:"column:tax_id;not null"`
	Address          string            `gorm:"column:address;not null"`
	PostalCode       string            `gorm:"column:postal_code;not null"`
	StateName        string            `gorm:"column:state_name;not null"`
	Country          string            `gorm:"column:country;not null"`
	ExternalUserID   string            `gorm:"column:external_user_id;not null"`
	ExternalUsername string            `gorm:"column:external_username;not null"`
	Contacts         []CustomerContact `gorm:"foreignKey:CustomerID;constraint:OnDelete:CASCADE"`
	CreatedAt        time.Time         `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt        time.Time         `gorm:"column:updated_at;autoUpdateTime"`
}
