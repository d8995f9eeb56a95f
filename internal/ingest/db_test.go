package ingest

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupIngestTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	customers := `
CREATE TABLE IF NOT EXISTS customers (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  email TEXT NOT NULL UNIQUE,
  emails TEXT NOT NULL DEFAULT '{}',
  phones TEXT NOT NULL DEFAULT '{}',
  party_name TEXT NOT NULL,
  company TEXT NOT NULL,
  tax_id TEXT NOT NULL,
  address TEXT NOT NULL,
  postal_code TEXT NOT NULL,
  state_name TEXT NOT NULL,
  country TEXT NOT NULL,
  external_user_id TEXT NOT NULL,
  external_username TEXT NOT NULL,
  created_at DATETIME,
  updated_at DATETIME
);`
	customerContacts := `
CREATE TABLE IF NOT EXISTS customer_contacts (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  customer_id INTEGER NOT NULL,
  kind TEXT NOT NULL,
  value TEXT NOT NULL,
  created_at DATETIME,
  UNIQUE (kind, value)
);`
	products := `
CREATE TABLE IF NOT EXISTS products (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  external_id TEXT NOT NULL UNIQUE,
  name TEXT NOT NULL,
  tax_code TEXT NOT NULL,
  created_at DATETIME,
  updated_at DATETIME
);`
	orders := `
CREATE TABLE IF NOT EXISTS orders (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  bill_number TEXT NOT NULL UNIQUE,
  order_number TEXT NOT NULL,
  order_date TEXT NOT NULL,
  discount NUMERIC NOT NULL,
  subtotal NUMERIC NOT NULL,
  tax_total NUMERIC NOT NULL,
  grand_total NUMERIC NOT NULL,
  payment_method TEXT NOT NULL,
  transaction_ref TEXT NOT NULL,
  customer_id INTEGER NOT NULL,
  created_at DATETIME,
  updated_at DATETIME
);`
	orderItems := `
CREATE TABLE IF NOT EXISTS order_items (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  order_id INTEGER NOT NULL,
  product_id INTEGER NOT NULL,
  external_item_id TEXT NOT NULL,
  quantity INTEGER NOT NULL,
  unit_cost NUMERIC NOT NULL,
  tax_rate NUMERIC NOT NULL,
  tax_amount NUMERIC NOT NULL,
  created_at DATETIME
);`
	require.NoError(t, db.Exec(customers).Error)
	require.NoError(t, db.Exec(customerContacts).Error)
	require.NoError(t, db.Exec(products).Error)
	require.NoError(t, db.Exec(orders).Error)
	require.NoError(t, db.Exec(orderItems).Error)
	return db
}

// gormTxRunner adapts a test database to the committer's transaction hook.
type gormTxRunner struct {
	db *gorm.DB
}

func (r gormTxRunner) WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return r.db.WithContext(ctx).Transaction(fn)
}

func newTestCommitter(db *gorm.DB) *Committer {
	return NewCommitter(gormTxRunner{db: db}, NewRepository(db))
}
