package migrate_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/adityarao/billsync-backend/pkg/migrate"
)

func TestCoreMigrationContainsSchemas(t *testing.T) {
	matches, err := filepath.Glob(filepath.Join("migrations", "*_create_core_tables.sql"))
	if err != nil {
		t.Fatalf("glob migrations: %v", err)
	}
	if len(matches) == 0 {
		t.Fatalf("no core migration file found")
	}

	data, err := os.ReadFile(matches[0])
	if err != nil {
		t.Fatalf("read migration file: %v", err)
	}
	content := string(data)

	checks := []string{
		"CREATE TABLE customers",
		"CREATE TABLE customer_contacts",
		"CREATE TABLE products",
		"CREATE TABLE orders",
		"CREATE TABLE order_items",
		"CONSTRAINT customers_email_key UNIQUE (email)",
		"CONSTRAINT orders_bill_number_key UNIQUE (bill_number)",
		"CONSTRAINT products_external_id_key UNIQUE (external_id)",
		"CONSTRAINT idx_customer_contacts_kind_value UNIQUE (kind, value)",
	}

	for _, sub := range checks {
		if !strings.Contains(content, sub) {
			t.Errorf("missing expected statement %q", sub)
		}
	}
}

func TestMigrationDirIsValid(t *testing.T) {
	if err := migrate.ValidateDir("migrations"); err != nil {
		t.Fatalf("migration dir should validate: %v", err)
	}
}
