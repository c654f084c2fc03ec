package testutil

import (
	"database/sql"
	"fmt"
	"os"
	"testing"

	_ "github.com/go-sql-driver/mysql"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS warung (
		id CHAR(36) PRIMARY KEY,
		name VARCHAR(255) NOT NULL,
		address TEXT,
		phone VARCHAR(32),
		owner_id CHAR(36) NOT NULL,
		created_at DATETIME NOT NULL,
		updated_at DATETIME NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS profiles (
		id CHAR(36) PRIMARY KEY,
		full_name VARCHAR(255) NOT NULL,
		email VARCHAR(255) NOT NULL UNIQUE,
		phone VARCHAR(32),
		password_hash VARCHAR(255) NOT NULL,
		role VARCHAR(16) NOT NULL,
		warung_id CHAR(36),
		is_active TINYINT(1) NOT NULL DEFAULT 1,
		created_at DATETIME NOT NULL,
		updated_at DATETIME NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS products (
		id CHAR(36) PRIMARY KEY,
		warung_id CHAR(36) NOT NULL,
		name VARCHAR(255) NOT NULL,
		buy_price DECIMAL(12,2) NOT NULL DEFAULT 0,
		sell_price DECIMAL(12,2) NOT NULL DEFAULT 0,
		stock INT NOT NULL DEFAULT 0,
		category VARCHAR(64) NOT NULL DEFAULT '',
		emoji VARCHAR(16),
		is_active TINYINT(1) NOT NULL DEFAULT 1,
		created_at DATETIME NOT NULL,
		updated_at DATETIME NOT NULL,
		INDEX idx_products_warung (warung_id)
	)`,
	`CREATE TABLE IF NOT EXISTS stock_items (
		id CHAR(36) PRIMARY KEY,
		warung_id CHAR(36) NOT NULL,
		name VARCHAR(255) NOT NULL,
		unit VARCHAR(32) NOT NULL DEFAULT 'pcs',
		quantity INT NOT NULL DEFAULT 0,
		min_stock INT NOT NULL DEFAULT 0,
		is_active TINYINT(1) NOT NULL DEFAULT 1,
		created_at DATETIME NOT NULL,
		updated_at DATETIME NOT NULL,
		INDEX idx_stock_items_warung (warung_id)
	)`,
	`CREATE TABLE IF NOT EXISTS product_stock_usage (
		id CHAR(36) PRIMARY KEY,
		product_id CHAR(36) NOT NULL,
		stock_item_id CHAR(36) NOT NULL,
		quantity_used INT NOT NULL DEFAULT 1,
		INDEX idx_usage_product (product_id)
	)`,
	`CREATE TABLE IF NOT EXISTS transactions (
		id CHAR(36) PRIMARY KEY,
		warung_id CHAR(36) NOT NULL,
		type VARCHAR(16) NOT NULL,
		amount DECIMAL(12,2) NOT NULL,
		product_id CHAR(36),
		quantity INT,
		category VARCHAR(64) NOT NULL DEFAULT '',
		note TEXT,
		payment_method VARCHAR(16) NOT NULL DEFAULT 'cash',
		created_by CHAR(36) NOT NULL,
		created_at DATETIME NOT NULL,
		INDEX idx_transactions_warung_created (warung_id, created_at)
	)`,
}

// SetupTestDB connects to the local test database and applies the schema.
// Tests that need MySQL are skipped when it is not reachable.
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	host := os.Getenv("TEST_DB_HOST")
	if host == "" {
		host = "localhost"
	}

	dsn := fmt.Sprintf("root:root@tcp(%s:3306)/dcreamy_test?parseTime=true", host)
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		t.Skipf("skipping: cannot open test database: %v", err)
	}
	if err := db.Ping(); err != nil {
		t.Skipf("skipping: test database not reachable: %v", err)
	}

	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			t.Fatalf("failed to apply schema: %v", err)
		}
	}

	t.Cleanup(func() {
		db.Close()
	})

	return db
}

// TruncateTables empties the given tables between test cases.
func TruncateTables(t *testing.T, db *sql.DB, tables ...string) {
	t.Helper()
	for _, table := range tables {
		if _, err := db.Exec("DELETE FROM " + table); err != nil {
			t.Fatalf("failed to truncate %s: %v", table, err)
		}
	}
}
