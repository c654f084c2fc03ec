package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"dcreamy/internal/domain"
)

type MySQLUsageRuleRepository struct {
	db *sql.DB
}

func NewMySQLUsageRuleRepository(db *sql.DB) *MySQLUsageRuleRepository {
	return &MySQLUsageRuleRepository{db: db}
}

func (r *MySQLUsageRuleRepository) FindByProductID(ctx context.Context, productID string) ([]domain.UsageRule, error) {
	query := `
		SELECT id, product_id, stock_item_id, quantity_used
		FROM product_stock_usage
		WHERE product_id = ?
	`

	rows, err := r.db.QueryContext(ctx, query, productID)
	if err != nil {
		return nil, fmt.Errorf("querying usage rules: %w", err)
	}
	defer rows.Close()

	var rules []domain.UsageRule
	for rows.Next() {
		var rule domain.UsageRule
		if err := rows.Scan(&rule.ID, &rule.ProductID, &rule.StockItemID, &rule.QuantityUsed); err != nil {
			return nil, fmt.Errorf("scanning usage rule row: %w", err)
		}
		rules = append(rules, rule)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating usage rule rows: %w", err)
	}

	return rules, nil
}

// ReplaceForProduct swaps the product's whole rule set in one transaction,
// keeping the (product, stock item) pair unique.
func (r *MySQLUsageRuleRepository) ReplaceForProduct(ctx context.Context, productID string, rules []domain.UsageRule) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning usage rule transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM product_stock_usage WHERE product_id = ?`, productID); err != nil {
		return fmt.Errorf("clearing usage rules: %w", err)
	}

	insert := `INSERT INTO product_stock_usage (id, product_id, stock_item_id, quantity_used) VALUES (?, ?, ?, ?)`
	for _, rule := range rules {
		id := rule.ID
		if id == "" {
			id = uuid.New().String()
		}
		if _, err := tx.ExecContext(ctx, insert, id, productID, rule.StockItemID, rule.QuantityUsed); err != nil {
			return fmt.Errorf("inserting usage rule: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing usage rules: %w", err)
	}

	return nil
}
