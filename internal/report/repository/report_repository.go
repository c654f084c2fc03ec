package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"dcreamy/internal/domain"
)

// DaySums carries the aggregate totals of one business-day window.
type DaySums struct {
	Income       float64
	Expense      float64
	Transactions int
}

type MySQLReportRepository struct {
	db *sql.DB
}

func NewMySQLReportRepository(db *sql.DB) *MySQLReportRepository {
	return &MySQLReportRepository{db: db}
}

// SumBetween aggregates income and expense totals over [start, end).
func (r *MySQLReportRepository) SumBetween(ctx context.Context, warungID string, start, end time.Time) (DaySums, error) {
	query := `SELECT type, COALESCE(SUM(amount), 0), COUNT(*)
		FROM transactions
		WHERE warung_id = ? AND created_at >= ? AND created_at < ?
		GROUP BY type`

	rows, err := r.db.QueryContext(ctx, query, warungID, start, end)
	if err != nil {
		return DaySums{}, fmt.Errorf("failed to aggregate transactions: %w", err)
	}
	defer rows.Close()

	var sums DaySums
	for rows.Next() {
		var (
			transactionType string
			total           float64
			count           int
		)
		if err := rows.Scan(&transactionType, &total, &count); err != nil {
			return DaySums{}, fmt.Errorf("failed to scan aggregate row: %w", err)
		}
		switch transactionType {
		case domain.TransactionIncome:
			sums.Income = total
		case domain.TransactionExpense:
			sums.Expense = total
		}
		sums.Transactions += count
	}
	if err := rows.Err(); err != nil {
		return DaySums{}, fmt.Errorf("failed to iterate aggregate rows: %w", err)
	}

	return sums, nil
}

// TopProductsBetween lists the best-selling products of a window by
// summed quantity, highest first.
func (r *MySQLReportRepository) TopProductsBetween(ctx context.Context, warungID string, start, end time.Time, limit int) ([]ProductSales, error) {
	query := `SELECT p.id, p.name, COALESCE(SUM(t.quantity), 0) AS sold, COALESCE(SUM(t.amount), 0)
		FROM transactions t
		JOIN products p ON p.id = t.product_id
		WHERE t.warung_id = ? AND t.type = ? AND t.product_id IS NOT NULL
			AND t.created_at >= ? AND t.created_at < ?
		GROUP BY p.id, p.name
		ORDER BY sold DESC
		LIMIT ?`

	rows, err := r.db.QueryContext(ctx, query, warungID, domain.TransactionIncome, start, end, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query top products: %w", err)
	}
	defer rows.Close()

	var out []ProductSales
	for rows.Next() {
		var p ProductSales
		if err := rows.Scan(&p.ProductID, &p.Name, &p.Quantity, &p.Revenue); err != nil {
			return nil, fmt.Errorf("failed to scan top product row: %w", err)
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate top product rows: %w", err)
	}

	return out, nil
}

type ProductSales struct {
	ProductID string
	Name      string
	Quantity  int
	Revenue   float64
}
