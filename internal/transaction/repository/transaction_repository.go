package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"dcreamy/internal/domain"
	"dcreamy/internal/errors"
)

type MySQLTransactionRepository struct {
	db *sql.DB
}

func NewMySQLTransactionRepository(db *sql.DB) *MySQLTransactionRepository {
	return &MySQLTransactionRepository{db: db}
}

func (r *MySQLTransactionRepository) Insert(ctx context.Context, t *domain.Transaction) error {
	if t.ID == "" {
		t.ID = uuid.New().String()
	}
	if t.CreatedAt.IsZero() {
		t.CreatedAt = time.Now().UTC()
	}

	query := `
		INSERT INTO transactions (id, warung_id, type, amount, product_id, quantity, category, note, payment_method, created_by, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.ExecContext(ctx, query,
		t.ID, t.WarungID, t.Type, t.Amount, t.ProductID, t.Quantity,
		t.Category, t.Note, t.PaymentMethod, t.CreatedBy, t.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("inserting transaction: %w", err)
	}

	return nil
}

func (r *MySQLTransactionRepository) FindByID(ctx context.Context, id string) (*domain.Transaction, error) {
	query := `
		SELECT id, warung_id, type, amount, product_id, quantity, category, note, payment_method, created_by, created_at
		FROM transactions
		WHERE id = ?
	`

	var t domain.Transaction
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&t.ID, &t.WarungID, &t.Type, &t.Amount, &t.ProductID, &t.Quantity,
		&t.Category, &t.Note, &t.PaymentMethod, &t.CreatedBy, &t.CreatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, errors.NewNotFoundError(fmt.Sprintf("transaction %s not found", id))
	}
	if err != nil {
		return nil, fmt.Errorf("querying transaction by id: %w", err)
	}

	return &t, nil
}

func (r *MySQLTransactionRepository) ListByWarung(ctx context.Context, warungID string, limit int) ([]domain.Transaction, error) {
	query := `
		SELECT id, warung_id, type, amount, product_id, quantity, category, note, payment_method, created_by, created_at
		FROM transactions
		WHERE warung_id = ?
		ORDER BY created_at DESC
		LIMIT ?
	`

	return r.list(ctx, query, warungID, limit)
}

// ListByWarungBetween returns rows inside [start, end), newest first. The
// half-open range matches the business-day window.
func (r *MySQLTransactionRepository) ListByWarungBetween(ctx context.Context, warungID string, start, end time.Time, limit int) ([]domain.Transaction, error) {
	query := `
		SELECT id, warung_id, type, amount, product_id, quantity, category, note, payment_method, created_by, created_at
		FROM transactions
		WHERE warung_id = ?
		  AND created_at >= ?
		  AND created_at < ?
		ORDER BY created_at DESC
		LIMIT ?
	`

	return r.list(ctx, query, warungID, start, end, limit)
}

func (r *MySQLTransactionRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM transactions WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting transaction: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("getting rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return errors.NewNotFoundError(fmt.Sprintf("transaction %s not found", id))
	}

	return nil
}

func (r *MySQLTransactionRepository) list(ctx context.Context, query string, args ...interface{}) ([]domain.Transaction, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying transactions: %w", err)
	}
	defer rows.Close()

	var transactions []domain.Transaction
	for rows.Next() {
		var t domain.Transaction
		err := rows.Scan(
			&t.ID, &t.WarungID, &t.Type, &t.Amount, &t.ProductID, &t.Quantity,
			&t.Category, &t.Note, &t.PaymentMethod, &t.CreatedBy, &t.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning transaction row: %w", err)
		}
		transactions = append(transactions, t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating transaction rows: %w", err)
	}

	return transactions, nil
}
