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

type MySQLStockItemRepository struct {
	db *sql.DB
}

func NewMySQLStockItemRepository(db *sql.DB) *MySQLStockItemRepository {
	return &MySQLStockItemRepository{db: db}
}

func (r *MySQLStockItemRepository) FindByID(ctx context.Context, id string) (*domain.StockItem, error) {
	query := `
		SELECT id, warung_id, name, quantity, unit, min_stock, is_active, created_at, updated_at
		FROM stock_items
		WHERE id = ?
	`

	var item domain.StockItem
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&item.ID, &item.WarungID, &item.Name, &item.Quantity, &item.Unit,
		&item.MinStock, &item.IsActive, &item.CreatedAt, &item.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, errors.NewNotFoundError(fmt.Sprintf("stock item %s not found", id))
	}
	if err != nil {
		return nil, fmt.Errorf("querying stock item by id: %w", err)
	}

	return &item, nil
}

func (r *MySQLStockItemRepository) ListByWarung(ctx context.Context, warungID string) ([]domain.StockItem, error) {
	query := `
		SELECT id, warung_id, name, quantity, unit, min_stock, is_active, created_at, updated_at
		FROM stock_items
		WHERE warung_id = ?
		  AND is_active = 1
		ORDER BY name
	`

	rows, err := r.db.QueryContext(ctx, query, warungID)
	if err != nil {
		return nil, fmt.Errorf("querying stock items: %w", err)
	}
	defer rows.Close()

	var items []domain.StockItem
	for rows.Next() {
		var item domain.StockItem
		err := rows.Scan(
			&item.ID, &item.WarungID, &item.Name, &item.Quantity, &item.Unit,
			&item.MinStock, &item.IsActive, &item.CreatedAt, &item.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning stock item row: %w", err)
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating stock item rows: %w", err)
	}

	return items, nil
}

func (r *MySQLStockItemRepository) Insert(ctx context.Context, item *domain.StockItem) error {
	if item.ID == "" {
		item.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	item.CreatedAt = now
	item.UpdatedAt = now

	query := `
		INSERT INTO stock_items (id, warung_id, name, quantity, unit, min_stock, is_active, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.ExecContext(ctx, query,
		item.ID, item.WarungID, item.Name, item.Quantity, item.Unit,
		item.MinStock, item.IsActive, item.CreatedAt, item.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("inserting stock item: %w", err)
	}

	return nil
}

func (r *MySQLStockItemRepository) Update(ctx context.Context, item *domain.StockItem) error {
	query := `
		UPDATE stock_items
		SET name = ?, unit = ?, min_stock = ?, updated_at = ?
		WHERE id = ?
	`

	result, err := r.db.ExecContext(ctx, query, item.Name, item.Unit, item.MinStock, time.Now().UTC(), item.ID)
	if err != nil {
		return fmt.Errorf("updating stock item: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("getting rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return errors.NewNotFoundError(fmt.Sprintf("stock item %s not found", item.ID))
	}

	return nil
}

// AddQuantity restocks an item by delta units.
func (r *MySQLStockItemRepository) AddQuantity(ctx context.Context, id string, delta int) error {
	query := `UPDATE stock_items SET quantity = quantity + ?, updated_at = ? WHERE id = ?`

	result, err := r.db.ExecContext(ctx, query, delta, time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("restocking stock item: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("getting rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return errors.NewNotFoundError(fmt.Sprintf("stock item %s not found", id))
	}

	return nil
}

// Deduct atomically subtracts required units when enough stock is on hand.
// The condition lives in the UPDATE itself, so two concurrent sales cannot
// both read the same starting quantity and under-deduct. Returns false,
// without touching the row, when the item is missing or short.
func (r *MySQLStockItemRepository) Deduct(ctx context.Context, id string, required int) (bool, error) {
	query := `
		UPDATE stock_items
		SET quantity = quantity - ?, updated_at = ?
		WHERE id = ?
		  AND quantity >= ?
	`

	result, err := r.db.ExecContext(ctx, query, required, time.Now().UTC(), id, required)
	if err != nil {
		return false, fmt.Errorf("deducting stock item: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("getting rows affected: %w", err)
	}

	return rowsAffected > 0, nil
}

// FloorToZero empties an item that could not cover a full deduction.
func (r *MySQLStockItemRepository) FloorToZero(ctx context.Context, id string) error {
	query := `UPDATE stock_items SET quantity = 0, updated_at = ? WHERE id = ?`

	if _, err := r.db.ExecContext(ctx, query, time.Now().UTC(), id); err != nil {
		return fmt.Errorf("flooring stock item quantity: %w", err)
	}

	return nil
}

func (r *MySQLStockItemRepository) Deactivate(ctx context.Context, id string) error {
	query := `UPDATE stock_items SET is_active = 0, updated_at = ? WHERE id = ?`

	result, err := r.db.ExecContext(ctx, query, time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("deactivating stock item: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("getting rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return errors.NewNotFoundError(fmt.Sprintf("stock item %s not found", id))
	}

	return nil
}
