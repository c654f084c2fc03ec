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

type MySQLRepository struct {
	db *sql.DB
}

func NewMySQLRepository(db *sql.DB) *MySQLRepository {
	return &MySQLRepository{db: db}
}

func (r *MySQLRepository) ListByWarung(ctx context.Context, warungID string) ([]domain.Product, error) {
	query := `
		SELECT id, warung_id, name, buy_price, sell_price, stock, category, emoji,
		       is_active, created_at, updated_at
		FROM products
		WHERE warung_id = ?
		  AND is_active = 1
		ORDER BY name
	`

	rows, err := r.db.QueryContext(ctx, query, warungID)
	if err != nil {
		return nil, fmt.Errorf("querying products: %w", err)
	}
	defer rows.Close()

	var products []domain.Product
	for rows.Next() {
		var p domain.Product
		err := rows.Scan(
			&p.ID, &p.WarungID, &p.Name, &p.BuyPrice, &p.SellPrice, &p.Stock,
			&p.Category, &p.Emoji, &p.IsActive, &p.CreatedAt, &p.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning product row: %w", err)
		}
		products = append(products, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating product rows: %w", err)
	}

	return products, nil
}

func (r *MySQLRepository) FindByID(ctx context.Context, id string) (*domain.Product, error) {
	query := `
		SELECT id, warung_id, name, buy_price, sell_price, stock, category, emoji,
		       is_active, created_at, updated_at
		FROM products
		WHERE id = ?
	`

	var p domain.Product
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&p.ID, &p.WarungID, &p.Name, &p.BuyPrice, &p.SellPrice, &p.Stock,
		&p.Category, &p.Emoji, &p.IsActive, &p.CreatedAt, &p.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, errors.NewNotFoundError(fmt.Sprintf("product %s not found", id))
	}
	if err != nil {
		return nil, fmt.Errorf("querying product by id: %w", err)
	}

	return &p, nil
}

func (r *MySQLRepository) Insert(ctx context.Context, p *domain.Product) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	p.CreatedAt = now
	p.UpdatedAt = now

	query := `
		INSERT INTO products (id, warung_id, name, buy_price, sell_price, stock, category, emoji, is_active, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.ExecContext(ctx, query,
		p.ID, p.WarungID, p.Name, p.BuyPrice, p.SellPrice, p.Stock,
		p.Category, p.Emoji, p.IsActive, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("inserting product: %w", err)
	}

	return nil
}

func (r *MySQLRepository) Update(ctx context.Context, p *domain.Product) error {
	query := `
		UPDATE products
		SET name = ?, buy_price = ?, sell_price = ?, stock = ?, category = ?, emoji = ?, updated_at = ?
		WHERE id = ?
	`

	result, err := r.db.ExecContext(ctx, query,
		p.Name, p.BuyPrice, p.SellPrice, p.Stock, p.Category, p.Emoji, time.Now().UTC(), p.ID,
	)
	if err != nil {
		return fmt.Errorf("updating product: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("getting rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return errors.NewNotFoundError(fmt.Sprintf("product %s not found", p.ID))
	}

	return nil
}

func (r *MySQLRepository) Deactivate(ctx context.Context, id string) error {
	query := `UPDATE products SET is_active = 0, updated_at = ? WHERE id = ?`

	result, err := r.db.ExecContext(ctx, query, time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("deactivating product: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("getting rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return errors.NewNotFoundError(fmt.Sprintf("product %s not found", id))
	}

	return nil
}

// DecrementStock lowers the product's own stock count on a sale, floored
// at zero in the statement itself so concurrent sales cannot drive it
// negative.
func (r *MySQLRepository) DecrementStock(ctx context.Context, id string, quantity int) error {
	query := `UPDATE products SET stock = GREATEST(stock - ?, 0), updated_at = ? WHERE id = ?`

	if _, err := r.db.ExecContext(ctx, query, quantity, time.Now().UTC(), id); err != nil {
		return fmt.Errorf("decrementing product stock: %w", err)
	}

	return nil
}
