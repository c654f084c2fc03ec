package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"dcreamy/internal/domain"
	apperrors "dcreamy/internal/errors"
)

type MySQLWarungRepository struct {
	db *sql.DB
}

func NewMySQLWarungRepository(db *sql.DB) *MySQLWarungRepository {
	return &MySQLWarungRepository{db: db}
}

func (r *MySQLWarungRepository) Insert(ctx context.Context, w *domain.Warung) error {
	if w.ID == "" {
		w.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	w.CreatedAt = now
	w.UpdatedAt = now

	query := `INSERT INTO warung (id, name, address, phone, owner_id, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`

	_, err := r.db.ExecContext(ctx, query,
		w.ID, w.Name, w.Address, w.Phone, w.OwnerID, w.CreatedAt, w.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert warung: %w", err)
	}
	return nil
}

func (r *MySQLWarungRepository) FindByID(ctx context.Context, id string) (*domain.Warung, error) {
	query := `SELECT id, name, address, phone, owner_id, created_at, updated_at
		FROM warung WHERE id = ?`

	var w domain.Warung
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&w.ID, &w.Name, &w.Address, &w.Phone, &w.OwnerID, &w.CreatedAt, &w.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFoundError("warung not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan warung: %w", err)
	}
	return &w, nil
}

func (r *MySQLWarungRepository) FindByOwner(ctx context.Context, ownerID string) (*domain.Warung, error) {
	query := `SELECT id, name, address, phone, owner_id, created_at, updated_at
		FROM warung WHERE owner_id = ?`

	var w domain.Warung
	err := r.db.QueryRowContext(ctx, query, ownerID).Scan(
		&w.ID, &w.Name, &w.Address, &w.Phone, &w.OwnerID, &w.CreatedAt, &w.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFoundError("warung not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan warung: %w", err)
	}
	return &w, nil
}

func (r *MySQLWarungRepository) Update(ctx context.Context, w *domain.Warung) error {
	w.UpdatedAt = time.Now().UTC()

	query := `UPDATE warung SET name = ?, address = ?, phone = ?, updated_at = ? WHERE id = ?`

	result, err := r.db.ExecContext(ctx, query, w.Name, w.Address, w.Phone, w.UpdatedAt, w.ID)
	if err != nil {
		return fmt.Errorf("failed to update warung: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return apperrors.NewNotFoundError("warung not found")
	}
	return nil
}
