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

type MySQLProfilesRepository struct {
	db *sql.DB
}

func NewMySQLProfilesRepository(db *sql.DB) *MySQLProfilesRepository {
	return &MySQLProfilesRepository{db: db}
}

const profileColumns = `id, full_name, email, phone, password_hash, role, warung_id, is_active, created_at, updated_at`

func (r *MySQLProfilesRepository) Insert(ctx context.Context, p *domain.Profile) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	p.CreatedAt = now
	p.UpdatedAt = now

	query := `INSERT INTO profiles (` + profileColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := r.db.ExecContext(ctx, query,
		p.ID, p.FullName, p.Email, p.Phone, p.PasswordHash,
		p.Role, p.WarungID, p.IsActive, p.CreatedAt, p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert profile: %w", err)
	}
	return nil
}

func (r *MySQLProfilesRepository) FindByID(ctx context.Context, id string) (*domain.Profile, error) {
	query := `SELECT ` + profileColumns + ` FROM profiles WHERE id = ?`
	return r.scanOne(r.db.QueryRowContext(ctx, query, id))
}

func (r *MySQLProfilesRepository) FindByEmail(ctx context.Context, email string) (*domain.Profile, error) {
	query := `SELECT ` + profileColumns + ` FROM profiles WHERE email = ?`
	return r.scanOne(r.db.QueryRowContext(ctx, query, email))
}

func (r *MySQLProfilesRepository) ListStaffByWarung(ctx context.Context, warungID string) ([]domain.Profile, error) {
	query := `SELECT ` + profileColumns + ` FROM profiles
		WHERE warung_id = ? AND role = ? AND is_active = 1
		ORDER BY created_at`

	rows, err := r.db.QueryContext(ctx, query, warungID, domain.RoleStaff)
	if err != nil {
		return nil, fmt.Errorf("failed to query staff: %w", err)
	}
	defer rows.Close()

	var out []domain.Profile
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate staff rows: %w", err)
	}
	return out, nil
}

// SetWarung binds a profile to a warung after onboarding.
func (r *MySQLProfilesRepository) SetWarung(ctx context.Context, id, warungID string) error {
	query := `UPDATE profiles SET warung_id = ?, updated_at = ? WHERE id = ?`
	_, err := r.db.ExecContext(ctx, query, warungID, time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("failed to set warung: %w", err)
	}
	return nil
}

// Deactivate revokes access and detaches the profile from its warung,
// without losing the audit trail on old transactions.
func (r *MySQLProfilesRepository) Deactivate(ctx context.Context, id string) error {
	query := `UPDATE profiles SET is_active = 0, warung_id = NULL, updated_at = ? WHERE id = ?`

	result, err := r.db.ExecContext(ctx, query, time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("failed to deactivate profile: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return apperrors.NewNotFoundError("profile not found")
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func (r *MySQLProfilesRepository) scanOne(row rowScanner) (*domain.Profile, error) {
	p, err := scanProfile(row)
	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFoundError("profile not found")
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

func scanProfile(row rowScanner) (*domain.Profile, error) {
	var p domain.Profile
	err := row.Scan(&p.ID, &p.FullName, &p.Email, &p.Phone, &p.PasswordHash,
		&p.Role, &p.WarungID, &p.IsActive, &p.CreatedAt, &p.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan profile: %w", err)
	}
	return &p, nil
}
