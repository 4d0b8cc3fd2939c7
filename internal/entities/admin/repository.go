package admin

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
)

var (
	ErrAdminNotFound      = errors.New("admin not found")
	ErrInvalidCredentials = errors.New("invalid username or password")
)

type AdminRepository interface {
	Create(ctx context.Context, a *Admin) error
	GetByID(ctx context.Context, id int) (*Admin, error)
	GetByUsername(ctx context.Context, username string) (*Admin, error)
	UpdatePassword(ctx context.Context, id int, hash string) error
	Count(ctx context.Context) (int, error)
}

type adminRepository struct {
	db *sqlx.DB
}

func NewAdminRepository(db *sqlx.DB) AdminRepository {
	return &adminRepository{db: db}
}

func (r *adminRepository) Create(ctx context.Context, a *Admin) error {
	query := `
		INSERT INTO admins (username, hash)
		VALUES ($1, $2)
		RETURNING id
	`

	if err := r.db.QueryRowContext(ctx, query, a.Username, a.Hash).Scan(&a.Id); err != nil {
		return fmt.Errorf("failed to create admin: %w", err)
	}

	return nil
}

func (r *adminRepository) GetByID(ctx context.Context, id int) (*Admin, error) {
	return r.getOne(ctx, `SELECT id, username, hash FROM admins WHERE id = $1`, id)
}

func (r *adminRepository) GetByUsername(ctx context.Context, username string) (*Admin, error) {
	return r.getOne(ctx, `SELECT id, username, hash FROM admins WHERE username = $1`, username)
}

func (r *adminRepository) UpdatePassword(ctx context.Context, id int, hash string) error {
	result, err := r.db.ExecContext(ctx, `UPDATE admins SET hash = $1 WHERE id = $2`, hash, id)
	if err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rows == 0 {
		return ErrAdminNotFound
	}

	return nil
}

func (r *adminRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM admins`); err != nil {
		return 0, fmt.Errorf("failed to count admins: %w", err)
	}
	return count, nil
}

func (r *adminRepository) getOne(ctx context.Context, query string, arg any) (*Admin, error) {
	a := &Admin{}
	err := r.db.GetContext(ctx, a, query, arg)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrAdminNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get admin: %w", err)
	}
	return a, nil
}
