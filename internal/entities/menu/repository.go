package menu

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
)

var (
	ErrItemNotFound     = errors.New("menu item not found")
	ErrInvalidItemInput = errors.New("invalid menu item input")
)

type MenuRepository interface {
	Create(ctx context.Context, item *MenuItem) error
	GetByID(ctx context.Context, id int) (*MenuItem, error)
	List(ctx context.Context) ([]*MenuItem, error)
	Delete(ctx context.Context, id int) error
}

type menuRepository struct {
	db *sqlx.DB
}

func NewMenuRepository(db *sqlx.DB) MenuRepository {
	return &menuRepository{db: db}
}

func (r *menuRepository) Create(ctx context.Context, item *MenuItem) error {
	if item.Name == "" || item.Price < 0 {
		return ErrInvalidItemInput
	}

	query := `
		INSERT INTO menu_items (name, price)
		VALUES ($1, $2)
		RETURNING id
	`

	if err := r.db.QueryRowContext(ctx, query, item.Name, item.Price).Scan(&item.Id); err != nil {
		return fmt.Errorf("failed to create menu item: %w", err)
	}

	return nil
}

func (r *menuRepository) GetByID(ctx context.Context, id int) (*MenuItem, error) {
	query := `
		SELECT id, name, price
		FROM menu_items
		WHERE id = $1
	`

	item := &MenuItem{}
	err := r.db.GetContext(ctx, item, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrItemNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get menu item: %w", err)
	}

	return item, nil
}

func (r *menuRepository) List(ctx context.Context) ([]*MenuItem, error) {
	query := `
		SELECT id, name, price
		FROM menu_items
		ORDER BY id ASC
	`

	var items []*MenuItem
	if err := r.db.SelectContext(ctx, &items, query); err != nil {
		return nil, fmt.Errorf("failed to list menu items: %w", err)
	}

	return items, nil
}

func (r *menuRepository) Delete(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM menu_items WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete menu item: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rows == 0 {
		return ErrItemNotFound
	}

	return nil
}
