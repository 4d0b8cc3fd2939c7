package order

import (
	"context"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/iteranya/restaurant-pos/internal/database"
)

var (
	ErrOrderNotFound     = errors.New("order not found")
	ErrInvalidOrderInput = errors.New("invalid order input")
)

type OrderRepository interface {
	Create(ctx context.Context, order *Order) error
	List(ctx context.Context) ([]*Order, error)
	Delete(ctx context.Context, id int) error
	// DeleteAll removes every order through c, which may be a transaction.
	DeleteAll(ctx context.Context, c database.SQLClient) (int64, error)
}

type orderRepository struct {
	db *sqlx.DB
}

func NewOrderRepository(db *sqlx.DB) OrderRepository {
	return &orderRepository{db: db}
}

func (r *orderRepository) Create(ctx context.Context, order *Order) error {
	if order.ItemName == "" || order.Quantity <= 0 || order.Total < 0 {
		return ErrInvalidOrderInput
	}

	query := `
		INSERT INTO orders (item_name, quantity, total, placed_on)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`

	err := r.db.QueryRowContext(
		ctx, query,
		order.ItemName, order.Quantity, order.Total, order.Date.Format(database.DateLayout),
	).Scan(&order.Id)

	if err != nil {
		return fmt.Errorf("failed to create order: %w", err)
	}

	return nil
}

func (r *orderRepository) List(ctx context.Context) ([]*Order, error) {
	query := `
		SELECT id, item_name, quantity, total, placed_on
		FROM orders
		ORDER BY id ASC
	`

	var orders []*Order
	if err := r.db.SelectContext(ctx, &orders, query); err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}

	return orders, nil
}

func (r *orderRepository) Delete(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM orders WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete order: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rows == 0 {
		return ErrOrderNotFound
	}

	return nil
}

func (r *orderRepository) DeleteAll(ctx context.Context, c database.SQLClient) (int64, error) {
	result, err := c.ExecContext(ctx, `DELETE FROM orders`)
	if err != nil {
		return 0, fmt.Errorf("failed to clear orders: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}

	return rows, nil
}
