package bill

import (
	"context"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/iteranya/restaurant-pos/internal/database"
)

var ErrInvalidSaleInput = errors.New("invalid sale input")

type SaleRepository interface {
	// Insert stores sale through c, which may be a transaction.
	Insert(ctx context.Context, c database.SQLClient, sale *Sale) error
	List(ctx context.Context) ([]*Sale, error)
	DeleteAll(ctx context.Context, c database.SQLClient) (int64, error)
}

type saleRepository struct {
	db *sqlx.DB
}

func NewSaleRepository(db *sqlx.DB) SaleRepository {
	return &saleRepository{db: db}
}

func (r *saleRepository) Insert(ctx context.Context, c database.SQLClient, sale *Sale) error {
	if sale.Subtotal < 0 || sale.Tax < 0 || sale.GrandTotal != sale.Subtotal+sale.Tax {
		return ErrInvalidSaleInput
	}

	query := `
		INSERT INTO sales (subtotal, tax, grand_total, customer_name, customer_phone, sold_on)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`

	err := c.QueryRowContext(
		ctx, query,
		sale.Subtotal, sale.Tax, sale.GrandTotal, sale.CustomerName, sale.CustomerPhone, sale.Date.Format(database.DateLayout),
	).Scan(&sale.Id)

	if err != nil {
		return fmt.Errorf("failed to record sale: %w", err)
	}

	return nil
}

func (r *saleRepository) List(ctx context.Context) ([]*Sale, error) {
	query := `
		SELECT id, subtotal, tax, grand_total, customer_name, customer_phone, sold_on
		FROM sales
		ORDER BY sold_on DESC, id DESC
	`

	var sales []*Sale
	if err := r.db.SelectContext(ctx, &sales, query); err != nil {
		return nil, fmt.Errorf("failed to list sales: %w", err)
	}

	return sales, nil
}

func (r *saleRepository) DeleteAll(ctx context.Context, c database.SQLClient) (int64, error) {
	result, err := c.ExecContext(ctx, `DELETE FROM sales`)
	if err != nil {
		return 0, fmt.Errorf("failed to clear sales: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}

	return rows, nil
}
