package customer

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/iteranya/restaurant-pos/internal/database"
)

var (
	ErrCustomerNotFound     = errors.New("customer not found")
	ErrInvalidCustomerInput = errors.New("invalid customer input")
)

type CustomerRepository interface {
	Create(ctx context.Context, customer *Customer) error
	// Insert stores customer through c, which may be a transaction.
	Insert(ctx context.Context, c database.SQLClient, customer *Customer) error
	GetByID(ctx context.Context, id int) (*Customer, error)
	List(ctx context.Context) ([]*Customer, error)
	Delete(ctx context.Context, id int) error
}

type customerRepository struct {
	db *sqlx.DB
}

func NewCustomerRepository(db *sqlx.DB) CustomerRepository {
	return &customerRepository{db: db}
}

func (r *customerRepository) Create(ctx context.Context, customer *Customer) error {
	return r.Insert(ctx, r.db, customer)
}

func (r *customerRepository) Insert(ctx context.Context, c database.SQLClient, customer *Customer) error {
	if customer.Name == "" || customer.Phone == "" {
		return ErrInvalidCustomerInput
	}

	query := `
		INSERT INTO customers (name, phone)
		VALUES ($1, $2)
		RETURNING id
	`

	if err := c.QueryRowContext(ctx, query, customer.Name, customer.Phone).Scan(&customer.Id); err != nil {
		return fmt.Errorf("failed to create customer: %w", err)
	}

	return nil
}

func (r *customerRepository) GetByID(ctx context.Context, id int) (*Customer, error) {
	c := &Customer{}
	err := r.db.GetContext(ctx, c, `SELECT id, name, phone FROM customers WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrCustomerNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get customer: %w", err)
	}
	return c, nil
}

func (r *customerRepository) List(ctx context.Context) ([]*Customer, error) {
	query := `
		SELECT id, name, phone
		FROM customers
		ORDER BY id ASC
	`

	var customers []*Customer
	if err := r.db.SelectContext(ctx, &customers, query); err != nil {
		return nil, fmt.Errorf("failed to list customers: %w", err)
	}

	return customers, nil
}

func (r *customerRepository) Delete(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM customers WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete customer: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rows == 0 {
		return ErrCustomerNotFound
	}

	return nil
}
