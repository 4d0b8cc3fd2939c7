package customer

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockRepo(t *testing.T) (CustomerRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewCustomerRepository(sqlx.NewDb(db, "sqlmock")), mock
}

func TestCustomerRepository_Create(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO customers (name, phone)")).
		WithArgs("Ravi Kumar", "9876543210").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(3))

	c := &Customer{Name: "Ravi Kumar", Phone: "9876543210"}
	require.NoError(t, repo.Create(context.Background(), c))
	assert.Equal(t, 3, c.Id)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCustomerRepository_Create_RejectsInvalid(t *testing.T) {
	repo, _ := newMockRepo(t)

	assert.ErrorIs(t, repo.Create(context.Background(), &Customer{Phone: "9876543210"}), ErrInvalidCustomerInput)
	assert.ErrorIs(t, repo.Create(context.Background(), &Customer{Name: "Ravi"}), ErrInvalidCustomerInput)
}

func TestCustomerRepository_Create_StoreFailure(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO customers")).
		WillReturnError(errors.New("value too long"))

	err := repo.Create(context.Background(), &Customer{Name: "Ravi", Phone: "9876543210"})
	assert.Error(t, err)
}

func TestCustomerRepository_GetByID(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("FROM customers WHERE id = $1")).
		WithArgs(3).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "phone"}).AddRow(3, "Ravi", "9876543210"))
	mock.ExpectQuery(regexp.QuoteMeta("FROM customers WHERE id = $1")).
		WithArgs(4).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "phone"}))

	c, err := repo.GetByID(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, &Customer{Id: 3, Name: "Ravi", Phone: "9876543210"}, c)

	_, err = repo.GetByID(context.Background(), 4)
	assert.ErrorIs(t, err, ErrCustomerNotFound)
}

func TestCustomerRepository_List(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, name, phone")).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "phone"}).
			AddRow(1, "Ravi Kumar", "9876543210").
			AddRow(2, "Asha", "8123456789"))

	customers, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, customers, 2)
	assert.Equal(t, &Customer{Id: 2, Name: "Asha", Phone: "8123456789"}, customers[1])
}

func TestCustomerRepository_Delete(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM customers WHERE id = $1")).
		WithArgs(1).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM customers WHERE id = $1")).
		WithArgs(2).
		WillReturnResult(sqlmock.NewResult(0, 0))

	assert.NoError(t, repo.Delete(context.Background(), 1))
	assert.ErrorIs(t, repo.Delete(context.Background(), 2), ErrCustomerNotFound)
}
