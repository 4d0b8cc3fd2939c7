package bill

import (
	"context"
	"time"

	"github.com/iteranya/restaurant-pos/internal/database"
	"github.com/iteranya/restaurant-pos/internal/entities/customer"
	"github.com/iteranya/restaurant-pos/internal/entities/order"
)

// OrderStore is the slice of the order repository a bill reads and clears.
type OrderStore interface {
	List(ctx context.Context) ([]*order.Order, error)
	DeleteAll(ctx context.Context, c database.SQLClient) (int64, error)
}

type CustomerStore interface {
	Insert(ctx context.Context, c database.SQLClient, cust *customer.Customer) error
	GetByID(ctx context.Context, id int) (*customer.Customer, error)
}

type BillService interface {
	// Current summarizes every recorded order.
	Current(ctx context.Context) (*Bill, error)
	// Finalize validates the customer, then stores it together with a sale
	// snapshot of the current bill.
	Finalize(ctx context.Context, rawName, rawPhone string) (*Bill, *customer.Customer, error)
	// History lists the sale snapshots written by Finalize.
	History(ctx context.Context) (*SalesHistory, error)
	// Customer returns a stored customer, or customer.ErrCustomerNotFound.
	Customer(ctx context.Context, id int) (*customer.Customer, error)
	// ClearHistory wipes all orders and sale snapshots in one transaction.
	ClearHistory(ctx context.Context) (orders int64, sales int64, err error)
}

type billService struct {
	orders    OrderStore
	customers CustomerStore
	sales     SaleRepository
	tx        database.TxManager
	now       func() time.Time
}

func NewBillService(orders OrderStore, customers CustomerStore, sales SaleRepository, tx database.TxManager) BillService {
	return &billService{orders: orders, customers: customers, sales: sales, tx: tx, now: time.Now}
}

func (s *billService) Current(ctx context.Context) (*Bill, error) {
	orders, err := s.orders.List(ctx)
	if err != nil {
		return nil, err
	}
	return &Bill{Orders: orders, Summary: Summarize(orders)}, nil
}

func (s *billService) Finalize(ctx context.Context, rawName, rawPhone string) (*Bill, *customer.Customer, error) {
	cust, err := customer.Validate(rawName, rawPhone)
	if err != nil {
		return nil, nil, err
	}

	b, err := s.Current(ctx)
	if err != nil {
		return nil, nil, err
	}

	sale := &Sale{
		Subtotal:      b.Summary.Subtotal,
		Tax:           b.Summary.Tax,
		GrandTotal:    b.Summary.GrandTotal,
		CustomerName:  cust.Name,
		CustomerPhone: cust.Phone,
		Date:          s.now(),
	}

	err = s.tx.Run(ctx, func(ctx context.Context, c database.SQLClient) error {
		if err := s.customers.Insert(ctx, c, cust); err != nil {
			return err
		}
		return s.sales.Insert(ctx, c, sale)
	})
	if err != nil {
		return nil, nil, err
	}

	return b, cust, nil
}

func (s *billService) History(ctx context.Context) (*SalesHistory, error) {
	sales, err := s.sales.List(ctx)
	if err != nil {
		return nil, err
	}
	h := SummarizeSales(sales)
	return &h, nil
}

func (s *billService) Customer(ctx context.Context, id int) (*customer.Customer, error) {
	if id <= 0 {
		return nil, customer.ErrCustomerNotFound
	}
	return s.customers.GetByID(ctx, id)
}

func (s *billService) ClearHistory(ctx context.Context) (int64, int64, error) {
	var orders, sales int64
	err := s.tx.Run(ctx, func(ctx context.Context, c database.SQLClient) error {
		var err error
		if orders, err = s.orders.DeleteAll(ctx, c); err != nil {
			return err
		}
		sales, err = s.sales.DeleteAll(ctx, c)
		return err
	})
	if err != nil {
		return 0, 0, err
	}
	return orders, sales, nil
}
