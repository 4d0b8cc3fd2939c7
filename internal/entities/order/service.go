package order

import (
	"context"
	"time"

	"github.com/iteranya/restaurant-pos/internal/entities/menu"
	"github.com/iteranya/restaurant-pos/internal/utils"
)

// MenuLookup is the part of the menu the order flow reads prices from.
type MenuLookup interface {
	GetItem(ctx context.Context, id int) (*menu.MenuItem, error)
}

type OrderService interface {
	// PlaceOrder validates the raw form values, prices the order from the current
	// menu and stores it. A missing menu item yields menu.ErrItemNotFound.
	PlaceOrder(ctx context.Context, rawItemID, rawQuantity string) (*Order, error)
	ListOrders(ctx context.Context) ([]*Order, error)
	DeleteOrder(ctx context.Context, id int) error
}

type orderService struct {
	repo OrderRepository
	menu MenuLookup
	now  func() time.Time
}

func NewOrderService(repo OrderRepository, menu MenuLookup) OrderService {
	return &orderService{repo: repo, menu: menu, now: time.Now}
}

func (s *orderService) PlaceOrder(ctx context.Context, rawItemID, rawQuantity string) (*Order, error) {
	itemID, err := utils.ValidateID("item_id", rawItemID)
	if err != nil {
		return nil, err
	}

	qty, err := utils.ValidateQuantity(rawQuantity)
	if err != nil {
		return nil, err
	}

	item, err := s.menu.GetItem(ctx, itemID)
	if err != nil {
		return nil, err
	}

	// the calendar day is the one on the register's clock
	now := s.now()
	order := &Order{
		ItemName: item.Name,
		Quantity: qty,
		Total:    item.Price.Times(qty),
		Date:     time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()),
	}

	if err := s.repo.Create(ctx, order); err != nil {
		return nil, err
	}

	return order, nil
}

func (s *orderService) ListOrders(ctx context.Context) ([]*Order, error) {
	return s.repo.List(ctx)
}

func (s *orderService) DeleteOrder(ctx context.Context, id int) error {
	return s.repo.Delete(ctx, id)
}
