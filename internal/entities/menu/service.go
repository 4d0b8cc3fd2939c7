package menu

import (
	"context"

	"github.com/iteranya/restaurant-pos/internal/utils"
)

type MenuService interface {
	// CreateItem validates the raw form values and stores the item.
	CreateItem(ctx context.Context, rawName, rawPrice string) (*MenuItem, error)
	GetItem(ctx context.Context, id int) (*MenuItem, error)
	ListItems(ctx context.Context) ([]*MenuItem, error)
	DeleteItem(ctx context.Context, id int) error
}

type menuService struct {
	repo MenuRepository
}

func NewMenuService(repo MenuRepository) MenuService {
	return &menuService{repo: repo}
}

func (s *menuService) CreateItem(ctx context.Context, rawName, rawPrice string) (*MenuItem, error) {
	name, err := utils.ValidateItemName(rawName)
	if err != nil {
		return nil, err
	}

	price, err := utils.ValidatePrice(rawPrice)
	if err != nil {
		return nil, err
	}

	item := &MenuItem{Name: name, Price: price}
	if err := s.repo.Create(ctx, item); err != nil {
		return nil, err
	}

	return item, nil
}

func (s *menuService) GetItem(ctx context.Context, id int) (*MenuItem, error) {
	if id <= 0 {
		return nil, ErrItemNotFound
	}
	return s.repo.GetByID(ctx, id)
}

func (s *menuService) ListItems(ctx context.Context) ([]*MenuItem, error) {
	return s.repo.List(ctx)
}

func (s *menuService) DeleteItem(ctx context.Context, id int) error {
	return s.repo.Delete(ctx, id)
}
