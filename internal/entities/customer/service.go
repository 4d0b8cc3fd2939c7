package customer

import (
	"context"

	"github.com/iteranya/restaurant-pos/internal/utils"
)

type CustomerService interface {
	// CreateCustomer validates name then mobile number and stores the customer.
	CreateCustomer(ctx context.Context, rawName, rawPhone string) (*Customer, error)
	ListCustomers(ctx context.Context) ([]*Customer, error)
	DeleteCustomer(ctx context.Context, id int) error
}

type customerService struct {
	repo CustomerRepository
}

func NewCustomerService(repo CustomerRepository) CustomerService {
	return &customerService{repo: repo}
}

// Validate returns the normalized name and bare 10-digit number.
func Validate(rawName, rawPhone string) (*Customer, error) {
	name, err := utils.ValidatePersonName(rawName)
	if err != nil {
		return nil, err
	}

	phone, err := utils.ValidateMobileNumber(rawPhone)
	if err != nil {
		return nil, err
	}

	return &Customer{Name: name, Phone: phone}, nil
}

func (s *customerService) CreateCustomer(ctx context.Context, rawName, rawPhone string) (*Customer, error) {
	customer, err := Validate(rawName, rawPhone)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, customer); err != nil {
		return nil, err
	}

	return customer, nil
}

func (s *customerService) ListCustomers(ctx context.Context) ([]*Customer, error) {
	return s.repo.List(ctx)
}

func (s *customerService) DeleteCustomer(ctx context.Context, id int) error {
	return s.repo.Delete(ctx, id)
}
