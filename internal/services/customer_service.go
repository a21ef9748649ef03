package services

import (
	"context"

	"crm-service/internal/domain"
	"crm-service/internal/pagination"
	"crm-service/internal/repository"
)

type CustomerService struct {
	repo repository.CustomerRepository
}

func NewCustomerService(r repository.CustomerRepository) *CustomerService {
	return &CustomerService{repo: r}
}

func (s *CustomerService) Create(ctx context.Context, customer *domain.Customer) (*domain.Customer, error) {
	if customer.ID != 0 {
		return nil, domain.ErrIDExists
	}
	if err := customer.Validate(); err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, customer); err != nil {
		return nil, err
	}
	return customer, nil
}

func (s *CustomerService) FindOne(ctx context.Context, id uint64) (*domain.Customer, error) {
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrCustomerNotFound
	}
	return c, nil
}

func (s *CustomerService) FindAll(ctx context.Context, pageable pagination.Pageable) (pagination.Page[domain.Customer], error) {
	return s.repo.FindAll(ctx, pageable)
}
