package mocks

import (
	"context"

	"crm-service/internal/domain"
	"crm-service/internal/pagination"

	"github.com/stretchr/testify/mock"
)

type MockProductOrderRepository struct {
	mock.Mock
}

type MockCustomerRepository struct {
	mock.Mock
}

type MockSearchRepository struct {
	mock.Mock
}

type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) Publish(ctx context.Context, topic string, message interface{}) error {
	args := m.Called(ctx, topic, message)
	return args.Error(0)
}

func (m *MockProductOrderRepository) Save(ctx context.Context, order *domain.ProductOrder) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

func (m *MockProductOrderRepository) FindByID(ctx context.Context, id uint64) (*domain.ProductOrder, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ProductOrder), args.Error(1)
}

func (m *MockProductOrderRepository) FindAll(ctx context.Context, pageable pagination.Pageable) (pagination.Page[domain.ProductOrder], error) {
	args := m.Called(ctx, pageable)
	return args.Get(0).(pagination.Page[domain.ProductOrder]), args.Error(1)
}

func (m *MockProductOrderRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockProductOrderRepository) DeleteByID(ctx context.Context, id uint64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockCustomerRepository) Save(ctx context.Context, customer *domain.Customer) error {
	args := m.Called(ctx, customer)
	return args.Error(0)
}

func (m *MockCustomerRepository) FindByID(ctx context.Context, id uint64) (*domain.Customer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Customer), args.Error(1)
}

func (m *MockCustomerRepository) FindAll(ctx context.Context, pageable pagination.Pageable) (pagination.Page[domain.Customer], error) {
	args := m.Called(ctx, pageable)
	return args.Get(0).(pagination.Page[domain.Customer]), args.Error(1)
}

func (m *MockCustomerRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

// MockSearchRepository stands in for the search index so tests can count
// mirrored writes and stub search results.
func (m *MockSearchRepository) Save(ctx context.Context, order *domain.ProductOrder) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

func (m *MockSearchRepository) DeleteByID(ctx context.Context, id uint64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockSearchRepository) Search(ctx context.Context, query string, pageable pagination.Pageable) (pagination.Page[domain.ProductOrder], error) {
	args := m.Called(ctx, query, pageable)
	return args.Get(0).(pagination.Page[domain.ProductOrder]), args.Error(1)
}
