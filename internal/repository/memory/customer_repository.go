package memory

import (
	"context"
	"strings"
	"sync"

	"crm-service/internal/domain"
	"crm-service/internal/pagination"
	"crm-service/internal/repository"
)

var customerComparators = map[string]comparator[domain.Customer]{
	"id":        func(a, b *domain.Customer) int { return compareIDs(a.ID, b.ID) },
	"firstName": func(a, b *domain.Customer) int { return strings.Compare(a.FirstName, b.FirstName) },
	"lastName":  func(a, b *domain.Customer) int { return strings.Compare(a.LastName, b.LastName) },
	"email":     func(a, b *domain.Customer) int { return strings.Compare(a.Email, b.Email) },
	"telephone": func(a, b *domain.Customer) int { return strings.Compare(a.Telephone, b.Telephone) },
	"city":      func(a, b *domain.Customer) int { return compareOptional(a.City, b.City) },
	"country":   func(a, b *domain.Customer) int { return compareOptional(a.Country, b.Country) },
}

type customerRepositoryInMemory struct {
	mu     sync.RWMutex
	items  map[uint64]*domain.Customer
	nextID uint64
}

func NewCustomerRepository() repository.CustomerRepository {
	return &customerRepositoryInMemory{
		items: make(map[uint64]*domain.Customer),
	}
}

func (r *customerRepositoryInMemory) Save(_ context.Context, customer *domain.Customer) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if customer.ID == 0 {
		r.nextID++
		customer.ID = r.nextID
	} else if customer.ID > r.nextID {
		r.nextID = customer.ID
	}
	r.items[customer.ID] = customer.Clone()
	return nil
}

func (r *customerRepositoryInMemory) FindByID(_ context.Context, id uint64) (*domain.Customer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.items[id]
	if !ok {
		return nil, nil
	}
	return c.Clone(), nil
}

func (r *customerRepositoryInMemory) FindAll(_ context.Context, pageable pagination.Pageable) (pagination.Page[domain.Customer], error) {
	r.mu.RLock()
	all := make([]domain.Customer, 0, len(r.items))
	for _, c := range r.items {
		all = append(all, *c.Clone())
	}
	r.mu.RUnlock()

	if err := sortItems(all, pageable.Sort, customerComparators, customerComparators["id"]); err != nil {
		return pagination.Page[domain.Customer]{}, err
	}
	return pagination.Slice(all, pageable), nil
}

func (r *customerRepositoryInMemory) Count(_ context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.items)), nil
}
