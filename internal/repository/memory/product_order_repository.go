package memory

import (
	"context"
	"strings"
	"sync"

	"crm-service/internal/domain"
	"crm-service/internal/pagination"
	"crm-service/internal/repository"
)

var productOrderComparators = map[string]comparator[domain.ProductOrder]{
	"id":         func(a, b *domain.ProductOrder) int { return compareIDs(a.ID, b.ID) },
	"placedDate": func(a, b *domain.ProductOrder) int { return a.PlacedDate.Compare(b.PlacedDate) },
	"status":     func(a, b *domain.ProductOrder) int { return strings.Compare(string(a.Status), string(b.Status)) },
	"code":       func(a, b *domain.ProductOrder) int { return strings.Compare(a.Code, b.Code) },
	"invoiceId":  func(a, b *domain.ProductOrder) int { return compareOptional(a.InvoiceID, b.InvoiceID) },
}

// productOrderRepositoryInMemory backs local runs and tests. Stored orders are
// copies; callers never share memory with the store.
type productOrderRepositoryInMemory struct {
	mu     sync.RWMutex
	items  map[uint64]*domain.ProductOrder
	nextID uint64
}

func NewProductOrderRepository() repository.ProductOrderRepository {
	return &productOrderRepositoryInMemory{
		items: make(map[uint64]*domain.ProductOrder),
	}
}

func (r *productOrderRepositoryInMemory) Save(_ context.Context, order *domain.ProductOrder) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if order.ID == 0 {
		r.nextID++
		order.ID = r.nextID
	} else if _, ok := r.items[order.ID]; !ok {
		return domain.ErrProductOrderNotFound
	}
	r.items[order.ID] = order.Clone()
	return nil
}

func (r *productOrderRepositoryInMemory) FindByID(_ context.Context, id uint64) (*domain.ProductOrder, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	o, ok := r.items[id]
	if !ok {
		return nil, nil
	}
	return o.Clone(), nil
}

func (r *productOrderRepositoryInMemory) FindAll(_ context.Context, pageable pagination.Pageable) (pagination.Page[domain.ProductOrder], error) {
	r.mu.RLock()
	all := make([]domain.ProductOrder, 0, len(r.items))
	for _, o := range r.items {
		all = append(all, *o.Clone())
	}
	r.mu.RUnlock()

	byID := productOrderComparators["id"]
	if err := sortItems(all, pageable.Sort, productOrderComparators, byID); err != nil {
		return pagination.Page[domain.ProductOrder]{}, err
	}
	return pagination.Slice(all, pageable), nil
}

func (r *productOrderRepositoryInMemory) Count(_ context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.items)), nil
}

func (r *productOrderRepositoryInMemory) DeleteByID(_ context.Context, id uint64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.items, id)
	return nil
}
