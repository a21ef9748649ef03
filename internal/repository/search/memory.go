package search

import (
	"context"
	"sync"

	"crm-service/internal/domain"
	"crm-service/internal/pagination"
)

// MemoryProductOrderSearchRepository is the index used when no Redis is
// configured. Documents go through the same JSON encoding as the Redis index.
type MemoryProductOrderSearchRepository struct {
	mu   sync.RWMutex
	docs map[uint64][]byte
}

var _ ProductOrderSearchRepository = (*MemoryProductOrderSearchRepository)(nil)

func NewMemoryProductOrderSearchRepository() *MemoryProductOrderSearchRepository {
	return &MemoryProductOrderSearchRepository{docs: make(map[uint64][]byte)}
}

func (r *MemoryProductOrderSearchRepository) Save(_ context.Context, order *domain.ProductOrder) error {
	data, err := encodeDocument(order)
	if err != nil {
		return err
	}
	r.mu.Lock()
	r.docs[order.ID] = data
	r.mu.Unlock()
	return nil
}

func (r *MemoryProductOrderSearchRepository) DeleteByID(_ context.Context, id uint64) error {
	r.mu.Lock()
	delete(r.docs, id)
	r.mu.Unlock()
	return nil
}

func (r *MemoryProductOrderSearchRepository) Search(_ context.Context, query string, pageable pagination.Pageable) (pagination.Page[domain.ProductOrder], error) {
	r.mu.RLock()
	docs := make([]document, 0, len(r.docs))
	for _, data := range r.docs {
		doc, err := decodeDocument(data)
		if err != nil {
			r.mu.RUnlock()
			return pagination.Page[domain.ProductOrder]{}, err
		}
		docs = append(docs, doc)
	}
	r.mu.RUnlock()

	return searchDocuments(docs, query, pageable), nil
}
