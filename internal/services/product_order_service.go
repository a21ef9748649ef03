package services

import (
	"context"
	"fmt"
	"time"

	"crm-service/internal/domain"
	rabbit "crm-service/internal/infra/rabbitmq"
	"crm-service/internal/metrics"
	"crm-service/internal/pagination"
	"crm-service/internal/repository"
	"crm-service/internal/repository/search"

	log "github.com/sirupsen/logrus"
)

const (
	reindexPageSize = 200
	publishTimeout  = 5 * time.Second
)

// ProductOrderService writes product orders to the relational store and
// mirrors every write into the search index. The mirror is best effort: a
// failed index write is reported after the primary write has committed.
type ProductOrderService struct {
	repo      repository.ProductOrderRepository
	customers repository.CustomerRepository
	search    search.ProductOrderSearchRepository
	publisher rabbit.PublisherInterface
	metrics   *metrics.Metrics
	logger    *log.Entry
}

// NewProductOrderService wires the service. pub may be nil, in which case no
// domain events are emitted.
func NewProductOrderService(
	r repository.ProductOrderRepository,
	c repository.CustomerRepository,
	s search.ProductOrderSearchRepository,
	pub rabbit.PublisherInterface,
) *ProductOrderService {
	return &ProductOrderService{
		repo:      r,
		customers: c,
		search:    s,
		publisher: pub,
		logger:    log.WithField("component", "product_order_service"),
	}
}

func (u *ProductOrderService) SetMetrics(m *metrics.Metrics) {
	u.metrics = m
}

// Create persists a new order. Ids are assigned by the repository only.
func (u *ProductOrderService) Create(ctx context.Context, order *domain.ProductOrder) (*domain.ProductOrder, error) {
	if order.ID != 0 {
		return nil, domain.ErrIDExists
	}
	return u.save(ctx, order, domain.EventProductOrderCreated)
}

// Update replaces every mutable field of an existing order.
func (u *ProductOrderService) Update(ctx context.Context, order *domain.ProductOrder) (*domain.ProductOrder, error) {
	if order.ID == 0 {
		return nil, domain.ErrIDNull
	}
	existing, err := u.repo.FindByID(ctx, order.ID)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, domain.ErrProductOrderNotFound
	}
	return u.save(ctx, order, domain.EventProductOrderUpdated)
}

// Save persists the order whether or not it already has an id, then mirrors
// it to the search index.
func (u *ProductOrderService) Save(ctx context.Context, order *domain.ProductOrder) (*domain.ProductOrder, error) {
	event := domain.EventProductOrderUpdated
	if order.ID == 0 {
		event = domain.EventProductOrderCreated
	}
	return u.save(ctx, order, event)
}

func (u *ProductOrderService) save(ctx context.Context, order *domain.ProductOrder, event string) (*domain.ProductOrder, error) {
	order.Normalize()
	if err := order.Validate(); err != nil {
		return nil, err
	}

	customer, err := u.customers.FindByID(ctx, order.CustomerID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, domain.ErrCustomerNotFound
	}
	order.CustomerID = customer.ID
	order.Customer = customer

	if err := u.repo.Save(ctx, order); err != nil {
		return nil, err
	}

	err = u.search.Save(ctx, order)
	u.metrics.SearchMirror("save", err)
	if err != nil {
		u.logger.WithError(err).WithField("id", order.ID).Error("search index save failed")
		return nil, fmt.Errorf("mirror product order %d: %w", order.ID, err)
	}

	u.publishEvent(event, domain.NewProductOrderEvent(order))
	return order, nil
}

func (u *ProductOrderService) FindOne(ctx context.Context, id uint64) (*domain.ProductOrder, error) {
	o, err := u.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, domain.ErrProductOrderNotFound
	}
	return o, nil
}

func (u *ProductOrderService) FindAll(ctx context.Context, pageable pagination.Pageable) (pagination.Page[domain.ProductOrder], error) {
	return u.repo.FindAll(ctx, pageable)
}

func (u *ProductOrderService) Count(ctx context.Context) (int64, error) {
	return u.repo.Count(ctx)
}

// Search hands the query to the search index untouched.
func (u *ProductOrderService) Search(ctx context.Context, query string, pageable pagination.Pageable) (pagination.Page[domain.ProductOrder], error) {
	return u.search.Search(ctx, query, pageable)
}

// Delete removes the order from the store, then from the search index.
func (u *ProductOrderService) Delete(ctx context.Context, id uint64) error {
	existing, err := u.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if existing == nil {
		return domain.ErrProductOrderNotFound
	}

	if err := u.repo.DeleteByID(ctx, id); err != nil {
		return err
	}

	err = u.search.DeleteByID(ctx, id)
	u.metrics.SearchMirror("delete", err)
	if err != nil {
		u.logger.WithError(err).WithField("id", id).Error("search index delete failed")
		return fmt.Errorf("remove product order %d from search index: %w", id, err)
	}

	u.publishEvent(domain.EventProductOrderDeleted, domain.NewProductOrderEvent(existing))
	return nil
}

// Reindex copies every stored order into the search index and returns how
// many were written.
func (u *ProductOrderService) Reindex(ctx context.Context) (int, error) {
	pageable := pagination.Of(0, reindexPageSize, pagination.Order{Property: "id", Direction: pagination.Asc})
	indexed := 0
	for {
		page, err := u.repo.FindAll(ctx, pageable)
		if err != nil {
			return indexed, err
		}
		for i := range page.Content {
			err := u.search.Save(ctx, &page.Content[i])
			u.metrics.SearchMirror("reindex", err)
			if err != nil {
				return indexed, fmt.Errorf("reindex product order %d: %w", page.Content[i].ID, err)
			}
			indexed++
		}
		if !page.HasNext() {
			break
		}
		pageable = pageable.Next()
	}
	u.logger.WithField("count", indexed).Info("search index rebuilt")
	return indexed, nil
}

func (u *ProductOrderService) publishEvent(pattern string, evt domain.ProductOrderEvent) {
	if u.publisher == nil {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
		defer cancel()

		err := u.publisher.Publish(ctx, pattern, evt)
		u.metrics.EventPublished(pattern, err)
		if err != nil {
			u.logger.WithError(err).WithField("pattern", pattern).Warn("failed to publish event")
			return
		}
		u.logger.WithFields(log.Fields{"pattern": pattern, "id": evt.OrderID}).Debug("published event")
	}()
}
