package search

import (
	"context"
	"fmt"
	"strconv"

	"crm-service/internal/domain"
	"crm-service/internal/pagination"

	"github.com/go-redis/redis/v8"
	log "github.com/sirupsen/logrus"
)

const DefaultIndexKey = "search:product-orders"

// HashClient is the subset of *redis.Client the index needs.
type HashClient interface {
	HSet(ctx context.Context, key string, values ...interface{}) *redis.IntCmd
	HDel(ctx context.Context, key string, fields ...string) *redis.IntCmd
	HGetAll(ctx context.Context, key string) *redis.StringStringMapCmd
}

// RedisProductOrderSearchRepository keeps one JSON document per order in a
// single Redis hash keyed by order id. Queries scan the hash.
type RedisProductOrderSearchRepository struct {
	client HashClient
	key    string
	logger *log.Entry
}

var _ ProductOrderSearchRepository = (*RedisProductOrderSearchRepository)(nil)

func NewRedisProductOrderSearchRepository(client HashClient, key string) *RedisProductOrderSearchRepository {
	if key == "" {
		key = DefaultIndexKey
	}
	return &RedisProductOrderSearchRepository{
		client: client,
		key:    key,
		logger: log.WithField("component", "search_index"),
	}
}

func (r *RedisProductOrderSearchRepository) Save(ctx context.Context, order *domain.ProductOrder) error {
	data, err := encodeDocument(order)
	if err != nil {
		return err
	}
	if err := r.client.HSet(ctx, r.key, strconv.FormatUint(order.ID, 10), data).Err(); err != nil {
		return fmt.Errorf("index product order %d: %w", order.ID, err)
	}
	return nil
}

func (r *RedisProductOrderSearchRepository) DeleteByID(ctx context.Context, id uint64) error {
	if err := r.client.HDel(ctx, r.key, strconv.FormatUint(id, 10)).Err(); err != nil {
		return fmt.Errorf("remove product order %d from index: %w", id, err)
	}
	return nil
}

func (r *RedisProductOrderSearchRepository) Search(ctx context.Context, query string, pageable pagination.Pageable) (pagination.Page[domain.ProductOrder], error) {
	raw, err := r.client.HGetAll(ctx, r.key).Result()
	if err != nil {
		return pagination.Page[domain.ProductOrder]{}, fmt.Errorf("read search index: %w", err)
	}

	docs := make([]document, 0, len(raw))
	for id, data := range raw {
		doc, err := decodeDocument([]byte(data))
		if err != nil {
			r.logger.WithError(err).WithField("id", id).Warn("skipping corrupt index document")
			continue
		}
		docs = append(docs, doc)
	}
	return searchDocuments(docs, query, pageable), nil
}
