package mysql

import (
	"context"
	"errors"
	"fmt"

	"crm-service/internal/domain"
	"crm-service/internal/pagination"
	"crm-service/internal/repository"

	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var productOrderColumns = map[string]string{
	"id":         "id",
	"placedDate": "placed_date",
	"status":     "status",
	"code":       "code",
	"invoiceId":  "invoice_id",
}

type productOrderRepo struct {
	db     *gorm.DB
	logger *log.Entry
}

func NewProductOrderRepository(db *gorm.DB) repository.ProductOrderRepository {
	return &productOrderRepo{
		db:     db,
		logger: log.WithField("component", "product_order_repo"),
	}
}

// Save inserts orders without an id and overwrites every column of an
// existing row otherwise. An update never inserts: a row deleted in the
// meantime yields ErrProductOrderNotFound. The customer association is
// referenced by id only and never written.
func (r *productOrderRepo) Save(ctx context.Context, order *domain.ProductOrder) error {
	tx := r.db.WithContext(ctx).Omit(clause.Associations)

	if order.ID != 0 {
		result := tx.Model(order).Select("*").Updates(order)
		if result.Error != nil {
			r.logger.WithError(result.Error).WithField("id", order.ID).Error("product order update failed")
			return fmt.Errorf("update product order %d: %w", order.ID, result.Error)
		}
		// RowsAffected counts matched rows (clientFoundRows in the DSN).
		if result.RowsAffected == 0 {
			return domain.ErrProductOrderNotFound
		}
		return nil
	}

	result := tx.Create(order)
	if result.Error != nil {
		r.logger.WithError(result.Error).Error("product order save failed")
		return fmt.Errorf("save product order: %w", result.Error)
	}
	if order.ID == 0 {
		r.logger.WithField("rows", result.RowsAffected).Warn("product order saved but id is still 0")
		return errors.New("failed to assign product order ID")
	}
	return nil
}

func (r *productOrderRepo) FindByID(ctx context.Context, id uint64) (*domain.ProductOrder, error) {
	var o domain.ProductOrder
	if err := r.db.WithContext(ctx).Preload("Customer").First(&o, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		r.logger.WithError(err).WithField("id", id).Error("product order lookup failed")
		return nil, fmt.Errorf("find product order %d: %w", id, err)
	}
	return &o, nil
}

func (r *productOrderRepo) FindAll(ctx context.Context, pageable pagination.Pageable) (pagination.Page[domain.ProductOrder], error) {
	orderBy, err := orderClause(pageable.Sort, productOrderColumns)
	if err != nil {
		return pagination.Page[domain.ProductOrder]{}, err
	}

	var total int64
	if err := r.db.WithContext(ctx).Model(&domain.ProductOrder{}).Count(&total).Error; err != nil {
		return pagination.Page[domain.ProductOrder]{}, fmt.Errorf("count product orders: %w", err)
	}

	var out []domain.ProductOrder
	err = r.db.WithContext(ctx).
		Preload("Customer").
		Clauses(orderBy).
		Offset(pageable.Offset()).
		Limit(pageable.Size).
		Find(&out).Error
	if err != nil {
		r.logger.WithError(err).Error("product order listing failed")
		return pagination.Page[domain.ProductOrder]{}, fmt.Errorf("list product orders: %w", err)
	}
	return pagination.NewPage(out, pageable, total), nil
}

func (r *productOrderRepo) Count(ctx context.Context) (int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&domain.ProductOrder{}).Count(&total).Error; err != nil {
		return 0, fmt.Errorf("count product orders: %w", err)
	}
	return total, nil
}

func (r *productOrderRepo) DeleteByID(ctx context.Context, id uint64) error {
	if err := r.db.WithContext(ctx).Delete(&domain.ProductOrder{}, id).Error; err != nil {
		r.logger.WithError(err).WithField("id", id).Error("product order delete failed")
		return fmt.Errorf("delete product order %d: %w", id, err)
	}
	return nil
}
