package mysql

import (
	"context"
	"errors"
	"fmt"

	"crm-service/internal/domain"
	"crm-service/internal/pagination"
	"crm-service/internal/repository"

	"gorm.io/gorm"
)

var customerColumns = map[string]string{
	"id":        "id",
	"firstName": "first_name",
	"lastName":  "last_name",
	"email":     "email",
	"telephone": "telephone",
	"city":      "city",
	"country":   "country",
}

type customerRepo struct {
	db *gorm.DB
}

func NewCustomerRepository(db *gorm.DB) repository.CustomerRepository {
	return &customerRepo{db: db}
}

func (r *customerRepo) Save(ctx context.Context, customer *domain.Customer) error {
	if err := r.db.WithContext(ctx).Save(customer).Error; err != nil {
		return fmt.Errorf("save customer: %w", err)
	}
	if customer.ID == 0 {
		return errors.New("failed to assign customer ID")
	}
	return nil
}

func (r *customerRepo) FindByID(ctx context.Context, id uint64) (*domain.Customer, error) {
	var c domain.Customer
	if err := r.db.WithContext(ctx).First(&c, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("find customer %d: %w", id, err)
	}
	return &c, nil
}

func (r *customerRepo) FindAll(ctx context.Context, pageable pagination.Pageable) (pagination.Page[domain.Customer], error) {
	orderBy, err := orderClause(pageable.Sort, customerColumns)
	if err != nil {
		return pagination.Page[domain.Customer]{}, err
	}

	var total int64
	if err := r.db.WithContext(ctx).Model(&domain.Customer{}).Count(&total).Error; err != nil {
		return pagination.Page[domain.Customer]{}, fmt.Errorf("count customers: %w", err)
	}

	var out []domain.Customer
	err = r.db.WithContext(ctx).Clauses(orderBy).Offset(pageable.Offset()).Limit(pageable.Size).Find(&out).Error
	if err != nil {
		return pagination.Page[domain.Customer]{}, fmt.Errorf("list customers: %w", err)
	}
	return pagination.NewPage(out, pageable, total), nil
}

func (r *customerRepo) Count(ctx context.Context) (int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&domain.Customer{}).Count(&total).Error; err != nil {
		return 0, fmt.Errorf("count customers: %w", err)
	}
	return total, nil
}
