package repository

import (
	"context"

	"crm-service/internal/domain"
	"crm-service/internal/pagination"
)

// ProductOrderSortable lists the properties accepted in sort parameters.
var ProductOrderSortable = []string{"id", "placedDate", "status", "code", "invoiceId"}

var CustomerSortable = []string{"id", "firstName", "lastName", "email", "telephone", "city", "country"}

// ProductOrderRepository is the relational store of product orders. FindByID
// returns (nil, nil) when the order does not exist. Save assigns an id to new
// orders and only updates existing ones otherwise, returning
// domain.ErrProductOrderNotFound when the row is gone.
type ProductOrderRepository interface {
	Save(ctx context.Context, order *domain.ProductOrder) error
	FindByID(ctx context.Context, id uint64) (*domain.ProductOrder, error)
	FindAll(ctx context.Context, pageable pagination.Pageable) (pagination.Page[domain.ProductOrder], error)
	Count(ctx context.Context) (int64, error)
	DeleteByID(ctx context.Context, id uint64) error
}

type CustomerRepository interface {
	Save(ctx context.Context, customer *domain.Customer) error
	FindByID(ctx context.Context, id uint64) (*domain.Customer, error)
	FindAll(ctx context.Context, pageable pagination.Pageable) (pagination.Page[domain.Customer], error)
	Count(ctx context.Context) (int64, error)
}
