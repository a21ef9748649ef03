package domain

import "time"

const (
	EventProductOrderCreated = "product-order.created"
	EventProductOrderUpdated = "product-order.updated"
	EventProductOrderDeleted = "product-order.deleted"
)

type ProductOrderEvent struct {
	OrderID    uint64      `json:"orderId"`
	CustomerID uint64      `json:"customerId,omitempty"`
	Status     OrderStatus `json:"status,omitempty"`
	Code       string      `json:"code,omitempty"`
	OccurredAt time.Time   `json:"occurredAt"`
}

func NewProductOrderEvent(o *ProductOrder) ProductOrderEvent {
	return ProductOrderEvent{
		OrderID:    o.ID,
		CustomerID: o.CustomerID,
		Status:     o.Status,
		Code:       o.Code,
		OccurredAt: time.Now().UTC(),
	}
}
