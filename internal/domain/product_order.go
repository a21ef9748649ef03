package domain

import "time"

type OrderStatus string

const (
	StatusCompleted OrderStatus = "COMPLETED"
	StatusPending   OrderStatus = "PENDING"
	StatusCancelled OrderStatus = "CANCELLED"
)

func (s OrderStatus) Valid() bool {
	switch s {
	case StatusCompleted, StatusPending, StatusCancelled:
		return true
	}
	return false
}

// ProductOrder is an order placed by a customer. Every persisted order has a
// placed date, a status, a code and a customer.
type ProductOrder struct {
	ID         uint64      `json:"id" gorm:"primaryKey;autoIncrement"`
	PlacedDate time.Time   `json:"placedDate" gorm:"not null"`
	Status     OrderStatus `json:"status" gorm:"type:enum('COMPLETED','PENDING','CANCELLED');not null"`
	Code       string      `json:"code" gorm:"not null"`
	InvoiceID  *string     `json:"invoiceId" gorm:"column:invoice_id"`
	CustomerID uint64      `json:"-" gorm:"not null;index"`
	Customer   *Customer   `json:"customer" gorm:"foreignKey:CustomerID"`
}

// Normalize stores the placed date in UTC with millisecond precision so the
// relational copy and the search copy compare equal.
func (o *ProductOrder) Normalize() {
	o.PlacedDate = o.PlacedDate.UTC().Truncate(time.Millisecond)
	if o.Customer != nil && o.CustomerID == 0 {
		o.CustomerID = o.Customer.ID
	}
}

func (o *ProductOrder) Validate() error {
	verr := &ValidationError{EntityName: ProductOrderEntity}
	// The zero instant (0001-01-01T00:00:00Z) stands for a null placed date
	// and is rejected like one.
	if o.PlacedDate.IsZero() {
		verr.Add("placedDate", "must not be null")
	}
	if o.Status == "" {
		verr.Add("status", "must not be null")
	} else if !o.Status.Valid() {
		verr.Add("status", "must be one of COMPLETED, PENDING, CANCELLED")
	}
	if o.CustomerID == 0 && (o.Customer == nil || o.Customer.ID == 0) {
		verr.Add("customer", "must not be null")
	}
	if verr.HasErrors() {
		return verr
	}
	return nil
}

// Clone returns a deep copy safe to hand to another store.
func (o *ProductOrder) Clone() *ProductOrder {
	c := *o
	if o.InvoiceID != nil {
		inv := *o.InvoiceID
		c.InvoiceID = &inv
	}
	if o.Customer != nil {
		c.Customer = o.Customer.Clone()
	}
	return &c
}
