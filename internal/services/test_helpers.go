package services

import (
	"time"

	"crm-service/internal/domain"
)

var (
	DefaultPlacedDate = time.UnixMilli(0).UTC()
	UpdatedPlacedDate = time.Now().UTC().Truncate(time.Millisecond)
)

const (
	DefaultStatus    = domain.StatusCompleted
	UpdatedStatus    = domain.StatusPending
	DefaultCode      = "AAAAAAAAAA"
	UpdatedCode      = "BBBBBBBBBB"
	DefaultInvoiceID = "AAAAAAAAAA"
	UpdatedInvoiceID = "BBBBBBBBBB"
)

func CreateMockCustomer(id uint64) *domain.Customer {
	return &domain.Customer{
		ID:        id,
		FirstName: "AAAAAAAAAA",
		LastName:  "AAAAAAAAAA",
		Email:     "aaaaaaaaaa@example.com",
		Telephone: "AAAAAAAAAA",
	}
}

// CreateMockProductOrder builds an unsaved order with the default field
// values, attached to customer.
func CreateMockProductOrder(customer *domain.Customer) *domain.ProductOrder {
	invoice := DefaultInvoiceID
	return &domain.ProductOrder{
		PlacedDate: DefaultPlacedDate,
		Status:     DefaultStatus,
		Code:       DefaultCode,
		InvoiceID:  &invoice,
		CustomerID: customer.ID,
		Customer:   customer,
	}
}
