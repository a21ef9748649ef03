package http

import (
	"time"

	"crm-service/internal/domain"
)

type CustomerRef struct {
	ID uint64 `json:"id" binding:"required"`
}

// ProductOrderRequest is the body of create and update calls. Pointers tell a
// missing or null field apart from a zero value.
type ProductOrderRequest struct {
	ID         *uint64             `json:"id"`
	PlacedDate *time.Time          `json:"placedDate" binding:"required"`
	Status     *domain.OrderStatus `json:"status" binding:"required,oneof=COMPLETED PENDING CANCELLED"`
	Code       *string             `json:"code" binding:"required"`
	InvoiceID  *string             `json:"invoiceId"`
	Customer   *CustomerRef        `json:"customer" binding:"required"`
}

func (r *ProductOrderRequest) toDomain() *domain.ProductOrder {
	o := &domain.ProductOrder{
		PlacedDate: *r.PlacedDate,
		Status:     *r.Status,
		Code:       *r.Code,
		InvoiceID:  r.InvoiceID,
		CustomerID: r.Customer.ID,
	}
	if r.ID != nil {
		o.ID = *r.ID
	}
	return o
}

type CustomerRequest struct {
	ID        *uint64 `json:"id"`
	FirstName string  `json:"firstName" binding:"required"`
	LastName  string  `json:"lastName" binding:"required"`
	Email     string  `json:"email" binding:"required,email"`
	Telephone string  `json:"telephone" binding:"required"`
	City      *string `json:"city"`
	Country   *string `json:"country"`
}

func (r *CustomerRequest) toDomain() *domain.Customer {
	c := &domain.Customer{
		FirstName: r.FirstName,
		LastName:  r.LastName,
		Email:     r.Email,
		Telephone: r.Telephone,
		City:      r.City,
		Country:   r.Country,
	}
	if r.ID != nil {
		c.ID = *r.ID
	}
	return c
}

// ErrorResponse is written for every 4xx and 5xx answer.
type ErrorResponse struct {
	Title       string              `json:"title"`
	Status      int                 `json:"status"`
	EntityName  string              `json:"entityName,omitempty"`
	ErrorKey    string              `json:"errorKey,omitempty"`
	Message     string              `json:"message"`
	FieldErrors []domain.FieldError `json:"fieldErrors,omitempty"`
}
