package domain

import (
	"errors"
	"strings"
)

const (
	ProductOrderEntity = "productOrder"
	CustomerEntity     = "customer"
)

var (
	ErrProductOrderNotFound = errors.New("product order not found")
	ErrCustomerNotFound     = errors.New("customer not found")
	// ErrIDExists rejects creates that carry a client supplied id.
	ErrIDExists = errors.New("a new entity cannot already have an ID")
	// ErrIDNull rejects updates without an id.
	ErrIDNull = errors.New("invalid id")
)

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError lists every required field that failed its check.
type ValidationError struct {
	EntityName string
	Fields     []FieldError
}

func (e *ValidationError) Add(field, message string) {
	e.Fields = append(e.Fields, FieldError{Field: field, Message: message})
}

func (e *ValidationError) HasErrors() bool {
	return len(e.Fields) > 0
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+": "+f.Message)
	}
	return e.EntityName + " validation failed: " + strings.Join(parts, "; ")
}

func IsValidation(err error) bool {
	var verr *ValidationError
	return errors.As(err, &verr)
}
