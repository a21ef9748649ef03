package http

import (
	"errors"
	"net/http"
	"strconv"

	"crm-service/internal/domain"
	"crm-service/internal/pagination"
	"crm-service/internal/repository"

	"github.com/gin-gonic/gin"
)

func (h *Handler) CreateCustomer(c *gin.Context) {
	var req CustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.bindError(c, domain.CustomerEntity, err)
		return
	}

	customer, err := h.customers.Create(c.Request.Context(), req.toDomain())
	if err != nil {
		h.writeError(c, domain.CustomerEntity, err)
		return
	}

	id := strconv.FormatUint(customer.ID, 10)
	h.alert(c, domain.CustomerEntity, "created", id)
	c.Header("Location", "/api/customers/"+id)
	c.JSON(http.StatusCreated, customer)
}

func (h *Handler) ListCustomers(c *gin.Context) {
	pageable, err := pagination.Parse(c.Request.URL.Query(), repository.CustomerSortable...)
	if err != nil {
		h.writeError(c, domain.CustomerEntity, err)
		return
	}

	page, err := h.customers.FindAll(c.Request.Context(), pageable)
	if err != nil {
		h.writeError(c, domain.CustomerEntity, err)
		return
	}
	writePage(c, page)
}

func (h *Handler) GetCustomer(c *gin.Context) {
	id, ok := h.parseID(c, domain.CustomerEntity)
	if !ok {
		return
	}

	customer, err := h.customers.FindOne(c.Request.Context(), id)
	if errors.Is(err, domain.ErrCustomerNotFound) {
		h.notFound(c, domain.CustomerEntity)
		return
	}
	if err != nil {
		h.writeError(c, domain.CustomerEntity, err)
		return
	}
	c.JSON(http.StatusOK, customer)
}
