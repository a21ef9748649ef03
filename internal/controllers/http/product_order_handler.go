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

func (h *Handler) CreateProductOrder(c *gin.Context) {
	var req ProductOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.bindError(c, domain.ProductOrderEntity, err)
		return
	}
	if req.ID != nil {
		h.writeError(c, domain.ProductOrderEntity, domain.ErrIDExists)
		return
	}

	order, err := h.orders.Create(c.Request.Context(), req.toDomain())
	if err != nil {
		h.writeError(c, domain.ProductOrderEntity, err)
		return
	}

	id := strconv.FormatUint(order.ID, 10)
	h.alert(c, domain.ProductOrderEntity, "created", id)
	c.Header("Location", "/api/product-orders/"+id)
	c.JSON(http.StatusCreated, order)
}

func (h *Handler) UpdateProductOrder(c *gin.Context) {
	var req ProductOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.bindError(c, domain.ProductOrderEntity, err)
		return
	}
	if req.ID == nil || *req.ID == 0 {
		h.writeError(c, domain.ProductOrderEntity, domain.ErrIDNull)
		return
	}

	order, err := h.orders.Update(c.Request.Context(), req.toDomain())
	if errors.Is(err, domain.ErrProductOrderNotFound) {
		h.badRequest(c, domain.ProductOrderEntity, "idnotfound", "Entity not found", nil)
		return
	}
	if err != nil {
		h.writeError(c, domain.ProductOrderEntity, err)
		return
	}

	h.alert(c, domain.ProductOrderEntity, "updated", strconv.FormatUint(order.ID, 10))
	c.JSON(http.StatusOK, order)
}

func (h *Handler) ListProductOrders(c *gin.Context) {
	pageable, err := pagination.Parse(c.Request.URL.Query(), repository.ProductOrderSortable...)
	if err != nil {
		h.writeError(c, domain.ProductOrderEntity, err)
		return
	}

	page, err := h.orders.FindAll(c.Request.Context(), pageable)
	if err != nil {
		h.writeError(c, domain.ProductOrderEntity, err)
		return
	}
	writePage(c, page)
}

func (h *Handler) GetProductOrder(c *gin.Context) {
	id, ok := h.parseID(c, domain.ProductOrderEntity)
	if !ok {
		return
	}

	order, err := h.orders.FindOne(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, domain.ProductOrderEntity, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

func (h *Handler) DeleteProductOrder(c *gin.Context) {
	id, ok := h.parseID(c, domain.ProductOrderEntity)
	if !ok {
		return
	}

	if err := h.orders.Delete(c.Request.Context(), id); err != nil {
		h.writeError(c, domain.ProductOrderEntity, err)
		return
	}
	h.alert(c, domain.ProductOrderEntity, "deleted", strconv.FormatUint(id, 10))
	c.Status(http.StatusNoContent)
}

// SearchProductOrders passes the query string to the search index as is. The
// query parameter is required; an empty value matches everything.
func (h *Handler) SearchProductOrders(c *gin.Context) {
	query, ok := c.GetQuery("query")
	if !ok {
		h.badRequest(c, domain.ProductOrderEntity, "queryrequired", "Required parameter 'query' is not present", nil)
		return
	}

	pageable, err := pagination.Parse(c.Request.URL.Query(), repository.ProductOrderSortable...)
	if err != nil {
		h.writeError(c, domain.ProductOrderEntity, err)
		return
	}

	page, err := h.orders.Search(c.Request.Context(), query, pageable)
	if err != nil {
		h.writeError(c, domain.ProductOrderEntity, err)
		return
	}
	writePage(c, page)
}
