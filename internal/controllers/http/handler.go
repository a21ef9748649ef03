package http

import (
	"net/http"
	"reflect"
	"strconv"
	"strings"
	"sync"

	"crm-service/internal/metrics"
	"crm-service/internal/pagination"
	"crm-service/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var registerTagName sync.Once

type Handler struct {
	orders    *services.ProductOrderService
	customers *services.CustomerService
	appName   string
}

func NewHandler(orders *services.ProductOrderService, customers *services.CustomerService, appName string) *Handler {
	return &Handler{orders: orders, customers: customers, appName: appName}
}

// NewRouter builds the gin engine with recovery, request logging, metrics and
// every API route. /metrics serves gatherer, which should be the registry m
// was registered with.
func NewRouter(h *Handler, m *metrics.Metrics, gatherer prometheus.Gatherer) *gin.Engine {
	registerTagName.Do(func() {
		// Report validation failures under their JSON names.
		if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
			v.RegisterTagNameFunc(func(fld reflect.StructField) string {
				name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
				if name == "-" {
					return ""
				}
				return name
			})
		}
	})

	r := gin.New()
	r.Use(gin.Recovery(), RequestLogger(), Metrics(m))
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))
	h.RegisterRoutes(r)
	return r
}

func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.GET("/health", h.Health)

	api := r.Group("/api")
	api.POST("/product-orders", h.CreateProductOrder)
	api.PUT("/product-orders", h.UpdateProductOrder)
	api.GET("/product-orders", h.ListProductOrders)
	api.GET("/product-orders/:id", h.GetProductOrder)
	api.DELETE("/product-orders/:id", h.DeleteProductOrder)
	api.GET("/_search/product-orders", h.SearchProductOrders)

	api.POST("/customers", h.CreateCustomer)
	api.GET("/customers", h.ListCustomers)
	api.GET("/customers/:id", h.GetCustomer)
}

func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "UP"})
}

func (h *Handler) parseID(c *gin.Context, entity string) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		h.badRequest(c, entity, "idinvalid", "Invalid id", nil)
		return 0, false
	}
	return id, true
}

// writePage answers with the page content and the X-Total-Count and Link
// headers.
func writePage[T any](c *gin.Context, page pagination.Page[T]) {
	c.Header("X-Total-Count", strconv.FormatInt(page.Total, 10))
	c.Header("Link", pagination.LinkHeader(c.Request.URL, page))
	c.JSON(http.StatusOK, page.Content)
}
