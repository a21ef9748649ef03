package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"crm-service/internal/domain"
	"crm-service/internal/metrics"
	"crm-service/internal/mocks"
	"crm-service/internal/pagination"
	"crm-service/internal/repository"
	"crm-service/internal/repository/memory"
	"crm-service/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const (
	maxInt64  = "9223372036854775807"
	maxUint64 = "18446744073709551615"
)

type testEnv struct {
	router    *gin.Engine
	registry  *prometheus.Registry
	orders    repository.ProductOrderRepository
	customers repository.CustomerRepository
	service   *services.ProductOrderService
	search    *mocks.MockSearchRepository
	customer  *domain.Customer
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	orders := memory.NewProductOrderRepository()
	customers := memory.NewCustomerRepository()
	customer := services.CreateMockCustomer(0)
	require.NoError(t, customers.Save(context.Background(), customer))

	// The search index is mocked: tests count mirrored writes and stub results.
	search := new(mocks.MockSearchRepository)
	search.On("Save", mock.Anything, mock.Anything).Return(nil).Maybe()
	search.On("DeleteByID", mock.Anything, mock.Anything).Return(nil).Maybe()

	svc := services.NewProductOrderService(orders, customers, search, nil)
	h := NewHandler(svc, services.NewCustomerService(customers), "crmApp")
	registry := prometheus.NewRegistry()

	return &testEnv{
		router:    NewRouter(h, metrics.NewWithRegisterer(registry), registry),
		registry:  registry,
		orders:    orders,
		customers: customers,
		service:   svc,
		search:    search,
		customer:  customer,
	}
}

func (e *testEnv) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func (e *testEnv) count(t *testing.T) int64 {
	t.Helper()
	n, err := e.orders.Count(context.Background())
	require.NoError(t, err)
	return n
}

func (e *testEnv) newOrder() *domain.ProductOrder {
	return services.CreateMockProductOrder(e.customer)
}

// requestBody renders an order the way a client sends it: no id until one is
// assigned, the customer referenced by id.
func requestBody(o *domain.ProductOrder) map[string]any {
	body := map[string]any{
		"placedDate": o.PlacedDate,
		"status":     o.Status,
		"code":       o.Code,
		"invoiceId":  o.InvoiceID,
		"customer":   map[string]any{"id": o.CustomerID},
	}
	if o.ID != 0 {
		body["id"] = o.ID
	}
	return body
}

func decodeList(t *testing.T, w *httptest.ResponseRecorder) []map[string]any {
	t.Helper()
	var out []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func decodeObject(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func findByID(items []map[string]any, id uint64) map[string]any {
	for _, item := range items {
		if item["id"] == float64(id) {
			return item
		}
	}
	return nil
}

func assertDefaultFields(t *testing.T, item map[string]any) {
	t.Helper()
	require.NotNil(t, item)
	assert.Equal(t, "1970-01-01T00:00:00Z", item["placedDate"])
	assert.Equal(t, string(services.DefaultStatus), item["status"])
	assert.Equal(t, services.DefaultCode, item["code"])
	assert.Equal(t, services.DefaultInvoiceID, item["invoiceId"])
}

func lastOrder(t *testing.T, e *testEnv) domain.ProductOrder {
	t.Helper()
	page, err := e.orders.FindAll(context.Background(), pagination.Of(0, pagination.MaxPageSize))
	require.NoError(t, err)
	require.NotEmpty(t, page.Content)
	return page.Content[len(page.Content)-1]
}

func TestCreateProductOrder(t *testing.T) {
	e := newTestEnv(t)
	before := e.count(t)

	w := e.do(t, http.MethodPost, "/api/product-orders", requestBody(e.newOrder()))
	require.Equal(t, http.StatusCreated, w.Code)

	assert.Equal(t, before+1, e.count(t))
	created := lastOrder(t, e)
	assert.True(t, services.DefaultPlacedDate.Equal(created.PlacedDate))
	assert.Equal(t, services.DefaultStatus, created.Status)
	assert.Equal(t, services.DefaultCode, created.Code)
	require.NotNil(t, created.InvoiceID)
	assert.Equal(t, services.DefaultInvoiceID, *created.InvoiceID)
	assert.Equal(t, e.customer.ID, created.CustomerID)

	id := strconv.FormatUint(created.ID, 10)
	assert.Equal(t, "/api/product-orders/"+id, w.Header().Get("Location"))
	assert.Equal(t, "crmApp.productOrder.created", w.Header().Get("X-crmApp-alert"))
	assert.Equal(t, id, w.Header().Get("X-crmApp-params"))
	assertDefaultFields(t, decodeObject(t, w))

	e.search.AssertNumberOfCalls(t, "Save", 1)
	mirrored := e.search.Calls[0].Arguments.Get(1).(*domain.ProductOrder)
	assert.Equal(t, &created, mirrored)
}

func TestCreateProductOrderWithExistingID(t *testing.T) {
	e := newTestEnv(t)
	before := e.count(t)

	order := e.newOrder()
	order.ID = 1
	w := e.do(t, http.MethodPost, "/api/product-orders", requestBody(order))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "error.idexists", w.Header().Get("X-crmApp-error"))
	assert.Equal(t, "idexists", decodeObject(t, w)["errorKey"])
	assert.Equal(t, before, e.count(t))
	e.search.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestCreateProductOrder_RequiredFields(t *testing.T) {
	tests := []struct {
		name  string
		field string
		value any
	}{
		{name: "placed date is required", field: "placedDate", value: nil},
		{name: "status is required", field: "status", value: nil},
		{name: "code is required", field: "code", value: nil},
		{name: "customer is required", field: "customer", value: nil},
		{name: "customer id is required", field: "customer", value: map[string]any{}},
		{name: "status must be known", field: "status", value: "SHIPPED"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newTestEnv(t)
			before := e.count(t)

			body := requestBody(e.newOrder())
			body[tt.field] = tt.value
			w := e.do(t, http.MethodPost, "/api/product-orders", body)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			resp := decodeObject(t, w)
			assert.Equal(t, "validation", resp["errorKey"])
			assert.Contains(t, w.Body.String(), `"field":"`+tt.field)
			assert.Equal(t, before, e.count(t))
			e.search.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
		})
	}
}

func TestCreateProductOrder_EmptyCodeAccepted(t *testing.T) {
	e := newTestEnv(t)

	body := requestBody(e.newOrder())
	body["code"] = ""
	w := e.do(t, http.MethodPost, "/api/product-orders", body)

	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestCreateProductOrder_UnknownCustomer(t *testing.T) {
	e := newTestEnv(t)
	before := e.count(t)

	body := requestBody(e.newOrder())
	body["customer"] = map[string]any{"id": 404}
	w := e.do(t, http.MethodPost, "/api/product-orders", body)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "customernotfound", decodeObject(t, w)["errorKey"])
	assert.Equal(t, before, e.count(t))
}

func TestCreateProductOrder_MalformedBody(t *testing.T) {
	e := newTestEnv(t)

	req := httptest.NewRequest(http.MethodPost, "/api/product-orders", bytes.NewBufferString("{not json"))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetAllProductOrders(t *testing.T) {
	e := newTestEnv(t)
	order := e.newOrder()
	require.NoError(t, e.orders.Save(context.Background(), order))

	w := e.do(t, http.MethodGet, "/api/product-orders?sort=id,desc", nil)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "application/json")
	assert.Equal(t, "1", w.Header().Get("X-Total-Count"))
	assert.Contains(t, w.Header().Get("Link"), `rel="first"`)
	assertDefaultFields(t, findByID(decodeList(t, w), order.ID))
}

func TestGetAllProductOrders_SortedAndPaged(t *testing.T) {
	e := newTestEnv(t)
	for i := 0; i < 3; i++ {
		require.NoError(t, e.orders.Save(context.Background(), e.newOrder()))
	}

	w := e.do(t, http.MethodGet, "/api/product-orders?sort=id,desc&size=2", nil)
	require.Equal(t, http.StatusOK, w.Code)

	items := decodeList(t, w)
	require.Len(t, items, 2)
	assert.Equal(t, float64(3), items[0]["id"])
	assert.Equal(t, float64(2), items[1]["id"])
	assert.Equal(t, "3", w.Header().Get("X-Total-Count"))
	assert.Contains(t, w.Header().Get("Link"), `rel="next"`)
}

func TestGetAllProductOrders_InvalidSort(t *testing.T) {
	e := newTestEnv(t)

	w := e.do(t, http.MethodGet, "/api/product-orders?sort=customerSecret,asc", nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "badsort", decodeObject(t, w)["errorKey"])
}

func TestGetProductOrder(t *testing.T) {
	e := newTestEnv(t)
	order := e.newOrder()
	require.NoError(t, e.orders.Save(context.Background(), order))

	w := e.do(t, http.MethodGet, "/api/product-orders/"+strconv.FormatUint(order.ID, 10), nil)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "application/json")
	item := decodeObject(t, w)
	assert.Equal(t, float64(order.ID), item["id"])
	assertDefaultFields(t, item)
}

func TestGetNonExistingProductOrder(t *testing.T) {
	e := newTestEnv(t)

	for _, id := range []string{maxInt64, maxUint64} {
		w := e.do(t, http.MethodGet, "/api/product-orders/"+id, nil)
		assert.Equal(t, http.StatusNotFound, w.Code, id)
	}
}

func TestGetProductOrder_InvalidID(t *testing.T) {
	e := newTestEnv(t)

	w := e.do(t, http.MethodGet, "/api/product-orders/abc", nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdateProductOrder(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()
	order, err := e.service.Save(ctx, e.newOrder())
	require.NoError(t, err)
	before := e.count(t)

	updated, err := e.orders.FindByID(ctx, order.ID)
	require.NoError(t, err)
	invoice := services.UpdatedInvoiceID
	updated.PlacedDate = services.UpdatedPlacedDate
	updated.Status = services.UpdatedStatus
	updated.Code = services.UpdatedCode
	updated.InvoiceID = &invoice

	w := e.do(t, http.MethodPut, "/api/product-orders", requestBody(updated))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "crmApp.productOrder.updated", w.Header().Get("X-crmApp-alert"))

	assert.Equal(t, before, e.count(t))
	stored := lastOrder(t, e)
	assert.True(t, services.UpdatedPlacedDate.Equal(stored.PlacedDate))
	assert.Equal(t, services.UpdatedStatus, stored.Status)
	assert.Equal(t, services.UpdatedCode, stored.Code)
	require.NotNil(t, stored.InvoiceID)
	assert.Equal(t, services.UpdatedInvoiceID, *stored.InvoiceID)

	e.search.AssertNumberOfCalls(t, "Save", 2)
	e.search.AssertCalled(t, "Save", mock.Anything, &stored)
}

func TestUpdateNonExistingProductOrder(t *testing.T) {
	e := newTestEnv(t)
	before := e.count(t)

	w := e.do(t, http.MethodPut, "/api/product-orders", requestBody(e.newOrder()))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "idnull", decodeObject(t, w)["errorKey"])
	assert.Equal(t, before, e.count(t))
	e.search.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestUpdateProductOrder_UnknownID(t *testing.T) {
	e := newTestEnv(t)

	order := e.newOrder()
	order.ID = 77
	w := e.do(t, http.MethodPut, "/api/product-orders", requestBody(order))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "idnotfound", decodeObject(t, w)["errorKey"])
	assert.Zero(t, e.count(t))
	e.search.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestDeleteProductOrder(t *testing.T) {
	e := newTestEnv(t)
	order, err := e.service.Save(context.Background(), e.newOrder())
	require.NoError(t, err)
	before := e.count(t)

	w := e.do(t, http.MethodDelete, "/api/product-orders/"+strconv.FormatUint(order.ID, 10), nil)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "crmApp.productOrder.deleted", w.Header().Get("X-crmApp-alert"))
	assert.Equal(t, before-1, e.count(t))
	e.search.AssertNumberOfCalls(t, "DeleteByID", 1)
	e.search.AssertCalled(t, "DeleteByID", mock.Anything, order.ID)
}

func TestDeleteNonExistingProductOrder(t *testing.T) {
	e := newTestEnv(t)

	w := e.do(t, http.MethodDelete, "/api/product-orders/"+maxInt64, nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
	e.search.AssertNotCalled(t, "DeleteByID", mock.Anything, mock.Anything)
}

func TestSearchProductOrder(t *testing.T) {
	e := newTestEnv(t)
	order, err := e.service.Save(context.Background(), e.newOrder())
	require.NoError(t, err)

	query := "id:" + strconv.FormatUint(order.ID, 10)
	e.search.On("Search", mock.Anything, query, pagination.Of(0, 20)).
		Return(pagination.NewPage([]domain.ProductOrder{*order}, pagination.Of(0, 1), 1), nil)

	w := e.do(t, http.MethodGet, "/api/_search/product-orders?query="+query, nil)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "application/json")
	assert.Equal(t, "1", w.Header().Get("X-Total-Count"))
	item := findByID(decodeList(t, w), order.ID)
	assertDefaultFields(t, item)
	e.search.AssertNumberOfCalls(t, "Search", 1)
}

func TestHealthAndMetrics(t *testing.T) {
	e := newTestEnv(t)

	w := e.do(t, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"UP"}`, w.Body.String())

	w = e.do(t, http.MethodGet, "/metrics", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `crm_http_requests_total{method="GET",route="/health",status="200"} 1`)
}

func TestGetAllProductOrders_PageBeyondRange(t *testing.T) {
	e := newTestEnv(t)
	for i := 0; i < 3; i++ {
		require.NoError(t, e.orders.Save(context.Background(), e.newOrder()))
	}

	for _, path := range []string{
		"/api/product-orders?page=9223372036854775807",
		"/api/product-orders?page=461168601842738791&size=20",
		"/api/customers?page=9223372036854775807",
	} {
		w := e.do(t, http.MethodGet, path, nil)
		require.Equal(t, http.StatusOK, w.Code, path)
		assert.JSONEq(t, "[]", w.Body.String(), path)
		assert.NotEmpty(t, w.Header().Get("X-Total-Count"), path)
	}
}

func TestSearchProductOrder_QueryRequired(t *testing.T) {
	e := newTestEnv(t)

	w := e.do(t, http.MethodGet, "/api/_search/product-orders", nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "queryrequired", decodeObject(t, w)["errorKey"])
	e.search.AssertNotCalled(t, "Search", mock.Anything, mock.Anything, mock.Anything)
}

func TestSearchProductOrder_EmptyQueryMatchesAll(t *testing.T) {
	e := newTestEnv(t)
	e.search.On("Search", mock.Anything, "", pagination.Of(0, 20)).
		Return(pagination.NewPage[domain.ProductOrder](nil, pagination.Of(0, 20), 0), nil)

	w := e.do(t, http.MethodGet, "/api/_search/product-orders?query=", nil)

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, "[]", w.Body.String())
	e.search.AssertNumberOfCalls(t, "Search", 1)
}

func TestCreateProductOrder_ZeroInstantIsNull(t *testing.T) {
	e := newTestEnv(t)
	before := e.count(t)

	body := requestBody(e.newOrder())
	body["placedDate"] = "0001-01-01T00:00:00Z"
	w := e.do(t, http.MethodPost, "/api/product-orders", body)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "validation", decodeObject(t, w)["errorKey"])
	assert.Contains(t, w.Body.String(), `"field":"placedDate"`)
	assert.Equal(t, before, e.count(t))
}
