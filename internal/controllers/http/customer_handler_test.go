package http

import (
	"net/http"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func customerBody() map[string]any {
	return map[string]any{
		"firstName": "Ada",
		"lastName":  "Lovelace",
		"email":     "ada@example.com",
		"telephone": "+44 20 0000 0000",
		"city":      "London",
	}
}

func TestCreateCustomer(t *testing.T) {
	e := newTestEnv(t)

	w := e.do(t, http.MethodPost, "/api/customers", customerBody())

	require.Equal(t, http.StatusCreated, w.Code)
	created := decodeObject(t, w)
	id := uint64(created["id"].(float64))
	assert.Equal(t, "/api/customers/"+strconv.FormatUint(id, 10), w.Header().Get("Location"))
	assert.Equal(t, "crmApp.customer.created", w.Header().Get("X-crmApp-alert"))
	assert.Equal(t, "Ada", created["firstName"])
	assert.Equal(t, "London", created["city"])
	assert.Nil(t, created["country"])

	w = e.do(t, http.MethodGet, "/api/customers/"+strconv.FormatUint(id, 10), nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ada@example.com", decodeObject(t, w)["email"])
}

func TestCreateCustomer_Rejected(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(map[string]any)
		key    string
	}{
		{name: "missing first name", mutate: func(b map[string]any) { delete(b, "firstName") }, key: "validation"},
		{name: "malformed email", mutate: func(b map[string]any) { b["email"] = "not-an-email" }, key: "validation"},
		{name: "preset id", mutate: func(b map[string]any) { b["id"] = 5 }, key: "idexists"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newTestEnv(t)
			body := customerBody()
			tt.mutate(body)

			w := e.do(t, http.MethodPost, "/api/customers", body)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Equal(t, tt.key, decodeObject(t, w)["errorKey"])
		})
	}
}

func TestListCustomers(t *testing.T) {
	e := newTestEnv(t)
	require.Equal(t, http.StatusCreated, e.do(t, http.MethodPost, "/api/customers", customerBody()).Code)

	w := e.do(t, http.MethodGet, "/api/customers?sort=id,desc", nil)

	require.Equal(t, http.StatusOK, w.Code)
	// newTestEnv seeds one customer.
	assert.Equal(t, "2", w.Header().Get("X-Total-Count"))
	items := decodeList(t, w)
	require.Len(t, items, 2)
	assert.Equal(t, float64(2), items[0]["id"])
}

func TestGetNonExistingCustomer(t *testing.T) {
	e := newTestEnv(t)

	w := e.do(t, http.MethodGet, "/api/customers/"+maxInt64, nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
