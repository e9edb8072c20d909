package woo

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(handler http.HandlerFunc) (*Client, *httptest.Server) {
	server := httptest.NewServer(handler)
	client := NewClient(server.URL, "wc/v3", "ck_test", "cs_test")
	return client, server
}

func TestProducts_SendsAuthAndQuery(t *testing.T) {
	var gotPath, gotQuery string
	var gotUser, gotPass string

	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		gotUser, gotPass, _ = r.BasicAuth()
		json.NewEncoder(w).Encode([]Product{{ID: 1, Name: "Mug", Price: "12.50"}})
	})
	defer server.Close()

	products, err := client.Products(context.Background(), ProductQuery{
		Page:     2,
		PerPage:  10,
		Category: 5,
		OnSale:   true,
	})
	require.NoError(t, err)

	assert.Equal(t, "/wp-json/wc/v3/products", gotPath)
	assert.Equal(t, "category=5&on_sale=true&page=2&per_page=10", gotQuery)
	assert.Equal(t, "ck_test", gotUser)
	assert.Equal(t, "cs_test", gotPass)

	require.Len(t, products, 1)
	assert.Equal(t, "Mug", products[0].Name)
	assert.Equal(t, "12.50", products[0].Price)
}

func TestProduct_DecodesNullStock(t *testing.T) {
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/wp-json/wc/v3/products/42", r.URL.Path)
		w.Write([]byte(`{"id":42,"name":"Shirt","price":"20","sale_price":"","stock_quantity":null,"variations":[101,102]}`))
	})
	defer server.Close()

	product, err := client.Product(context.Background(), 42)
	require.NoError(t, err)

	assert.Equal(t, int64(42), product.ID)
	assert.Empty(t, product.SalePrice)
	assert.Nil(t, product.StockQuantity)
	assert.Equal(t, []int64{101, 102}, product.Variations)
}

func TestProduct_NotFound(t *testing.T) {
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"code":"woocommerce_rest_product_invalid_id"}`))
	})
	defer server.Close()

	_, err := client.Product(context.Background(), 999)
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
	assert.Contains(t, apiErr.Body, "invalid_id")
}

func TestCreateOrder_PostsPayload(t *testing.T) {
	var got OrderRequest

	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/wp-json/wc/v3/orders", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		json.NewEncoder(w).Encode(Order{ID: 555, Status: "pending", Total: "45.99"})
	})
	defer server.Close()

	order, err := client.CreateOrder(context.Background(), OrderRequest{
		PaymentMethod:      "cod",
		PaymentMethodTitle: "Cash on Delivery",
		SetPaid:            false,
		LineItems:          []OrderLineItem{{ProductID: 1, Quantity: 2}},
		ShippingLines:      []ShippingLine{{MethodID: "standard", MethodTitle: "Standard Shipping", Total: "5.99"}},
	})
	require.NoError(t, err)

	assert.Equal(t, int64(555), order.ID)
	assert.Equal(t, "pending", order.Status)

	assert.Equal(t, "cod", got.PaymentMethod)
	assert.False(t, got.SetPaid)
	require.Len(t, got.LineItems, 1)
	assert.Equal(t, int64(2), got.LineItems[0].Quantity)
	require.Len(t, got.ShippingLines, 1)
	assert.Equal(t, "5.99", got.ShippingLines[0].Total)
}

func TestCustomersByEmail_FiltersByEmail(t *testing.T) {
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/wp-json/wc/v3/customers", r.URL.Path)
		assert.Equal(t, "ana@example.com", r.URL.Query().Get("email"))
		json.NewEncoder(w).Encode([]Customer{{ID: 7, Email: "ana@example.com"}})
	})
	defer server.Close()

	customers, err := client.CustomersByEmail(context.Background(), "ana@example.com")
	require.NoError(t, err)
	require.Len(t, customers, 1)
	assert.Equal(t, int64(7), customers[0].ID)
}

func TestUpdateCustomer_UsesPut(t *testing.T) {
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/wp-json/wc/v3/customers/7", r.URL.Path)
		json.NewEncoder(w).Encode(Customer{ID: 7, FirstName: "Ana"})
	})
	defer server.Close()

	customer, err := client.UpdateCustomer(context.Background(), 7, CustomerRequest{FirstName: "Ana"})
	require.NoError(t, err)
	assert.Equal(t, "Ana", customer.FirstName)
}

func TestCircuitBreaker_OpensAfterConsecutiveFailures(t *testing.T) {
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	defer server.Close()

	ctx := context.Background()
	for i := 0; i < 5; i++ {
		_, err := client.Product(ctx, 1)
		var apiErr *APIError
		require.ErrorAs(t, err, &apiErr)
	}

	// Breaker is now open: requests fail fast without reaching the server
	_, err := client.Product(ctx, 1)
	require.Error(t, err)
	var apiErr *APIError
	assert.False(t, errors.As(err, &apiErr))
}
