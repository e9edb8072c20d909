package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rktiwari00/woocart/internal/woo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type orderAPIMock struct {
	order      *woo.Order
	orders     []woo.Order
	customerID int64
	err        error
}

func (m *orderAPIMock) Order(ctx context.Context, id int64) (*woo.Order, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.order, nil
}

func (m *orderAPIMock) CustomerOrders(ctx context.Context, customerID int64) ([]woo.Order, error) {
	m.customerID = customerID
	if m.err != nil {
		return nil, m.err
	}
	return m.orders, nil
}

type sessionMock struct {
	user *woo.Customer
}

func (m sessionMock) CurrentUser() (*woo.Customer, bool) {
	if m.user == nil {
		return nil, false
	}
	return m.user, true
}

func TestListOrders_Unauthenticated(t *testing.T) {
	handler := NewOrdersHandler(&orderAPIMock{}, sessionMock{})

	recorder := httptest.NewRecorder()
	handler.ListOrders(recorder, httptest.NewRequest("GET", "/", nil))

	require.Equal(t, http.StatusUnauthorized, recorder.Code)

	var response ErrorResponse
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&response))
	assert.Equal(t, "unauthenticated", response.Code)
}

func TestListOrders_ReturnsCurrentUserOrders(t *testing.T) {
	api := &orderAPIMock{orders: []woo.Order{
		{ID: 100, Number: "100", Status: "processing", Total: "42.50"},
		{ID: 99, Number: "99", Status: "completed", Total: "10.00"},
	}}
	handler := NewOrdersHandler(api, sessionMock{user: &woo.Customer{ID: 7}})

	recorder := httptest.NewRecorder()
	handler.ListOrders(recorder, httptest.NewRequest("GET", "/", nil))

	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, int64(7), api.customerID)

	var orders []woo.Order
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&orders))
	require.Len(t, orders, 2)
	assert.Equal(t, "processing", orders[0].Status)
}

func TestListOrders_UpstreamError(t *testing.T) {
	api := &orderAPIMock{err: &woo.APIError{StatusCode: http.StatusInternalServerError}}
	handler := NewOrdersHandler(api, sessionMock{user: &woo.Customer{ID: 7}})

	recorder := httptest.NewRecorder()
	handler.ListOrders(recorder, httptest.NewRequest("GET", "/", nil))

	assert.Equal(t, http.StatusBadGateway, recorder.Code)
}

func TestGetOrder_Unauthenticated(t *testing.T) {
	handler := NewOrdersHandler(&orderAPIMock{}, sessionMock{})

	recorder := httptest.NewRecorder()
	request := paramRequest(httptest.NewRequest("GET", "/", nil), "order_id", "100")
	handler.GetOrder(recorder, request)

	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
}

func TestGetOrder_Success(t *testing.T) {
	api := &orderAPIMock{order: &woo.Order{
		ID:     100,
		Status: "processing",
		LineItems: []woo.OrderedItem{
			{ProductID: 42, Name: "Hoodie", Quantity: 2, Total: "59.98"},
		},
	}}
	handler := NewOrdersHandler(api, sessionMock{user: &woo.Customer{ID: 7}})

	recorder := httptest.NewRecorder()
	request := paramRequest(httptest.NewRequest("GET", "/", nil), "order_id", "100")
	handler.GetOrder(recorder, request)

	require.Equal(t, http.StatusOK, recorder.Code)

	var order woo.Order
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&order))
	assert.Equal(t, int64(100), order.ID)
	require.Len(t, order.LineItems, 1)
	assert.Equal(t, "Hoodie", order.LineItems[0].Name)
}

func TestGetOrder_InvalidID(t *testing.T) {
	handler := NewOrdersHandler(&orderAPIMock{}, sessionMock{user: &woo.Customer{ID: 7}})

	recorder := httptest.NewRecorder()
	request := paramRequest(httptest.NewRequest("GET", "/", nil), "order_id", "abc")
	handler.GetOrder(recorder, request)

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}
