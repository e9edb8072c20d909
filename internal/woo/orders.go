package woo

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
)

type Address struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Company   string `json:"company,omitempty"`
	Address1  string `json:"address_1"`
	Address2  string `json:"address_2,omitempty"`
	City      string `json:"city"`
	State     string `json:"state"`
	Postcode  string `json:"postcode"`
	Country   string `json:"country"`
	Email     string `json:"email,omitempty"`
	Phone     string `json:"phone,omitempty"`
}

type OrderLineItem struct {
	ProductID int64 `json:"product_id"`
	Quantity  int64 `json:"quantity"`
}

type ShippingLine struct {
	MethodID    string `json:"method_id"`
	MethodTitle string `json:"method_title"`
	Total       string `json:"total"`
}

// OrderRequest is the payload for order creation. Payment is always
// deferred (set_paid false, manual methods only).
type OrderRequest struct {
	PaymentMethod      string          `json:"payment_method"`
	PaymentMethodTitle string          `json:"payment_method_title"`
	SetPaid            bool            `json:"set_paid"`
	CustomerID         int64           `json:"customer_id,omitempty"`
	Billing            Address         `json:"billing"`
	Shipping           Address         `json:"shipping"`
	LineItems          []OrderLineItem `json:"line_items"`
	ShippingLines      []ShippingLine  `json:"shipping_lines"`
}

type Order struct {
	ID          int64         `json:"id"`
	Number      string        `json:"number"`
	Status      string        `json:"status"`
	Currency    string        `json:"currency"`
	Total       string        `json:"total"`
	DateCreated string        `json:"date_created"`
	LineItems   []OrderedItem `json:"line_items"`
}

// OrderedItem is a line of a placed order as the store reports it.
type OrderedItem struct {
	ProductID int64  `json:"product_id"`
	Name      string `json:"name"`
	Quantity  int64  `json:"quantity"`
	Total     string `json:"total"`
}

func (c *Client) CreateOrder(ctx context.Context, req OrderRequest) (*Order, error) {
	var order Order
	if err := c.post(ctx, "/orders", req, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

func (c *Client) Order(ctx context.Context, id int64) (*Order, error) {
	var order Order
	if err := c.get(ctx, fmt.Sprintf("/orders/%d", id), nil, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

func (c *Client) CustomerOrders(ctx context.Context, customerID int64) ([]Order, error) {
	q := url.Values{}
	q.Set("customer", strconv.FormatInt(customerID, 10))

	var orders []Order
	if err := c.get(ctx, "/orders", q, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

type Customer struct {
	ID        int64   `json:"id"`
	Email     string  `json:"email"`
	FirstName string  `json:"first_name"`
	LastName  string  `json:"last_name"`
	Username  string  `json:"username"`
	AvatarURL string  `json:"avatar_url"`
	Billing   Address `json:"billing"`
	Shipping  Address `json:"shipping"`
}

// CustomerRequest carries only the fields being changed; nil or empty
// fields are omitted so the store keeps its current values.
type CustomerRequest struct {
	Email     string   `json:"email,omitempty"`
	FirstName string   `json:"first_name,omitempty"`
	LastName  string   `json:"last_name,omitempty"`
	Username  string   `json:"username,omitempty"`
	Password  string   `json:"password,omitempty"`
	Billing   *Address `json:"billing,omitempty"`
	Shipping  *Address `json:"shipping,omitempty"`
}

func (c *Client) CreateCustomer(ctx context.Context, req CustomerRequest) (*Customer, error) {
	var customer Customer
	if err := c.post(ctx, "/customers", req, &customer); err != nil {
		return nil, err
	}
	return &customer, nil
}

func (c *Client) Customer(ctx context.Context, id int64) (*Customer, error) {
	var customer Customer
	if err := c.get(ctx, fmt.Sprintf("/customers/%d", id), nil, &customer); err != nil {
		return nil, err
	}
	return &customer, nil
}

// CustomersByEmail filters the customer collection by exact email.
func (c *Client) CustomersByEmail(ctx context.Context, email string) ([]Customer, error) {
	q := url.Values{}
	q.Set("email", email)

	var customers []Customer
	if err := c.get(ctx, "/customers", q, &customers); err != nil {
		return nil, err
	}
	return customers, nil
}

func (c *Client) UpdateCustomer(ctx context.Context, id int64, req CustomerRequest) (*Customer, error) {
	var customer Customer
	if err := c.put(ctx, fmt.Sprintf("/customers/%d", id), req, &customer); err != nil {
		return nil, err
	}
	return &customer, nil
}

type Review struct {
	ID        int64  `json:"id"`
	ProductID int64  `json:"product_id"`
	Reviewer  string `json:"reviewer"`
	Review    string `json:"review"`
	Rating    int    `json:"rating"`
}

type ReviewRequest struct {
	ProductID     int64  `json:"product_id"`
	Reviewer      string `json:"reviewer"`
	ReviewerEmail string `json:"reviewer_email"`
	Review        string `json:"review"`
	Rating        int    `json:"rating"`
}

func (c *Client) ProductReviews(ctx context.Context, productID int64) ([]Review, error) {
	q := url.Values{}
	q.Set("product", strconv.FormatInt(productID, 10))

	var reviews []Review
	if err := c.get(ctx, "/products/reviews", q, &reviews); err != nil {
		return nil, err
	}
	return reviews, nil
}

func (c *Client) CreateReview(ctx context.Context, req ReviewRequest) (*Review, error) {
	var review Review
	if err := c.post(ctx, "/products/reviews", req, &review); err != nil {
		return nil, err
	}
	return &review, nil
}
