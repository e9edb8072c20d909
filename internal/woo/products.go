package woo

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
)

// Product mirrors the store API product shape. Prices arrive as
// decimal strings; an empty sale_price means the product is not on
// sale. stock_quantity is null for products without stock management.
type Product struct {
	ID            int64      `json:"id"`
	Name          string     `json:"name"`
	Description   string     `json:"description"`
	Price         string     `json:"price"`
	RegularPrice  string     `json:"regular_price"`
	SalePrice     string     `json:"sale_price"`
	OnSale        bool       `json:"on_sale"`
	Featured      bool       `json:"featured"`
	StockQuantity *int64     `json:"stock_quantity"`
	StockStatus   string     `json:"stock_status"`
	Images        []Image    `json:"images"`
	Categories    []Category `json:"categories"`
	Variations    []int64    `json:"variations"`
	AverageRating string     `json:"average_rating"`
}

type Image struct {
	ID  int64  `json:"id"`
	Src string `json:"src"`
}

type Category struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Slug  string `json:"slug"`
	Image *Image `json:"image"`
	Count int64  `json:"count"`
}

// Variation is a purchasable variant of a variable product.
type Variation struct {
	ID            int64       `json:"id"`
	Price         string      `json:"price"`
	RegularPrice  string      `json:"regular_price"`
	SalePrice     string      `json:"sale_price"`
	StockQuantity *int64      `json:"stock_quantity"`
	Attributes    []Attribute `json:"attributes"`
	Image         *Image      `json:"image"`
}

type Attribute struct {
	Name   string `json:"name"`
	Option string `json:"option"`
}

// ProductQuery narrows a product listing. Zero values are omitted.
type ProductQuery struct {
	Page     int
	PerPage  int
	Category int64
	Search   string
	Featured bool
	OnSale   bool
	OrderBy  string
}

func (q ProductQuery) values() url.Values {
	v := url.Values{}
	if q.Page > 0 {
		v.Set("page", strconv.Itoa(q.Page))
	}
	if q.PerPage > 0 {
		v.Set("per_page", strconv.Itoa(q.PerPage))
	}
	if q.Category > 0 {
		v.Set("category", strconv.FormatInt(q.Category, 10))
	}
	if q.Search != "" {
		v.Set("search", q.Search)
	}
	if q.Featured {
		v.Set("featured", "true")
	}
	if q.OnSale {
		v.Set("on_sale", "true")
	}
	if q.OrderBy != "" {
		v.Set("orderby", q.OrderBy)
	}
	return v
}

func (c *Client) Products(ctx context.Context, q ProductQuery) ([]Product, error) {
	var products []Product
	if err := c.get(ctx, "/products", q.values(), &products); err != nil {
		return nil, err
	}
	return products, nil
}

func (c *Client) Product(ctx context.Context, id int64) (*Product, error) {
	var product Product
	if err := c.get(ctx, fmt.Sprintf("/products/%d", id), nil, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

func (c *Client) ProductVariations(ctx context.Context, productID int64) ([]Variation, error) {
	var variations []Variation
	if err := c.get(ctx, fmt.Sprintf("/products/%d/variations", productID), nil, &variations); err != nil {
		return nil, err
	}
	return variations, nil
}

func (c *Client) Categories(ctx context.Context) ([]Category, error) {
	var categories []Category
	if err := c.get(ctx, "/products/categories", nil, &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

func (c *Client) Category(ctx context.Context, id int64) (*Category, error) {
	var category Category
	if err := c.get(ctx, fmt.Sprintf("/products/categories/%d", id), nil, &category); err != nil {
		return nil, err
	}
	return &category, nil
}
