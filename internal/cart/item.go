package cart

import (
	"math"
	"strconv"
)

// LineItem is one product (or variation) entry in the cart. Prices are
// kept as the decimal strings the store API returns; an empty sale
// price means no discount. JSON tags match the persisted cart blob.
type LineItem struct {
	ID            int64   `json:"id"`
	Name          string  `json:"name"`
	Price         string  `json:"price"`
	RegularPrice  string  `json:"regular_price"`
	SalePrice     string  `json:"sale_price"`
	Image         string  `json:"image"`
	Quantity      int64   `json:"quantity"`
	StockQuantity *int64  `json:"stock_quantity,omitempty"`
	Variations    []int64 `json:"variations"`
}

// Product is the typed input contract for AddItem: the subset of a
// catalog product the cart snapshots at add time. Optional fields are
// pointers or may be empty; none are re-validated after the add.
type Product struct {
	ID            int64
	Name          string
	Price         string
	RegularPrice  string
	SalePrice     string
	Images        []ProductImage
	StockQuantity *int64
	Variations    []int64
}

type ProductImage struct {
	Src string
}

func newLineItem(p Product, quantity int64) LineItem {
	image := ""
	if len(p.Images) > 0 {
		image = p.Images[0].Src
	}

	variations := p.Variations
	if variations == nil {
		variations = []int64{}
	}

	return LineItem{
		ID:            p.ID,
		Name:          p.Name,
		Price:         p.Price,
		RegularPrice:  p.RegularPrice,
		SalePrice:     p.SalePrice,
		Image:         image,
		Quantity:      quantity,
		StockQuantity: p.StockQuantity,
		Variations:    variations,
	}
}

// unitPrice prefers the sale price when one is set. A price that does
// not parse yields NaN; totals over such items are NaN too. Malformed
// product input is not validated anywhere upstream.
func (li LineItem) unitPrice() float64 {
	raw := li.Price
	if li.SalePrice != "" {
		raw = li.SalePrice
	}

	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return math.NaN()
	}
	return v
}
