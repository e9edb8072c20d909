package cart

import "github.com/rktiwari00/woocart/internal/config"

// Subtotal sums unit price times quantity across the cart. Sale prices
// win over regular prices when present.
func Subtotal(items []LineItem) float64 {
	var total float64
	for _, item := range items {
		total += item.unitPrice() * float64(item.Quantity)
	}
	return total
}

// Count reports the sum of quantities, not the number of lines.
func Count(items []LineItem) int64 {
	var count int64
	for _, item := range items {
		count += item.Quantity
	}
	return count
}

// ShippingCost is the flat configured cost, waived once the subtotal
// reaches the free-shipping threshold (when free shipping is enabled).
func ShippingCost(subtotal float64, cfg config.ShippingConfig) float64 {
	if IsFreeShipping(subtotal, cfg) {
		return 0
	}
	return cfg.DefaultShippingCost
}

func IsFreeShipping(subtotal float64, cfg config.ShippingConfig) bool {
	return cfg.EnableFreeShipping && subtotal >= cfg.FreeShippingThreshold
}
