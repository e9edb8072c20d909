package cart

import (
	"math"
	"testing"

	"github.com/rktiwari00/woocart/internal/config"
	"github.com/stretchr/testify/assert"
)

var testShipping = config.ShippingConfig{
	EnableFreeShipping:    true,
	FreeShippingThreshold: 50,
	DefaultShippingCost:   5.99,
}

func TestSubtotal_SalePriceWins(t *testing.T) {
	items := []LineItem{
		{ID: 1, Price: "10", Quantity: 2},
		{ID: 2, Price: "20", SalePrice: "15", Quantity: 1},
	}

	assert.InDelta(t, 35.0, Subtotal(items), 1e-9)
}

func TestSubtotal_EmptySalePriceFallsBackToPrice(t *testing.T) {
	items := []LineItem{
		{ID: 1, Price: "20", SalePrice: "", Quantity: 3},
	}

	// Empty sale price means "no discount", never zero.
	assert.InDelta(t, 60.0, Subtotal(items), 1e-9)
}

func TestSubtotal_EmptyCart(t *testing.T) {
	assert.Zero(t, Subtotal(nil))
}

func TestSubtotal_UnparsablePriceYieldsNaN(t *testing.T) {
	items := []LineItem{
		{ID: 1, Price: "", Quantity: 1},
	}

	assert.True(t, math.IsNaN(Subtotal(items)))
}

func TestCount_SumsQuantities(t *testing.T) {
	items := []LineItem{
		{ID: 1, Price: "10", Quantity: 3},
		{ID: 2, Price: "20", Quantity: 1},
	}

	assert.Equal(t, int64(4), Count(items))
}

func TestShippingCost_BelowThreshold(t *testing.T) {
	assert.InDelta(t, 5.99, ShippingCost(35, testShipping), 1e-9)
	assert.False(t, IsFreeShipping(35, testShipping))
}

func TestShippingCost_AtAndAboveThreshold(t *testing.T) {
	assert.Zero(t, ShippingCost(50, testShipping))
	assert.Zero(t, ShippingCost(60, testShipping))
	assert.True(t, IsFreeShipping(60, testShipping))
}

func TestShippingCost_FreeShippingDisabled(t *testing.T) {
	disabled := testShipping
	disabled.EnableFreeShipping = false

	assert.InDelta(t, 5.99, ShippingCost(60, disabled), 1e-9)
	assert.False(t, IsFreeShipping(60, disabled))
}
