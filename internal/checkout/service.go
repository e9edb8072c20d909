package checkout

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/rktiwari00/woocart/internal/cart"
	"github.com/rktiwari00/woocart/internal/config"
	"github.com/rktiwari00/woocart/internal/woo"
)

var (
	ErrEmptyCart             = errors.New("cart is empty")
	ErrUnknownPayment        = errors.New("unknown or disabled payment method")
	ErrUnknownShippingMethod = errors.New("unknown or disabled shipping method")
)

// OrderPlacer posts the order to the store API.
type OrderPlacer interface {
	CreateOrder(ctx context.Context, req woo.OrderRequest) (*woo.Order, error)
}

// Cart is the snapshot surface checkout reads, plus the clear it
// triggers once the order is accepted.
type Cart interface {
	Items() []cart.LineItem
	ShippingCost() float64
	IsEmpty() bool
	ClearCart()
}

// Notifier records the order-placed notification.
type Notifier interface {
	SendOrderNotification(orderID int64, status string)
}

type BillingInfo struct {
	FirstName string
	LastName  string
	Email     string
	Phone     string
	Address   string
	City      string
	State     string
	ZipCode   string
	Country   string
}

type PlaceOrderInput struct {
	Billing        BillingInfo
	PaymentMethod  string // "cod" or "bacs"
	ShippingMethod string // "standard", "express" or "pickup"
	CustomerID     int64
}

// Service turns the current cart into a WooCommerce order. Payment is
// never processed here: orders go out with set_paid false and a manual
// payment method, exactly what the store expects. Which methods are
// offered is store configuration, not caller input.
type Service struct {
	orders   OrderPlacer
	cart     Cart
	notifier Notifier
	payment  config.PaymentConfig
	shipping config.ShippingConfig
}

func NewService(orders OrderPlacer, c Cart, notifier Notifier, payment config.PaymentConfig, shipping config.ShippingConfig) *Service {
	return &Service{
		orders:   orders,
		cart:     c,
		notifier: notifier,
		payment:  payment,
		shipping: shipping,
	}
}

// PlaceOrder posts the order and, on success, clears the cart and
// records a "pending" order notification. A failed order leaves the
// cart untouched so the user can retry.
func (s *Service) PlaceOrder(ctx context.Context, in PlaceOrderInput) (*woo.Order, error) {
	if s.cart.IsEmpty() {
		return nil, ErrEmptyCart
	}

	paymentTitle, err := s.paymentTitle(in.PaymentMethod)
	if err != nil {
		return nil, err
	}

	shippingLine, err := s.shippingLine(in.ShippingMethod)
	if err != nil {
		return nil, err
	}

	items := s.cart.Items()
	lineItems := make([]woo.OrderLineItem, 0, len(items))
	for _, item := range items {
		lineItems = append(lineItems, woo.OrderLineItem{
			ProductID: item.ID,
			Quantity:  item.Quantity,
		})
	}

	address := woo.Address{
		FirstName: in.Billing.FirstName,
		LastName:  in.Billing.LastName,
		Address1:  in.Billing.Address,
		City:      in.Billing.City,
		State:     in.Billing.State,
		Postcode:  in.Billing.ZipCode,
		Country:   in.Billing.Country,
	}
	if address.Country == "" {
		address.Country = "US"
	}

	billing := address
	billing.Email = in.Billing.Email
	billing.Phone = in.Billing.Phone

	order, err := s.orders.CreateOrder(ctx, woo.OrderRequest{
		PaymentMethod:      in.PaymentMethod,
		PaymentMethodTitle: paymentTitle,
		SetPaid:            false,
		CustomerID:         in.CustomerID,
		Billing:            billing,
		Shipping:           address,
		LineItems:          lineItems,
		ShippingLines:      []woo.ShippingLine{shippingLine},
	})
	if err != nil {
		return nil, fmt.Errorf("place order: %w", err)
	}

	s.cart.ClearCart()
	s.notifier.SendOrderNotification(order.ID, "pending")
	return order, nil
}

func (s *Service) paymentTitle(method string) (string, error) {
	switch method {
	case "cod":
		if !s.payment.EnableCashOnDelivery {
			return "", ErrUnknownPayment
		}
		return "Cash on Delivery", nil
	case "bacs":
		if !s.payment.EnableBankTransfer {
			return "", ErrUnknownPayment
		}
		return "Direct Bank Transfer", nil
	default:
		return "", ErrUnknownPayment
	}
}

// Express is a flat surcharge over the standard cost and is never
// free; standard respects the free-shipping threshold.
const expressSurcharge = 5

func (s *Service) shippingLine(method string) (woo.ShippingLine, error) {
	switch method {
	case "pickup":
		if !s.shipping.EnableLocalPickup {
			return woo.ShippingLine{}, ErrUnknownShippingMethod
		}
		return woo.ShippingLine{
			MethodID:    "pickup",
			MethodTitle: "Local Pickup",
			Total:       "0",
		}, nil
	case "standard":
		return woo.ShippingLine{
			MethodID:    "standard",
			MethodTitle: "Standard Shipping",
			Total:       formatCost(s.cart.ShippingCost()),
		}, nil
	case "express":
		return woo.ShippingLine{
			MethodID:    "express",
			MethodTitle: "Express Shipping",
			Total:       formatCost(s.shipping.DefaultShippingCost + expressSurcharge),
		}, nil
	default:
		return woo.ShippingLine{}, ErrUnknownShippingMethod
	}
}

func formatCost(cost float64) string {
	return strconv.FormatFloat(cost, 'f', 2, 64)
}
