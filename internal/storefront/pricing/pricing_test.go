package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vancy-storefront/server/internal/storefront/model"
)

func settings() model.StoreSettings {
	return model.StoreSettings{FreeShippingThreshold: 2000, FlatShippingRate: 150}
}

func item(price float64, qty int) model.CartItem {
	return model.CartItem{Product: model.Product{ID: "p", Price: price}, Quantity: qty}
}

func TestQuoteFreeShippingAboveThreshold(t *testing.T) {
	s := Quote([]model.CartItem{item(1499, 2)}, settings(), nil)

	assert.Equal(t, Summary{Subtotal: 2998, Shipping: 0, Discount: 0, Total: 2998}, s)
	assert.True(t, s.FreeShipping())
}

func TestQuoteFlatRateBelowThreshold(t *testing.T) {
	s := Quote([]model.CartItem{item(899, 1)}, settings(), nil)

	assert.Equal(t, 899.0, s.Subtotal)
	assert.Equal(t, 150.0, s.Shipping)
	assert.Equal(t, 1049.0, s.Total)
}

func TestQuoteThresholdIsInclusive(t *testing.T) {
	s := Quote([]model.CartItem{item(1000, 2)}, settings(), nil)
	assert.Zero(t, s.Shipping)
}

func TestQuoteWithCoupon(t *testing.T) {
	applied := &model.AppliedCoupon{Code: "WELCOME15", DiscountAmount: 300}
	s := Quote([]model.CartItem{item(1000, 2)}, settings(), applied)

	assert.Equal(t, 2000.0, s.Subtotal)
	assert.Equal(t, 300.0, s.Discount)
	assert.Equal(t, s.Subtotal+s.Shipping-300, s.Total)
	assert.Equal(t, "WELCOME15", s.CouponCode)
}

func TestQuoteClampsAtZero(t *testing.T) {
	applied := &model.AppliedCoupon{Code: "BIG", DiscountAmount: 5000}
	s := Quote([]model.CartItem{item(100, 1)}, settings(), applied)

	assert.Equal(t, 0.0, s.Total)
}

func TestQuoteIsPure(t *testing.T) {
	items := []model.CartItem{item(1499, 2), item(2299, 1)}
	a := Quote(items, settings(), nil)
	b := Quote(items, settings(), nil)
	assert.Equal(t, a, b)
	assert.Equal(t, 2, items[0].Quantity)
}

func TestQuoteEmptyCart(t *testing.T) {
	s := Quote(nil, settings(), nil)
	assert.Equal(t, 0.0, s.Subtotal)
	assert.Equal(t, 150.0, s.Shipping)
}
