// Package pricing derives checkout totals. Nothing here is stored; callers
// recompute on every read.
package pricing

import (
	"github.com/vancy-storefront/server/internal/storefront/cart"
	"github.com/vancy-storefront/server/internal/storefront/model"
)

type Summary struct {
	Subtotal   float64 `json:"subtotal"`
	Shipping   float64 `json:"shipping"`
	Discount   float64 `json:"discount"`
	Total      float64 `json:"total"`
	CouponCode string  `json:"couponCode,omitempty"`
}

// FreeShipping reports whether the order ships free.
func (s Summary) FreeShipping() bool {
	return s.Shipping == 0
}

// Shipping is zero at or above the threshold, else the flat rate.
func Shipping(subtotal float64, settings model.StoreSettings) float64 {
	if subtotal >= settings.FreeShippingThreshold {
		return 0
	}
	return settings.FlatShippingRate
}

// Quote prices items under settings with an optional applied coupon. The
// total never goes below zero.
func Quote(items []model.CartItem, settings model.StoreSettings, applied *model.AppliedCoupon) Summary {
	s := Summary{Subtotal: cart.Subtotal(items)}
	s.Shipping = Shipping(s.Subtotal, settings)
	if applied != nil {
		s.Discount = applied.DiscountAmount
		s.CouponCode = applied.Code
	}
	s.Total = Total(s.Subtotal, s.Shipping, s.Discount)
	return s
}

// Total is subtotal + shipping - discount, clamped at zero.
func Total(subtotal, shipping, discount float64) float64 {
	t := subtotal + shipping - discount
	if t < 0 {
		return 0
	}
	return t
}
