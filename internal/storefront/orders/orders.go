// Package orders models the order lifecycle: identifiers, snapshots and
// status transitions.
package orders

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/vancy-storefront/server/internal/storefront/model"
	"github.com/vancy-storefront/server/internal/storefront/pricing"
)

const (
	idPrefix = "ORD-"
	idLength = 9
)

// NewID returns "ORD-" followed by nine uppercase alphanumerics.
func NewID() string {
	raw := strings.ReplaceAll(uuid.NewString(), "-", "")
	return idPrefix + strings.ToUpper(raw[:idLength])
}

// UniqueID draws ids until one is not taken.
func UniqueID(taken func(string) bool) string {
	for {
		id := NewID()
		if !taken(id) {
			return id
		}
	}
}

// Draft is everything needed to place an order.
type Draft struct {
	Items         []model.CartItem
	Summary       pricing.Summary
	Address       *model.Address
	CustomerEmail string
	CustomerName  string
}

// New builds a Pending order from d. Items and the address are deep copies
// so later catalog or profile edits do not reach the order.
func New(id string, d Draft, now time.Time) model.Order {
	o := model.Order{
		ID:            id,
		Date:          now,
		Status:        model.StatusPending,
		Subtotal:      d.Summary.Subtotal,
		Shipping:      d.Summary.Shipping,
		Discount:      d.Summary.Discount,
		Total:         d.Summary.Total,
		CouponCode:    d.Summary.CouponCode,
		Items:         model.CloneItems(d.Items),
		CustomerEmail: d.CustomerEmail,
		CustomerName:  d.CustomerName,
	}
	if d.Address != nil {
		addr := *d.Address
		o.ShippingAddress = &addr
	}
	return o
}

// SetStatus returns a copy of list with the matching order's status replaced.
// found is false when no order has the id.
func SetStatus(list []model.Order, id string, status model.OrderStatus) (next []model.Order, found bool) {
	next = model.CloneOrders(list)
	for i := range next {
		if next[i].ID == id {
			next[i].Status = status
			found = true
		}
	}
	return next, found
}

// Find returns the order with id.
func Find(list []model.Order, id string) (model.Order, bool) {
	for _, o := range list {
		if o.ID == id {
			return o.Clone(), true
		}
	}
	return model.Order{}, false
}
