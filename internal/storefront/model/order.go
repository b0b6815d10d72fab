package model

import "time"

// OrderStatus is the fulfilment state of an order ("manifest" in the admin console).
type OrderStatus string

const (
	StatusPending         OrderStatus = "Pending"
	StatusPaymentVerified OrderStatus = "Payment Verified"
	StatusProcessing      OrderStatus = "Processing"
	StatusPacked          OrderStatus = "Packed"
	StatusAwaitingPickup  OrderStatus = "Awaiting Pickup"
	StatusShipped         OrderStatus = "Shipped"
	StatusInTransit       OrderStatus = "In Transit"
	StatusOutForDelivery  OrderStatus = "Out for Delivery"
	StatusDelivered       OrderStatus = "Delivered"
	StatusCancelled       OrderStatus = "Cancelled"
	StatusRefundRequested OrderStatus = "Refund Requested"
	StatusRefunded        OrderStatus = "Refunded"
)

func (s OrderStatus) String() string {
	return string(s)
}

// Order is immutable after placement except for Status. Items and
// ShippingAddress are snapshots.
type Order struct {
	ID              string      `json:"id"`
	Date            time.Time   `json:"date"`
	Status          OrderStatus `json:"status"`
	Subtotal        float64     `json:"subtotal"`
	Shipping        float64     `json:"shipping"`
	Discount        float64     `json:"discount"`
	Total           float64     `json:"total"`
	CouponCode      string      `json:"couponCode,omitempty"`
	Items           []CartItem  `json:"items"`
	CustomerEmail   string      `json:"customerEmail,omitempty"`
	CustomerName    string      `json:"customerName,omitempty"`
	ShippingAddress *Address    `json:"shippingAddress,omitempty"`
}

// Clone deep-copies the order.
func (o Order) Clone() Order {
	o.Items = CloneItems(o.Items)
	if o.ShippingAddress != nil {
		addr := *o.ShippingAddress
		o.ShippingAddress = &addr
	}
	return o
}

// CloneOrders deep-copies a slice of orders.
func CloneOrders(orders []Order) []Order {
	if orders == nil {
		return nil
	}
	out := make([]Order, len(orders))
	for i, o := range orders {
		out[i] = o.Clone()
	}
	return out
}
