package storefront

import (
	"context"

	errx "github.com/vancy-storefront/server/internal/core/error"
	"github.com/vancy-storefront/server/internal/storefront/model"
	"github.com/vancy-storefront/server/internal/storefront/orders"
	"github.com/vancy-storefront/server/internal/storefront/pricing"
	logx "github.com/vancy-storefront/server/pkg/logger"
)

// PlaceOrder turns the cart into a Pending order shipped to address with the
// given discount. Cart lines and the address are snapshotted. The order is
// prepended to the buyer's and the admin's lists, the cart and applied coupon
// are cleared, and all three entries are saved together.
func (s *Store) PlaceOrder(ctx context.Context, address model.Address, discount float64, couponCode string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var applied *model.AppliedCoupon
	if couponCode != "" || discount != 0 {
		applied = &model.AppliedCoupon{Code: couponCode, DiscountAmount: discount}
	}
	return s.placeLocked(ctx, address, applied)
}

// Checkout re-validates the applied coupon against the current cart and
// places the order.
func (s *Store) Checkout(ctx context.Context, address model.Address) (model.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	applied := s.applied
	if applied != nil && !s.cart.IsEmpty() {
		fresh, err := s.engine.Apply(s.coupons, applied.Code, s.cart.Subtotal(), s.now())
		if err != nil {
			return model.Order{}, err
		}
		applied = &fresh
	}

	id, err := s.placeLocked(ctx, address, applied)
	if err != nil {
		return model.Order{}, err
	}
	o, _ := orders.Find(s.allOrders, id)
	return o, nil
}

func (s *Store) placeLocked(ctx context.Context, address model.Address, applied *model.AppliedCoupon) (string, error) {
	if s.cart.IsEmpty() {
		return "", errx.Domain(errx.ErrEmptyCart, "Your bag is empty.")
	}

	items := s.cart.Items()
	draft := orders.Draft{
		Items:   items,
		Summary: pricing.Quote(items, s.settings, applied),
		Address: &address,
	}
	if s.user != nil {
		draft.CustomerEmail = s.user.Email
		draft.CustomerName = s.user.Name
	}

	id := orders.UniqueID(func(id string) bool {
		_, taken := orders.Find(s.allOrders, id)
		return taken
	})
	order := orders.New(id, draft, s.now())

	nextOrders := append([]model.Order{order}, model.CloneOrders(s.orders)...)
	nextAll := append([]model.Order{order.Clone()}, model.CloneOrders(s.allOrders)...)

	err := s.persist(ctx, map[model.Entry]any{
		model.EntryOrders:    nextOrders,
		model.EntryAllOrders: nextAll,
		model.EntryCart:      []model.CartItem{},
	}, func() {
		s.orders = nextOrders
		s.allOrders = nextAll
		s.cart = s.cart.Clear()
		s.applied = nil
	})
	if err != nil {
		return "", err
	}

	logx.Info().
		Str("order_id", id).
		Str("customer", order.CustomerEmail).
		Float64("total", order.Total).
		Str("coupon", order.CouponCode).
		Int("lines", len(order.Items)).
		Msg("order placed")
	return id, nil
}

// UpdateOrderStatus sets the status of order id in both order lists. Unknown
// ids are ignored. Under the strict policy illegal moves are rejected.
func (s *Store) UpdateOrderStatus(ctx context.Context, id string, status model.OrderStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.setStatusLocked(ctx, id, status)
}

// RequestRefund moves the order to Refund Requested. Only the strict policy
// requires the order to be Delivered first.
func (s *Store) RequestRefund(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.setStatusLocked(ctx, id, model.StatusRefundRequested)
}

func (s *Store) setStatusLocked(ctx context.Context, id string, status model.OrderStatus) error {
	current, ok := orders.Find(s.allOrders, id)
	if !ok {
		current, ok = orders.Find(s.orders, id)
	}
	if !ok {
		logx.Debug().Str("order_id", id).Msg("status update ignored: order not found")
		return nil
	}
	if err := orders.Validate(s.policy, current.Status, status); err != nil {
		return err
	}

	nextOrders, _ := orders.SetStatus(s.orders, id, status)
	nextAll, _ := orders.SetStatus(s.allOrders, id, status)
	return s.persist(ctx, map[model.Entry]any{
		model.EntryOrders:    nextOrders,
		model.EntryAllOrders: nextAll,
	}, func() {
		s.orders = nextOrders
		s.allOrders = nextAll
		logx.Info().Str("order_id", id).Str("from", current.Status.String()).Str("to", status.String()).Msg("order status updated")
	})
}

// Orders returns the session's orders, newest first.
func (s *Store) Orders() []model.Order {
	s.mu.Lock()
	defer s.mu.Unlock()
	return model.CloneOrders(s.orders)
}

// AllOrders returns every order, newest first.
func (s *Store) AllOrders() []model.Order {
	s.mu.Lock()
	defer s.mu.Unlock()
	return model.CloneOrders(s.allOrders)
}

// Order looks an order up in the admin list.
func (s *Store) Order(id string) (model.Order, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if o, ok := orders.Find(s.allOrders, id); ok {
		return o, true
	}
	return orders.Find(s.orders, id)
}
