package storefront

import (
	"context"

	errx "github.com/vancy-storefront/server/internal/core/error"
	"github.com/vancy-storefront/server/internal/storefront/catalog"
	"github.com/vancy-storefront/server/internal/storefront/model"
	"github.com/vancy-storefront/server/internal/storefront/pricing"
	logx "github.com/vancy-storefront/server/pkg/logger"
)

// Cart returns a copy of the cart lines.
func (s *Store) Cart() []model.CartItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart.Items()
}

// CartCount is the number of units in the cart.
func (s *Store) CartCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart.Count()
}

// AddToCart adds one unit of p in size and color. A line with the same
// product and size gains a unit and keeps its color.
func (s *Store) AddToCart(ctx context.Context, p model.Product, size, color string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.cart.Add(p, size, color)
	return s.persist(ctx, map[model.Entry]any{model.EntryCart: next.Items()}, func() {
		s.cart = next
		logx.Debug().Str("product_id", p.ID).Str("size", size).Int("lines", next.Len()).Msg("added to cart")
	})
}

// AddProductToCart looks productID up in the catalog and adds it.
func (s *Store) AddProductToCart(ctx context.Context, productID, size, color string) error {
	s.mu.Lock()
	p, ok := catalog.Get(s.products, productID)
	s.mu.Unlock()
	if !ok {
		return errx.Domainf(errx.ErrNotFound, "Product %s not found.", productID)
	}
	return s.AddToCart(ctx, p, size, color)
}

// RemoveFromCart drops the line at index; out of range is a no-op.
func (s *Store) RemoveFromCart(ctx context.Context, index int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, ok := s.cart.Remove(index)
	if !ok {
		logx.Debug().Int("index", index).Msg("remove from cart ignored: index out of range")
		return nil
	}
	return s.persist(ctx, map[model.Entry]any{model.EntryCart: next.Items()}, func() {
		s.cart = next
	})
}

// UpdateQuantity adds delta to the line at index. Changes that would leave
// the line below one unit, and bad indexes, leave the cart unchanged.
func (s *Store) UpdateQuantity(ctx context.Context, index, delta int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, ok := s.cart.UpdateQuantity(index, delta)
	if !ok {
		logx.Debug().Int("index", index).Int("delta", delta).Msg("quantity update rejected")
		return nil
	}
	return s.persist(ctx, map[model.Entry]any{model.EntryCart: next.Items()}, func() {
		s.cart = next
	})
}

// ApplyCoupon validates code against the current subtotal and replaces any
// previously applied coupon. On failure the previous coupon stays applied.
func (s *Store) ApplyCoupon(code string) (model.AppliedCoupon, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	applied, err := s.engine.Apply(s.coupons, code, s.cart.Subtotal(), s.now())
	if err != nil {
		logx.Debug().Str("code", code).Err(err).Msg("coupon rejected")
		return model.AppliedCoupon{}, err
	}
	s.applied = &applied
	return applied, nil
}

// RemoveCoupon clears the applied coupon.
func (s *Store) RemoveCoupon() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.applied = nil
}

// AppliedCoupon returns the coupon applied to the checkout, if any.
func (s *Store) AppliedCoupon() (model.AppliedCoupon, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.applied == nil {
		return model.AppliedCoupon{}, false
	}
	return *s.applied, true
}

// Quote prices the cart with the applied coupon and current settings.
func (s *Store) Quote() pricing.Summary {
	s.mu.Lock()
	defer s.mu.Unlock()
	return pricing.Quote(s.cart.Items(), s.settings, s.applied)
}
