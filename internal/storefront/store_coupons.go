package storefront

import (
	"context"
	"strings"

	"github.com/vancy-storefront/server/internal/storefront/coupons"
	"github.com/vancy-storefront/server/internal/storefront/model"
	logx "github.com/vancy-storefront/server/pkg/logger"
)

func (s *Store) Coupons() []model.Coupon {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.Coupon{}, s.coupons...)
}

// AddCoupon validates c, upper-cases its code and stores it.
func (s *Store) AddCoupon(ctx context.Context, c model.Coupon) (model.Coupon, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	prepared, err := coupons.Prepare(c, s.coupons)
	if err != nil {
		return model.Coupon{}, err
	}
	next := append(append([]model.Coupon{}, s.coupons...), prepared)
	err = s.persist(ctx, map[model.Entry]any{model.EntryCoupons: next}, func() {
		s.coupons = next
		logx.Info().Str("code", prepared.Code).Str("type", string(prepared.DiscountType)).Float64("value", prepared.Value).Msg("coupon created")
	})
	if err != nil {
		return model.Coupon{}, err
	}
	return prepared, nil
}

// DeleteCoupon removes the coupon whose id or code matches. A removed
// coupon that is currently applied is also cleared from the checkout.
func (s *Store) DeleteCoupon(ctx context.Context, idOrCode string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var (
		next    = make([]model.Coupon, 0, len(s.coupons))
		removed string
	)
	for _, c := range s.coupons {
		if c.ID == idOrCode || strings.EqualFold(c.Code, idOrCode) {
			removed = c.Code
			continue
		}
		next = append(next, c)
	}
	if removed == "" {
		return nil
	}
	return s.persist(ctx, map[model.Entry]any{model.EntryCoupons: next}, func() {
		s.coupons = next
		if s.applied != nil && strings.EqualFold(s.applied.Code, removed) {
			s.applied = nil
		}
	})
}
