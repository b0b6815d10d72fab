package storefront

import (
	"context"
	"strings"

	"github.com/vancy-storefront/server/internal/storefront/model"
	logx "github.com/vancy-storefront/server/pkg/logger"
)

func (s *Store) Settings() model.StoreSettings {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.settings.Clone()
}

// UpdateStoreSettings merges u into the settings.
func (s *Store) UpdateStoreSettings(ctx context.Context, u model.SettingsUpdate) (model.StoreSettings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := u.Apply(s.settings.Clone())
	err := s.persist(ctx, map[model.Entry]any{model.EntrySettings: next}, func() {
		s.settings = next
		logx.Info().
			Float64("free_shipping_threshold", next.FreeShippingThreshold).
			Float64("flat_shipping_rate", next.FlatShippingRate).
			Strs("gateways", next.EnabledPaymentGateways).
			Msg("store settings updated")
	})
	if err != nil {
		return model.StoreSettings{}, err
	}
	return next.Clone(), nil
}

// Stats is the admin dashboard summary.
type Stats struct {
	Revenue    float64 `json:"revenue"`
	Orders     int     `json:"orders"`
	Products   int     `json:"products"`
	Categories int     `json:"categories"`
	Coupons    int     `json:"coupons"`
	Buyers     int     `json:"buyers"`
}

// Stats sums revenue over orders that were neither cancelled nor refunded.
func (s *Store) Stats() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := Stats{
		Orders:     len(s.allOrders),
		Products:   len(s.products),
		Categories: len(s.categories),
		Coupons:    len(s.coupons),
	}
	buyers := map[string]struct{}{}
	for _, o := range s.allOrders {
		if countsAsRevenue(o.Status) {
			st.Revenue += o.Total
		}
		if o.CustomerEmail != "" {
			buyers[strings.ToLower(o.CustomerEmail)] = struct{}{}
		}
	}
	st.Buyers = len(buyers)
	return st
}

// LifetimeValue is the total a buyer has spent, matched by email.
func (s *Store) LifetimeValue(email string) float64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	var ltv float64
	for _, o := range s.allOrders {
		if strings.EqualFold(o.CustomerEmail, email) && countsAsRevenue(o.Status) {
			ltv += o.Total
		}
	}
	return ltv
}

func countsAsRevenue(st model.OrderStatus) bool {
	return st != model.StatusCancelled && st != model.StatusRefunded
}
