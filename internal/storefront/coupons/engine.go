// Package coupons validates coupon codes and computes discounts.
package coupons

import (
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	errx "github.com/vancy-storefront/server/internal/core/error"
	"github.com/vancy-storefront/server/internal/storefront/model"
	logx "github.com/vancy-storefront/server/pkg/logger"
)

// Engine applies coupons. With EnforceExpiry set, a coupon stops matching
// after the end of its expiry day in the engine's location.
type Engine struct {
	EnforceExpiry bool
	Location      *time.Location
}

func NewEngine(enforceExpiry bool) *Engine {
	return &Engine{EnforceExpiry: enforceExpiry, Location: time.Local}
}

// Find returns the coupon whose code matches case-insensitively.
func Find(list []model.Coupon, code string) (model.Coupon, bool) {
	code = strings.TrimSpace(code)
	for _, c := range list {
		if strings.EqualFold(c.Code, code) {
			return c, true
		}
	}
	return model.Coupon{}, false
}

// Apply checks code against list for the given subtotal. The result depends
// only on its arguments.
func (e *Engine) Apply(list []model.Coupon, code string, subtotal float64, now time.Time) (model.AppliedCoupon, error) {
	c, ok := findActive(list, code)
	if !ok {
		return model.AppliedCoupon{}, errx.Domain(errx.ErrInvalidCoupon, "Invalid coupon code.")
	}
	if e.EnforceExpiry && e.expired(c, now) {
		return model.AppliedCoupon{}, errx.Domainf(errx.ErrCouponExpired, "Coupon %s expired on %s.", c.Code, c.ExpiryDate)
	}
	if subtotal < c.MinSpend {
		return model.AppliedCoupon{}, errx.Domainf(errx.ErrMinSpendNotMet, "Minimum spend of ₹%s required.", formatAmount(c.MinSpend))
	}
	return model.AppliedCoupon{Code: c.Code, DiscountAmount: Discount(c, subtotal)}, nil
}

// Discount computes the discount c grants on subtotal.
func Discount(c model.Coupon, subtotal float64) float64 {
	switch c.DiscountType {
	case model.DiscountPercentage:
		return subtotal * c.Value / 100
	case model.DiscountFixed:
		return c.Value
	default:
		return 0
	}
}

func findActive(list []model.Coupon, code string) (model.Coupon, bool) {
	code = strings.TrimSpace(code)
	if code == "" {
		return model.Coupon{}, false
	}
	for _, c := range list {
		if c.IsActive && strings.EqualFold(c.Code, code) {
			return c, true
		}
	}
	return model.Coupon{}, false
}

func (e *Engine) expired(c model.Coupon, now time.Time) bool {
	if strings.TrimSpace(c.ExpiryDate) == "" {
		return false
	}
	loc := e.Location
	if loc == nil {
		loc = time.Local
	}
	day, err := time.ParseInLocation(model.ExpiryLayout, strings.TrimSpace(c.ExpiryDate), loc)
	if err != nil {
		logx.Warn().Str("code", c.Code).Str("expiry_date", c.ExpiryDate).Msg("unparseable coupon expiry; treating as no expiry")
		return false
	}
	return !now.In(loc).Before(day.AddDate(0, 0, 1))
}

// Prepare normalises and validates a new coupon against the existing list and
// assigns its id.
func Prepare(c model.Coupon, existing []model.Coupon) (model.Coupon, error) {
	c.Code = strings.ToUpper(strings.TrimSpace(c.Code))
	c.ExpiryDate = strings.TrimSpace(c.ExpiryDate)

	switch {
	case c.Code == "":
		return c, errx.Domain(errx.ErrInvalidCouponSpec, "Coupon code is required.")
	case c.DiscountType != model.DiscountPercentage && c.DiscountType != model.DiscountFixed:
		return c, errx.Domainf(errx.ErrInvalidCouponSpec, "Unknown discount type %q.", c.DiscountType)
	case c.Value <= 0:
		return c, errx.Domain(errx.ErrInvalidCouponSpec, "Discount value must be positive.")
	case c.DiscountType == model.DiscountPercentage && c.Value > 100:
		return c, errx.Domain(errx.ErrInvalidCouponSpec, "Percentage discount cannot exceed 100.")
	case c.MinSpend < 0:
		return c, errx.Domain(errx.ErrInvalidCouponSpec, "Minimum spend cannot be negative.")
	}
	if c.ExpiryDate != "" {
		if _, err := time.Parse(model.ExpiryLayout, c.ExpiryDate); err != nil {
			return c, errx.Domainf(errx.ErrInvalidCouponSpec, "Expiry date must look like %s.", model.ExpiryLayout)
		}
	}
	if _, dup := Find(existing, c.Code); dup {
		return c, errx.Domainf(errx.ErrCouponExists, "Coupon %s already exists.", c.Code)
	}
	if c.ID == "" {
		c.ID = "cpn-" + uuid.NewString()
	}
	return c, nil
}

func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
