package model

import (
	"strings"
	"time"
)

// TransitionPolicy selects how order status changes are validated.
type TransitionPolicy string

const (
	// PolicyOpen lets any status follow any other.
	PolicyOpen TransitionPolicy = "open"
	// PolicyStrict only allows moves listed in the transition table.
	PolicyStrict TransitionPolicy = "strict"
)

// ================ Config ================
type StoreConfig struct {
	KeyPrefix           string `envconfig:"STORE_KEY_PREFIX" default:"vancy"`
	SessionTTL          string `envconfig:"STORE_SESSION_TTL" default:"0"`
	TransitionPolicy    string `envconfig:"STORE_TRANSITION_POLICY" default:"open"`
	EnforceCouponExpiry bool   `envconfig:"STORE_ENFORCE_COUPON_EXPIRY" default:"true"`
	Persistence         string `envconfig:"STORE_PERSISTENCE" default:"redis"`
	Defaults            SettingsDefaults
}

// SettingsDefaults seeds StoreSettings when nothing is persisted yet.
type SettingsDefaults struct {
	PaymentGateways       string  `envconfig:"STORE_PAYMENT_GATEWAYS" default:"cod"`
	DeliveryPartners      string  `envconfig:"STORE_DELIVERY_PARTNERS" default:"BlueDart,Delhivery"`
	FreeShippingThreshold float64 `envconfig:"STORE_FREE_SHIPPING_THRESHOLD" default:"2000"`
	FlatShippingRate      float64 `envconfig:"STORE_FLAT_SHIPPING_RATE" default:"150"`
}

// Policy returns the parsed transition policy; unknown values mean open.
func (c StoreConfig) Policy() TransitionPolicy {
	if TransitionPolicy(strings.ToLower(strings.TrimSpace(c.TransitionPolicy))) == PolicyStrict {
		return PolicyStrict
	}
	return PolicyOpen
}

// TTL parses SessionTTL. "0", empty or invalid values disable expiry.
func (c StoreConfig) TTL() time.Duration {
	d, err := time.ParseDuration(strings.TrimSpace(c.SessionTTL))
	if err != nil || d < 0 {
		return 0
	}
	return d
}

// Settings builds the default StoreSettings.
func (d SettingsDefaults) Settings() StoreSettings {
	return StoreSettings{
		EnabledPaymentGateways: splitList(d.PaymentGateways),
		DeliveryPartners:       splitList(d.DeliveryPartners),
		FreeShippingThreshold:  d.FreeShippingThreshold,
		FlatShippingRate:       d.FlatShippingRate,
		APICredentials: APICredentials{
			Razorpay:  &RazorpayCredentials{},
			Stripe:    &StripeCredentials{},
			Delhivery: &DelhiveryCredentials{},
			Bluedart:  &BluedartCredentials{},
		},
	}
}

// DefaultSettings mirrors the envconfig defaults for callers that do not load config.
func DefaultSettings() StoreSettings {
	return SettingsDefaults{
		PaymentGateways:       "cod",
		DeliveryPartners:      "BlueDart,Delhivery",
		FreeShippingThreshold: 2000,
		FlatShippingRate:      150,
	}.Settings()
}

func splitList(s string) []string {
	out := []string{}
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
