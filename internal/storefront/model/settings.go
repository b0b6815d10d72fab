package model

type RazorpayCredentials struct {
	KeyID     string `json:"keyId"`
	KeySecret string `json:"keySecret"`
}

type StripeCredentials struct {
	PublishableKey string `json:"publishableKey"`
	SecretKey      string `json:"secretKey"`
}

type DelhiveryCredentials struct {
	APIToken string `json:"apiToken"`
}

type BluedartCredentials struct {
	LicenseKey string `json:"licenseKey"`
	LoginID    string `json:"loginId"`
}

// APICredentials are placeholders for third-party integrations; nothing in
// the core calls these services.
type APICredentials struct {
	Razorpay  *RazorpayCredentials  `json:"razorpay,omitempty"`
	Stripe    *StripeCredentials    `json:"stripe,omitempty"`
	Delhivery *DelhiveryCredentials `json:"delhivery,omitempty"`
	Bluedart  *BluedartCredentials  `json:"bluedart,omitempty"`
}

// StoreSettings is the process-wide store configuration edited by admins.
type StoreSettings struct {
	EnabledPaymentGateways []string       `json:"enabledPaymentGateways"`
	DeliveryPartners       []string       `json:"deliveryPartners"`
	FreeShippingThreshold  float64        `json:"freeShippingThreshold"`
	FlatShippingRate       float64        `json:"flatShippingRate"`
	APICredentials         APICredentials `json:"apiCredentials"`
}

// SettingsUpdate is a partial update of StoreSettings; nil fields are kept.
type SettingsUpdate struct {
	EnabledPaymentGateways []string
	DeliveryPartners       []string
	FreeShippingThreshold  *float64
	FlatShippingRate       *float64
	APICredentials         *APICredentials
}

// Apply merges u into s.
func (u SettingsUpdate) Apply(s StoreSettings) StoreSettings {
	if u.EnabledPaymentGateways != nil {
		s.EnabledPaymentGateways = append([]string(nil), u.EnabledPaymentGateways...)
	}
	if u.DeliveryPartners != nil {
		s.DeliveryPartners = append([]string(nil), u.DeliveryPartners...)
	}
	if u.FreeShippingThreshold != nil {
		s.FreeShippingThreshold = *u.FreeShippingThreshold
	}
	if u.FlatShippingRate != nil {
		s.FlatShippingRate = *u.FlatShippingRate
	}
	if u.APICredentials != nil {
		s.APICredentials = *u.APICredentials
	}
	return s
}

// Clone deep-copies the settings.
func (s StoreSettings) Clone() StoreSettings {
	s.EnabledPaymentGateways = cloneStrings(s.EnabledPaymentGateways)
	s.DeliveryPartners = cloneStrings(s.DeliveryPartners)
	c := s.APICredentials
	if c.Razorpay != nil {
		v := *c.Razorpay
		c.Razorpay = &v
	}
	if c.Stripe != nil {
		v := *c.Stripe
		c.Stripe = &v
	}
	if c.Delhivery != nil {
		v := *c.Delhivery
		c.Delhivery = &v
	}
	if c.Bluedart != nil {
		v := *c.Bluedart
		c.Bluedart = &v
	}
	s.APICredentials = c
	return s
}
