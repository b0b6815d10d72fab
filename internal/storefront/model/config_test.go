package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreConfigPolicy(t *testing.T) {
	assert.Equal(t, PolicyStrict, StoreConfig{TransitionPolicy: " Strict "}.Policy())
	assert.Equal(t, PolicyOpen, StoreConfig{TransitionPolicy: "open"}.Policy())
	assert.Equal(t, PolicyOpen, StoreConfig{TransitionPolicy: "whatever"}.Policy())
}

func TestStoreConfigTTL(t *testing.T) {
	assert.Equal(t, 30*time.Minute, StoreConfig{SessionTTL: "30m"}.TTL())
	assert.Zero(t, StoreConfig{SessionTTL: "0"}.TTL())
	assert.Zero(t, StoreConfig{SessionTTL: "soon"}.TTL())
	assert.Zero(t, StoreConfig{SessionTTL: "-5m"}.TTL())
}

func TestDefaultSettings(t *testing.T) {
	s := DefaultSettings()
	assert.Equal(t, []string{"cod"}, s.EnabledPaymentGateways)
	assert.Equal(t, []string{"BlueDart", "Delhivery"}, s.DeliveryPartners)
	assert.Equal(t, 2000.0, s.FreeShippingThreshold)
	assert.Equal(t, 150.0, s.FlatShippingRate)
	require.NotNil(t, s.APICredentials.Stripe)
}

func TestSettingsUpdateApplyLeavesOriginal(t *testing.T) {
	orig := DefaultSettings()
	rate := 99.0
	next := SettingsUpdate{FlatShippingRate: &rate, DeliveryPartners: []string{"Ekart"}}.Apply(orig.Clone())

	assert.Equal(t, 99.0, next.FlatShippingRate)
	assert.Equal(t, []string{"Ekart"}, next.DeliveryPartners)
	assert.Equal(t, 150.0, orig.FlatShippingRate)
	assert.Equal(t, []string{"BlueDart", "Delhivery"}, orig.DeliveryPartners)
}

func TestProductUpdateApply(t *testing.T) {
	p := Product{ID: "m1", Name: "Polo", Price: 1499, Sizes: []string{"M", "L"}}
	price := 1299.0
	stock := 0

	got := ProductUpdate{Price: &price, Stock: &stock}.Apply(p)

	assert.Equal(t, 1299.0, got.Price)
	assert.Equal(t, "Polo", got.Name)
	assert.False(t, got.InStock())
	got.Sizes[0] = "XS"
	assert.Equal(t, "M", p.Sizes[0], "apply must not alias the original slices")
}

func TestUserDefaultAddress(t *testing.T) {
	var nobody *User
	_, ok := nobody.DefaultAddress()
	assert.False(t, ok)

	u := &User{Addresses: []Address{{ID: "a1"}, {ID: "a2", IsDefault: true}}}
	a, ok := u.DefaultAddress()
	require.True(t, ok)
	assert.Equal(t, "a2", a.ID)
}
