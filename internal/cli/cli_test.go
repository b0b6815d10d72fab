package cli

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	errx "github.com/vancy-storefront/server/internal/core/error"
	"github.com/vancy-storefront/server/internal/storefront"
	"github.com/vancy-storefront/server/internal/storefront/model"
	"github.com/vancy-storefront/server/internal/storefront/repo"
	"github.com/vancy-storefront/server/internal/stylist"
)

func newApp(t *testing.T) (*App, *repo.MemoryStateRepository) {
	t.Helper()
	r := repo.NewMemoryStateRepository()
	store, err := storefront.New(context.Background(), r, storefront.Options{})
	require.NoError(t, err)
	return &App{Store: store, Stylist: stylist.Offline()}, r
}

func run(t *testing.T, app *App, args ...string) (string, error) {
	t.Helper()
	var buf bytes.Buffer
	root := NewRootCommand(app)
	root.SetOut(&buf)
	root.SetErr(&buf)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return buf.String(), err
}

func TestCatalogSearch(t *testing.T) {
	app, _ := newApp(t)

	got, err := run(t, app, "catalog", "search", "hoodie")
	require.NoError(t, err)
	assert.Contains(t, got, "Overstated Hoodie - Sand")
	assert.NotContains(t, got, "Joggers")

	got, err = run(t, app, "catalog", "search", "linen")
	require.NoError(t, err)
	assert.Equal(t, "No products found.\n", got)
}

func TestCartAndCheckout(t *testing.T) {
	app, _ := newApp(t)

	_, err := run(t, app, "login", "meera@example.com")
	require.NoError(t, err)

	_, err = run(t, app, "cart", "add", "m1", "--size", "M", "--color", "Navy")
	require.NoError(t, err)
	got, err := run(t, app, "cart", "add", "m3", "--size", "L", "--color", "White")
	require.NoError(t, err)
	assert.Equal(t, "Cart has 2 items.\n", got)

	got, err = run(t, app, "cart", "show")
	require.NoError(t, err)
	assert.Contains(t, got, "1. Classic Pique Polo - Navy (M, Navy) x1  ₹1499")
	assert.Contains(t, got, "Shipping: FREE")
	assert.Contains(t, got, "Total:    ₹2398")

	_, err = run(t, app, "cart", "qty", "2", "-1")
	require.NoError(t, err)
	assert.Equal(t, 1, app.Store.Cart()[1].Quantity)

	got, err = run(t, app, "checkout")
	require.NoError(t, err)
	assert.Regexp(t, `^Order ORD-[A-Z0-9]{9} placed\. Total ₹2398\.`, got)
	assert.Empty(t, app.Store.Cart())

	o := app.Store.Orders()[0]
	require.NotNil(t, o.ShippingAddress)
	assert.Equal(t, "Mumbai", o.ShippingAddress.City)
}

func TestCheckoutWithCoupon(t *testing.T) {
	app, _ := newApp(t)
	_, err := run(t, app, "coupon", "add", "welcome200", "--type", "fixed", "--value", "200")
	require.NoError(t, err)
	_, err = run(t, app, "cart", "add", "m2")
	require.NoError(t, err)

	got, err := run(t, app, "checkout", "--coupon", "Welcome200", "--street", "1 MG Road", "--city", "Pune", "--zip", "411001")
	require.NoError(t, err)
	assert.Contains(t, got, "Total ₹2099.")
	assert.Equal(t, "WELCOME200", app.Store.AllOrders()[0].CouponCode)
}

func TestCheckoutErrors(t *testing.T) {
	app, _ := newApp(t)

	_, err := run(t, app, "checkout")
	require.Error(t, err)
	assert.ErrorIs(t, err, errx.ErrInvalidInput)

	_, err = run(t, app, "checkout", "--street", "1 MG Road", "--city", "Pune", "--zip", "411001")
	require.Error(t, err)
	assert.ErrorIs(t, err, errx.ErrEmptyCart)
	assert.Equal(t, "Your bag is empty.", errx.MessageOf(err))

	_, err = run(t, app, "cart", "remove", "0")
	assert.Error(t, err)
}

func TestOrderStatusAndRefund(t *testing.T) {
	app, _ := newApp(t)
	_, err := run(t, app, "cart", "add", "m4")
	require.NoError(t, err)
	_, err = run(t, app, "checkout", "--street", "1 MG Road", "--city", "Pune", "--zip", "411001")
	require.NoError(t, err)
	id := app.Store.AllOrders()[0].ID

	_, err = run(t, app, "orders", "status", id, "out", "for", "delivery")
	require.NoError(t, err)
	o, _ := app.Store.Order(id)
	assert.Equal(t, model.StatusOutForDelivery, o.Status)

	_, err = run(t, app, "orders", "status", id, "Teleported")
	assert.ErrorIs(t, err, errx.ErrUnknownStatus)

	_, err = run(t, app, "orders", "refund", id)
	require.NoError(t, err)
	o, _ = app.Store.Order(id)
	assert.Equal(t, model.StatusRefundRequested, o.Status)

	got, err := run(t, app, "orders", "list", "--all")
	require.NoError(t, err)
	assert.Contains(t, got, id)
	assert.Contains(t, got, "Refund Requested")
}

func TestSettingsAndStats(t *testing.T) {
	app, r := newApp(t)

	_, err := run(t, app, "settings", "set-shipping", "--threshold", "3000")
	require.NoError(t, err)
	s := app.Store.Settings()
	assert.Equal(t, 3000.0, s.FreeShippingThreshold)
	assert.Equal(t, 150.0, s.FlatShippingRate)
	_, persisted := r.Raw(model.EntrySettings)
	assert.True(t, persisted)

	got, err := run(t, app, "stats")
	require.NoError(t, err)
	assert.Contains(t, got, "Revenue:    ₹0")
	assert.Contains(t, got, "Products:   6")
}

func TestWishlistToggle(t *testing.T) {
	app, _ := newApp(t)

	got, err := run(t, app, "wishlist", "toggle", "m5")
	require.NoError(t, err)
	assert.Equal(t, "Added m5 to wishlist.\n", got)

	got, err = run(t, app, "wishlist")
	require.NoError(t, err)
	assert.Contains(t, got, "Overstated Hoodie - Sand")

	got, err = run(t, app, "wishlist", "toggle", "m5")
	require.NoError(t, err)
	assert.Equal(t, "Removed m5 from wishlist.\n", got)
}

func TestStylistFallbacks(t *testing.T) {
	app, _ := newApp(t)

	got, err := run(t, app, "stylist", "lookbook", "summer", "brunch")
	require.NoError(t, err)
	assert.Equal(t, "Vibe:   Modern Essential\nItems:  Polo T-Shirt + Chino Shorts\nReason: Classic summer comfort.\n", got)

	got, err = run(t, app, "stylist", "recommend", "tennis")
	require.NoError(t, err)
	assert.Equal(t, "No recommendations right now.\n", got)
}
