package storefront

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	errx "github.com/vancy-storefront/server/internal/core/error"
	"github.com/vancy-storefront/server/internal/storefront/catalog"
	"github.com/vancy-storefront/server/internal/storefront/model"
	"github.com/vancy-storefront/server/internal/storefront/repo"
)

var fixedNow = time.Date(2026, 10, 16, 10, 30, 0, 0, time.UTC)

var home = model.Address{ID: "a1", Label: "Home", Street: "123 Luxury Lane", City: "Mumbai", Zip: "400001", IsDefault: true}

func newStore(t *testing.T, r model.StateRepository, policy model.TransitionPolicy) *Store {
	t.Helper()
	s, err := New(context.Background(), r, Options{
		Policy:              policy,
		EnforceCouponExpiry: true,
		Clock:               func() time.Time { return fixedNow },
	})
	require.NoError(t, err)
	return s
}

func addCoupons(t *testing.T, s *Store) {
	t.Helper()
	ctx := context.Background()
	_, err := s.AddCoupon(ctx, model.Coupon{Code: "welcome15", DiscountType: model.DiscountPercentage, Value: 15, IsActive: true})
	require.NoError(t, err)
	_, err = s.AddCoupon(ctx, model.Coupon{Code: "FLAT200", DiscountType: model.DiscountFixed, Value: 200, MinSpend: 1500, IsActive: true})
	require.NoError(t, err)
	_, err = s.AddCoupon(ctx, model.Coupon{Code: "HUGE", DiscountType: model.DiscountFixed, Value: 100000, IsActive: true})
	require.NoError(t, err)
}

func TestNewSeedsCatalogAndSettings(t *testing.T) {
	s := newStore(t, repo.NewMemoryStateRepository(), "")

	assert.Len(t, s.Products(), 6)
	assert.Len(t, s.Categories(), 6)
	assert.Equal(t, model.DefaultSettings(), s.Settings())
	assert.Equal(t, model.RoleBuyer, s.Role())
	assert.Nil(t, s.User())
	assert.Empty(t, s.Cart())
}

func TestNewRejectsNilRepository(t *testing.T) {
	_, err := New(context.Background(), nil, Options{})
	require.Error(t, err)
}

func TestCartScenarioFreeShipping(t *testing.T) {
	ctx := context.Background()
	s := newStore(t, repo.NewMemoryStateRepository(), "")

	require.NoError(t, s.AddProductToCart(ctx, "m1", "M", "Navy"))
	require.NoError(t, s.AddProductToCart(ctx, "m1", "M", "White"))

	cart := s.Cart()
	require.Len(t, cart, 1)
	assert.Equal(t, 2, cart[0].Quantity)
	assert.Equal(t, "Navy", cart[0].SelectedColor)

	q := s.Quote()
	assert.Equal(t, 2998.0, q.Subtotal)
	assert.Equal(t, 0.0, q.Shipping)
	assert.Equal(t, 2998.0, q.Total)
	assert.Equal(t, 2, s.CartCount())
}

func TestAddProductToCartUnknown(t *testing.T) {
	s := newStore(t, repo.NewMemoryStateRepository(), "")
	err := s.AddProductToCart(context.Background(), "nope", "M", "Navy")
	assert.True(t, errors.Is(err, errx.ErrNotFound))
	assert.Empty(t, s.Cart())
}

func TestUpdateQuantityAndRemove(t *testing.T) {
	ctx := context.Background()
	s := newStore(t, repo.NewMemoryStateRepository(), "")
	require.NoError(t, s.AddProductToCart(ctx, "m1", "M", "Navy"))
	require.NoError(t, s.AddProductToCart(ctx, "m3", "L", "Olive"))

	require.NoError(t, s.UpdateQuantity(ctx, 0, 2))
	assert.Equal(t, 3, s.Cart()[0].Quantity)

	before := s.Cart()
	require.NoError(t, s.UpdateQuantity(ctx, 0, -5))
	assert.Equal(t, before, s.Cart())
	require.NoError(t, s.UpdateQuantity(ctx, 7, 1))
	assert.Equal(t, before, s.Cart())

	require.NoError(t, s.RemoveFromCart(ctx, 9))
	assert.Len(t, s.Cart(), 2)
	require.NoError(t, s.RemoveFromCart(ctx, 0))
	require.Len(t, s.Cart(), 1)
	assert.Equal(t, "m3", s.Cart()[0].Product.ID)
}

func TestApplyCoupon(t *testing.T) {
	ctx := context.Background()
	s := newStore(t, repo.NewMemoryStateRepository(), "")
	addCoupons(t, s)

	// subtotal 899 < 1500
	require.NoError(t, s.AddProductToCart(ctx, "m3", "M", "White"))
	_, err := s.ApplyCoupon("flat200")
	assert.True(t, errors.Is(err, errx.ErrMinSpendNotMet))
	_, ok := s.AppliedCoupon()
	assert.False(t, ok)

	_, err = s.ApplyCoupon("BOGUS")
	assert.True(t, errors.Is(err, errx.ErrInvalidCoupon))

	// subtotal 2000 with 15% off
	require.NoError(t, s.RemoveFromCart(ctx, 0))
	require.NoError(t, s.AddToCart(ctx, model.Product{ID: "x", Price: 1000}, "M", "Black"))
	require.NoError(t, s.UpdateQuantity(ctx, 0, 1))
	applied, err := s.ApplyCoupon("Welcome15")
	require.NoError(t, err)
	assert.Equal(t, 300.0, applied.DiscountAmount)

	q := s.Quote()
	assert.Equal(t, 2000.0, q.Subtotal)
	assert.Equal(t, q.Subtotal+q.Shipping-300, q.Total)

	// a second coupon replaces the first
	_, err = s.ApplyCoupon("FLAT200")
	require.NoError(t, err)
	got, _ := s.AppliedCoupon()
	assert.Equal(t, "FLAT200", got.Code)

	s.RemoveCoupon()
	assert.Equal(t, 0.0, s.Quote().Discount)
}

func TestTotalClampedAtZero(t *testing.T) {
	ctx := context.Background()
	s := newStore(t, repo.NewMemoryStateRepository(), "")
	addCoupons(t, s)
	require.NoError(t, s.AddProductToCart(ctx, "m3", "M", "White"))

	_, err := s.ApplyCoupon("HUGE")
	require.NoError(t, err)
	assert.Equal(t, 0.0, s.Quote().Total)
}

func TestPlaceOrderEmptyCart(t *testing.T) {
	ctx := context.Background()
	s := newStore(t, repo.NewMemoryStateRepository(), "")

	_, err := s.PlaceOrder(ctx, home, 0, "")
	assert.True(t, errors.Is(err, errx.ErrEmptyCart))
	assert.Empty(t, s.Orders())
	assert.Empty(t, s.AllOrders())
}

func TestPlaceOrderSnapshotIsolation(t *testing.T) {
	ctx := context.Background()
	s := newStore(t, repo.NewMemoryStateRepository(), "")
	_, err := s.Login(ctx, "rohan@example.com", "secret")
	require.NoError(t, err)

	require.NoError(t, s.AddProductToCart(ctx, "m1", "M", "Navy"))
	require.NoError(t, s.AddProductToCart(ctx, "m1", "M", "Navy"))
	cartAtCall := s.Cart()
	addr := home

	id, err := s.PlaceOrder(ctx, addr, 0, "")
	require.NoError(t, err)
	assert.Regexp(t, `^ORD-[A-Z0-9]{9}$`, id)
	assert.Empty(t, s.Cart())

	price := 1.0
	require.NoError(t, s.UpdateProduct(ctx, "m1", model.ProductUpdate{Price: &price}))
	addr.Street = "changed"

	o, ok := s.Order(id)
	require.True(t, ok)
	if diff := cmp.Diff(cartAtCall, o.Items); diff != "" {
		t.Fatalf("order items changed after placement (-want +got):\n%s", diff)
	}
	assert.Equal(t, home, *o.ShippingAddress)
	assert.Equal(t, 2998.0, o.Total)
	assert.Equal(t, model.StatusPending, o.Status)
	assert.Equal(t, fixedNow, o.Date)
	assert.Equal(t, "rohan@example.com", o.CustomerEmail)
	assert.Equal(t, "rohan", o.CustomerName)

	require.Len(t, s.Orders(), 1)
	require.Len(t, s.AllOrders(), 1)
	assert.Equal(t, id, s.Orders()[0].ID)
}

func TestPlaceOrderPrependsAndRecordsDiscount(t *testing.T) {
	ctx := context.Background()
	s := newStore(t, repo.NewMemoryStateRepository(), "")

	require.NoError(t, s.AddProductToCart(ctx, "m3", "M", "White"))
	first, err := s.PlaceOrder(ctx, home, 0, "")
	require.NoError(t, err)

	require.NoError(t, s.AddProductToCart(ctx, "m2", "L", "Grey"))
	second, err := s.PlaceOrder(ctx, home, 200, "FLAT200")
	require.NoError(t, err)

	all := s.AllOrders()
	require.Len(t, all, 2)
	assert.Equal(t, second, all[0].ID)
	assert.Equal(t, first, all[1].ID)
	assert.Equal(t, 200.0, all[0].Discount)
	assert.Equal(t, "FLAT200", all[0].CouponCode)
	assert.Equal(t, 2299.0-200.0, all[0].Total)
	assert.Equal(t, 899.0+150.0, all[1].Total)
}

func TestCheckoutRevalidatesCoupon(t *testing.T) {
	ctx := context.Background()
	s := newStore(t, repo.NewMemoryStateRepository(), "")
	addCoupons(t, s)

	require.NoError(t, s.AddProductToCart(ctx, "m2", "M", "Grey"))
	_, err := s.ApplyCoupon("FLAT200")
	require.NoError(t, err)

	// dropping below min spend after applying
	require.NoError(t, s.RemoveFromCart(ctx, 0))
	require.NoError(t, s.AddProductToCart(ctx, "m3", "M", "White"))
	_, err = s.Checkout(ctx, home)
	assert.True(t, errors.Is(err, errx.ErrMinSpendNotMet))
	assert.Empty(t, s.AllOrders())

	require.NoError(t, s.AddProductToCart(ctx, "m2", "M", "Grey"))
	o, err := s.Checkout(ctx, home)
	require.NoError(t, err)
	assert.Equal(t, "FLAT200", o.CouponCode)
	assert.Equal(t, 899.0+2299.0, o.Subtotal)
	assert.Equal(t, 0.0, o.Shipping)
	assert.Equal(t, 899.0+2299.0-200.0, o.Total)
	_, applied := s.AppliedCoupon()
	assert.False(t, applied)
}

func TestUpdateOrderStatusOpenPolicy(t *testing.T) {
	ctx := context.Background()
	s := newStore(t, repo.NewMemoryStateRepository(), model.PolicyOpen)
	require.NoError(t, s.AddProductToCart(ctx, "m1", "M", "Navy"))
	id, err := s.PlaceOrder(ctx, home, 0, "")
	require.NoError(t, err)

	before := s.AllOrders()
	require.NoError(t, s.UpdateOrderStatus(ctx, "nonexistent-id", model.StatusDelivered))
	assert.Equal(t, before, s.AllOrders())

	require.NoError(t, s.UpdateOrderStatus(ctx, id, model.StatusShipped))
	o, _ := s.Order(id)
	assert.Equal(t, model.StatusShipped, o.Status)
	assert.Equal(t, model.StatusShipped, s.Orders()[0].Status)

	// open policy: anything goes, including a refund before delivery
	require.NoError(t, s.UpdateOrderStatus(ctx, id, model.StatusPending))
	require.NoError(t, s.RequestRefund(ctx, id))
	o, _ = s.Order(id)
	assert.Equal(t, model.StatusRefundRequested, o.Status)

	err = s.UpdateOrderStatus(ctx, id, "Teleported")
	assert.True(t, errors.Is(err, errx.ErrUnknownStatus))
}

func TestUpdateOrderStatusStrictPolicy(t *testing.T) {
	ctx := context.Background()
	s := newStore(t, repo.NewMemoryStateRepository(), model.PolicyStrict)
	require.NoError(t, s.AddProductToCart(ctx, "m1", "M", "Navy"))
	id, err := s.PlaceOrder(ctx, home, 0, "")
	require.NoError(t, err)

	err = s.RequestRefund(ctx, id)
	assert.True(t, errors.Is(err, errx.ErrIllegalTransition))

	require.NoError(t, s.UpdateOrderStatus(ctx, id, model.StatusShipped))
	err = s.UpdateOrderStatus(ctx, id, model.StatusPacked)
	assert.True(t, errors.Is(err, errx.ErrIllegalTransition))

	require.NoError(t, s.UpdateOrderStatus(ctx, id, model.StatusDelivered))
	require.NoError(t, s.RequestRefund(ctx, id))
	require.NoError(t, s.UpdateOrderStatus(ctx, id, model.StatusRefunded))

	o, _ := s.Order(id)
	assert.Equal(t, model.StatusRefunded, o.Status)
}

func TestFailedSaveLeavesStateUnchanged(t *testing.T) {
	ctx := context.Background()
	r := repo.NewMemoryStateRepository()
	s := newStore(t, r, "")
	require.NoError(t, s.AddProductToCart(ctx, "m1", "M", "Navy"))

	r.FailSaves = errors.New("redis down")

	assert.Error(t, s.AddProductToCart(ctx, "m2", "M", "Grey"))
	_, err := s.PlaceOrder(ctx, home, 0, "")
	assert.Error(t, err)
	_, err = s.ToggleWishlist(ctx, "m1")
	assert.Error(t, err)

	assert.Len(t, s.Cart(), 1)
	assert.Empty(t, s.AllOrders())
	assert.Empty(t, s.Wishlist())
}

func TestStateSurvivesReload(t *testing.T) {
	ctx := context.Background()
	r := repo.NewMemoryStateRepository()
	s := newStore(t, r, "")
	addCoupons(t, s)

	_, err := s.Login(ctx, "admin@vancy.in", "x")
	require.NoError(t, err)
	require.NoError(t, s.AddProductToCart(ctx, "m4", "32", "Khaki"))
	_, err = s.ToggleWishlist(ctx, "m5")
	require.NoError(t, err)
	require.NoError(t, s.AddCategory(ctx, "Jackets"))
	rate := 99.0
	_, err = s.UpdateStoreSettings(ctx, model.SettingsUpdate{
		FlatShippingRate: &rate,
		DeliveryPartners: []string{"Shiprocket"},
	})
	require.NoError(t, err)
	_, err = s.AddProduct(ctx, model.Product{Name: "Quilted Bomber", Category: "Jackets", Price: 3999, OriginalPrice: 5499, Stock: 8})
	require.NoError(t, err)
	require.NoError(t, s.DeleteProduct(ctx, "m3"))
	require.NoError(t, s.AddProductToCart(ctx, "m1", "L", "Black"))
	id, err := s.PlaceOrder(ctx, home, 0, "")
	require.NoError(t, err)
	require.NoError(t, s.UpdateOrderStatus(ctx, id, model.StatusShipped))

	reloaded := newStore(t, r, "")
	assert.Equal(t, model.RoleAdmin, reloaded.Role())
	assert.Equal(t, "admin-1", reloaded.User().ID)
	assert.Empty(t, reloaded.Cart())
	assert.Equal(t, []string{"m5"}, reloaded.Wishlist())

	opts := cmpopts.EquateEmpty()
	assert.Empty(t, cmp.Diff(s.User(), reloaded.User(), opts))
	assert.Empty(t, cmp.Diff(s.Categories(), reloaded.Categories(), opts))
	assert.Empty(t, cmp.Diff(s.Products(), reloaded.Products(), opts))
	assert.Empty(t, cmp.Diff(s.Settings(), reloaded.Settings(), opts))
	assert.Empty(t, cmp.Diff(s.Coupons(), reloaded.Coupons(), opts))
	assert.Empty(t, cmp.Diff(s.Orders(), reloaded.Orders(), opts))
	assert.Empty(t, cmp.Diff(s.AllOrders(), reloaded.AllOrders(), opts))

	o, ok := reloaded.Order(id)
	require.True(t, ok)
	assert.Equal(t, model.StatusShipped, o.Status)
	assert.True(t, o.Date.Equal(fixedNow))
}

func TestCatalogChangesSurviveReload(t *testing.T) {
	ctx := context.Background()
	seed, err := catalog.LoadSeed()
	require.NoError(t, err)
	pristine, err := catalog.LoadSeed()
	require.NoError(t, err)

	r := repo.NewMemoryStateRepository()
	reopen := func() *Store {
		s, err := New(ctx, r, Options{Seed: &seed, Clock: func() time.Time { return fixedNow }})
		require.NoError(t, err)
		return s
	}

	s := reopen()
	require.NoError(t, s.DeleteProduct(ctx, "m1"))
	want := s.Products()

	reloaded := reopen()
	if diff := cmp.Diff(want, reloaded.Products(), cmpopts.EquateEmpty()); diff != "" {
		t.Fatalf("products after delete and reload (-want +got):\n%s", diff)
	}
	m2, ok := reloaded.Product("m2")
	require.True(t, ok)
	assert.False(t, m2.IsNew)

	_, err = reloaded.AddProduct(ctx, model.Product{Name: "Linen Overshirt", Category: "Round Neck T-Shirts", Price: 2199, OriginalPrice: 2999, Stock: 12})
	require.NoError(t, err)
	want = reloaded.Products()

	again := reopen()
	if diff := cmp.Diff(want, again.Products(), cmpopts.EquateEmpty()); diff != "" {
		t.Fatalf("products after add and reload (-want +got):\n%s", diff)
	}

	assert.Empty(t, cmp.Diff(pristine, seed), "seed passed in options must not be modified")
}

func TestCatalogOperations(t *testing.T) {
	ctx := context.Background()
	s := newStore(t, repo.NewMemoryStateRepository(), "")

	p, err := s.AddProduct(ctx, model.Product{Name: "Waffle Knit Sweatshirt", Category: "Sweatshirts", Price: 2499, OriginalPrice: 3299, Stock: 20})
	require.NoError(t, err)
	assert.Equal(t, p.ID, s.Products()[0].ID)

	found := s.SearchProducts(catalog.SearchQuery{Query: "waffle"})
	require.Len(t, found, 1)

	require.NoError(t, s.DeleteCategory(ctx, "Sweatshirts"))
	assert.NotContains(t, s.Categories(), "Sweatshirts")
	got, ok := s.Product(p.ID)
	require.True(t, ok)
	assert.Equal(t, "Sweatshirts", got.Category, "orphaned category string stays on the product")

	require.NoError(t, s.DeleteProduct(ctx, p.ID))
	_, ok = s.Product(p.ID)
	assert.False(t, ok)
	require.NoError(t, s.DeleteProduct(ctx, "missing"))
	require.NoError(t, s.UpdateProduct(ctx, "missing", model.ProductUpdate{}))
}

func TestWishlistToggle(t *testing.T) {
	ctx := context.Background()
	s := newStore(t, repo.NewMemoryStateRepository(), "")

	in, err := s.ToggleWishlist(ctx, "m1")
	require.NoError(t, err)
	assert.True(t, in)
	assert.True(t, s.InWishlist("m1"))

	in, err = s.ToggleWishlist(ctx, "m1")
	require.NoError(t, err)
	assert.False(t, in)
	assert.Empty(t, s.Wishlist())
}

func TestAccountFlow(t *testing.T) {
	ctx := context.Background()
	s := newStore(t, repo.NewMemoryStateRepository(), "")

	addr, err := s.AddAddress(ctx, model.Address{Label: "Office"})
	require.NoError(t, err)
	assert.Empty(t, addr.ID, "ignored without a user")

	_, err = s.Login(ctx, "", "x")
	assert.True(t, errors.Is(err, errx.ErrInvalidInput))

	u, err := s.Register(ctx, "Aarav", "aarav@example.com", "pw")
	require.NoError(t, err)
	assert.Empty(t, u.Addresses)
	assert.Equal(t, model.RoleBuyer, s.Role())

	office, err := s.AddAddress(ctx, model.Address{Label: "Office", Street: "1 BKC", City: "Mumbai", Zip: "400051", IsDefault: true})
	require.NoError(t, err)
	require.NotEmpty(t, office.ID)
	def, ok := s.User().DefaultAddress()
	require.True(t, ok)
	assert.Equal(t, office.ID, def.ID)

	require.NoError(t, s.RemoveAddress(ctx, office.ID))
	assert.Empty(t, s.User().Addresses)

	require.NoError(t, s.AddProductToCart(ctx, "m1", "M", "Navy"))
	_, err = s.ToggleWishlist(ctx, "m2")
	require.NoError(t, err)
	require.NoError(t, s.SetRole(ctx, model.RoleAdmin))

	require.NoError(t, s.Logout(ctx))
	assert.Nil(t, s.User())
	assert.Empty(t, s.Cart())
	assert.Empty(t, s.Wishlist())
	assert.Equal(t, model.RoleBuyer, s.Role())
}

func TestCouponAdmin(t *testing.T) {
	ctx := context.Background()
	s := newStore(t, repo.NewMemoryStateRepository(), "")
	addCoupons(t, s)

	_, err := s.AddCoupon(ctx, model.Coupon{Code: "Welcome15", DiscountType: model.DiscountFixed, Value: 1})
	assert.True(t, errors.Is(err, errx.ErrCouponExists))

	require.NoError(t, s.AddProductToCart(ctx, "m2", "M", "Grey"))
	_, err = s.ApplyCoupon("WELCOME15")
	require.NoError(t, err)

	require.NoError(t, s.DeleteCoupon(ctx, "welcome15"))
	assert.Len(t, s.Coupons(), 2)
	_, applied := s.AppliedCoupon()
	assert.False(t, applied)

	require.NoError(t, s.DeleteCoupon(ctx, "missing"))
	assert.Len(t, s.Coupons(), 2)
}

func TestStatsAndLifetimeValue(t *testing.T) {
	ctx := context.Background()
	s := newStore(t, repo.NewMemoryStateRepository(), "")
	_, err := s.Login(ctx, "meera@example.com", "x")
	require.NoError(t, err)

	require.NoError(t, s.AddProductToCart(ctx, "m2", "M", "Grey"))
	a, err := s.PlaceOrder(ctx, home, 0, "")
	require.NoError(t, err)
	require.NoError(t, s.AddProductToCart(ctx, "m5", "L", "Sand"))
	b, err := s.PlaceOrder(ctx, home, 0, "")
	require.NoError(t, err)
	require.NoError(t, s.UpdateOrderStatus(ctx, b, model.StatusCancelled))

	st := s.Stats()
	assert.Equal(t, 2, st.Orders)
	assert.Equal(t, 2299.0, st.Revenue)
	assert.Equal(t, 1, st.Buyers)
	assert.Equal(t, 6, st.Products)

	o, _ := s.Order(a)
	assert.Equal(t, o.Total, s.LifetimeValue("MEERA@example.com"))
	assert.Zero(t, s.LifetimeValue("nobody@example.com"))
}
